// Copyright 2026 The Zen Config Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"fmt"

	"github.com/kube-zen/zen-config/pkg/confsource"
	"github.com/kube-zen/zen-config/pkg/convert"
	"github.com/kube-zen/zen-config/pkg/telemetry"
)

// explicitConverter is an entry queued by WithConverter before build.
type explicitConverter struct {
	priority  int
	converter convert.Converter
}

// ConfigurationBuilder accumulates sources and converters, then produces
// an immutable Configuration. Every toggle is idempotent: calling it
// again has no additional effect.
type ConfigurationBuilder struct {
	scopeKey any
	hasScope bool

	wantDefaults   bool
	wantDiscovered bool
	wantDiscConv   bool

	discoverer Discoverer
	metrics    *telemetry.Metrics

	explicitSources    []confsource.Source
	explicitConverters []explicitConverter
}

// NewBuilder starts an empty builder. metrics may be nil; discoverer may
// be nil if AddDiscoveredSources/AddDiscoveredConverters are never called.
func NewBuilder(discoverer Discoverer, metrics *telemetry.Metrics) *ConfigurationBuilder {
	return &ConfigurationBuilder{discoverer: discoverer, metrics: metrics}
}

// AddDefaultSources requests the process-properties source, the
// process-environment source, and every property file found at
// confsource.WellKnownPropertiesPath under confsource.DefaultPropertySearchRoots
// be appended at build time.
func (b *ConfigurationBuilder) AddDefaultSources() *ConfigurationBuilder {
	b.wantDefaults = true
	return b
}

// AddDiscoveredSources requests every Source and SourceProvider the
// Discoverer finds for this builder's scope key be appended.
func (b *ConfigurationBuilder) AddDiscoveredSources() *ConfigurationBuilder {
	b.wantDiscovered = true
	return b
}

// AddDiscoveredConverters requests every Converter the Discoverer finds
// for this builder's scope key be registered.
func (b *ConfigurationBuilder) AddDiscoveredConverters() *ConfigurationBuilder {
	b.wantDiscConv = true
	return b
}

// WithSource appends explicit sources.
func (b *ConfigurationBuilder) WithSource(sources ...confsource.Source) *ConfigurationBuilder {
	b.explicitSources = append(b.explicitSources, sources...)
	return b
}

// WithConverter appends an explicit converter registration at priority.
func (b *ConfigurationBuilder) WithConverter(priority int, c convert.Converter) *ConfigurationBuilder {
	b.explicitConverters = append(b.explicitConverters, explicitConverter{priority: priority, converter: c})
	return b
}

// WithConverters appends explicit converters at convert.DefaultPriority.
func (b *ConfigurationBuilder) WithConverters(cs ...convert.Converter) *ConfigurationBuilder {
	for _, c := range cs {
		b.WithConverter(convert.DefaultPriority, c)
	}
	return b
}

// ForScope marks the Configuration to be bound to key in a ProviderRegistry
// once built. Build performs the binding itself via the hook
// RegisterBinder installs; importing pkg/registry is what makes ForScope
// usable.
func (b *ConfigurationBuilder) ForScope(key any) *ConfigurationBuilder {
	b.scopeKey = key
	b.hasScope = true
	return b
}

// Build assembles sources in the order defaults, discovered, explicit,
// then sorts the combined chain; assembles converters by seeding
// discovered registrations first and applying explicit ones in order,
// each replacing the current registration only if its priority is
// strictly higher; and returns the resulting Configuration.
func (b *ConfigurationBuilder) Build() (*Configuration, error) {
	var sources []confsource.Source

	if b.wantDefaults {
		sources = append(sources, confsource.NewProcessPropertiesSource(), confsource.NewEnvironmentSource())
		fileSources, err := confsource.DiscoverPropertiesSources(confsource.DefaultPropertySearchRoots)
		if err != nil {
			return nil, err
		}
		for _, fs := range fileSources {
			sources = append(sources, fs)
		}
	}

	if b.wantDiscovered {
		if b.discoverer == nil {
			return nil, fmt.Errorf("config: AddDiscoveredSources requested but no Discoverer was configured")
		}
		discovered, err := b.discoverer.DiscoverSources(b.scopeKey)
		if err != nil {
			return nil, err
		}
		sources = append(sources, discovered...)

		providers, err := b.discoverer.DiscoverSourceProviders(b.scopeKey)
		if err != nil {
			return nil, err
		}
		for _, p := range providers {
			fromProvider, err := p.SourcesForScope(b.scopeKey)
			if err != nil {
				return nil, err
			}
			sources = append(sources, fromProvider...)
		}
	}

	sources = append(sources, b.explicitSources...)
	confsource.Sort(sources)

	registry := convert.NewRegistry(b.metrics)

	if b.wantDiscConv {
		if b.discoverer == nil {
			return nil, fmt.Errorf("config: AddDiscoveredConverters requested but no Discoverer was configured")
		}
		discovered, err := b.discoverer.DiscoverConverters(b.scopeKey)
		if err != nil {
			return nil, err
		}
		for _, dc := range discovered {
			if _, err := TargetTypeOf(dc.Converter); err != nil {
				return nil, err
			}
			priority := dc.Priority
			if priority == 0 {
				priority = convert.DefaultPriority
			}
			registry.RegisterConverter(priority, dc.Converter)
		}
	}

	for _, ec := range b.explicitConverters {
		registry.RegisterConverter(ec.priority, ec.converter)
	}

	cfg := &Configuration{sources: sources, registry: registry, metrics: b.metrics}
	cfg.metrics.SetSourcesActive(len(sources))

	if b.hasScope {
		if binder == nil {
			return nil, fmt.Errorf("config: ForScope was used but no ProviderRegistry binder is registered; import github.com/kube-zen/zen-config/pkg/registry")
		}
		if err := binder(cfg, b.scopeKey); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}
