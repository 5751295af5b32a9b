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

package kubesource

import (
	"github.com/kube-zen/zen-config/pkg/config"
	"github.com/kube-zen/zen-config/pkg/confsource"
)

// Discoverer implements config.Discoverer by delegating entirely to its
// SourceProviders; it contributes no direct sources or converters of its
// own, since every Kubernetes-backed source needs an informer scoped to a
// namespace before it can produce anything.
type Discoverer struct {
	providers []config.SourceProvider
}

// NewDiscoverer wraps providers (typically a ConfigMapSourceProvider and a
// CRDSourceProvider sharing a clientset) as a config.Discoverer.
func NewDiscoverer(providers ...config.SourceProvider) *Discoverer {
	return &Discoverer{providers: providers}
}

// DiscoverSources always returns no direct sources; see Discoverer's type
// comment.
func (d *Discoverer) DiscoverSources(any) ([]confsource.Source, error) { return nil, nil }

// DiscoverSourceProviders returns every SourceProvider this Discoverer was
// built with, unconditionally: each one decides for itself whether
// scopeKey is a shape it understands.
func (d *Discoverer) DiscoverSourceProviders(any) ([]config.SourceProvider, error) {
	return d.providers, nil
}

// DiscoverConverters always returns no converters; Kubernetes objects
// carry no converter registrations, only data.
func (d *Discoverer) DiscoverConverters(any) ([]config.DiscoveredConverter, error) { return nil, nil }

var _ config.Discoverer = (*Discoverer)(nil)
