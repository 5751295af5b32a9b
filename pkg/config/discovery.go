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
	"github.com/kube-zen/zen-config/pkg/confsource"
	"github.com/kube-zen/zen-config/pkg/convert"
)

// SourceProvider produces zero or more Sources for a given scope key. It
// is the host-supplied half of the discovery protocol: the builder knows
// only that it can ask a SourceProvider for sources scoped to whatever
// opaque key it was given, not how that provider finds them (a
// Kubernetes informer, a service registry, a plug-in loader).
type SourceProvider interface {
	SourcesForScope(scopeKey any) ([]confsource.Source, error)
}

// DiscoveredConverter pairs a converter with the priority the discovery
// mechanism assigned it (DefaultPriority if the host attached none).
type DiscoveredConverter struct {
	Converter convert.Converter
	Priority  int
}

// Discoverer enumerates every Source, SourceProvider, and Converter the
// host's plug-in registry currently knows about, scoped to a builder's
// scope key. A host with no discovery mechanism can supply a Discoverer
// whose methods return empty slices; kubesource.Discoverer is the one
// concrete implementation this module wires in.
type Discoverer interface {
	DiscoverSources(scopeKey any) ([]confsource.Source, error)
	DiscoverSourceProviders(scopeKey any) ([]SourceProvider, error)
	DiscoverConverters(scopeKey any) ([]DiscoveredConverter, error)
}
