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

// Package kubesource discovers Sources from a running Kubernetes cluster:
// ConfigMaps read directly, and a ConfigSource custom resource read through
// the dynamic client. Both providers key their discovery on a Scope value,
// the opaque scope key this module's discovery protocol expects.
package kubesource

import (
	"sync"

	"github.com/kube-zen/zen-config/pkg/confsource"
)

// Scope identifies which namespace, and optionally which name prefix
// within it, a ConfigMapSourceProvider or CRDSourceProvider should surface
// sources for.
type Scope struct {
	Namespace  string
	NamePrefix string
}

// propertyStore is the concurrency-safe name/ordinal/data triple shared by
// ConfigMapSource and CRDSource; both just feed it a freshly decoded map
// on every informer event.
type propertyStore struct {
	mu      sync.RWMutex
	name    string
	ordinal int
	data    map[string]string
}

func (s *propertyStore) set(ordinal int, data map[string]string) {
	s.mu.Lock()
	s.ordinal = ordinal
	s.data = data
	s.mu.Unlock()
}

func (s *propertyStore) Name() string { return s.name }

func (s *propertyStore) Ordinal() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ordinal
}

func (s *propertyStore) Value(name string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[name]
	return v, ok
}

func (s *propertyStore) PropertyNames() map[string]struct{} {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make(map[string]struct{}, len(s.data))
	for k := range s.data {
		names[k] = struct{}{}
	}
	return names
}

func (s *propertyStore) Properties() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]string, len(s.data))
	for k, v := range s.data {
		out[k] = v
	}
	return out
}

var _ confsource.Source = (*ConfigMapSource)(nil)
var _ confsource.Source = (*CRDSource)(nil)
