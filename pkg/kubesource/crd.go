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
	"fmt"
	"strings"
	"sync"

	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"k8s.io/client-go/dynamic"
	"k8s.io/client-go/dynamic/dynamicinformer"
	"k8s.io/client-go/tools/cache"
	"sigs.k8s.io/yaml"

	"github.com/kube-zen/zen-config/pkg/config"
	"github.com/kube-zen/zen-config/pkg/confsource"
	"github.com/kube-zen/zen-config/pkg/logging"
)

// ConfigSourceGVR identifies the ConfigSource custom resource a
// CRDSourceProvider watches: a spec with an optional ordinal and a
// key/value data map, the CRD analogue of a .properties file.
var ConfigSourceGVR = schema.GroupVersionResource{
	Group:    "zen-config.kube-zen.io",
	Version:  "v1alpha1",
	Resource: "configsources",
}

type configSourceSpec struct {
	Ordinal int               `json:"ordinal"`
	Data    map[string]string `json:"data"`
}

// CRDSource exposes a ConfigSource custom resource's spec.data as
// properties.
type CRDSource struct {
	propertyStore
}

func newCRDSource(u *unstructured.Unstructured) (*CRDSource, error) {
	s := &CRDSource{}
	s.name = u.GetNamespace() + "/" + u.GetName()
	if err := s.refresh(u); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *CRDSource) refresh(u *unstructured.Unstructured) error {
	specMap, found, err := unstructured.NestedMap(u.Object, "spec")
	if err != nil {
		return fmt.Errorf("kubesource: reading spec of %s: %w", s.name, err)
	}
	var spec configSourceSpec
	if found {
		raw, err := yaml.Marshal(specMap)
		if err != nil {
			return fmt.Errorf("kubesource: marshaling spec of %s: %w", s.name, err)
		}
		if err := yaml.Unmarshal(raw, &spec); err != nil {
			return fmt.Errorf("kubesource: decoding spec of %s: %w", s.name, err)
		}
	}
	ordinal := spec.Ordinal
	if ordinal == 0 {
		ordinal = confsource.DefaultOrdinal
	}
	data := make(map[string]string, len(spec.Data))
	for k, v := range spec.Data {
		data[k] = v
	}
	s.set(ordinal, data)
	return nil
}

// CRDSourceProvider implements config.SourceProvider against ConfigSource
// custom resources via a dynamic-client informer, mirroring
// ConfigMapSourceProvider's lifecycle for the unstructured object shape.
type CRDSourceProvider struct {
	dynClient dynamic.Interface

	mu      sync.RWMutex
	sources map[string]*CRDSource
	started map[string]bool
	stop    chan struct{}
}

// NewCRDSourceProvider builds a provider against dynClient.
func NewCRDSourceProvider(dynClient dynamic.Interface) *CRDSourceProvider {
	return &CRDSourceProvider{
		dynClient: dynClient,
		sources:   make(map[string]*CRDSource),
		started:   make(map[string]bool),
		stop:      make(chan struct{}),
	}
}

// SourcesForScope returns every CRDSource known for scopeKey's namespace,
// filtered by NamePrefix if non-empty. scopeKey must be a kubesource.Scope.
func (p *CRDSourceProvider) SourcesForScope(scopeKey any) ([]confsource.Source, error) {
	scope, ok := scopeKey.(Scope)
	if !ok {
		return nil, fmt.Errorf("kubesource: CRDSourceProvider requires a kubesource.Scope key, got %T", scopeKey)
	}
	p.ensureInformer(scope.Namespace)

	p.mu.RLock()
	defer p.mu.RUnlock()
	var out []confsource.Source
	for key, src := range p.sources {
		namespace, name, _ := strings.Cut(key, "/")
		if namespace != scope.Namespace {
			continue
		}
		if scope.NamePrefix != "" && !strings.HasPrefix(name, scope.NamePrefix) {
			continue
		}
		out = append(out, src)
	}
	return out, nil
}

func (p *CRDSourceProvider) ensureInformer(namespace string) {
	p.mu.Lock()
	if p.started[namespace] {
		p.mu.Unlock()
		return
	}
	p.started[namespace] = true
	p.mu.Unlock()

	var factory dynamicinformer.DynamicSharedInformerFactory
	if namespace != "" {
		factory = dynamicinformer.NewFilteredDynamicSharedInformerFactory(p.dynClient, 0, namespace, nil)
	} else {
		factory = dynamicinformer.NewDynamicSharedInformerFactory(p.dynClient, 0)
	}
	informer := factory.ForResource(ConfigSourceGVR).Informer()
	informer.AddEventHandler(cache.ResourceEventHandlerFuncs{
		AddFunc:    func(obj interface{}) { p.handleUpsert(obj) },
		UpdateFunc: func(_, newObj interface{}) { p.handleUpsert(newObj) },
		DeleteFunc: func(obj interface{}) { p.handleDelete(obj) },
	})
	factory.Start(p.stop)
	cache.WaitForCacheSync(p.stop, informer.HasSynced)
}

func (p *CRDSourceProvider) handleUpsert(obj interface{}) {
	u, ok := obj.(*unstructured.Unstructured)
	if !ok {
		return
	}
	key := u.GetNamespace() + "/" + u.GetName()
	p.mu.Lock()
	defer p.mu.Unlock()
	if src, exists := p.sources[key]; exists {
		if err := src.refresh(u); err != nil {
			logging.Warn("failed to refresh ConfigSource", logging.Fields{
				Component: "kubesource", Operation: "configsource_refresh", SourceName: key, Error: err,
			})
		}
		return
	}
	src, err := newCRDSource(u)
	if err != nil {
		logging.Warn("failed to decode ConfigSource", logging.Fields{
			Component: "kubesource", Operation: "configsource_decode", SourceName: key, Error: err,
		})
		return
	}
	p.sources[key] = src
}

func (p *CRDSourceProvider) handleDelete(obj interface{}) {
	u, ok := obj.(*unstructured.Unstructured)
	if !ok {
		tombstone, ok2 := obj.(cache.DeletedFinalStateUnknown)
		if !ok2 {
			return
		}
		u, ok = tombstone.Obj.(*unstructured.Unstructured)
		if !ok {
			return
		}
	}
	key := u.GetNamespace() + "/" + u.GetName()
	p.mu.Lock()
	delete(p.sources, key)
	p.mu.Unlock()
}

// Close stops every informer this provider started.
func (p *CRDSourceProvider) Close() error {
	close(p.stop)
	return nil
}

var _ config.SourceProvider = (*CRDSourceProvider)(nil)
