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
	"strconv"
	"strings"
	"sync"

	corev1 "k8s.io/api/core/v1"
	"k8s.io/client-go/informers"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/tools/cache"

	"github.com/kube-zen/zen-config/pkg/config"
	"github.com/kube-zen/zen-config/pkg/confsource"
	"github.com/kube-zen/zen-config/pkg/logging"
)

// OrdinalAnnotation overrides a ConfigMapSource's ordinal, taking the role
// confsource.OrdinalKey plays for a .properties file.
const OrdinalAnnotation = "zen-config.kube-zen.io/ordinal"

// ConfigMapSource exposes a ConfigMap's data keys as properties.
type ConfigMapSource struct {
	propertyStore
}

func newConfigMapSource(cm *corev1.ConfigMap) *ConfigMapSource {
	s := &ConfigMapSource{}
	s.name = cm.Namespace + "/" + cm.Name
	s.refresh(cm)
	return s
}

func (s *ConfigMapSource) refresh(cm *corev1.ConfigMap) {
	ordinal := confsource.DefaultOrdinal
	if raw, ok := cm.Annotations[OrdinalAnnotation]; ok {
		if parsed, err := strconv.Atoi(raw); err == nil {
			ordinal = parsed
		}
	}
	data := make(map[string]string, len(cm.Data))
	for k, v := range cm.Data {
		data[k] = v
	}
	s.set(ordinal, data)
}

// ConfigMapSourceProvider implements config.SourceProvider by running a
// client-go informer per namespace it is asked about and turning every
// matching ConfigMap into a ConfigMapSource, refreshed on add/update and
// dropped on delete.
type ConfigMapSourceProvider struct {
	clientset kubernetes.Interface

	mu      sync.RWMutex
	sources map[string]*ConfigMapSource
	started map[string]bool
	stop    chan struct{}
}

// NewConfigMapSourceProvider builds a provider against clientset. No
// informer runs until SourcesForScope is first called for a namespace.
func NewConfigMapSourceProvider(clientset kubernetes.Interface) *ConfigMapSourceProvider {
	return &ConfigMapSourceProvider{
		clientset: clientset,
		sources:   make(map[string]*ConfigMapSource),
		started:   make(map[string]bool),
		stop:      make(chan struct{}),
	}
}

// SourcesForScope returns every ConfigMapSource currently known for
// scopeKey's namespace, filtered by its NamePrefix if non-empty.
// scopeKey must be a kubesource.Scope.
func (p *ConfigMapSourceProvider) SourcesForScope(scopeKey any) ([]confsource.Source, error) {
	scope, ok := scopeKey.(Scope)
	if !ok {
		return nil, fmt.Errorf("kubesource: ConfigMapSourceProvider requires a kubesource.Scope key, got %T", scopeKey)
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

func (p *ConfigMapSourceProvider) ensureInformer(namespace string) {
	p.mu.Lock()
	if p.started[namespace] {
		p.mu.Unlock()
		return
	}
	p.started[namespace] = true
	p.mu.Unlock()

	factory := informers.NewSharedInformerFactoryWithOptions(
		p.clientset, 0, informers.WithNamespace(namespace),
	)
	informer := factory.Core().V1().ConfigMaps().Informer()
	informer.AddEventHandler(cache.ResourceEventHandlerFuncs{
		AddFunc:    func(obj interface{}) { p.handleUpsert(obj) },
		UpdateFunc: func(_, newObj interface{}) { p.handleUpsert(newObj) },
		DeleteFunc: func(obj interface{}) { p.handleDelete(obj) },
	})
	factory.Start(p.stop)
	cache.WaitForCacheSync(p.stop, informer.HasSynced)
}

func (p *ConfigMapSourceProvider) handleUpsert(obj interface{}) {
	cm, ok := obj.(*corev1.ConfigMap)
	if !ok {
		return
	}
	key := cm.Namespace + "/" + cm.Name
	p.mu.Lock()
	src, exists := p.sources[key]
	if exists {
		src.refresh(cm)
	} else {
		p.sources[key] = newConfigMapSource(cm)
	}
	p.mu.Unlock()
	logging.Debug("configmap source refreshed", logging.Fields{
		Component: "kubesource", Operation: "configmap_upsert", SourceName: key,
	})
}

func (p *ConfigMapSourceProvider) handleDelete(obj interface{}) {
	cm, ok := obj.(*corev1.ConfigMap)
	if !ok {
		tombstone, ok2 := obj.(cache.DeletedFinalStateUnknown)
		if !ok2 {
			return
		}
		cm, ok = tombstone.Obj.(*corev1.ConfigMap)
		if !ok {
			return
		}
	}
	key := cm.Namespace + "/" + cm.Name
	p.mu.Lock()
	delete(p.sources, key)
	p.mu.Unlock()
}

// Close stops every informer this provider started.
func (p *ConfigMapSourceProvider) Close() error {
	close(p.stop)
	return nil
}

var _ config.SourceProvider = (*ConfigMapSourceProvider)(nil)
