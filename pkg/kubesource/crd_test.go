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
	"testing"

	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/runtime/schema"
	dynamicfake "k8s.io/client-go/dynamic/fake"
)

func newConfigSource(namespace, name string, ordinal int, data map[string]interface{}) *unstructured.Unstructured {
	return &unstructured.Unstructured{Object: map[string]interface{}{
		"apiVersion": "zen-config.kube-zen.io/v1alpha1",
		"kind":       "ConfigSource",
		"metadata": map[string]interface{}{
			"name":      name,
			"namespace": namespace,
		},
		"spec": map[string]interface{}{
			"ordinal": int64(ordinal),
			"data":    data,
		},
	}}
}

func TestCRDSourceProvider_SourcesForScope(t *testing.T) {
	obj := newConfigSource("zen-system", "feature-flags", 250, map[string]interface{}{"color": "green"})

	scheme := runtime.NewScheme()
	dynClient := dynamicfake.NewSimpleDynamicClientWithCustomListKinds(scheme, map[schema.GroupVersionResource]string{
		ConfigSourceGVR: "ConfigSourceList",
	}, obj)

	provider := NewCRDSourceProvider(dynClient)
	defer provider.Close()

	sources, err := provider.SourcesForScope(Scope{Namespace: "zen-system"})
	if err != nil {
		t.Fatalf("SourcesForScope() error = %v", err)
	}
	if len(sources) != 1 {
		t.Fatalf("SourcesForScope() returned %d sources, want 1", len(sources))
	}
	if sources[0].Ordinal() != 250 {
		t.Fatalf("Ordinal() = %d, want 250", sources[0].Ordinal())
	}
	v, ok := sources[0].Value("color")
	if !ok || v != "green" {
		t.Fatalf("Value(color) = (%q, %v), want (green, true)", v, ok)
	}
}

func TestCRDSourceProvider_DefaultsOrdinalWhenUnset(t *testing.T) {
	obj := newConfigSource("zen-system", "no-ordinal", 0, map[string]interface{}{"x": "1"})

	scheme := runtime.NewScheme()
	dynClient := dynamicfake.NewSimpleDynamicClientWithCustomListKinds(scheme, map[schema.GroupVersionResource]string{
		ConfigSourceGVR: "ConfigSourceList",
	}, obj)

	provider := NewCRDSourceProvider(dynClient)
	defer provider.Close()

	sources, err := provider.SourcesForScope(Scope{Namespace: "zen-system"})
	if err != nil {
		t.Fatalf("SourcesForScope() error = %v", err)
	}
	if len(sources) != 1 {
		t.Fatalf("SourcesForScope() returned %d sources, want 1", len(sources))
	}
	if sources[0].Ordinal() != 100 {
		t.Fatalf("Ordinal() = %d, want the default ordinal 100", sources[0].Ordinal())
	}
}
