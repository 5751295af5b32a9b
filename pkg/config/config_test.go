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
	"testing"

	"github.com/kube-zen/zen-config/pkg/confsource"
)

func TestConfiguration_PriorityOrderWins(t *testing.T) {
	low := confsource.NewMapSource("file", 100, map[string]string{"color": "red"})
	high := confsource.NewMapSource("process", 400, map[string]string{"color": "blue"})

	cfg, err := NewBuilder(nil, nil).WithSource(low, high).Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	v, err := GetValue[string](cfg, "color")
	if err != nil {
		t.Fatalf("GetValue() error = %v", err)
	}
	if v != "blue" {
		t.Fatalf("GetValue() = %q, want %q", v, "blue")
	}
}

func TestConfiguration_MissingIsError(t *testing.T) {
	cfg, err := NewBuilder(nil, nil).Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if _, err := GetValue[string](cfg, "nope"); err == nil {
		t.Fatal("GetValue() error = nil, want MissingError")
	}
}

func TestConfiguration_GetOptionalValueIsNilWhenAbsent(t *testing.T) {
	cfg, err := NewBuilder(nil, nil).Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	v, err := GetOptionalValue[string](cfg, "nope")
	if err != nil {
		t.Fatalf("GetOptionalValue() error = %v", err)
	}
	if v != nil {
		t.Fatalf("GetOptionalValue() = %v, want nil", v)
	}
}

func TestConfiguration_CollectionConversion(t *testing.T) {
	src := confsource.NewMapSource("m", 100, map[string]string{"nums": "1,2,3"})
	cfg, err := NewBuilder(nil, nil).WithSource(src).Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	v, err := GetValue[[]int](cfg, "nums")
	if err != nil {
		t.Fatalf("GetValue() error = %v", err)
	}
	if len(v) != 3 || v[0] != 1 || v[2] != 3 {
		t.Fatalf("GetValue() = %v, want [1 2 3]", v)
	}
}

func TestConfiguration_CloseIsIdempotent(t *testing.T) {
	cfg, err := NewBuilder(nil, nil).Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if err := cfg.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := cfg.Close(); err != nil {
		t.Fatalf("second Close() error = %v, want nil", err)
	}
	if _, err := GetValue[string](cfg, "x"); err == nil {
		t.Fatal("GetValue() after Close() succeeded, want ClosedError")
	}
}

func TestConfiguration_EnvVarMangledDerivation(t *testing.T) {
	t.Setenv("MY_INT_PROPERTY", "45")
	cfg, err := NewBuilder(nil, nil).AddDefaultSources().Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	v, err := GetValue[int](cfg, "my_int_property")
	if err != nil {
		t.Fatalf("GetValue() error = %v", err)
	}
	if v != 45 {
		t.Fatalf("GetValue() = %d, want 45", v)
	}
}
