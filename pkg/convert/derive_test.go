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

package convert

import (
	"net/url"
	"reflect"
	"strconv"
	"testing"
	"time"
)

func TestDerive_Bool(t *testing.T) {
	tests := []struct {
		raw  string
		want bool
	}{
		{"true", true}, {"TRUE", true}, {"y", true}, {"YES", true},
		{"on", true}, {"1", true},
		{"false", false}, {"no", false}, {"0", false}, {"garbage", false},
	}
	reg := NewRegistry(nil)
	for _, tt := range tests {
		v, err := GetValue[bool](reg, tt.raw)
		if err != nil {
			t.Fatalf("GetValue(%q) error = %v", tt.raw, err)
		}
		if v != tt.want {
			t.Errorf("GetValue(%q) = %v, want %v", tt.raw, v, tt.want)
		}
	}
}

func TestDerive_Int(t *testing.T) {
	reg := NewRegistry(nil)
	v, err := GetValue[int](reg, "45")
	if err != nil {
		t.Fatalf("GetValue() error = %v", err)
	}
	if v != 45 {
		t.Fatalf("GetValue() = %d, want 45", v)
	}
}

func TestDerive_Duration(t *testing.T) {
	reg := NewRegistry(nil)
	v, err := GetValue[time.Duration](reg, "5s")
	if err != nil {
		t.Fatalf("GetValue() error = %v", err)
	}
	if v != 5*time.Second {
		t.Fatalf("GetValue() = %v, want 5s", v)
	}
}

func TestDerive_URL(t *testing.T) {
	reg := NewRegistry(nil)
	v, err := GetValue[url.URL](reg, "https://example.com/path")
	if err != nil {
		t.Fatalf("GetValue() error = %v", err)
	}
	if v.Host != "example.com" {
		t.Fatalf("GetValue().Host = %q, want example.com", v.Host)
	}
}

func TestDerive_Optional(t *testing.T) {
	reg := NewRegistry(nil)
	v, err := GetValue[*int](reg, "7")
	if err != nil {
		t.Fatalf("GetValue() error = %v", err)
	}
	if v == nil || *v != 7 {
		t.Fatalf("GetValue() = %v, want pointer to 7", v)
	}
}

func TestDerive_Collection(t *testing.T) {
	reg := NewRegistry(nil)
	v, err := GetValue[[]int](reg, "1,2,3")
	if err != nil {
		t.Fatalf("GetValue() error = %v", err)
	}
	want := []int{1, 2, 3}
	if !reflect.DeepEqual(v, want) {
		t.Fatalf("GetValue() = %v, want %v", v, want)
	}
}

func TestDerive_CollectionEscapedComma(t *testing.T) {
	reg := NewRegistry(nil)
	v, err := GetValue[[]string](reg, `a\,b,c`)
	if err != nil {
		t.Fatalf("GetValue() error = %v", err)
	}
	want := []string{"a,b", "c"}
	if !reflect.DeepEqual(v, want) {
		t.Fatalf("GetValue() = %v, want %v", v, want)
	}
}

func TestDerive_Set(t *testing.T) {
	reg := NewRegistry(nil)
	v, err := GetValue[Set[string]](reg, "a,b,a")
	if err != nil {
		t.Fatalf("GetValue() error = %v", err)
	}
	if len(v) != 2 {
		t.Fatalf("GetValue() = %v, want 2 distinct elements", v)
	}
	if _, ok := v["a"]; !ok {
		t.Error("GetValue() missing element a")
	}
	if _, ok := v["b"]; !ok {
		t.Error("GetValue() missing element b")
	}
}

func TestDerive_Array(t *testing.T) {
	reg := NewRegistry(nil)
	v, err := GetValue[[3]int](reg, "1,2,3")
	if err != nil {
		t.Fatalf("GetValue() error = %v", err)
	}
	if v != [3]int{1, 2, 3} {
		t.Fatalf("GetValue() = %v, want [1 2 3]", v)
	}
}

func TestDerive_ArrayLengthMismatch(t *testing.T) {
	reg := NewRegistry(nil)
	if _, err := GetValue[[3]int](reg, "1,2"); err == nil {
		t.Fatal("GetValue() error = nil, want a length-mismatch ConversionError")
	}
}

type hexByte byte

func (h *hexByte) UnmarshalText(text []byte) error {
	v, err := strconv.ParseUint(string(text), 16, 8)
	if err != nil {
		return err
	}
	*h = hexByte(v)
	return nil
}

func TestDerive_TextUnmarshaler(t *testing.T) {
	reg := NewRegistry(nil)
	v, err := GetValue[hexByte](reg, "ff")
	if err != nil {
		t.Fatalf("GetValue() error = %v", err)
	}
	if v != 0xff {
		t.Fatalf("GetValue() = %v, want 0xff", v)
	}
}

type widget struct{ Name string }

func TestDerive_TypeHandler(t *testing.T) {
	RegisterTypeHandler(reflect.TypeOf(widget{}), func(raw string) (any, error) {
		return widget{Name: raw}, nil
	})
	reg := NewRegistry(nil)
	v, err := GetValue[widget](reg, "gizmo")
	if err != nil {
		t.Fatalf("GetValue() error = %v", err)
	}
	if v.Name != "gizmo" {
		t.Fatalf("GetValue() = %+v, want Name=gizmo", v)
	}
}
