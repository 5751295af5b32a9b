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

package confsource

import "testing"

func TestSort_HigherOrdinalFirst(t *testing.T) {
	low := NewMapSource("low", 100, map[string]string{"color": "red"})
	high := NewMapSource("high", 400, map[string]string{"color": "blue"})

	sources := []Source{low, high}
	Sort(sources)

	if sources[0].Name() != "high" {
		t.Fatalf("Sort() put %q first, want %q", sources[0].Name(), "high")
	}
}

func TestSort_TieBreaksByName(t *testing.T) {
	b := NewMapSource("b", 100, nil)
	a := NewMapSource("a", 100, nil)

	sources := []Source{b, a}
	Sort(sources)

	if sources[0].Name() != "a" || sources[1].Name() != "b" {
		t.Fatalf("Sort() = [%s, %s], want [a, b]", sources[0].Name(), sources[1].Name())
	}
}

func TestPropertyNames_UnionAcrossSources(t *testing.T) {
	a := NewMapSource("a", 100, map[string]string{"x": "1"})
	b := NewMapSource("b", 200, map[string]string{"y": "2", "x": "3"})

	names := PropertyNames([]Source{a, b})
	if len(names) != 2 {
		t.Fatalf("PropertyNames() = %v, want 2 entries", names)
	}
	if _, ok := names["x"]; !ok {
		t.Errorf("PropertyNames() missing %q", "x")
	}
	if _, ok := names["y"]; !ok {
		t.Errorf("PropertyNames() missing %q", "y")
	}
}

func TestMapSource_AbsentIsNotEmptyString(t *testing.T) {
	s := NewMapSource("m", 100, map[string]string{"present": ""})

	if v, ok := s.Value("present"); !ok || v != "" {
		t.Fatalf("Value(present) = %q, %v; want empty string, true", v, ok)
	}
	if _, ok := s.Value("absent"); ok {
		t.Fatalf("Value(absent) reported ok for a name never set")
	}
}

func TestMapSource_CopiesInputAndOutput(t *testing.T) {
	data := map[string]string{"k": "v"}
	s := NewMapSource("m", 100, data)
	data["k"] = "mutated"

	if v, _ := s.Value("k"); v != "v" {
		t.Fatalf("Value(k) = %q after caller mutation, want unaffected %q", v, "v")
	}

	props := s.Properties()
	props["k"] = "mutated-again"
	if v, _ := s.Value("k"); v != "v" {
		t.Fatalf("Value(k) = %q after mutating Properties() snapshot, want unaffected %q", v, "v")
	}
}
