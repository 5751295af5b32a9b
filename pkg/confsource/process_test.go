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

func TestProcessPropertiesSource_SetAndUnset(t *testing.T) {
	s := NewProcessPropertiesSource()

	if _, ok := s.Value("app.color"); ok {
		t.Fatal("Value() found a property before it was ever set")
	}

	SetProcessProperty("app.color", "blue")
	defer UnsetProcessProperty("app.color")

	if v, ok := s.Value("app.color"); !ok || v != "blue" {
		t.Fatalf("Value() = %q, %v; want blue, true", v, ok)
	}
	if _, ok := s.PropertyNames()["app.color"]; !ok {
		t.Fatal("PropertyNames() does not include a property set through SetProcessProperty")
	}

	UnsetProcessProperty("app.color")
	if _, ok := s.Value("app.color"); ok {
		t.Fatal("Value() still found the property after UnsetProcessProperty")
	}
}

func TestProcessPropertiesSource_Ordinal(t *testing.T) {
	s := NewProcessPropertiesSource()
	if s.Ordinal() != ProcessPropertiesOrdinal {
		t.Fatalf("Ordinal() = %d, want %d", s.Ordinal(), ProcessPropertiesOrdinal)
	}
	if s.Ordinal() <= EnvironmentOrdinal {
		t.Fatalf("ProcessPropertiesOrdinal (%d) must outrank EnvironmentOrdinal (%d)", s.Ordinal(), EnvironmentOrdinal)
	}
}
