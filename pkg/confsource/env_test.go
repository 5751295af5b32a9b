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

func fakeEnvSource(env map[string]string) *EnvironmentSource {
	return &EnvironmentSource{
		lookup: func(k string) (string, bool) {
			v, ok := env[k]
			return v, ok
		},
		environ: func() []string {
			out := make([]string, 0, len(env))
			for k, v := range env {
				out = append(out, k+"="+v)
			}
			return out
		},
	}
}

func TestEnvironmentSource_ExactMatch(t *testing.T) {
	s := fakeEnvSource(map[string]string{"my_int_property": "45"})
	v, ok := s.Value("my_int_property")
	if !ok || v != "45" {
		t.Fatalf("Value() = %q, %v; want 45, true", v, ok)
	}
}

func TestEnvironmentSource_MangledMatch(t *testing.T) {
	// "MY_INT_PROPERTY" mangles to itself; the lookup name "my.int.property"
	// mangles to "my_int_property", whose upper-cased form must hit the
	// same env entry.
	s := fakeEnvSource(map[string]string{"MY_INT_PROPERTY": "45"})
	v, ok := s.Value("my.int.property")
	if !ok || v != "45" {
		t.Fatalf("Value() = %q, %v; want 45, true", v, ok)
	}
}

func TestEnvironmentSource_UpperMangledMatch(t *testing.T) {
	s := fakeEnvSource(map[string]string{"MY_INT_PROPERTY": "7"})
	v, ok := s.Value("my_int_property")
	if !ok || v != "7" {
		t.Fatalf("Value() = %q, %v; want 7, true", v, ok)
	}
}

func TestEnvironmentSource_NoMatch(t *testing.T) {
	s := fakeEnvSource(map[string]string{"OTHER": "x"})
	if _, ok := s.Value("missing_property"); ok {
		t.Fatalf("Value() found a value for a name with no env entry")
	}
}

func TestEnvironmentSource_Ordinal(t *testing.T) {
	s := NewEnvironmentSource()
	if s.Ordinal() != 300 {
		t.Fatalf("Ordinal() = %d, want 300", s.Ordinal())
	}
}

func TestMangleEnvName(t *testing.T) {
	tests := []struct{ in, want string }{
		{"foo", "foo"},
		{"foo.bar", "foo_bar"},
		{"foo-bar.baz", "foo_bar_baz"},
		{"FOO_BAR", "FOO_BAR"},
	}
	for _, tt := range tests {
		if got := mangleEnvName(tt.in); got != tt.want {
			t.Errorf("mangleEnvName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
