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

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadPropertiesSource_Basics(t *testing.T) {
	src := "color = red\nfont.size: 12\n# a comment\n! also a comment\nempty=\n"
	s, err := LoadPropertiesSource("test.properties", strings.NewReader(src))
	if err != nil {
		t.Fatalf("LoadPropertiesSource() error = %v", err)
	}
	if v, ok := s.Value("color"); !ok || v != "red" {
		t.Errorf("Value(color) = %q, %v; want red, true", v, ok)
	}
	if v, ok := s.Value("font.size"); !ok || v != "12" {
		t.Errorf("Value(font.size) = %q, %v; want 12, true", v, ok)
	}
	if v, ok := s.Value("empty"); !ok || v != "" {
		t.Errorf("Value(empty) = %q, %v; want empty string, true", v, ok)
	}
	if s.Ordinal() != DefaultOrdinal {
		t.Errorf("Ordinal() = %d, want default %d", s.Ordinal(), DefaultOrdinal)
	}
}

func TestLoadPropertiesSource_OrdinalOverride(t *testing.T) {
	src := "config_ordinal=250\ncolor=red\n"
	s, err := LoadPropertiesSource("test.properties", strings.NewReader(src))
	if err != nil {
		t.Fatalf("LoadPropertiesSource() error = %v", err)
	}
	if s.Ordinal() != 250 {
		t.Errorf("Ordinal() = %d, want 250", s.Ordinal())
	}
}

func TestLoadPropertiesSource_LineContinuation(t *testing.T) {
	src := "message = hello \\\n    world\n"
	s, err := LoadPropertiesSource("test.properties", strings.NewReader(src))
	if err != nil {
		t.Fatalf("LoadPropertiesSource() error = %v", err)
	}
	if v, _ := s.Value("message"); v != "hello world" {
		t.Errorf("Value(message) = %q, want %q", v, "hello world")
	}
}

func TestLoadPropertiesSource_EscapeSequences(t *testing.T) {
	src := `tab=a\tb` + "\n" + `backslash=a\\b` + "\n"
	s, err := LoadPropertiesSource("test.properties", strings.NewReader(src))
	if err != nil {
		t.Fatalf("LoadPropertiesSource() error = %v", err)
	}
	if v, _ := s.Value("tab"); v != "a\tb" {
		t.Errorf("Value(tab) = %q, want %q", v, "a\tb")
	}
	if v, _ := s.Value("backslash"); v != `a\b` {
		t.Errorf("Value(backslash) = %q, want %q", v, `a\b`)
	}
}

func TestLoadPropertiesSource_ColonAndWhitespaceSeparators(t *testing.T) {
	src := "a:1\nb   2\nc = 3\n"
	s, err := LoadPropertiesSource("test.properties", strings.NewReader(src))
	if err != nil {
		t.Fatalf("LoadPropertiesSource() error = %v", err)
	}
	for k, want := range map[string]string{"a": "1", "b": "2", "c": "3"} {
		if v, ok := s.Value(k); !ok || v != want {
			t.Errorf("Value(%s) = %q, %v; want %q, true", k, v, ok, want)
		}
	}
}

func TestLoadPropertiesSource_PropertyNames(t *testing.T) {
	src := "a=1\nb=2\n"
	s, err := LoadPropertiesSource("test.properties", strings.NewReader(src))
	if err != nil {
		t.Fatalf("LoadPropertiesSource() error = %v", err)
	}
	names := s.PropertyNames()
	if len(names) != 2 {
		t.Fatalf("PropertyNames() = %v, want 2 entries", names)
	}
}

func TestDiscoverPropertiesSources_SkipsMissingRootsAndLoadsPresent(t *testing.T) {
	empty := t.TempDir()

	present := t.TempDir()
	resource := filepath.Join(present, WellKnownPropertiesPath)
	if err := os.MkdirAll(filepath.Dir(resource), 0o755); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}
	if err := os.WriteFile(resource, []byte("color=red\n"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	sources, err := DiscoverPropertiesSources([]string{empty, present, filepath.Join(present, "does-not-exist")})
	if err != nil {
		t.Fatalf("DiscoverPropertiesSources() error = %v", err)
	}
	if len(sources) != 1 {
		t.Fatalf("DiscoverPropertiesSources() returned %d sources, want 1", len(sources))
	}
	if v, ok := sources[0].Value("color"); !ok || v != "red" {
		t.Errorf("Value(color) = %q, %v; want red, true", v, ok)
	}
}

func TestEndsInUnescapedBackslash(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{`a\`, true},
		{`a\\`, false},
		{`a\\\`, true},
		{`a`, false},
	}
	for _, tt := range tests {
		if got := endsInUnescapedBackslash(tt.line); got != tt.want {
			t.Errorf("endsInUnescapedBackslash(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}
