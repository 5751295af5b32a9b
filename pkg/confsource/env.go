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
	"strings"
)

// EnvironmentOrdinal is the fixed ordinal of the process environment
// source.
const EnvironmentOrdinal = 300

// EnvironmentSource exposes os.Environ() as a Source with the mangling
// lookup: an exact-case hit wins; failing that, every character
// outside [A-Za-z0-9_] is rewritten to '_' and retried; failing that, the
// upper-cased mangled form is tried. Only the first match returns.
type EnvironmentSource struct {
	// lookup and environ are indirected for testability.
	lookup  func(string) (string, bool)
	environ func() []string
}

// NewEnvironmentSource builds a Source backed by the real process
// environment.
func NewEnvironmentSource() *EnvironmentSource {
	return &EnvironmentSource{lookup: os.LookupEnv, environ: os.Environ}
}

func (s *EnvironmentSource) Name() string { return "EnvironmentVariables" }

func (s *EnvironmentSource) Ordinal() int { return EnvironmentOrdinal }

func (s *EnvironmentSource) Value(name string) (string, bool) {
	if v, ok := s.lookup(name); ok {
		return v, true
	}
	mangled := mangleEnvName(name)
	if mangled != name {
		if v, ok := s.lookup(mangled); ok {
			return v, true
		}
	}
	upper := strings.ToUpper(mangled)
	if upper != mangled {
		if v, ok := s.lookup(upper); ok {
			return v, true
		}
	}
	return "", false
}

func (s *EnvironmentSource) PropertyNames() map[string]struct{} {
	names := make(map[string]struct{})
	for _, kv := range s.environ() {
		if idx := strings.IndexByte(kv, '='); idx >= 0 {
			names[kv[:idx]] = struct{}{}
		}
	}
	return names
}

func (s *EnvironmentSource) Properties() map[string]string {
	props := make(map[string]string)
	for _, kv := range s.environ() {
		if idx := strings.IndexByte(kv, '='); idx >= 0 {
			props[kv[:idx]] = kv[idx+1:]
		}
	}
	return props
}

// mangleEnvName rewrites every rune outside [A-Za-z0-9_] to '_'.
func mangleEnvName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch {
		case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
