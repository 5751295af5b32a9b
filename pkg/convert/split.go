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

// Package convert implements the target-type converter registry: the
// Converter SPI, priority-based registration and arbitration, and the
// reflective derivation algorithm used to turn a raw string value into a
// typed Go value.
package convert

import "strings"

// Split breaks raw into elements on commas that are not preceded by a
// backslash, then unescapes "\," to "," within each resulting element.
// A backslash preceding any other character is left untouched, including
// the backslash itself. An empty input yields a nil result; a trailing
// unescaped comma yields a trailing empty element.
func Split(raw string) []string {
	if raw == "" {
		return nil
	}

	var parts []string
	var cur strings.Builder
	escaped := false
	for _, r := range raw {
		switch {
		case escaped:
			if r != ',' {
				cur.WriteByte('\\')
			}
			cur.WriteRune(r)
			escaped = false
		case r == '\\':
			escaped = true
		case r == ',':
			parts = append(parts, cur.String())
			cur.Reset()
		default:
			cur.WriteRune(r)
		}
	}
	if escaped {
		cur.WriteByte('\\')
	}
	parts = append(parts, cur.String())
	return parts
}

// Escape prefixes every literal comma in s with a backslash, so that s
// survives as a single element when later passed through Split. It does
// not touch backslashes: an element whose content already ends in a bare
// backslash immediately before a comma cannot be represented losslessly by
// this scheme, a limitation Split's "preserve other backslashes verbatim"
// rule inherits directly.
func Escape(s string) string {
	if !strings.ContainsRune(s, ',') {
		return s
	}
	return strings.ReplaceAll(s, ",", `\,`)
}

// Join escapes and concatenates xs with "," separators. For any xs whose
// elements contain no backslash immediately followed by a comma, and
// whose elements other than the last do not end in a backslash,
// Split(Join(xs)) reproduces xs exactly. A non-last element ending in a
// backslash turns the joining comma into an escaped one.
func Join(xs []string) string {
	escaped := make([]string, len(xs))
	for i, x := range xs {
		escaped[i] = Escape(x)
	}
	return strings.Join(escaped, ",")
}
