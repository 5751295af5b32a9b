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
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// OrdinalKey is the reserved property key a .properties file can set to
// override its source's ordinal.
const OrdinalKey = "config_ordinal"

// WellKnownPropertiesPath is the relative resource path every default
// property-file discovery looks for under each of DefaultPropertySearchRoots,
// the Go stand-in for a fixed classpath resource name every jar on a JVM's
// classpath is checked for.
const WellKnownPropertiesPath = "META-INF/zen-config/application.properties"

// DefaultPropertySearchRoots lists the directories DiscoverPropertiesSources
// checks for WellKnownPropertiesPath when AddDefaultSources assembles the
// default source chain.
var DefaultPropertySearchRoots = []string{".", "/etc/zen-config"}

// DiscoverPropertiesSources loads WellKnownPropertiesPath from every root in
// roots that has it, silently skipping roots that don't, the same way a
// classpath scan silently skips jars that don't carry the resource.
func DiscoverPropertiesSources(roots []string) ([]*ReaderPropertiesSource, error) {
	var sources []*ReaderPropertiesSource
	for _, root := range roots {
		path := filepath.Join(root, WellKnownPropertiesPath)
		f, err := os.Open(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("confsource: opening %s: %w", path, err)
		}
		src, err := LoadPropertiesSource(path, f)
		closeErr := f.Close()
		if err != nil {
			return nil, err
		}
		if closeErr != nil {
			return nil, fmt.Errorf("confsource: closing %s: %w", path, closeErr)
		}
		sources = append(sources, src)
	}
	return sources, nil
}

// ReaderPropertiesSource parses the Java .properties wire format from an
// io.Reader: ISO-8859-1 encoded, "key = value" or "key: value" pairs,
// '#'/'!' line comments, backslash line continuation, and the standard
// escape sequences. The reserved config_ordinal key, if present, sets the
// source's ordinal; otherwise it defaults to DefaultOrdinal.
type ReaderPropertiesSource struct {
	name    string
	ordinal int
	data    map[string]string
}

// LoadPropertiesSource decodes r as ISO-8859-1 and parses it as a
// .properties file, naming the resulting source name (conventionally the
// resource URL it was loaded from).
func LoadPropertiesSource(name string, r io.Reader) (*ReaderPropertiesSource, error) {
	decoded := charmap.ISO8859_1.NewDecoder().Reader(r)
	data, err := parseProperties(decoded)
	if err != nil {
		return nil, fmt.Errorf("confsource: parsing properties source %q: %w", name, err)
	}
	ordinal := DefaultOrdinal
	if raw, ok := data[OrdinalKey]; ok {
		var parsed int
		if _, err := fmt.Sscanf(raw, "%d", &parsed); err == nil {
			ordinal = parsed
		}
	}
	return &ReaderPropertiesSource{name: name, ordinal: ordinal, data: data}, nil
}

func (s *ReaderPropertiesSource) Name() string { return s.name }
func (s *ReaderPropertiesSource) Ordinal() int { return s.ordinal }

func (s *ReaderPropertiesSource) Value(name string) (string, bool) {
	v, ok := s.data[name]
	return v, ok
}

func (s *ReaderPropertiesSource) PropertyNames() map[string]struct{} {
	names := make(map[string]struct{}, len(s.data))
	for k := range s.data {
		names[k] = struct{}{}
	}
	return names
}

func (s *ReaderPropertiesSource) Properties() map[string]string {
	cp := make(map[string]string, len(s.data))
	for k, v := range s.data {
		cp[k] = v
	}
	return cp
}

// parseProperties is a small hand-rolled state machine over logical lines:
// physical lines ending in an unescaped backslash are joined before a line
// is interpreted as a comment, a blank line, or a key/value pair.
func parseProperties(r io.Reader) (map[string]string, error) {
	out := make(map[string]string)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var pending strings.Builder
	haveLogicalLine := false

	flush := func() error {
		if !haveLogicalLine {
			return nil
		}
		line := pending.String()
		pending.Reset()
		haveLogicalLine = false

		trimmed := strings.TrimLeft(line, " \t\f")
		if trimmed == "" || trimmed[0] == '#' || trimmed[0] == '!' {
			return nil
		}
		key, value := splitKeyValue(trimmed)
		out[unescapeProperty(key)] = unescapeProperty(value)
		return nil
	}

	for scanner.Scan() {
		raw := scanner.Text()
		if !haveLogicalLine {
			// Leading whitespace of the first physical line of a logical
			// line is not significant for comment detection until trimmed
			// in flush; continuation lines have their own leading
			// whitespace stripped per the .properties spec.
		} else {
			raw = strings.TrimLeft(raw, " \t\f")
		}

		if endsInUnescapedBackslash(raw) {
			pending.WriteString(raw[:len(raw)-1])
			haveLogicalLine = true
			continue
		}
		pending.WriteString(raw)
		haveLogicalLine = true
		if err := flush(); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return out, nil
}

// endsInUnescapedBackslash reports whether line ends in a backslash that
// is not itself escaped by a preceding backslash.
func endsInUnescapedBackslash(line string) bool {
	count := 0
	for i := len(line) - 1; i >= 0 && line[i] == '\\'; i-- {
		count++
	}
	return count%2 == 1
}

// splitKeyValue finds the first unescaped '=', ':', or run of whitespace
// separating a .properties key from its value.
func splitKeyValue(line string) (key, value string) {
	i := 0
	for i < len(line) {
		c := line[i]
		if c == '\\' && i+1 < len(line) {
			i += 2
			continue
		}
		if c == '=' || c == ':' {
			return line[:i], strings.TrimLeft(line[i+1:], " \t\f")
		}
		if c == ' ' || c == '\t' || c == '\f' {
			rest := strings.TrimLeft(line[i:], " \t\f")
			if strings.HasPrefix(rest, "=") || strings.HasPrefix(rest, ":") {
				rest = strings.TrimLeft(rest[1:], " \t\f")
			}
			return line[:i], rest
		}
		i++
	}
	return line, ""
}

// unescapeProperty resolves the standard .properties escape sequences:
// \t \n \r \f \\ \: \= \  and \uXXXX.
func unescapeProperty(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		if runes[i] != '\\' || i+1 >= len(runes) {
			b.WriteRune(runes[i])
			continue
		}
		i++
		switch runes[i] {
		case 't':
			b.WriteRune('\t')
		case 'n':
			b.WriteRune('\n')
		case 'r':
			b.WriteRune('\r')
		case 'f':
			b.WriteRune('\f')
		case 'u':
			if i+4 < len(runes) {
				var code int
				if _, err := fmt.Sscanf(string(runes[i+1:i+5]), "%04x", &code); err == nil {
					b.WriteRune(rune(code))
					i += 4
					continue
				}
			}
			b.WriteRune('u')
		default:
			b.WriteRune(runes[i])
		}
	}
	return b.String()
}
