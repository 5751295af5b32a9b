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
	"fmt"
	"math"
	"reflect"

	cerrors "github.com/kube-zen/zen-config/pkg/errors"
)

// DefaultPriority is the priority a registration carries when none is given.
const DefaultPriority = 100

// minPriority is installed for converters the registry derives on demand,
// so that any explicit registration for the same target type always wins.
const minPriority = math.MinInt

// Converter turns a present (possibly empty) raw string into a value of
// TargetType. A
// Converter must never be invoked with an absent raw value and must either
// return a value assignable to TargetType or a non-nil error.
type Converter interface {
	TargetType() reflect.Type
	Convert(raw string) (any, error)
}

// Closer is implemented by a Converter that owns a resource Registry.Close
// should release.
type Closer interface {
	Close() error
}

// funcConverter adapts a plain function to the Converter interface.
type funcConverter struct {
	targetType reflect.Type
	fn         func(string) (any, error)
}

func (c *funcConverter) TargetType() reflect.Type { return c.targetType }

func (c *funcConverter) Convert(raw string) (any, error) { return c.fn(raw) }

// registration is the internal (converter, targetType, priority) triple,
// carrying an insertion sequence number. Priority ties are settled by
// outranks, which keeps the earlier registration; the sequence number is
// not consulted.
type registration struct {
	converter Converter
	priority  int
	sequence  uint64
	derived   bool
}

// outranks reports whether r should replace existing when both are
// registered for the same target type: strictly higher priority wins; on a
// tie, the later registration does not displace the earlier one, matching
// "keep the old one" from the registration rule.
func (r *registration) outranks(existing *registration) bool {
	if existing == nil {
		return true
	}
	return r.priority > existing.priority
}

// Register installs fn as the Converter for type T at the given priority.
// It is the generic, ergonomic counterpart to Registry.RegisterFunc for
// library callers who know T at compile time.
func Register[T any](reg *Registry, priority int, fn func(string) (T, error)) {
	targetType := reflect.TypeOf((*T)(nil)).Elem()
	reg.RegisterFunc(targetType, priority, func(raw string) (any, error) {
		return fn(raw)
	})
}

// GetValue converts raw using the Converter registered or derived for type
// T, returning a typed result.
func GetValue[T any](reg *Registry, raw string) (T, error) {
	var zero T
	targetType := reflect.TypeOf((*T)(nil)).Elem()
	v, err := reg.Convert(raw, targetType)
	if err != nil {
		return zero, err
	}
	typed, ok := v.(T)
	if !ok {
		return zero, &cerrors.ConversionError{
			Raw:        raw,
			TargetType: targetType,
			Cause:      fmt.Errorf("derived value has type %T, want %s", v, targetType),
		}
	}
	return typed, nil
}
