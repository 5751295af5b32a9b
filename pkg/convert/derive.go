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
	"encoding"
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"time"

	cerrors "github.com/kube-zen/zen-config/pkg/errors"
)

var (
	durationType        = reflect.TypeOf(time.Duration(0))
	urlType             = reflect.TypeOf(url.URL{})
	textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()
)

// derive builds a Converter for targetType from the built-in recipes, in
// the fixed order: duration, URL, encoding.TextUnmarshaler (checked early
// so a named numeric or string type with custom parsing is honored over
// the generic kind-based rules below it), string identity, bool, Optional
// (a pointer), Collection (a slice), Set (a map to struct{}), array,
// numeric scalars, and finally a registered type handler. It returns an
// error if none of these recipes apply.
func derive(r *Registry, targetType reflect.Type) (Converter, error) {
	switch {
	case targetType == durationType:
		return deriveFunc(targetType, func(raw string) (any, error) {
			d, err := time.ParseDuration(raw)
			if err != nil {
				return nil, &cerrors.ConversionError{Raw: raw, TargetType: targetType, Cause: err}
			}
			return d, nil
		}), nil

	case targetType == urlType || (targetType.Kind() == reflect.Ptr && targetType.Elem() == urlType):
		return deriveURL(targetType), nil

	case targetType.Kind() != reflect.Ptr && reflect.PointerTo(targetType).Implements(textUnmarshalerType):
		return deriveFunc(targetType, deriveTextUnmarshaler(targetType)), nil

	case targetType.Kind() == reflect.String:
		return deriveFunc(targetType, func(raw string) (any, error) {
			return reflect.ValueOf(raw).Convert(targetType).Interface(), nil
		}), nil

	case targetType.Kind() == reflect.Bool:
		return deriveFunc(targetType, deriveBool), nil

	case targetType.Kind() == reflect.Ptr:
		return deriveOptional(r, targetType)

	case targetType.Kind() == reflect.Slice:
		return deriveCollection(r, targetType)

	case targetType.Kind() == reflect.Map && isSetShape(targetType):
		return deriveSet(r, targetType)

	case targetType.Kind() == reflect.Array:
		return deriveArray(r, targetType)

	case isNumericKind(targetType.Kind()):
		return deriveFunc(targetType, numericParser(targetType)), nil
	}

	if fn, ok := lookupTypeHandler(targetType); ok {
		return deriveFunc(targetType, fn), nil
	}

	return nil, fmt.Errorf("convert: no derivation recipe for type %s", targetType)
}

func deriveFunc(targetType reflect.Type, fn func(string) (any, error)) Converter {
	return &funcConverter{targetType: targetType, fn: fn}
}

// deriveBool treats {true, y, yes, on, 1}, case-insensitively, as true and
// everything else as false; it never fails.
func deriveBool(raw string) (any, error) {
	switch strings.ToLower(raw) {
	case "true", "y", "yes", "on", "1":
		return true, nil
	default:
		return false, nil
	}
}

func deriveURL(targetType reflect.Type) Converter {
	return deriveFunc(targetType, func(raw string) (any, error) {
		u, err := url.Parse(raw)
		if err != nil {
			return nil, &cerrors.ConversionError{Raw: raw, TargetType: targetType, Cause: err}
		}
		if targetType.Kind() == reflect.Ptr {
			return u, nil
		}
		return *u, nil
	})
}

// deriveOptional recursively derives (or reuses) a converter for E and
// wraps its result as *E. Convert is only ever invoked with a present raw
// value, so the "None when null" half of Optional<E> is handled upstream
// by Configuration.GetOptionalValue, not here.
func deriveOptional(r *Registry, targetType reflect.Type) (Converter, error) {
	elemType := targetType.Elem()
	return deriveFunc(targetType, func(raw string) (any, error) {
		v, err := r.Convert(raw, elemType)
		if err != nil {
			return nil, err
		}
		ptr := reflect.New(elemType)
		ptr.Elem().Set(reflect.ValueOf(v))
		return ptr.Interface(), nil
	}), nil
}

// deriveCollection splits the raw value and converts each element via the
// element type's own converter, collecting the results into a slice.
func deriveCollection(r *Registry, targetType reflect.Type) (Converter, error) {
	elemType := targetType.Elem()
	return deriveFunc(targetType, func(raw string) (any, error) {
		parts := Split(raw)
		out := reflect.MakeSlice(targetType, 0, len(parts))
		for _, p := range parts {
			v, err := r.Convert(p, elemType)
			if err != nil {
				return nil, err
			}
			out = reflect.Append(out, reflect.ValueOf(v))
		}
		return out.Interface(), nil
	}), nil
}

// isSetShape reports whether t is a map keyed by a comparable type with an
// empty-struct value, the shape Set[E] (and any equivalent map type) uses.
func isSetShape(t reflect.Type) bool {
	elem := t.Elem()
	return elem.Kind() == reflect.Struct && elem.NumField() == 0
}

func deriveSet(r *Registry, targetType reflect.Type) (Converter, error) {
	keyType := targetType.Key()
	return deriveFunc(targetType, func(raw string) (any, error) {
		parts := Split(raw)
		out := reflect.MakeMapWithSize(targetType, len(parts))
		empty := reflect.New(targetType.Elem()).Elem()
		for _, p := range parts {
			v, err := r.Convert(p, keyType)
			if err != nil {
				return nil, err
			}
			out.SetMapIndex(reflect.ValueOf(v), empty)
		}
		return out.Interface(), nil
	}), nil
}

// deriveArray splits the raw value into exactly targetType.Len() elements;
// a count mismatch is a ConversionError rather than silent truncation.
func deriveArray(r *Registry, targetType reflect.Type) (Converter, error) {
	elemType := targetType.Elem()
	n := targetType.Len()
	return deriveFunc(targetType, func(raw string) (any, error) {
		parts := Split(raw)
		if len(parts) != n {
			return nil, &cerrors.ConversionError{
				Raw:        raw,
				TargetType: targetType,
				Cause:      fmt.Errorf("expected %d comma-separated elements, got %d", n, len(parts)),
			}
		}
		out := reflect.New(targetType).Elem()
		for i, p := range parts {
			v, err := r.Convert(p, elemType)
			if err != nil {
				return nil, err
			}
			out.Index(i).Set(reflect.ValueOf(v))
		}
		return out.Interface(), nil
	}), nil
}

func isNumericKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}

func numericParser(targetType reflect.Type) func(string) (any, error) {
	kind := targetType.Kind()
	return func(raw string) (any, error) {
		var v reflect.Value
		var err error
		switch {
		case kind >= reflect.Int && kind <= reflect.Int64:
			var n int64
			n, err = strconv.ParseInt(raw, 10, targetType.Bits())
			v = reflect.ValueOf(n).Convert(targetType)
		case kind >= reflect.Uint && kind <= reflect.Uint64:
			var n uint64
			n, err = strconv.ParseUint(raw, 10, targetType.Bits())
			v = reflect.ValueOf(n).Convert(targetType)
		default:
			var f float64
			f, err = strconv.ParseFloat(raw, targetType.Bits())
			v = reflect.ValueOf(f).Convert(targetType)
		}
		if err != nil {
			return nil, &cerrors.ConversionError{Raw: raw, TargetType: targetType, Cause: err}
		}
		return v.Interface(), nil
	}
}

func deriveTextUnmarshaler(targetType reflect.Type) func(string) (any, error) {
	return func(raw string) (any, error) {
		ptr := reflect.New(targetType)
		tu := ptr.Interface().(encoding.TextUnmarshaler)
		if err := tu.UnmarshalText([]byte(raw)); err != nil {
			return nil, &cerrors.ConversionError{Raw: raw, TargetType: targetType, Cause: err}
		}
		return ptr.Elem().Interface(), nil
	}
}
