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

// Package errors declares the typed error taxonomy raised by the config
// subsystems: a failed lookup, a failed conversion, an unsupported target
// type, a registry invariant violation, or an operation against a closed
// Configuration or ProviderRegistry.
package errors

import (
	"fmt"
	"reflect"

	"github.com/hashicorp/go-multierror"
)

// MissingError is returned by Configuration.GetValue when no source in the
// chain produces a raw value for name.
type MissingError struct {
	Name string
}

func (e *MissingError) Error() string {
	return fmt.Sprintf("config: no value present for property %q", e.Name)
}

// ConversionError wraps a failure raised by a converter or by derivation
// while turning a raw string into targetType.
type ConversionError struct {
	Raw        string
	TargetType reflect.Type
	Cause      error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("config: cannot convert %q to %s: %v", e.Raw, e.TargetType, e.Cause)
}

func (e *ConversionError) Unwrap() error { return e.Cause }

// UnsupportedTypeError is raised when the registry has no registration and
// no derivation recipe for a target type.
type UnsupportedTypeError struct {
	TargetType reflect.Type
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("config: no converter and no derivation available for type %s", e.TargetType)
}

// NullInputError indicates a converter was invoked with an absent raw
// value. It signals a library bug: Registry.Convert takes its raw value as
// a plain string and Configuration only passes values a source reported
// present, so no code path in this module returns it.
type NullInputError struct{}

func (e *NullInputError) Error() string {
	return "config: converter invoked with an absent raw value"
}

// AlreadyBoundError is raised by ProviderRegistry.Register when the scope
// key already has a live binding, whichever Configuration it points at.
type AlreadyBoundError struct {
	ScopeKey any
}

func (e *AlreadyBoundError) Error() string {
	return fmt.Sprintf("config: scope key %v is already bound to a live configuration", e.ScopeKey)
}

// ClosedError is returned by any operation on a Configuration or registry
// performed after Close, other than IsClosed itself.
type ClosedError struct {
	Component string
}

func (e *ClosedError) Error() string {
	return fmt.Sprintf("config: %s is closed", e.Component)
}

// UnresolvableTargetError is raised when a Converter's target type cannot
// be resolved through the SPI path; see config.TargetTypeOf.
type UnresolvableTargetError struct {
	Converter any
}

func (e *UnresolvableTargetError) Error() string {
	return fmt.Sprintf("config: cannot resolve target type of converter %T", e.Converter)
}

// NewAggregate combines zero or more cleanup errors into one: nil errors
// are dropped, a single error is returned
// unwrapped, and two or more are combined with the first as primary and the
// rest attached as suppressed children via hashicorp/go-multierror.
func NewAggregate(errs ...error) error {
	var merr *multierror.Error
	for _, err := range errs {
		if err == nil {
			continue
		}
		merr = multierror.Append(merr, err)
	}
	if merr == nil {
		return nil
	}
	if len(merr.Errors) == 1 {
		return merr.Errors[0]
	}
	return merr
}
