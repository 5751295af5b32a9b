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
	"reflect"
	"sync"

	cerrors "github.com/kube-zen/zen-config/pkg/errors"
	"github.com/kube-zen/zen-config/pkg/telemetry"
)

// Registry is an indexed store of converters keyed by target type, with
// priority-based arbitration among registrations and lazy derivation for
// types nobody registered explicitly. A Registry is safe for concurrent
// use; callers never observe a partially updated registration.
type Registry struct {
	mu       sync.Mutex
	byType   map[reflect.Type]*registration
	sequence uint64
	metrics  *telemetry.Metrics
	closed   bool
}

// NewRegistry builds an empty Registry. metrics may be nil.
func NewRegistry(metrics *telemetry.Metrics) *Registry {
	return &Registry{
		byType:  make(map[reflect.Type]*registration),
		metrics: metrics,
	}
}

// RegisterFunc installs a Converter for targetType built from fn, at the
// given priority. If a registration already exists for targetType with
// equal or higher priority, the new one is discarded.
func (r *Registry) RegisterFunc(targetType reflect.Type, priority int, fn func(string) (any, error)) {
	r.RegisterConverter(priority, &funcConverter{targetType: targetType, fn: fn})
}

// RegisterConverter installs c, keyed by c.TargetType(), at the given
// priority.
func (r *Registry) RegisterConverter(priority int, c Converter) {
	r.mu.Lock()
	defer r.mu.Unlock()

	targetType := c.TargetType()
	reg := &registration{converter: c, priority: priority, sequence: r.sequence}
	r.sequence++
	if reg.outranks(r.byType[targetType]) {
		r.byType[targetType] = reg
	}
}

// Convert turns raw into a value of targetType: an explicit registration
// wins if one exists; otherwise the registry attempts to derive one and
// memoizes the result at minPriority so any later explicit registration
// can still override it.
func (r *Registry) Convert(raw string, targetType reflect.Type) (any, error) {
	if targetType == nil {
		return nil, &cerrors.UnsupportedTypeError{TargetType: nil}
	}

	r.mu.Lock()
	reg, ok := r.byType[targetType]
	closed := r.closed
	r.mu.Unlock()
	if closed {
		return nil, &cerrors.ClosedError{Component: "convert.Registry"}
	}
	if ok {
		v, err := reg.converter.Convert(raw)
		if err != nil {
			r.metrics.ConversionError()
			return nil, err
		}
		r.metrics.ConversionOK()
		return v, nil
	}

	converter, err := derive(r, targetType)
	if err != nil {
		r.metrics.DerivationError()
		return nil, &cerrors.UnsupportedTypeError{TargetType: targetType}
	}
	r.metrics.DerivationOK()

	r.mu.Lock()
	derivedReg := &registration{converter: converter, priority: minPriority, sequence: r.sequence, derived: true}
	r.sequence++
	if existing, ok := r.byType[targetType]; !ok || existing.derived {
		// No explicit registration raced in ahead of us; install (or
		// reinstall, idempotently) the memoized derivation.
		r.byType[targetType] = derivedReg
	} else {
		derivedReg = existing
	}
	r.mu.Unlock()

	v, err := derivedReg.converter.Convert(raw)
	if err != nil {
		r.metrics.ConversionError()
		return nil, err
	}
	r.metrics.ConversionOK()
	return v, nil
}

// Close closes every registered converter that implements Closer,
// aggregating failures. Close is idempotent.
func (r *Registry) Close() error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true
	regs := make([]*registration, 0, len(r.byType))
	for _, reg := range r.byType {
		regs = append(regs, reg)
	}
	r.mu.Unlock()

	var errs []error
	for _, reg := range regs {
		if closer, ok := reg.converter.(Closer); ok {
			if err := closer.Close(); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return cerrors.NewAggregate(errs...)
}
