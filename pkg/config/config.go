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

// Package config holds the Configuration and ConfigurationBuilder types:
// the immutable, sorted source chain and converter registry that answer
// typed property lookups, and the builder that assembles one.
package config

import (
	"reflect"
	"sync/atomic"

	"github.com/kube-zen/zen-config/pkg/confsource"
	"github.com/kube-zen/zen-config/pkg/convert"
	cerrors "github.com/kube-zen/zen-config/pkg/errors"
	"github.com/kube-zen/zen-config/pkg/logging"
	"github.com/kube-zen/zen-config/pkg/telemetry"
)

// Configuration is an immutable, priority-sorted view over a set of
// Sources, resolving names to typed values through a Registry. Once
// built, its source list never changes; every operation after Close
// fails with ClosedError except IsClosed itself.
type Configuration struct {
	sources  []confsource.Source
	registry *convert.Registry
	metrics  *telemetry.Metrics
	closed   atomic.Bool
}

// GetValue resolves name through the source chain and converts the first
// present raw value to T, failing with MissingError if no source has it.
func GetValue[T any](c *Configuration, name string) (T, error) {
	var zero T
	raw, ok, err := c.lookup(name)
	if err != nil {
		return zero, err
	}
	if !ok {
		return zero, &cerrors.MissingError{Name: name}
	}
	return convert.GetValue[T](c.registry, raw)
}

// GetOptionalValue is GetValue's non-failing counterpart: it returns a nil
// pointer, not an error, when no source provides name.
func GetOptionalValue[T any](c *Configuration, name string) (*T, error) {
	raw, ok, err := c.lookup(name)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	v, err := convert.GetValue[T](c.registry, raw)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// lookup walks the sorted source chain and returns the first present raw
// value for name, or ok == false if none exists. An empty string counts
// as present.
func (c *Configuration) lookup(name string) (raw string, ok bool, err error) {
	if c.closed.Load() {
		return "", false, &cerrors.ClosedError{Component: "Configuration"}
	}
	for _, s := range c.sources {
		if v, present := s.Value(name); present {
			c.metrics.LookupHit()
			logging.Debug("resolved property", logging.Fields{
				Component: "config", Operation: "lookup", SourceName: s.Name(),
			})
			return v, true, nil
		}
	}
	c.metrics.LookupMiss()
	return "", false, nil
}

// GetPropertyNames returns the snapshot union of every source's property
// names at call time.
func (c *Configuration) GetPropertyNames() (map[string]struct{}, error) {
	if c.closed.Load() {
		return nil, &cerrors.ClosedError{Component: "Configuration"}
	}
	return confsource.PropertyNames(c.sources), nil
}

// GetSources returns an immutable snapshot of the sorted source chain.
func (c *Configuration) GetSources() ([]confsource.Source, error) {
	if c.closed.Load() {
		return nil, &cerrors.ClosedError{Component: "Configuration"}
	}
	out := make([]confsource.Source, len(c.sources))
	copy(out, c.sources)
	return out, nil
}

// IsClosed reports whether Close has been called.
func (c *Configuration) IsClosed() bool { return c.closed.Load() }

// Close closes the converter registry and every source that implements
// confsource.Closer, aggregating failures. Close is idempotent.
func (c *Configuration) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}
	var errs []error
	if err := c.registry.Close(); err != nil {
		errs = append(errs, err)
	}
	for _, s := range c.sources {
		if closer, ok := s.(confsource.Closer); ok {
			if err := closer.Close(); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return cerrors.NewAggregate(errs...)
}

// TargetTypeOf reports the reflect.Type a converter declares through the
// convert.Converter SPI, the inference path for discovered converters
// that only implement the untyped interface.
func TargetTypeOf(c convert.Converter) (reflect.Type, error) {
	t := c.TargetType()
	if t == nil {
		return nil, &cerrors.UnresolvableTargetError{Converter: c}
	}
	return t, nil
}
