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

// Package registry holds per-scope Configuration bindings so that unrelated
// callers sharing a process (request handlers, tenants, reconciler scopes)
// each see the Configuration built for their own scope key instead of a
// single process-wide instance.
package registry

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"
	"weak"

	"golang.org/x/time/rate"

	"github.com/kube-zen/zen-config/pkg/config"
	cerrors "github.com/kube-zen/zen-config/pkg/errors"
	"github.com/kube-zen/zen-config/pkg/logging"
	"github.com/kube-zen/zen-config/pkg/telemetry"
)

// watchInterval is the heartbeat period of the background watcher. It
// exists only to make the registry's liveness observable in logs; actual
// scope release is event-driven, not polled.
const watchInterval = 30 * time.Second

// deathEventRate and deathEventBurst bound how fast the watcher drains
// scope-death notifications, so a pathological burst of collected scope
// keys cannot starve the heartbeat or the mutex it shares with Register
// and Current.
const (
	deathEventRate  = 50 // per second
	deathEventBurst = 100
)

// ambientScope is the binding key CurrentAmbient uses for the process-wide
// default Configuration.
const ambientScope = "ambient"

// ProviderRegistry maps scope keys to the Configuration built for that
// scope, enforcing at most one live binding per key. Keys registered
// through RegisterWeak are released automatically once the key object
// they were derived from is garbage collected; keys registered through
// Register are released only when the caller calls OnScopeEnd or Release
// explicitly, since a plain Go map key cannot be weakly held without the
// weak.Pointer indirection RegisterWeak uses.
type ProviderRegistry struct {
	mu       sync.Mutex
	bindings map[any]*config.Configuration
	closed   bool

	discoverer config.Discoverer
	metrics    *telemetry.Metrics

	events chan any
	stop   chan struct{}
	wg     sync.WaitGroup
}

// New starts a ProviderRegistry and its background watcher goroutine.
// discoverer may be nil; CurrentAmbient then builds a Configuration from
// default sources only. metrics may be nil.
func New(discoverer config.Discoverer, metrics *telemetry.Metrics) *ProviderRegistry {
	pr := &ProviderRegistry{
		bindings:   make(map[any]*config.Configuration),
		discoverer: discoverer,
		metrics:    metrics,
		events:     make(chan any, 64),
		stop:       make(chan struct{}),
	}
	pr.wg.Add(1)
	go pr.watch()
	return pr
}

func (pr *ProviderRegistry) watch() {
	defer pr.wg.Done()
	ticker := time.NewTicker(watchInterval)
	defer ticker.Stop()
	limiter := rate.NewLimiter(rate.Limit(deathEventRate), deathEventBurst)
	for {
		select {
		case <-pr.stop:
			return
		case key := <-pr.events:
			if !limiter.Allow() {
				logging.Warn("scope-death events arriving faster than the watcher drains them", logging.Fields{
					Component: "registry", Operation: "watch",
				})
				select {
				case <-time.After(time.Second / deathEventRate):
				case <-pr.stop:
					return
				}
			}
			if err := pr.releaseKey(key, "auto"); err != nil {
				logging.Warn("closing configuration released on scope death", logging.Fields{
					Component: "registry", Operation: "watch", Error: err,
				})
			}
		case <-ticker.C:
			pr.mu.Lock()
			n := len(pr.bindings)
			pr.mu.Unlock()
			logging.Debug("provider registry heartbeat", logging.Fields{
				Component: "registry", Operation: "watch", Count: n,
			})
		}
	}
}

// Register binds cfg to scopeKey. It returns AlreadyBoundError if scopeKey
// already has a live binding. The binding is released only by an explicit
// Release or OnScopeEnd call; scopeKey is held strongly for the lifetime
// of the binding. Use RegisterWeak for pointer-shaped keys that should be
// released automatically when the key object becomes unreachable.
func (pr *ProviderRegistry) Register(cfg *config.Configuration, scopeKey any) error {
	if cfg == nil {
		return fmt.Errorf("registry: cannot register a nil Configuration")
	}
	pr.mu.Lock()
	defer pr.mu.Unlock()
	if pr.closed {
		return &cerrors.ClosedError{Component: "ProviderRegistry"}
	}
	if _, ok := pr.bindings[scopeKey]; ok {
		return &cerrors.AlreadyBoundError{ScopeKey: scopeKey}
	}
	pr.bindings[scopeKey] = cfg
	pr.metrics.ScopeBound()
	logging.Debug("scope bound", logging.Fields{Component: "registry", Operation: "register"})
	return nil
}

// RegisterWeak binds cfg to the scope identified by key, a pointer whose
// liveness should govern the binding's lifetime. The binding is keyed by a
// weak.Pointer[K] rather than by key itself, so the registry does not keep
// key reachable; once key is collected, runtime.AddCleanup notifies the
// watcher, which releases the binding the same way OnScopeEnd would.
func RegisterWeak[K any](pr *ProviderRegistry, cfg *config.Configuration, key *K) error {
	wp := weak.Make(key)
	if err := pr.Register(cfg, wp); err != nil {
		return err
	}
	runtime.AddCleanup(key, pr.enqueueDeath, any(wp))
	return nil
}

func (pr *ProviderRegistry) enqueueDeath(key any) {
	select {
	case pr.events <- key:
	case <-pr.stop:
	}
}

// Current returns the Configuration bound to scopeKey, or MissingError if
// none is bound.
func (pr *ProviderRegistry) Current(scopeKey any) (*config.Configuration, error) {
	pr.mu.Lock()
	defer pr.mu.Unlock()
	if pr.closed {
		return nil, &cerrors.ClosedError{Component: "ProviderRegistry"}
	}
	cfg, ok := pr.bindings[scopeKey]
	if !ok {
		return nil, &cerrors.MissingError{Name: fmt.Sprintf("%v", scopeKey)}
	}
	return cfg, nil
}

// CurrentWeak looks up a binding registered through RegisterWeak by
// reconstructing the same weak.Pointer[K] identity from key.
func CurrentWeak[K any](pr *ProviderRegistry, key *K) (*config.Configuration, error) {
	return pr.Current(weak.Make(key))
}

// CurrentAmbient returns the process-wide default Configuration, building
// and binding it on first use from default sources plus, if a Discoverer
// was configured, every source, source provider, and converter it finds
// for a nil scope key.
func (pr *ProviderRegistry) CurrentAmbient() (*config.Configuration, error) {
	if cfg, err := pr.Current(ambientScope); err == nil {
		return cfg, nil
	}

	b := config.NewBuilder(pr.discoverer, pr.metrics).AddDefaultSources()
	if pr.discoverer != nil {
		b = b.AddDiscoveredSources().AddDiscoveredConverters()
	}
	cfg, err := b.Build()
	if err != nil {
		return nil, err
	}

	if err := pr.Register(cfg, ambientScope); err != nil {
		if _, already := err.(*cerrors.AlreadyBoundError); already {
			_ = cfg.Close()
			return pr.Current(ambientScope)
		}
		return nil, err
	}
	return cfg, nil
}

// Release removes every binding currently pointing at cfg and, if cfg
// exposes a closer, closes it. It is a no-op if cfg has no live binding.
func (pr *ProviderRegistry) Release(cfg *config.Configuration) error {
	removed := pr.unbind(cfg)
	if removed == 0 {
		return nil
	}
	for i := 0; i < removed; i++ {
		pr.metrics.ScopeReleased("explicit")
	}
	return cfg.Close()
}

// OnScopeEnd releases the binding for scopeKey exactly as Release would,
// closing the bound Configuration and any sibling binding that points at
// the same one. Hosts that register scope keys by value through Register,
// rather than by pointer through RegisterWeak, must call this themselves
// when the scope ends; there is no portable way to observe the death of a
// non-pointer value.
func (pr *ProviderRegistry) OnScopeEnd(scopeKey any) error {
	return pr.releaseKey(scopeKey, "auto")
}

// releaseKey releases the binding for key, if any, as if by Release: every
// binding pointing at the same Configuration is removed and the
// Configuration is closed.
func (pr *ProviderRegistry) releaseKey(key any, reason string) error {
	pr.mu.Lock()
	cfg, ok := pr.bindings[key]
	pr.mu.Unlock()
	if !ok {
		return nil
	}

	removed := pr.unbind(cfg)
	if removed == 0 {
		return nil
	}
	for i := 0; i < removed; i++ {
		pr.metrics.ScopeReleased(reason)
	}
	logging.Debug("scope released", logging.Fields{
		Component: "registry", Operation: "release", Additional: map[string]interface{}{"reason": reason},
	})
	return cfg.Close()
}

// unbind removes every binding pointing at cfg and reports how many were
// removed.
func (pr *ProviderRegistry) unbind(cfg *config.Configuration) int {
	pr.mu.Lock()
	defer pr.mu.Unlock()
	removed := 0
	for k, v := range pr.bindings {
		if v == cfg {
			delete(pr.bindings, k)
			removed++
		}
	}
	return removed
}

// Close stops the watcher and closes every bound Configuration, aggregating
// their errors. It is idempotent.
func (pr *ProviderRegistry) Close() error {
	pr.mu.Lock()
	if pr.closed {
		pr.mu.Unlock()
		return nil
	}
	pr.closed = true
	bindings := pr.bindings
	pr.bindings = make(map[any]*config.Configuration)
	pr.mu.Unlock()

	close(pr.stop)
	pr.wg.Wait()

	var errs []error
	for _, cfg := range bindings {
		pr.metrics.ScopeReleased("close")
		errs = append(errs, cfg.Close())
	}
	return cerrors.NewAggregate(errs...)
}

var defaultRegistry atomic.Pointer[ProviderRegistry]

// Install designates pr as the registry ConfigurationBuilder.ForScope
// binds into. A process normally calls this once at startup.
func Install(pr *ProviderRegistry) { defaultRegistry.Store(pr) }

func init() {
	config.RegisterBinder(func(cfg *config.Configuration, scopeKey any) error {
		pr := defaultRegistry.Load()
		if pr == nil {
			return fmt.Errorf("registry: ForScope used but no ProviderRegistry was installed; call registry.Install first")
		}
		return pr.Register(cfg, scopeKey)
	})
}
