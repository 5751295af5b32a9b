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

// Package telemetry holds the Prometheus metrics emitted by the config
// subsystems. A *Metrics value is optional everywhere it is accepted: a
// nil receiver is safe to call into, so hosts that don't want metrics
// never have to construct one.
package telemetry

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds every Prometheus collector the config subsystems touch.
type Metrics struct {
	LookupsTotal        *prometheus.CounterVec
	ConversionsTotal    *prometheus.CounterVec
	DerivationsTotal    *prometheus.CounterVec
	ScopeBindingsActive prometheus.Gauge
	ScopeReleasesTotal  *prometheus.CounterVec
	SourcesActive       prometheus.Gauge
}

// NewMetrics constructs and registers every collector against reg. Passing
// a fresh prometheus.NewRegistry() is the normal case in tests; passing
// prometheus.DefaultRegisterer wires the library into a process-wide
// /metrics endpoint. cmd/configctl passes no Metrics at all.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		LookupsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "zen_config_lookups_total",
			Help: "Total number of Configuration.GetValue/GetOptionalValue calls, by outcome (hit, missing).",
		}, []string{"outcome"}),
		ConversionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "zen_config_conversions_total",
			Help: "Total number of raw-to-typed conversions attempted, by outcome (ok, error).",
		}, []string{"outcome"}),
		DerivationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "zen_config_derivations_total",
			Help: "Total number of converter derivations attempted, by outcome (ok, error).",
		}, []string{"outcome"}),
		ScopeBindingsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "zen_config_provider_scope_bindings_active",
			Help: "Number of scope keys currently bound to a live Configuration in the ProviderRegistry.",
		}),
		ScopeReleasesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "zen_config_provider_scope_releases_total",
			Help: "Total number of scope bindings released, by reason (explicit, auto, close).",
		}, []string{"reason"}),
		SourcesActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "zen_config_sources_active",
			Help: "Number of sources held by the most recently built Configuration.",
		}),
	}
	if reg != nil {
		reg.MustRegister(
			m.LookupsTotal,
			m.ConversionsTotal,
			m.DerivationsTotal,
			m.ScopeBindingsActive,
			m.ScopeReleasesTotal,
			m.SourcesActive,
		)
	}
	return m
}

func (m *Metrics) lookup(outcome string) {
	if m == nil {
		return
	}
	m.LookupsTotal.WithLabelValues(outcome).Inc()
}

// LookupHit records a successful GetValue/GetOptionalValue call.
func (m *Metrics) LookupHit() { m.lookup("hit") }

// LookupMiss records a GetValue/GetOptionalValue call that found no source.
func (m *Metrics) LookupMiss() { m.lookup("missing") }

func (m *Metrics) conversion(outcome string) {
	if m == nil {
		return
	}
	m.ConversionsTotal.WithLabelValues(outcome).Inc()
}

// ConversionOK records a successful conversion.
func (m *Metrics) ConversionOK() { m.conversion("ok") }

// ConversionError records a failed conversion.
func (m *Metrics) ConversionError() { m.conversion("error") }

func (m *Metrics) derivation(outcome string) {
	if m == nil {
		return
	}
	m.DerivationsTotal.WithLabelValues(outcome).Inc()
}

// DerivationOK records a successful converter derivation.
func (m *Metrics) DerivationOK() { m.derivation("ok") }

// DerivationError records a failed converter derivation.
func (m *Metrics) DerivationError() { m.derivation("error") }

// ScopeBound records a new live scope binding.
func (m *Metrics) ScopeBound() {
	if m == nil {
		return
	}
	m.ScopeBindingsActive.Inc()
}

// ScopeReleased records a scope binding going away for the given reason
// ("explicit", "auto", or "close").
func (m *Metrics) ScopeReleased(reason string) {
	if m == nil {
		return
	}
	m.ScopeBindingsActive.Dec()
	m.ScopeReleasesTotal.WithLabelValues(reason).Inc()
}

// SetSourcesActive reports the size of the most recently built source chain.
func (m *Metrics) SetSourcesActive(n int) {
	if m == nil {
		return
	}
	m.SourcesActive.Set(float64(n))
}
