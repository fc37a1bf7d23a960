/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package metrics counts association resolution activity with Prometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels for Collector.Resolved.
const (
	OutcomeCached   = "cached"
	OutcomeAssigned = "assigned"
	OutcomeSkipped  = "skipped"
)

// Collector owns a Prometheus registry with the association counters.
// A nil *Collector is valid and records nothing.
type Collector struct {
	registry *prometheus.Registry

	lookupsTotal  *prometheus.CounterVec
	lookupErrors  *prometheus.CounterVec
	resolvedTotal *prometheus.CounterVec
}

// Config configures a Collector.
type Config struct {
	// Prefix is added to all metric names (default: "attribution").
	Prefix string

	// Labels are added to all metrics as constant labels.
	Labels map[string]string
}

// New creates a Collector with its own registry.
func New(cfg Config) *Collector {
	if cfg.Prefix == "" {
		cfg.Prefix = "attribution"
	}

	labelNames := []string{"class", "association", "kind"}

	c := &Collector{registry: prometheus.NewRegistry()}

	c.lookupsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name:        cfg.Prefix + "_lookups_total",
			Help:        "Association lookups issued to Finder/Lister collaborators",
			ConstLabels: cfg.Labels,
		},
		labelNames,
	)

	c.lookupErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name:        cfg.Prefix + "_lookup_errors_total",
			Help:        "Association lookups that returned an error",
			ConstLabels: cfg.Labels,
		},
		labelNames,
	)

	c.resolvedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name:        cfg.Prefix + "_resolutions_total",
			Help:        "Association reads answered without a lookup, by outcome",
			ConstLabels: cfg.Labels,
		},
		append(labelNames, "outcome"),
	)

	c.registry.MustRegister(c.lookupsTotal, c.lookupErrors, c.resolvedTotal)
	return c
}

// Registry returns the registry holding the collector's metrics.
func (c *Collector) Registry() *prometheus.Registry {
	if c == nil {
		return nil
	}
	return c.registry
}

// Lookup records a collaborator call.
func (c *Collector) Lookup(class, association, kind string) {
	if c == nil {
		return
	}
	c.lookupsTotal.WithLabelValues(class, association, kind).Inc()
}

// LookupError records a failed collaborator call.
func (c *Collector) LookupError(class, association, kind string) {
	if c == nil {
		return
	}
	c.lookupErrors.WithLabelValues(class, association, kind).Inc()
}

// Resolved records a read answered from the record itself.
func (c *Collector) Resolved(class, association, kind, outcome string) {
	if c == nil {
		return
	}
	c.resolvedTotal.WithLabelValues(class, association, kind, outcome).Inc()
}
