// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package metrics exposes Prometheus instrumentation for the HTTP layer and
// the account lifecycle.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome label values.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Auth event label values.
const (
	EventRegister       = "register"
	EventConfirm        = "confirm"
	EventResend         = "resend_confirmation"
	EventLogin          = "login"
	EventLogout         = "logout"
	EventChangePassword = "change_password"
	EventResetRequest   = "reset_request"
	EventResetPassword  = "reset_password"
	EventExternalLogin  = "external_login"
)

// Metrics holds the application collectors and the registry they are
// registered with. A nil *Metrics records nothing.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec
	AuthEvents   *prometheus.CounterVec
	EmailsSent   *prometheus.CounterVec
}

// New creates a private registry with the Go and process collectors and
// the application metrics.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	m := &Metrics{
		registry: registry,
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "petlife_http_requests_total",
				Help: "Total number of HTTP requests by method, route and status",
			},
			[]string{"method", "route", "status"},
		),
		HTTPDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "petlife_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		AuthEvents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "petlife_auth_events_total",
				Help: "Total number of account lifecycle operations by event and outcome",
			},
			[]string{"event", "outcome"},
		),
		EmailsSent: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "petlife_emails_total",
				Help: "Total number of transactional emails by kind and outcome",
			},
			[]string{"kind", "outcome"},
		),
	}

	registry.MustRegister(m.HTTPRequests, m.HTTPDuration, m.AuthEvents, m.EmailsSent)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveHTTP records one served request.
func (m *Metrics) ObserveHTTP(method, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordAuthEvent counts an account lifecycle operation.
func (m *Metrics) RecordAuthEvent(event string, err error) {
	if m == nil {
		return
	}
	m.AuthEvents.WithLabelValues(event, outcome(err)).Inc()
}

// RecordEmail counts a dispatched email.
func (m *Metrics) RecordEmail(kind string, err error) {
	if m == nil {
		return
	}
	m.EmailsSent.WithLabelValues(kind, outcome(err)).Inc()
}

func outcome(err error) string {
	if err != nil {
		return OutcomeFailure
	}
	return OutcomeSuccess
}
