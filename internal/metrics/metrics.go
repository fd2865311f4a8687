// Haven - Handcrafted Artisan Marketplace
// Copyright 2026 Caleb Morton (cmorton)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cmorton/haven

// Package metrics provides Prometheus instrumentation for Haven:
// HTTP endpoint latency and throughput, authentication outcomes, and
// document store operation counts.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API endpoint metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "haven_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "haven_api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "haven_api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	// Authentication metrics
	AuthAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "haven_auth_attempts_total",
			Help: "Total number of authentication attempts by outcome",
		},
		[]string{"operation", "outcome"}, // operation: login, signup, verify
	)

	// Document store metrics
	StoreOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "haven_store_operations_total",
			Help: "Total number of document store operations",
		},
		[]string{"operation", "collection"},
	)

	StoreOperationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "haven_store_operation_errors_total",
			Help: "Total number of document store operation failures",
		},
		[]string{"operation", "collection"},
	)
)

// RecordAPIRequest records a completed HTTP request.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest adjusts the in-flight request gauge.
func TrackActiveRequest(start bool) {
	if start {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordAuthAttempt records an authentication attempt and its outcome
// (success, failure, invalid, duplicate, missing).
func RecordAuthAttempt(operation, outcome string) {
	AuthAttemptsTotal.WithLabelValues(operation, outcome).Inc()
}

// RecordStoreOperation records a document store operation and its outcome.
func RecordStoreOperation(operation, collection string, err error) {
	StoreOperationsTotal.WithLabelValues(operation, collection).Inc()
	if err != nil {
		StoreOperationErrors.WithLabelValues(operation, collection).Inc()
	}
}
