/*
 * Copyright 2026 The Yorkie Authors. All rights reserved.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package prometheus provides a Prometheus metrics exporter.
package prometheus

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/yorkie-team/coedit/internal/version"
)

const (
	namespace         = "coedit"
	messageTypeLabel  = "message_type"
	resultLabel       = "result"
	operationLabel    = "operation_type"
	taskTypeLabel     = "task_type"
	docEventTypeLabel = "doc_event_type"
	methodLabel       = "method"
	codeLabel         = "code"
)

// Metrics manages the metric information that coedit is trying to measure.
type Metrics struct {
	registry *prometheus.Registry

	serverVersion *prometheus.GaugeVec

	documents     prometheus.Gauge
	collaborators prometheus.Gauge
	connections   prometheus.Gauge

	messagesTotal      *prometheus.CounterVec
	operationsTotal    *prometheus.CounterVec
	lockConflictsTotal prometheus.Counter
	evictionsTotal     prometheus.Counter
	snapshotsTotal     *prometheus.CounterVec
	docEventsTotal     *prometheus.CounterVec

	backgroundGoroutinesTotal *prometheus.GaugeVec

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration prometheus.Histogram
}

// NewMetrics creates a new instance of Metrics.
func NewMetrics() (*Metrics, error) {
	reg := prometheus.NewRegistry()

	if err := reg.Register(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{})); err != nil {
		return nil, fmt.Errorf("register process collector: %w", err)
	}
	if err := reg.Register(collectors.NewGoCollector()); err != nil {
		return nil, fmt.Errorf("register go collector: %w", err)
	}

	metrics := &Metrics{
		registry: reg,
		serverVersion: promauto.With(reg).NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "server",
			Name:      "version",
			Help:      "Which version is running. 1 for 'server_version' label with current version.",
		}, []string{"server_version"}),
		documents: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "documents",
			Name:      "live",
			Help:      "The number of documents with at least one collaborator.",
		}),
		collaborators: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "documents",
			Name:      "collaborators",
			Help:      "The number of collaborators tracked across all documents.",
		}),
		connections: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "rpc",
			Name:      "connections",
			Help:      "The number of open websocket connections.",
		}),
		messagesTotal: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "rpc",
			Name:      "messages_total",
			Help:      "The total count of inbound messages by type and result.",
		}, []string{messageTypeLabel, resultLabel}),
		operationsTotal: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "documents",
			Name:      "operations_total",
			Help:      "The total count of applied operations by type.",
		}, []string{operationLabel}),
		lockConflictsTotal: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "documents",
			Name:      "lock_conflicts_total",
			Help:      "The total count of edits rejected because another collaborator holds the lock.",
		}),
		evictionsTotal: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "documents",
			Name:      "evictions_total",
			Help:      "The total count of idle collaborators evicted by the sweep.",
		}),
		snapshotsTotal: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "documents",
			Name:      "snapshots_total",
			Help:      "The total count of snapshot loads and saves by result.",
		}, []string{"action", resultLabel}),
		docEventsTotal: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pubsub",
			Name:      "events_total",
			Help:      "The total count of document events delivered or dropped.",
		}, []string{docEventTypeLabel, resultLabel}),
		backgroundGoroutinesTotal: promauto.With(reg).NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "background",
			Name:      "goroutines_total",
			Help:      "The total number of goroutines attached by the backend.",
		}, []string{taskTypeLabel}),
		httpRequestsTotal: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "The total count of HTTP requests by method and status code.",
		}, []string{methodLabel, codeLabel}),
		httpRequestDuration: promauto.With(reg).NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "The duration of HTTP requests, excluding upgraded connections.",
		}),
	}

	metrics.serverVersion.With(prometheus.Labels{
		"server_version": version.Version,
	}).Set(1)

	return metrics, nil
}

// SetDocuments sets the number of live documents.
func (m *Metrics) SetDocuments(count int) {
	m.documents.Set(float64(count))
}

// SetCollaborators sets the number of tracked collaborators.
func (m *Metrics) SetCollaborators(count int) {
	m.collaborators.Set(float64(count))
}

// AddConnections adds the given delta to the number of open connections.
func (m *Metrics) AddConnections(delta int) {
	m.connections.Add(float64(delta))
}

// AddMessage counts an inbound message.
func (m *Metrics) AddMessage(messageType, result string) {
	m.messagesTotal.With(prometheus.Labels{
		messageTypeLabel: messageType,
		resultLabel:      result,
	}).Inc()
}

// AddOperation counts an applied operation.
func (m *Metrics) AddOperation(operationType string) {
	m.operationsTotal.With(prometheus.Labels{
		operationLabel: operationType,
	}).Inc()
}

// AddLockConflict counts an edit rejected by the lock.
func (m *Metrics) AddLockConflict() {
	m.lockConflictsTotal.Inc()
}

// AddEvictions counts evicted collaborators.
func (m *Metrics) AddEvictions(count int) {
	m.evictionsTotal.Add(float64(count))
}

// AddSnapshot counts a snapshot load or save.
func (m *Metrics) AddSnapshot(action, result string) {
	m.snapshotsTotal.With(prometheus.Labels{
		"action":    action,
		resultLabel: result,
	}).Inc()
}

// AddDocEvents counts delivered and dropped document events.
func (m *Metrics) AddDocEvents(docEventType string, sent, dropped int) {
	if sent > 0 {
		m.docEventsTotal.With(prometheus.Labels{
			docEventTypeLabel: docEventType,
			resultLabel:       "sent",
		}).Add(float64(sent))
	}
	if dropped > 0 {
		m.docEventsTotal.With(prometheus.Labels{
			docEventTypeLabel: docEventType,
			resultLabel:       "dropped",
		}).Add(float64(dropped))
	}
}

// AddBackgroundGoroutines adds the number of goroutines attached by various
// background services.
func (m *Metrics) AddBackgroundGoroutines(taskType string) {
	m.backgroundGoroutinesTotal.With(prometheus.Labels{
		taskTypeLabel: taskType,
	}).Inc()
}

// RemoveBackgroundGoroutines removes the number of goroutines attached by
// various background services.
func (m *Metrics) RemoveBackgroundGoroutines(taskType string) {
	m.backgroundGoroutinesTotal.With(prometheus.Labels{
		taskTypeLabel: taskType,
	}).Dec()
}

// ObserveHTTPRequest records a completed HTTP request.
func (m *Metrics) ObserveHTTPRequest(method string, code int, seconds float64) {
	m.httpRequestsTotal.With(prometheus.Labels{
		methodLabel: method,
		codeLabel:   fmt.Sprintf("%d", code),
	}).Inc()
	m.httpRequestDuration.Observe(seconds)
}

// Registry returns the registry of this metrics.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
