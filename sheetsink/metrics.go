// Copyright 2025 ShopTrack Authors
// SPDX-License-Identifier: Apache-2.0

package sheetsink

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/Pornjaa/stock-jare/shopsync"
)

// Metrics tracks sink activity for the /metrics endpoint.
type Metrics struct {
	rowsAppended     *prometheus.CounterVec
	duplicateRows    *prometheus.CounterVec
	snapshotRequests prometheus.Counter
}

// NewMetrics registers the sink collectors on reg. Pass a fresh
// prometheus.NewRegistry() in tests.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		rowsAppended: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sheetsink_rows_appended_total",
			Help: "Rows appended to the sink, by record kind.",
		}, []string{"kind"}),
		duplicateRows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sheetsink_duplicate_rows_total",
			Help: "Pushed rows skipped because their id already exists, by record kind.",
		}, []string{"kind"}),
		snapshotRequests: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sheetsink_snapshot_requests_total",
			Help: "Snapshot (GET) requests served.",
		}),
	}
	reg.MustRegister(m.rowsAppended, m.duplicateRows, m.snapshotRequests)
	return m
}

// ObserveAppend records the outcome of one append call.
func (m *Metrics) ObserveAppend(payload shopsync.Payload, counts AppendCounts) {
	m.rowsAppended.WithLabelValues("sales").Add(float64(counts.Sales))
	m.rowsAppended.WithLabelValues("ice_debt").Add(float64(counts.IceDebt))
	m.rowsAppended.WithLabelValues("customer_debt").Add(float64(counts.CustomerDebt))

	m.duplicateRows.WithLabelValues("sales").Add(float64(len(payload.Sales) - counts.Sales))
	m.duplicateRows.WithLabelValues("ice_debt").Add(float64(len(payload.IceDebt) - counts.IceDebt))
	m.duplicateRows.WithLabelValues("customer_debt").Add(float64(len(payload.CustomerDebt) - counts.CustomerDebt))
}

// ObserveSnapshot records one served snapshot request.
func (m *Metrics) ObserveSnapshot() { m.snapshotRequests.Inc() }
