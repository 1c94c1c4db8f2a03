// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package metrics wires the core query and build operations into
// Prometheus instrumentation and a high-dynamic-range latency recorder,
// for callers that embed a BWT in a long-running service.
package metrics

import (
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
	"github.com/prometheus/client_golang/prometheus"
)

// Registry bundles the counters, gauges, and latency histograms exported
// by a container in active use. The zero value is not usable; construct
// with NewRegistry.
type Registry struct {
	RecordsBuilt   prometheus.Counter
	BytesWritten   prometheus.Counter
	QueriesTotal   *prometheus.CounterVec
	RecordCount    prometheus.Gauge
	ByteSize       prometheus.Gauge
	queryLatencies map[string]*hdrhistogram.Histogram
}

// NewRegistry creates a Registry. namespace and subsystem follow
// Prometheus naming convention and are typically the embedding
// application's own identifiers, e.g. ("myapp", "gbwt").
func NewRegistry(namespace, subsystem string) *Registry {
	r := &Registry{
		RecordsBuilt: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: subsystem,
			Name: "records_built_total", Help: "Number of records appended to a builder.",
		}),
		BytesWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: subsystem,
			Name: "bytes_written_total", Help: "Number of record bytes written by a builder.",
		}),
		QueriesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: subsystem,
			Name: "queries_total", Help: "Number of structural queries served, by operation.",
		}, []string{"op"}),
		RecordCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Subsystem: subsystem,
			Name: "record_count", Help: "Number of records in the current container.",
		}),
		ByteSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Subsystem: subsystem,
			Name: "byte_size", Help: "Size in bytes of the current container's record buffer.",
		}),
		queryLatencies: make(map[string]*hdrhistogram.Histogram),
	}
	for _, op := range []string{"lf", "follow", "bd_follow", "predecessor_at"} {
		r.queryLatencies[op] = hdrhistogram.New(1, 10_000_000_000, 3)
	}
	return r
}

// Collectors returns the Prometheus collectors owned by r, for
// registration with a prometheus.Registerer.
func (r *Registry) Collectors() []prometheus.Collector {
	return []prometheus.Collector{r.RecordsBuilt, r.BytesWritten, r.QueriesTotal, r.RecordCount, r.ByteSize}
}

// Observe records a query of the given operation, incrementing its counter
// and recording elapsed in its latency histogram. op must be one of "lf",
// "follow", "bd_follow", "predecessor_at"; unknown ops are counted but not
// latency-tracked.
func (r *Registry) Observe(op string, elapsed time.Duration) {
	r.QueriesTotal.WithLabelValues(op).Inc()
	if h, ok := r.queryLatencies[op]; ok {
		_ = h.RecordValue(elapsed.Nanoseconds())
	}
}

// LatencyPercentile returns the given percentile (0-100) of recorded
// latency in nanoseconds for op, or 0 if no samples have been recorded.
func (r *Registry) LatencyPercentile(op string, percentile float64) int64 {
	h, ok := r.queryLatencies[op]
	if !ok {
		return 0
	}
	return h.ValueAtQuantile(percentile)
}
