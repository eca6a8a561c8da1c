// Package metrics holds the Prometheus collectors for attendance sync and zone statistics.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const namespace = "competition"

var (
	registry *prometheus.Registry
	once     sync.Once
)

var (
	SyncRunsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "attendance_sync_runs_total",
		Help:      "Attendance sync invocations by outcome",
	}, []string{"outcome"})

	AttendanceRecordsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "attendance_records_total",
		Help:      "Attendance rows written by level and operation (insert/update)",
	}, []string{"level", "op"})

	SyncEntityErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "attendance_sync_entity_errors_total",
		Help:      "Per-entity failures recovered during attendance sync",
	}, []string{"level"})

	SyncDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "attendance_sync_duration_seconds",
		Help:      "Wall time of attendance sync invocations",
		Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
	})

	ZoneStatsDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "zone_statistics_duration_seconds",
		Help:      "Time spent computing zone statistics (cache misses only)",
		Buckets:   prometheus.DefBuckets,
	})

	ZoneStatsCacheHitsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "zone_statistics_cache_hits_total",
		Help:      "Zone statistics requests served from cache",
	})
)

// Registry returns the process registry with every collector registered.
func Registry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			SyncRunsTotal,
			AttendanceRecordsTotal,
			SyncEntityErrorsTotal,
			SyncDuration,
			ZoneStatsDuration,
			ZoneStatsCacheHitsTotal,
		)
	})
	return registry
}
