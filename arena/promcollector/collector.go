// Package promcollector exports arena metrics to Prometheus.
//
//	reg := prometheus.NewRegistry()
//	a, err := arena.New(1<<20, arena.WithMetricsCollector(promcollector.New(reg)))
package promcollector

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/hupe1980/blockarena/arena"
)

const (
	resultOK    = "ok"
	resultError = "error"
)

// Collector implements arena.MetricsCollector with Prometheus metrics.
type Collector struct {
	allocations        *prometheus.CounterVec
	allocatedBytes     prometheus.Counter
	allocationSize     prometheus.Histogram
	grows              *prometheus.CounterVec
	releases           *prometheus.CounterVec
	releasedBytes      prometheus.Counter
	consolidations     prometheus.Counter
	consolidationMerge prometheus.Counter
}

var _ arena.MetricsCollector = (*Collector)(nil)

// New creates a Collector and registers its metrics with reg. A nil reg
// creates unregistered metrics.
func New(reg prometheus.Registerer) *Collector {
	return &Collector{
		allocations: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "blockarena_allocations_total",
			Help: "Total number of allocation requests.",
		}, []string{"result"}),
		allocatedBytes: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "blockarena_allocated_bytes_total",
			Help: "Total number of bytes handed out by successful allocations.",
		}),
		allocationSize: promauto.With(reg).NewHistogram(prometheus.HistogramOpts{
			Name:    "blockarena_allocation_size_bytes",
			Help:    "Size of allocation requests.",
			Buckets: prometheus.ExponentialBuckets(16, 4, 8),
		}),
		grows: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "blockarena_grows_total",
			Help: "Total number of block resizes by outcome: in_place, relocated or error.",
		}, []string{"outcome"}),
		releases: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "blockarena_releases_total",
			Help: "Total number of release requests.",
		}, []string{"result"}),
		releasedBytes: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "blockarena_released_bytes_total",
			Help: "Total number of bytes returned by successful releases.",
		}),
		consolidations: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "blockarena_consolidations_total",
			Help: "Total number of consolidation runs.",
		}),
		consolidationMerge: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "blockarena_consolidation_merges_total",
			Help: "Total number of adjacent free blocks merged.",
		}),
	}
}

// RecordAllocate implements arena.MetricsCollector.
func (c *Collector) RecordAllocate(size int, err error) {
	if err != nil {
		c.allocations.WithLabelValues(resultError).Inc()
		return
	}
	c.allocations.WithLabelValues(resultOK).Inc()
	c.allocatedBytes.Add(float64(size))
	c.allocationSize.Observe(float64(size))
}

// RecordGrow implements arena.MetricsCollector.
func (c *Collector) RecordGrow(_, _ int, inPlace bool, err error) {
	switch {
	case err != nil:
		c.grows.WithLabelValues("error").Inc()
	case inPlace:
		c.grows.WithLabelValues("in_place").Inc()
	default:
		c.grows.WithLabelValues("relocated").Inc()
	}
}

// RecordRelease implements arena.MetricsCollector.
func (c *Collector) RecordRelease(size int, err error) {
	if err != nil {
		c.releases.WithLabelValues(resultError).Inc()
		return
	}
	c.releases.WithLabelValues(resultOK).Inc()
	c.releasedBytes.Add(float64(size))
}

// RecordConsolidate implements arena.MetricsCollector.
func (c *Collector) RecordConsolidate(merges, _ int) {
	c.consolidations.Inc()
	c.consolidationMerge.Add(float64(merges))
}
