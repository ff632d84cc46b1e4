package seq

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics collects Prometheus metrics for one or more Multiplexers.
// All methods are safe on a nil receiver, so instrumentation stays optional.
type Metrics struct {
	itemsFetched prometheus.Counter
	cacheHits    prometheus.Counter
	itemsEvicted prometheus.Counter
	buffered     prometheus.Gauge
	attached     prometheus.Gauge
}

// NewMetrics creates a metrics collector registered on reg. Pass
// prometheus.DefaultRegisterer for the process-wide registry.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		itemsFetched: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "seq",
			Name:      "items_fetched_total",
			Help:      "Items pulled from the underlying source",
		}),
		cacheHits: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "seq",
			Name:      "cache_hits_total",
			Help:      "Consumer advances served from the shared window",
		}),
		itemsEvicted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "seq",
			Name:      "items_evicted_total",
			Help:      "Window slots reclaimed by the trim pass",
		}),
		buffered: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "seq",
			Name:      "buffered_items",
			Help:      "Current shared window occupancy",
		}),
		attached: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "seq",
			Name:      "attached_consumers",
			Help:      "Consumer handles attached and not yet closed",
		}),
	}
}

func (m *Metrics) observeFetch(occupancy int) {
	if m == nil {
		return
	}
	m.itemsFetched.Inc()
	m.buffered.Set(float64(occupancy))
}

func (m *Metrics) observeHit() {
	if m == nil {
		return
	}
	m.cacheHits.Inc()
}

func (m *Metrics) observeEvict(n, occupancy int) {
	if m == nil {
		return
	}
	m.itemsEvicted.Add(float64(n))
	m.buffered.Set(float64(occupancy))
}

func (m *Metrics) setAttached(n int) {
	if m == nil {
		return
	}
	m.attached.Set(float64(n))
}
