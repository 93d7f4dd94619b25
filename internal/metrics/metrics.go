package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector bundles the process metrics on a private registry so tests
// can create collectors without fighting over the global one.
type Collector struct {
	reg *prometheus.Registry

	FeedRefreshes   prometheus.Counter
	FeedRefreshErrs prometheus.Counter
	VehiclesTracked prometheus.Gauge
	RefreshDuration prometheus.Histogram
}

// NewCollector creates and registers the busboard metrics.
func NewCollector() *Collector {
	reg := prometheus.NewRegistry()

	c := &Collector{
		reg: reg,
		FeedRefreshes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "busboard_feed_refreshes_total",
			Help: "Total successful live feed refreshes.",
		}),
		FeedRefreshErrs: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "busboard_feed_refresh_errors_total",
			Help: "Total feed refreshes that failed to fetch or decode.",
		}),
		VehiclesTracked: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "busboard_vehicles_tracked",
			Help: "Vehicles present in the current snapshot.",
		}),
		RefreshDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "busboard_feed_refresh_duration_seconds",
			Help:    "Duration of a feed fetch, decode and publish cycle.",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 12),
		}),
	}

	reg.MustRegister(
		c.FeedRefreshes, c.FeedRefreshErrs,
		c.VehiclesTracked, c.RefreshDuration,
	)

	return c
}

// Handler returns the /metrics handler for this collector's registry.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.reg, promhttp.HandlerOpts{})
}
