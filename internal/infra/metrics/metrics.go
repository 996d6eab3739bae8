// Package metrics exposes routing counters in Prometheus format.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"patriot-buddy/internal/domain"
)

type Recorder struct {
	routes    *prometheus.CounterVec
	latency   *prometheus.HistogramVec
	fallbacks *prometheus.CounterVec
	gatherer  prometheus.Gatherer
}

// New registers the collectors on reg; pass prometheus.NewRegistry() in
// tests to keep them isolated.
func New(reg *prometheus.Registry) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		routes: f.NewCounterVec(prometheus.CounterOpts{
			Name: "patriot_buddy_routes_total",
			Help: "Utterances routed, by intent and whether the mode override chose it.",
		}, []string{"intent", "overridden"}),
		latency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "patriot_buddy_route_seconds",
			Help:    "Time from dequeue to response, by intent.",
			Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 20, 30, 60},
		}, []string{"intent"}),
		fallbacks: f.NewCounterVec(prometheus.CounterOpts{
			Name: "patriot_buddy_fallbacks_total",
			Help: "Fallback sentences returned instead of live results, by site.",
		}, []string{"site"}),
		gatherer: reg,
	}
}

func (r *Recorder) ObserveRoute(intent domain.Intent, overridden bool, elapsed time.Duration) {
	r.routes.WithLabelValues(string(intent), strconv.FormatBool(overridden)).Inc()
	r.latency.WithLabelValues(string(intent)).Observe(elapsed.Seconds())
}

func (r *Recorder) ObserveFallback(site string) {
	r.fallbacks.WithLabelValues(site).Inc()
}

func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.gatherer, promhttp.HandlerOpts{})
}
