// Package metrics exposes lexicon and HTTP metrics in Prometheus format.
package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"yadro.com/lexicon/lexicon/core"
)

const namespace = "lexicon"

type Metrics struct {
	registry *prometheus.Registry

	lemmas   prometheus.Gauge
	links    prometheus.Gauge
	changes  *prometheus.CounterVec
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
}

func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	m := &Metrics{
		registry: registry,
		lemmas: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "lemmas", Help: "Lemmas currently in the lexicon",
		}),
		links: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "links", Help: "Unique collocation links currently in the lexicon",
		}),
		changes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "changes_total", Help: "Lexicon mutations by action",
		}, []string{"action"}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "http_requests_total", Help: "HTTP requests by route and status",
		}, []string{"route", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Name: "http_request_duration_seconds", Help: "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
	}
	registry.MustRegister(m.lemmas, m.links, m.changes, m.requests, m.latency)
	return m
}

// Notify implements core.Notifier.
func (m *Metrics) Notify(_ context.Context, change core.Change) error {
	m.lemmas.Set(float64(change.Stats.Lemmas))
	m.links.Set(float64(change.Stats.Links))
	m.changes.WithLabelValues(string(change.Action)).Inc()
	return nil
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Instrument counts requests and observes latency under the route label.
func (m *Metrics) Instrument(route string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next(rec, r)

		m.requests.WithLabelValues(route, strconv.Itoa(rec.status)).Inc()
		m.latency.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}
