// Package metrics holds the Prometheus counters exported by the bot.
// A nil *Metrics is valid and records nothing.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "idntbot"

// Sitemap fetch results.
const (
	FetchOK    = "ok"
	FetchError = "error"
)

// Metrics groups the bot counters.
type Metrics struct {
	updates          *prometheus.CounterVec
	commands         *prometheus.CounterVec
	deliveryFailures *prometheus.CounterVec
	sitemapFetches   *prometheus.CounterVec
	sitemapURLs      prometheus.Gauge

	gatherer prometheus.Gatherer
}

// New creates the counters and registers them with reg.
func New(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		updates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "updates_total",
			Help:      "Inbound updates by type.",
		}, []string{"type"}),
		commands: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commands_total",
			Help:      "Matched message commands.",
		}, []string{"command"}),
		deliveryFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "delivery_failures_total",
			Help:      "Outbound Bot API calls that failed.",
		}, []string{"method"}),
		sitemapFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sitemap_fetches_total",
			Help:      "Remote sitemap fetches by result.",
		}, []string{"result"}),
		sitemapURLs: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sitemap_urls",
			Help:      "URLs held by the sitemap cache after the last successful fetch.",
		}),
		gatherer: reg,
	}

	reg.MustRegister(m.updates, m.commands, m.deliveryFailures, m.sitemapFetches, m.sitemapURLs)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// Update counts one inbound update of the given type.
func (m *Metrics) Update(kind string) {
	if m == nil {
		return
	}
	m.updates.WithLabelValues(kind).Inc()
}

// Command counts one matched command.
func (m *Metrics) Command(name string) {
	if m == nil {
		return
	}
	m.commands.WithLabelValues(name).Inc()
}

// DeliveryFailed counts one failed outbound call.
func (m *Metrics) DeliveryFailed(method string) {
	if m == nil {
		return
	}
	m.deliveryFailures.WithLabelValues(method).Inc()
}

// SitemapFetch counts one sitemap fetch. On success it also records the
// number of URLs extracted.
func (m *Metrics) SitemapFetch(result string, urls int) {
	if m == nil {
		return
	}
	m.sitemapFetches.WithLabelValues(result).Inc()
	if result == FetchOK {
		m.sitemapURLs.Set(float64(urls))
	}
}
