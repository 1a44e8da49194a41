package blog

import (
	"net/http"

	prom "github.com/prometheus/client_golang/prometheus"
	promcollect "github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// metrics owns a per-App registry so several apps can live in one process.
type metrics struct {
	registry *prom.Registry
	pages    *prom.CounterVec
	feeds    *prom.CounterVec
	crawlers *prom.CounterVec
	icons    *prom.CounterVec
}

func newMetrics() *metrics {
	m := &metrics{
		registry: prom.NewRegistry(),
		pages: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "blog",
			Name:      "page_views_total",
			Help:      "Rendered pages by kind and client class",
		}, []string{"page", "client"}),
		feeds: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "blog",
			Name:      "feed_requests_total",
			Help:      "Served feeds by format",
		}, []string{"format"}),
		crawlers: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "blog",
			Name:      "crawler_requests_total",
			Help:      "Pages and feeds fetched by known crawlers",
		}, []string{"crawler"}),
		icons: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "blog",
			Name:      "icon_generations_total",
			Help:      "Icon generation runs by result",
		}, []string{"result"}),
	}
	m.registry.MustRegister(m.pages, m.feeds, m.crawlers, m.icons)
	m.registry.MustRegister(promcollect.NewGoCollector(), promcollect.NewProcessCollector(promcollect.ProcessCollectorOpts{}))
	return m
}

// page counts a rendered page for the client that sent userAgent.
func (m *metrics) page(kind, userAgent string) {
	m.pages.WithLabelValues(kind, clientClass(userAgent)).Inc()
	m.crawler(userAgent)
}

func (m *metrics) feed(format, userAgent string) {
	m.feeds.WithLabelValues(format).Inc()
	m.crawler(userAgent)
}

func (m *metrics) crawler(userAgent string) {
	if name := crawlerName(userAgent); name != "" {
		m.crawlers.WithLabelValues(name).Inc()
	}
}

func (m *metrics) iconRun(err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.icons.WithLabelValues(result).Inc()
}

func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
