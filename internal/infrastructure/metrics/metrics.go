// Package metrics contadores Prometheus de autenticación y catálogo, expuestos en /metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/marketplace-api/internal/application/auth"
	"github.com/jhoicas/marketplace-api/internal/application/usecase"
)

var (
	_ auth.Metrics           = (*Metrics)(nil)
	_ usecase.CatalogMetrics = (*Metrics)(nil)
)

// Metrics agrupa los collectors de la app sobre un registry propio.
type Metrics struct {
	reg *prometheus.Registry

	logins   *prometheus.CounterVec
	products *prometheus.CounterVec
	rejected *prometheus.CounterVec
}

// New registra los collectors de runtime y los de la app.
func New(namespace string) *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	m := &Metrics{
		reg: reg,
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "logins_total",
			Help:      "Intentos de login por resultado.",
		}, []string{"result"}),
		products: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "products_total",
			Help:      "Productos creados y desactivados.",
		}, []string{"event"}),
		rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "product_rejections_total",
			Help:      "Creaciones de producto rechazadas por motivo.",
		}, []string{"reason"}),
	}
	reg.MustRegister(m.logins, m.products, m.rejected)
	return m
}

func (m *Metrics) LoginSucceeded() { m.logins.WithLabelValues("success").Inc() }

func (m *Metrics) LoginFailed(reason string) { m.logins.WithLabelValues(reason).Inc() }

func (m *Metrics) ProductCreated() { m.products.WithLabelValues("created").Inc() }

func (m *Metrics) ProductDeactivated() { m.products.WithLabelValues("deactivated").Inc() }

func (m *Metrics) ProductRejected(reason string) { m.rejected.WithLabelValues(reason).Inc() }

// Registry expone el registry (tests y collectors extra).
func (m *Metrics) Registry() *prometheus.Registry { return m.reg }

// Handler handler HTTP en formato de exposición de Prometheus.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{Registry: m.reg})
}
