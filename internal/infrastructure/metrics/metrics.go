// Package metrics expone contadores Prometheus de dominio y de HTTP con un prefijo configurable.
package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/atelier-api/internal/application/ports"
)

var _ ports.Metrics = (*Registry)(nil)

// Registry agrupa los colectores de la app en un registro propio (no el global).
type Registry struct {
	reg *prometheus.Registry

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	overrideUpserts    prometheus.Counter
	overrideDuplicates prometheus.Counter
	tagChecks          *prometheus.CounterVec
	paymentWebhooks    *prometheus.CounterVec
}

// New registra todos los colectores con el prefijo dado (p. ej. "atelier").
func New(prefix string) *Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	f := promauto.With(reg)

	return &Registry{
		reg: reg,
		httpRequestsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: prefix + "_http_requests_total",
			Help: "Total de requests HTTP",
		}, []string{"method", "path", "status"}),
		httpRequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    prefix + "_http_request_duration_seconds",
			Help:    "Duración de los requests HTTP en segundos",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
		overrideUpserts: f.NewCounter(prometheus.CounterOpts{
			Name: prefix + "_catalog_override_upserts_total",
			Help: "Overrides de catálogo creados o reemplazados",
		}),
		overrideDuplicates: f.NewCounter(prometheus.CounterOpts{
			Name: prefix + "_catalog_override_duplicates_total",
			Help: "Overrides duplicados encontrados al resolver el catálogo",
		}),
		tagChecks: f.NewCounterVec(prometheus.CounterOpts{
			Name: prefix + "_spec_tag_checks_total",
			Help: "Rechequeos de tag de specs, por resultado",
		}, []string{"conflict"}),
		paymentWebhooks: f.NewCounterVec(prometheus.CounterOpts{
			Name: prefix + "_payment_webhooks_total",
			Help: "Webhooks de pago verificados, por tipo de evento",
		}, []string{"type"}),
	}
}

func (r *Registry) OverrideUpserted() { r.overrideUpserts.Inc() }

func (r *Registry) OverrideDuplicates(n int) {
	if n > 0 {
		r.overrideDuplicates.Add(float64(n))
	}
}

func (r *Registry) TagConflictChecked(conflict bool) {
	r.tagChecks.WithLabelValues(strconv.FormatBool(conflict)).Inc()
}

func (r *Registry) PaymentWebhook(eventType string) {
	r.paymentWebhooks.WithLabelValues(eventType).Inc()
}

// Middleware mide cada request por método, ruta registrada y status.
func (r *Registry) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else if status < 400 {
				status = fiber.StatusInternalServerError
			}
		}
		path := c.Route().Path
		labels := []string{c.Method(), path, strconv.Itoa(status)}
		r.httpRequestsTotal.WithLabelValues(labels...).Inc()
		r.httpRequestDuration.WithLabelValues(labels...).Observe(time.Since(start).Seconds())
		return err
	}
}

// Handler sirve el registro en formato de exposición Prometheus.
func (r *Registry) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{}))
}

// Gatherer expone el registro (tests).
func (r *Registry) Gatherer() prometheus.Gatherer { return r.reg }
