// Package metrics expone contadores HTTP e indicadores del taller en formato Prometheus.
package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/phenrril/carpinteria/internal/domain"
)

const namespace = "carpinteria"

type Metrics struct {
	Registry *prometheus.Registry
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		Registry: reg,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Requests HTTP atendidos por ruta, método y código.",
		}, []string{"route", "method", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duración de los requests HTTP.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
	}
	reg.MustRegister(
		m.requests,
		m.duration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) ObserveRequest(route, method string, code int, d time.Duration) {
	m.requests.WithLabelValues(route, method, strconv.Itoa(code)).Inc()
	m.duration.WithLabelValues(route, method).Observe(d.Seconds())
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}

// StatsFunc calcula los indicadores del tablero en cada scrape.
type StatsFunc func(ctx context.Context) (*domain.DashboardStats, error)

// RegisterDashboard publica los indicadores del tablero como gauges.
func (m *Metrics) RegisterDashboard(fn StatsFunc) error {
	return m.Registry.Register(&dashboardCollector{stats: fn})
}

var (
	clientsDesc = prometheus.NewDesc(namespace+"_clients", "Clientes registrados.", nil, nil)
	activeDesc  = prometheus.NewDesc(namespace+"_active_projects", "Proyectos aprobados o en producción.", nil, nil)
	revenueDesc = prometheus.NewDesc(namespace+"_monthly_revenue", "Ingresos del mes en curso.", nil, nil)
	pendingDesc = prometheus.NewDesc(namespace+"_pending_payments", "Pagos finales estimados pendientes.", nil, nil)
	lowDesc     = prometheus.NewDesc(namespace+"_low_stock_materials", "Materiales en o bajo el stock mínimo.", nil, nil)
)

type dashboardCollector struct {
	stats StatsFunc
}

func (c *dashboardCollector) Describe(ch chan<- *prometheus.Desc) {
	for _, d := range []*prometheus.Desc{clientsDesc, activeDesc, revenueDesc, pendingDesc, lowDesc} {
		ch <- d
	}
}

func (c *dashboardCollector) Collect(ch chan<- prometheus.Metric) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	st, err := c.stats(ctx)
	if err != nil {
		log.Error().Err(err).Msg("metrics: stats")
		return
	}
	revenue, _ := st.MonthlyRevenue.Float64()
	pending, _ := st.PendingPayments.Float64()
	ch <- prometheus.MustNewConstMetric(clientsDesc, prometheus.GaugeValue, float64(st.TotalClients))
	ch <- prometheus.MustNewConstMetric(activeDesc, prometheus.GaugeValue, float64(st.ActiveProjects))
	ch <- prometheus.MustNewConstMetric(revenueDesc, prometheus.GaugeValue, revenue)
	ch <- prometheus.MustNewConstMetric(pendingDesc, prometheus.GaugeValue, pending)
	ch <- prometheus.MustNewConstMetric(lowDesc, prometheus.GaugeValue, float64(st.LowStockItems))
}
