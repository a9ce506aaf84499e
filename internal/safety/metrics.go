package safety

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics — Prometheus-метрики контроллера безопасности.
// Все методы nil-безопасны: контроллер без метрик работает так же.
type Metrics struct {
	passDuration prometheus.Histogram
	components   prometheus.Gauge
	tracked      prometheus.Gauge
	cancelled    prometheus.Counter
	passes       prometheus.Counter
}

// NewMetrics создаёт метрики и регистрирует их в дефолтном регистре
func NewMetrics() *Metrics {
	m := &Metrics{
		passDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "digsafe",
			Name:      "pass_duration_seconds",
			Help:      "Длительность полного цикла переоценки.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2},
		}),
		components: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "digsafe",
			Name:      "components",
			Help:      "Количество непустых компонентов после последнего цикла.",
		}),
		tracked: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "digsafe",
			Name:      "tracked_tiles",
			Help:      "Количество отслеживаемых тайлов проходки.",
		}),
		cancelled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "digsafe",
			Name:      "tasks_cancelled_total",
			Help:      "Общее число снятых операций раскопки.",
		}),
		passes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "digsafe",
			Name:      "passes_total",
			Help:      "Общее число полных циклов переоценки.",
		}),
	}

	prometheus.MustRegister(m.passDuration, m.components, m.tracked, m.cancelled, m.passes)
	return m
}

// ObservePass записывает метрики одного полного цикла
func (m *Metrics) ObservePass(elapsed time.Duration, components, tracked int, cancelled uint64) {
	if m == nil {
		return
	}
	m.passDuration.Observe(elapsed.Seconds())
	m.components.Set(float64(components))
	m.tracked.Set(float64(tracked))
	if cancelled > 0 {
		m.cancelled.Add(float64(cancelled))
	}
	m.passes.Inc()
}
