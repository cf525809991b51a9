package metrics

import (
	"time"

	"github.com/annel0/spawnlight/internal/overlay"
	"github.com/prometheus/client_golang/prometheus"
)

// OverlayMetrics Prometheus-реализация overlay.Recorder
type OverlayMetrics struct {
	scans    *prometheus.CounterVec
	points   *prometheus.CounterVec
	duration *prometheus.HistogramVec
	active   prometheus.Gauge
	removed  prometheus.Counter
}

var _ overlay.Recorder = (*OverlayMetrics)(nil)

// NewOverlayMetrics создаёт метрики оверлея и регистрирует их в reg
func NewOverlayMetrics(reg prometheus.Registerer) *OverlayMetrics {
	m := &OverlayMetrics{
		scans: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "spawnlight",
			Subsystem: "overlay",
			Name:      "scans_total",
			Help:      "Число выполненных проходов сканирования.",
		}, []string{"mode"}),
		points: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "spawnlight",
			Subsystem: "overlay",
			Name:      "points_emitted_total",
			Help:      "Число точек, переданных наблюдателям.",
		}, []string{"mode"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "spawnlight",
			Subsystem: "overlay",
			Name:      "scan_duration_seconds",
			Help:      "Длительность одного прохода сканирования.",
			Buckets:   []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25},
		}, []string{"mode"}),
		active: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "spawnlight",
			Subsystem: "overlay",
			Name:      "sessions_active",
			Help:      "Количество активных сессий оверлея.",
		}),
		removed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "spawnlight",
			Subsystem: "overlay",
			Name:      "sessions_removed_total",
			Help:      "Сессий, удалённых из-за отсутствия наблюдателя.",
		}),
	}

	reg.MustRegister(m.scans, m.points, m.duration, m.active, m.removed)
	return m
}

// ScanCompleted реализует overlay.Recorder
func (m *OverlayMetrics) ScanCompleted(mode overlay.Mode, points int, elapsed time.Duration) {
	label := mode.String()
	m.scans.WithLabelValues(label).Inc()
	m.points.WithLabelValues(label).Add(float64(points))
	m.duration.WithLabelValues(label).Observe(elapsed.Seconds())
}

// SessionsChanged реализует overlay.Recorder
func (m *OverlayMetrics) SessionsChanged(active int) {
	m.active.Set(float64(active))
}

// SessionRemoved реализует overlay.Recorder
func (m *OverlayMetrics) SessionRemoved() {
	m.removed.Inc()
}
