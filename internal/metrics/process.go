package metrics

import (
	"fmt"
	"os"
	"time"

	"github.com/annel0/spawnlight/internal/logging"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shirou/gopsutil/v3/process"
)

// ProcessMetrics публикует загрузку CPU и память процесса сервера
type ProcessMetrics struct {
	StartTime time.Time
	proc      *process.Process
}

// NewProcessMetrics регистрирует метрики процесса в reg.
// Если gopsutil не может открыть процесс, метрики CPU/памяти не регистрируются.
func NewProcessMetrics(reg prometheus.Registerer) *ProcessMetrics {
	pm := &ProcessMetrics{StartTime: time.Now()}

	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		logging.Warn("Метрики процесса недоступны: %v", err)
	} else {
		pm.proc = proc
		reg.MustRegister(
			prometheus.NewGaugeFunc(prometheus.GaugeOpts{
				Namespace: "spawnlight",
				Name:      "process_cpu_percent",
				Help:      "Загрузка CPU процессом в процентах.",
			}, pm.cpuPercent),
			prometheus.NewGaugeFunc(prometheus.GaugeOpts{
				Namespace: "spawnlight",
				Name:      "process_rss_bytes",
				Help:      "Резидентная память процесса.",
			}, pm.rssBytes),
		)
	}

	reg.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: "spawnlight",
		Name:      "uptime_seconds",
		Help:      "Время работы сервера.",
	}, func() float64 { return time.Since(pm.StartTime).Seconds() }))

	return pm
}

func (pm *ProcessMetrics) cpuPercent() float64 {
	v, err := pm.proc.CPUPercent()
	if err != nil {
		return 0
	}
	return v
}

func (pm *ProcessMetrics) rssBytes() float64 {
	info, err := pm.proc.MemoryInfo()
	if err != nil || info == nil {
		return 0
	}
	return float64(info.RSS)
}

// GetUptime возвращает время работы сервера в читаемом виде
func (pm *ProcessMetrics) GetUptime() string {
	return formatUptime(time.Since(pm.StartTime))
}

func formatUptime(uptime time.Duration) string {
	days := int(uptime.Hours()) / 24
	hours := int(uptime.Hours()) % 24
	minutes := int(uptime.Minutes()) % 60
	seconds := int(uptime.Seconds()) % 60

	switch {
	case days > 0:
		return fmt.Sprintf("%dд %dч %dм %dс", days, hours, minutes, seconds)
	case hours > 0:
		return fmt.Sprintf("%dч %dм %dс", hours, minutes, seconds)
	case minutes > 0:
		return fmt.Sprintf("%dм %dс", minutes, seconds)
	default:
		return fmt.Sprintf("%dс", seconds)
	}
}
