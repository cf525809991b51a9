package overlay

import "time"

// Recorder получает статистику работы оверлея (метрики)
type Recorder interface {
	ScanCompleted(mode Mode, points int, elapsed time.Duration)
	SessionsChanged(active int)
	SessionRemoved()
}

type nopRecorder struct{}

func (nopRecorder) ScanCompleted(Mode, int, time.Duration) {}
func (nopRecorder) SessionsChanged(int)                    {}
func (nopRecorder) SessionRemoved()                        {}
