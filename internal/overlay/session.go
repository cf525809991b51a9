package overlay

import (
	"sync"
	"time"

	"github.com/annel0/spawnlight/internal/logging"
	"github.com/google/uuid"
)

// UpdateStatus результат одного вызова Session.Update
type UpdateStatus uint8

const (
	// StatusIdle оверлей выключен, сканирование не выполнялось
	StatusIdle UpdateStatus = iota
	// StatusRendered проход выполнен, точки переданы в Sink
	StatusRendered
	// StatusRemoved наблюдатель не найден, сессия удалена из Projector
	StatusRemoved
)

func (s UpdateStatus) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusRendered:
		return "rendered"
	case StatusRemoved:
		return "removed"
	default:
		return "unknown"
	}
}

// Session состояние оверлея одного наблюдателя: включён ли он и в каком режиме.
// Сессией владеет Projector; на одного наблюдателя ровно одна сессия.
type Session struct {
	mu      sync.Mutex
	saveMu  sync.Mutex
	id      uuid.UUID
	enabled bool
	mode    Mode
	owner   *Projector
}

func newSession(owner *Projector, id uuid.UUID, pref Preference) *Session {
	return &Session{
		id:      id,
		enabled: pref.Enabled,
		mode:    pref.Mode,
		owner:   owner,
	}
}

// ID возвращает идентификатор наблюдателя
func (s *Session) ID() uuid.UUID {
	return s.id
}

// IsEnabled возвращает true, если оверлей включён
func (s *Session) IsEnabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enabled
}

// Mode возвращает текущий режим отображения
func (s *Session) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// Show включает оверлей и сразу отправляет первый кадр
func (s *Session) Show() UpdateStatus {
	s.mu.Lock()
	s.enabled = true
	status := s.updateLocked()
	s.mu.Unlock()

	s.persist()
	return status
}

// Hide выключает оверлей. Повторный вызов ничего не делает.
func (s *Session) Hide() {
	s.mu.Lock()
	if !s.enabled {
		s.mu.Unlock()
		return
	}
	s.enabled = false
	s.mu.Unlock()

	s.persist()
}

// Toggle переключает оверлей и возвращает состояние до переключения
func (s *Session) Toggle() bool {
	s.mu.Lock()
	previous := s.enabled
	s.enabled = !previous
	if s.enabled {
		s.updateLocked()
	}
	s.mu.Unlock()

	s.persist()
	return previous
}

// SetMode задаёт режим отображения. Виден со следующего Update.
func (s *Session) SetMode(mode Mode) {
	if !mode.Valid() {
		return
	}

	s.mu.Lock()
	s.mode = mode
	s.mu.Unlock()

	s.persist()
}

// CycleMode переключает режим на следующий по кругу и возвращает новый
func (s *Session) CycleMode() Mode {
	s.mu.Lock()
	s.mode = s.mode.Next()
	mode := s.mode
	s.mu.Unlock()

	s.persist()
	return mode
}

// Update выполняет один проход сканирования и отправляет точки наблюдателю.
// Выключенная сессия ничего не делает. Если наблюдателя нет,
// сессия удаляет себя из Projector и возвращает StatusRemoved.
func (s *Session) Update() UpdateStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updateLocked()
}

func (s *Session) updateLocked() UpdateStatus {
	if !s.enabled {
		return StatusIdle
	}

	p := s.owner
	observer, ok := p.locator.Locate(s.id)
	if !ok || observer.World == nil {
		p.Remove(s.id)
		logging.Debug("Наблюдатель %s недоступен, сессия оверлея удалена", s.id)
		return StatusRemoved
	}

	settings := p.Settings()
	start := time.Now()
	count := 0

	for point := range Scan(observer.World, observer.Position.Floor(), settings.Radius, s.mode) {
		pos := point.WorldPosition()
		p.sink.Emit(s.id, pos.X, pos.Y, pos.Z, point.Color)
		count++
	}

	if flusher, ok := p.sink.(Flusher); ok {
		if err := flusher.Flush(s.id); err != nil {
			logging.Warn("Не удалось отправить кадр оверлея для %s: %v", s.id, err)
		}
	}

	p.recorder.ScanCompleted(s.mode, count, time.Since(start))
	return StatusRendered
}

// persist сохраняет настройки вне mu. Снимок берётся под saveMu,
// поэтому последней записывается актуальная версия.
func (s *Session) persist() {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	s.mu.Lock()
	pref := Preference{Mode: s.mode, Enabled: s.enabled}
	s.mu.Unlock()

	s.owner.savePreference(s.id, pref)
}
