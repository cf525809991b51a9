package overlay

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/annel0/spawnlight/internal/logging"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// preferenceTimeout ограничивает обращения к хранилищу настроек
const preferenceTimeout = 2 * time.Second

// UpdateSummary итог одного UpdateAll
type UpdateSummary struct {
	Rendered int
	Idle     int
	Removed  int
}

// Projector владеет сессиями оверлея и периодически обновляет их
type Projector struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session

	settings atomic.Pointer[Settings]
	locator  ObserverLocator
	sink     Sink
	prefs    PreferenceStore
	recorder Recorder
	tracer   trace.Tracer
}

// Option настраивает Projector
type Option func(*Projector)

// WithPreferences подключает хранилище настроек наблюдателей
func WithPreferences(store PreferenceStore) Option {
	return func(p *Projector) { p.prefs = store }
}

// WithRecorder подключает сбор метрик
func WithRecorder(r Recorder) Option {
	return func(p *Projector) {
		if r != nil {
			p.recorder = r
		}
	}
}

// WithTracer задаёт трейсер OpenTelemetry (по умолчанию глобальный провайдер)
func WithTracer(t trace.Tracer) Option {
	return func(p *Projector) {
		if t != nil {
			p.tracer = t
		}
	}
}

// NewProjector создаёт Projector. locator и sink обязательны.
func NewProjector(settings Settings, locator ObserverLocator, sink Sink, opts ...Option) *Projector {
	p := &Projector{
		sessions: make(map[uuid.UUID]*Session),
		locator:  locator,
		sink:     sink,
		recorder: nopRecorder{},
		tracer:   otel.Tracer("github.com/annel0/spawnlight/internal/overlay"),
	}
	p.SetSettings(settings)
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Settings возвращает текущий снимок настроек
func (p *Projector) Settings() Settings {
	return *p.settings.Load()
}

// SetSettings атомарно заменяет настройки; вступают в силу со следующего прохода
func (p *Projector) SetSettings(s Settings) {
	if !s.DefaultMode.Valid() {
		s.DefaultMode = ModeSpawnable
	}
	p.settings.Store(&s)
}

// Session возвращает сессию наблюдателя, если она есть
func (p *Projector) Session(id uuid.UUID) (*Session, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	s, ok := p.sessions[id]
	return s, ok
}

// Ensure возвращает сессию наблюдателя, создавая её при первом обращении.
// Новая сессия выключена и получает режим по умолчанию либо сохранённые настройки.
func (p *Projector) Ensure(ctx context.Context, id uuid.UUID) *Session {
	if s, ok := p.Session(id); ok {
		return s
	}

	pref := p.loadPreference(ctx, id)

	p.mu.Lock()
	// Проверяем еще раз на случай race condition
	if s, ok := p.sessions[id]; ok {
		p.mu.Unlock()
		return s
	}
	s := newSession(p, id, pref)
	p.sessions[id] = s
	active := len(p.sessions)
	p.mu.Unlock()

	p.recorder.SessionsChanged(active)
	return s
}

// Remove удаляет сессию наблюдателя. Возвращает false, если её не было.
func (p *Projector) Remove(id uuid.UUID) bool {
	p.mu.Lock()
	_, ok := p.sessions[id]
	delete(p.sessions, id)
	active := len(p.sessions)
	p.mu.Unlock()

	if ok {
		p.recorder.SessionRemoved()
		p.recorder.SessionsChanged(active)
	}
	return ok
}

// Len возвращает число активных сессий
func (p *Projector) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.sessions)
}

// IDs возвращает отсортированный список наблюдателей с сессиями
func (p *Projector) IDs() []uuid.UUID {
	p.mu.RLock()
	ids := make([]uuid.UUID, 0, len(p.sessions))
	for id := range p.sessions {
		ids = append(ids, id)
	}
	p.mu.RUnlock()

	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
	return ids
}

// UpdateAll последовательно обновляет все сессии
func (p *Projector) UpdateAll(ctx context.Context) UpdateSummary {
	p.mu.RLock()
	sessions := make([]*Session, 0, len(p.sessions))
	for _, s := range p.sessions {
		sessions = append(sessions, s)
	}
	p.mu.RUnlock()

	_, span := p.tracer.Start(ctx, "overlay.UpdateAll")
	defer span.End()

	var summary UpdateSummary
	for _, s := range sessions {
		switch s.Update() {
		case StatusRendered:
			summary.Rendered++
		case StatusRemoved:
			summary.Removed++
		default:
			summary.Idle++
		}
	}

	span.SetAttributes(
		attribute.Int("overlay.sessions", len(sessions)),
		attribute.Int("overlay.rendered", summary.Rendered),
		attribute.Int("overlay.removed", summary.Removed),
	)
	return summary
}

// Run вызывает UpdateAll с заданным интервалом до отмены контекста
func (p *Projector) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	logging.Info("🔦 Оверлей спавна запущен: интервал=%s, радиус=%d", interval, p.Settings().Radius)

	for {
		select {
		case <-ctx.Done():
			logging.Debug("Цикл оверлея остановлен: %v", ctx.Err())
			return
		case <-ticker.C:
			summary := p.UpdateAll(ctx)
			if summary.Removed > 0 {
				logging.Debug("Оверлей: удалено сессий без наблюдателя: %d", summary.Removed)
			}
		}
	}
}

func (p *Projector) loadPreference(ctx context.Context, id uuid.UUID) Preference {
	def := Preference{Mode: p.Settings().DefaultMode}
	if p.prefs == nil {
		return def
	}

	ctx, cancel := context.WithTimeout(ctx, preferenceTimeout)
	defer cancel()

	pref, found, err := p.prefs.Load(ctx, id)
	if err != nil {
		logging.Warn("Не удалось загрузить настройки оверлея %s: %v", id, err)
		return def
	}
	if !found || !pref.Mode.Valid() {
		return def
	}
	return pref
}

func (p *Projector) savePreference(id uuid.UUID, pref Preference) {
	if p.prefs == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), preferenceTimeout)
	defer cancel()

	if err := p.prefs.Save(ctx, id, pref); err != nil {
		logging.Warn("Не удалось сохранить настройки оверлея %s: %v", id, err)
	}
}
