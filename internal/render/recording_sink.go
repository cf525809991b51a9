package render

import (
	"sync"

	"github.com/annel0/spawnlight/internal/overlay"
	"github.com/google/uuid"
)

// RecordingSink запоминает кадры в памяти. Используется в тестах и офлайн-CLI.
type RecordingSink struct {
	mu      sync.Mutex
	pending map[uuid.UUID][]Particle
	frames  map[uuid.UUID][][]Particle
}

var (
	_ overlay.Sink    = (*RecordingSink)(nil)
	_ overlay.Flusher = (*RecordingSink)(nil)
)

// NewRecordingSink создаёт пустой sink
func NewRecordingSink() *RecordingSink {
	return &RecordingSink{
		pending: make(map[uuid.UUID][]Particle),
		frames:  make(map[uuid.UUID][][]Particle),
	}
}

// Emit добавляет точку в текущий кадр
func (s *RecordingSink) Emit(addressee uuid.UUID, x, y, z float64, c overlay.RGB) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending[addressee] = append(s.pending[addressee], Particle{X: x, Y: y, Z: z, Color: c})
}

// Flush закрывает текущий кадр адресата
func (s *RecordingSink) Flush(addressee uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frames[addressee] = append(s.frames[addressee], s.pending[addressee])
	delete(s.pending, addressee)
	return nil
}

// Frames возвращает число закрытых кадров адресата
func (s *RecordingSink) Frames(addressee uuid.UUID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.frames[addressee])
}

// Last возвращает последний закрытый кадр; false, если кадров ещё не было
func (s *RecordingSink) Last(addressee uuid.UUID) ([]Particle, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	frames := s.frames[addressee]
	if len(frames) == 0 {
		return nil, false
	}
	return append([]Particle(nil), frames[len(frames)-1]...), true
}
