package render

import (
	"github.com/annel0/spawnlight/internal/overlay"
	"github.com/google/uuid"
)

// EventParticleBatch тип события с кадром оверлея
const EventParticleBatch = "ParticleBatch"

// Particle одна цветная точка в мировых координатах
type Particle struct {
	X, Y, Z float64
	Color   overlay.RGB
}

// ParticleBatch все точки одного прохода оверлея для одного наблюдателя.
// Новый кадр полностью заменяет предыдущий на клиенте.
type ParticleBatch struct {
	Observer  uuid.UUID
	Sequence  uint64
	Particles []Particle
}
