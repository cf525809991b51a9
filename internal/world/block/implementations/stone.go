package implementations

import (
	"github.com/annel0/spawnlight/internal/world/block"
)

// SolidBehavior реализует поведение обычного непрозрачного куба
// (камень, земля, трава, песок, бедрок)
type SolidBehavior struct {
	id   block.BlockID
	name string
}

// NewSolidBehavior создаёт поведение твёрдого блока
func NewSolidBehavior(id block.BlockID, name string) *SolidBehavior {
	return &SolidBehavior{id: id, name: name}
}

// ID возвращает идентификатор блока
func (b *SolidBehavior) ID() block.BlockID {
	return b.id
}

// Name возвращает имя блока
func (b *SolidBehavior) Name() string {
	return b.name
}

// Passable возвращает false, у куба полная коллизия
func (b *SolidBehavior) Passable(block.Metadata) bool {
	return false
}

// SpawnValue возвращает SpawnAlways
func (b *SolidBehavior) SpawnValue() block.SpawnValue {
	return block.SpawnAlways
}

// Shape возвращает форму полного блока
func (b *SolidBehavior) Shape(block.Metadata) block.Shape {
	return block.Cube()
}

// Opaque возвращает true
func (b *SolidBehavior) Opaque() bool {
	return true
}

// LightEmission возвращает 0
func (b *SolidBehavior) LightEmission() uint8 {
	return 0
}

// CreateMetadata создает пустые метаданные
func (b *SolidBehavior) CreateMetadata() block.Metadata {
	return block.Metadata{}
}
