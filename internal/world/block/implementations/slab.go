package implementations

import (
	"github.com/annel0/spawnlight/internal/world/block"
)

// SlabBehavior реализует плиты.
// Метаданные: "type" = bottom|top|double.
type SlabBehavior struct {
	id   block.BlockID
	name string
}

// ID возвращает идентификатор блока
func (b *SlabBehavior) ID() block.BlockID {
	return b.id
}

// Name возвращает имя блока
func (b *SlabBehavior) Name() string {
	return b.name
}

// Passable возвращает false
func (b *SlabBehavior) Passable(block.Metadata) bool {
	return false
}

// SpawnValue возвращает SpawnAlways
func (b *SlabBehavior) SpawnValue() block.SpawnValue {
	return block.SpawnAlways
}

// Shape читает тип плиты из метаданных
func (b *SlabBehavior) Shape(meta block.Metadata) block.Shape {
	return block.Slab(block.ParseSlabType(meta.String("type", "bottom")))
}

// Opaque возвращает false, в том числе для двойной плиты
func (b *SlabBehavior) Opaque() bool {
	return false
}

// LightEmission возвращает 0
func (b *SlabBehavior) LightEmission() uint8 {
	return 0
}

// CreateMetadata создает начальные метаданные
func (b *SlabBehavior) CreateMetadata() block.Metadata {
	return block.Metadata{"type": "bottom"}
}
