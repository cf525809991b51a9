package implementations

import (
	"github.com/annel0/spawnlight/internal/world/block"
)

// AirBehavior реализует поведение пустого блока (воздуха).
// Воздух пещер отличается только ID, для спавна оба считаются воздухом.
type AirBehavior struct {
	id   block.BlockID
	name string
}

// ID возвращает идентификатор блока
func (b *AirBehavior) ID() block.BlockID {
	return b.id
}

// Name возвращает имя блока
func (b *AirBehavior) Name() string {
	return b.name
}

// Passable возвращает true, сквозь воздух можно пройти
func (b *AirBehavior) Passable(block.Metadata) bool {
	return true
}

// SpawnValue возвращает SpawnNever: на воздухе нельзя стоять
func (b *AirBehavior) SpawnValue() block.SpawnValue {
	return block.SpawnNever
}

// Shape возвращает форму полного блока
func (b *AirBehavior) Shape(block.Metadata) block.Shape {
	return block.Cube()
}

// Opaque возвращает false, воздух пропускает свет
func (b *AirBehavior) Opaque() bool {
	return false
}

// LightEmission возвращает 0
func (b *AirBehavior) LightEmission() uint8 {
	return 0
}

// CreateMetadata создает пустые метаданные
func (b *AirBehavior) CreateMetadata() block.Metadata {
	return block.Metadata{}
}

// IsAir проверяет, является ли блок воздухом любого вида
func IsAir(id block.BlockID) bool {
	return id == block.AirBlockID || id == block.CaveAirBlockID
}
