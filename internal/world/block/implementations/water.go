package implementations

import (
	"github.com/annel0/spawnlight/internal/world/block"
)

// WaterBehavior реализует поведение блока воды.
// Для оверлея вода проходима и не является поверхностью спавна.
type WaterBehavior struct{}

// ID возвращает идентификатор блока
func (b *WaterBehavior) ID() block.BlockID {
	return block.WaterBlockID
}

// Name возвращает имя блока
func (b *WaterBehavior) Name() string {
	return "Water"
}

// Passable возвращает true
func (b *WaterBehavior) Passable(block.Metadata) bool {
	return true
}

// SpawnValue возвращает SpawnNever
func (b *WaterBehavior) SpawnValue() block.SpawnValue {
	return block.SpawnNever
}

// Shape возвращает форму полного блока
func (b *WaterBehavior) Shape(block.Metadata) block.Shape {
	return block.Cube()
}

// Opaque возвращает false
func (b *WaterBehavior) Opaque() bool {
	return false
}

// LightEmission возвращает 0
func (b *WaterBehavior) LightEmission() uint8 {
	return 0
}

// CreateMetadata создает начальные метаданные для блока
func (b *WaterBehavior) CreateMetadata() block.Metadata {
	return block.Metadata{"level": 7} // Максимальный уровень воды
}
