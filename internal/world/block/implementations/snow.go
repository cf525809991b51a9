package implementations

import (
	"github.com/annel0/spawnlight/internal/world/block"
)

// SnowMaxLayers максимальное число слоёв снега в одном блоке
const SnowMaxLayers = 8

// SnowLayerBehavior реализует снежный слой.
// Метаданные: "layers" = 1..8.
type SnowLayerBehavior struct{}

// ID возвращает идентификатор блока
func (b *SnowLayerBehavior) ID() block.BlockID {
	return block.SnowLayerBlockID
}

// Name возвращает имя блока
func (b *SnowLayerBehavior) Name() string {
	return "Snow"
}

// Passable возвращает true для одного слоя: у него нет высоты коллизии
func (b *SnowLayerBehavior) Passable(meta block.Metadata) bool {
	return b.layers(meta) <= 1
}

// SpawnValue возвращает SpawnAlways
func (b *SnowLayerBehavior) SpawnValue() block.SpawnValue {
	return block.SpawnAlways
}

// Shape возвращает форму с текущим числом слоёв
func (b *SnowLayerBehavior) Shape(meta block.Metadata) block.Shape {
	return block.Snow(b.layers(meta), SnowMaxLayers)
}

// Opaque возвращает false
func (b *SnowLayerBehavior) Opaque() bool {
	return false
}

// LightEmission возвращает 0
func (b *SnowLayerBehavior) LightEmission() uint8 {
	return 0
}

// CreateMetadata создает начальные метаданные
func (b *SnowLayerBehavior) CreateMetadata() block.Metadata {
	return block.Metadata{"layers": 1}
}

func (b *SnowLayerBehavior) layers(meta block.Metadata) int {
	n := meta.Int("layers", 1)
	if n < 1 {
		return 1
	}
	if n > SnowMaxLayers {
		return SnowMaxLayers
	}
	return n
}
