package overlay

import "github.com/annel0/spawnlight/internal/world/block"

// HeightOffset возвращает долю высоты блока [0, 1], на которой рисуется точка.
// Неизвестные формы рисуются на полной высоте.
func HeightOffset(shape block.Shape) float64 {
	switch shape.Kind {
	case block.ShapeSlab:
		if shape.Slab == block.SlabBottom {
			return 0.5
		}
		return 1
	case block.ShapeSnow:
		if shape.MaxLayers <= 0 {
			return 1
		}
		return float64(shape.Layers) / float64(shape.MaxLayers)
	default:
		return 1
	}
}
