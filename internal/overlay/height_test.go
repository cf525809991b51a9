package overlay

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/annel0/spawnlight/internal/world/block"
)

func TestHeightOffset(t *testing.T) {
	tests := []struct {
		name  string
		shape block.Shape
		want  float64
	}{
		{"куб", block.Cube(), 1},
		{"нижняя плита", block.Slab(block.SlabBottom), 0.5},
		{"верхняя плита", block.Slab(block.SlabTop), 1},
		{"двойная плита", block.Slab(block.SlabDouble), 1},
		{"снег 4 из 8", block.Snow(4, 8), 0.5},
		{"снег 1 из 8", block.Snow(1, 8), 0.125},
		{"снег без максимума", block.Shape{Kind: block.ShapeSnow, Layers: 3}, 1},
		{"ступень", block.Stair(block.HalfTop, block.FacingSouth), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, HeightOffset(tt.shape), 1e-9)
		})
	}
}
