package overlay

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/annel0/spawnlight/internal/vec"
	"github.com/annel0/spawnlight/internal/world/block"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name       string
		blockLight uint8
		skyLight   uint8
		want       SpawnRisk
	}{
		{"полная темнота", 0, 0, RiskAlways},
		{"порог включительно", 7, 7, RiskAlways},
		{"свет неба выше порога", 7, 8, RiskNightOnly},
		{"открытое небо", 0, 15, RiskNightOnly},
		{"свет блоков выше порога", 8, 0, RiskNever},
		{"свет блоков важнее неба", 15, 15, RiskNever},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.blockLight, tt.skyLight))
		})
	}
}

func TestClassify_AllLevels(t *testing.T) {
	for bl := uint8(0); bl <= 15; bl++ {
		for sl := uint8(0); sl <= 15; sl++ {
			got := Classify(bl, sl)
			switch {
			case bl > 7:
				assert.Equal(t, RiskNever, got, "bl=%d sl=%d", bl, sl)
			case sl > 7:
				assert.Equal(t, RiskNightOnly, got, "bl=%d sl=%d", bl, sl)
			default:
				assert.Equal(t, RiskAlways, got, "bl=%d sl=%d", bl, sl)
			}
		}
	}
}

func TestClassifySample_IgnoresMaterial(t *testing.T) {
	a := LightSample{BlockLight: 3, SkyLight: 12, SpawnValue: block.SpawnNever}
	b := LightSample{BlockLight: 3, SkyLight: 12, SpawnValue: block.SpawnAlways, Passable: true, Air: true}
	assert.Equal(t, ClassifySample(a), ClassifySample(b))
	assert.Equal(t, RiskNightOnly, ClassifySample(a))
}

func TestValidSurface(t *testing.T) {
	pos := vec.Vec3{X: 4, Y: 10, Z: -2}

	t.Run("сплошной куб", func(t *testing.T) {
		w := newFakeWorld()
		w.solid(pos)
		assert.True(t, ValidSurface(w, pos))
	})

	t.Run("воздух", func(t *testing.T) {
		assert.False(t, ValidSurface(newFakeWorld(), pos), "незагруженная позиция читается как воздух")
	})

	t.Run("материал без спавна", func(t *testing.T) {
		w := newFakeWorld()
		w.put(pos, block.Cube(), block.SpawnNever)
		assert.False(t, ValidSurface(w, pos))
	})

	t.Run("прозрачный материал", func(t *testing.T) {
		w := newFakeWorld()
		w.put(pos, block.Cube(), block.SpawnTransparent)
		assert.False(t, ValidSurface(w, pos))
	})

	t.Run("обычная ступень", func(t *testing.T) {
		w := newFakeWorld()
		w.put(pos, block.Stair(block.HalfBottom, block.FacingNorth), block.SpawnAlways)
		assert.False(t, ValidSurface(w, pos))
	})

	t.Run("перевёрнутая ступень", func(t *testing.T) {
		w := newFakeWorld()
		w.put(pos, block.Stair(block.HalfTop, block.FacingEast), block.SpawnNever)
		assert.True(t, ValidSurface(w, pos), "для ступеней материал не проверяется")
	})

	t.Run("нет места над поверхностью", func(t *testing.T) {
		w := newFakeWorld()
		w.solid(pos)
		w.solid(pos.Up(2))
		assert.False(t, ValidSurface(w, pos))
	})

	t.Run("прозрачный блок над поверхностью", func(t *testing.T) {
		w := newFakeWorld()
		w.solid(pos)
		w.put(pos.Up(1), block.Cube(), block.SpawnTransparent)
		assert.True(t, ValidSurface(w, pos))
	})

	t.Run("непроходимый блок без спавна над поверхностью", func(t *testing.T) {
		w := newFakeWorld()
		w.solid(pos)
		w.put(pos.Up(1), block.Slab(block.SlabBottom), block.SpawnNever)
		assert.False(t, ValidSurface(w, pos))
	})
}

func TestHasHeadroom_PassableNonAir(t *testing.T) {
	w := newFakeWorld()
	pos := vec.Vec3{}
	w.cells[pos.Up(1)] = cell{shape: block.Cube(), sample: LightSample{Passable: true, SpawnValue: block.SpawnNever}}
	assert.True(t, HasHeadroom(w, pos), "проходимый блок (например, вода) не мешает")
}
