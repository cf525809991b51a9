package implementations

import (
	"testing"

	"github.com/annel0/spawnlight/internal/world/block"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryHasAllBlocks(t *testing.T) {
	for _, id := range []block.BlockID{
		block.AirBlockID, block.CaveAirBlockID, block.StoneBlockID, block.GrassBlockID,
		block.DirtBlockID, block.SandBlockID, block.BedrockBlockID, block.WaterBlockID,
		block.GlassBlockID, block.LeavesBlockID, block.TorchBlockID, block.GlowstoneBlockID,
		block.StoneStairsBlockID, block.StoneSlabBlockID, block.SnowLayerBlockID,
	} {
		behavior, ok := block.Get(id)
		require.True(t, ok, "блок %d должен быть зарегистрирован", id)
		assert.Equal(t, id, behavior.ID())
	}
}

func TestStairsShapeFromMetadata(t *testing.T) {
	stairs, _ := block.Get(block.StoneStairsBlockID)

	shape := stairs.Shape(block.Metadata{"half": "top", "facing": "west"})
	assert.Equal(t, block.ShapeStair, shape.Kind)
	assert.Equal(t, block.HalfTop, shape.Half)
	assert.Equal(t, block.FacingWest, shape.Facing)

	// По умолчанию ступень не перевёрнута
	assert.Equal(t, block.HalfBottom, stairs.Shape(stairs.CreateMetadata()).Half)
}

func TestSlabShapeFromMetadata(t *testing.T) {
	slab, _ := block.Get(block.StoneSlabBlockID)

	assert.Equal(t, block.SlabBottom, slab.Shape(block.Metadata{}).Slab)
	assert.Equal(t, block.SlabTop, slab.Shape(block.Metadata{"type": "top"}).Slab)
	assert.Equal(t, block.SlabDouble, slab.Shape(block.Metadata{"type": "double"}).Slab)
}

func TestSnowLayers(t *testing.T) {
	snow, _ := block.Get(block.SnowLayerBlockID)

	// Значения после JSON приходят как float64
	shape := snow.Shape(block.Metadata{"layers": float64(4)})
	assert.Equal(t, 4, shape.Layers)
	assert.Equal(t, SnowMaxLayers, shape.MaxLayers)

	assert.True(t, snow.Passable(block.Metadata{"layers": 1}), "один слой снега проходим")
	assert.False(t, snow.Passable(block.Metadata{"layers": 3}))
	assert.Equal(t, SnowMaxLayers, snow.Shape(block.Metadata{"layers": 99}).Layers)
}

func TestSpawnValues(t *testing.T) {
	cases := map[block.BlockID]block.SpawnValue{
		block.StoneBlockID:     block.SpawnAlways,
		block.GlassBlockID:     block.SpawnTransparent,
		block.TorchBlockID:     block.SpawnTransparent,
		block.WaterBlockID:     block.SpawnNever,
		block.AirBlockID:       block.SpawnNever,
		block.StoneSlabBlockID: block.SpawnAlways,
	}
	for id, want := range cases {
		behavior, _ := block.Get(id)
		assert.Equal(t, want, behavior.SpawnValue(), behavior.Name())
	}
}

func TestByName(t *testing.T) {
	behavior, ok := block.ByName("stone slab")
	require.True(t, ok)
	assert.Equal(t, block.StoneSlabBlockID, behavior.ID())

	_, ok = block.ByName("obsidian")
	assert.False(t, ok)
	assert.True(t, IsAir(block.CaveAirBlockID))
}
