package implementations

import "github.com/annel0/spawnlight/internal/world/block"

// Регистрируем все типы блоков при импорте пакета
func init() {
	// Базовые блоки
	block.Register(block.AirBlockID, &AirBehavior{id: block.AirBlockID, name: "Air"})
	block.Register(block.CaveAirBlockID, &AirBehavior{id: block.CaveAirBlockID, name: "Cave Air"})
	block.Register(block.StoneBlockID, NewSolidBehavior(block.StoneBlockID, "Stone"))
	block.Register(block.GrassBlockID, NewSolidBehavior(block.GrassBlockID, "Grass"))
	block.Register(block.DirtBlockID, NewSolidBehavior(block.DirtBlockID, "Dirt"))
	block.Register(block.SandBlockID, NewSolidBehavior(block.SandBlockID, "Sand"))
	block.Register(block.BedrockBlockID, NewSolidBehavior(block.BedrockBlockID, "Bedrock"))
	block.Register(block.WaterBlockID, &WaterBehavior{})

	// Прозрачные и светящиеся
	block.Register(block.GlassBlockID, &TransparentBehavior{id: block.GlassBlockID, name: "Glass"})
	block.Register(block.LeavesBlockID, &TransparentBehavior{id: block.LeavesBlockID, name: "Leaves"})
	block.Register(block.TorchBlockID, &LightSourceBehavior{id: block.TorchBlockID, name: "Torch", emission: 14, passable: true})
	block.Register(block.GlowstoneBlockID, &LightSourceBehavior{id: block.GlowstoneBlockID, name: "Glowstone", emission: 15})

	// Блоки с формой
	block.Register(block.StoneStairsBlockID, &StairsBehavior{id: block.StoneStairsBlockID, name: "Stone Stairs"})
	block.Register(block.StoneSlabBlockID, &SlabBehavior{id: block.StoneSlabBlockID, name: "Stone Slab"})
	block.Register(block.SnowLayerBlockID, &SnowLayerBehavior{})
}
