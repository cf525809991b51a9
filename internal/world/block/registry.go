package block

import (
	"sort"
	"strings"
)

var registry = make(map[BlockID]BlockBehavior)

// Register добавляет поведение блока в регистр
func Register(id BlockID, behavior BlockBehavior) {
	registry[id] = behavior
}

// Get возвращает поведение для указанного ID
func Get(id BlockID) (BlockBehavior, bool) {
	behavior, exists := registry[id]
	return behavior, exists
}

// IsValidBlockID проверяет, является ли ID допустимым идентификатором блока
func IsValidBlockID(id BlockID) bool {
	_, exists := registry[id]
	return exists
}

// ByName ищет блок по имени без учёта регистра ("stone", "Stone Slab")
func ByName(name string) (BlockBehavior, bool) {
	for _, behavior := range registry {
		if strings.EqualFold(behavior.Name(), name) {
			return behavior, true
		}
	}
	return nil, false
}

// IDs возвращает отсортированный список зарегистрированных ID
func IDs() []BlockID {
	ids := make([]BlockID, 0, len(registry))
	for id := range registry {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// BlockID представляет идентификатор блока
type BlockID uint16

// Константы ID блоков
const (
	// Базовые типы блоков
	AirBlockID     BlockID = iota // 0
	StoneBlockID                  // 1
	GrassBlockID                  // 2
	WaterBlockID                  // 3
	SandBlockID                   // 4
	DirtBlockID                   // 5
	CaveAirBlockID                // 6 - воздух пещер, для спавна ведёт себя как обычный воздух
	BedrockBlockID                // 7

	// Прозрачные и светящиеся блоки (начиная с 100)
	GlassBlockID     BlockID = 100
	LeavesBlockID    BlockID = 101
	TorchBlockID     BlockID = 102
	GlowstoneBlockID BlockID = 103

	// Блоки с формой (начиная с 200)
	StoneStairsBlockID BlockID = 200
	StoneSlabBlockID   BlockID = 201
	SnowLayerBlockID   BlockID = 202
)
