package implementations

import (
	"github.com/annel0/spawnlight/internal/world/block"
)

// StairsBehavior реализует ступени.
// Метаданные: "half" = top|bottom, "facing" = north|east|south|west.
type StairsBehavior struct {
	id   block.BlockID
	name string
}

// ID возвращает идентификатор блока
func (b *StairsBehavior) ID() block.BlockID {
	return b.id
}

// Name возвращает имя блока
func (b *StairsBehavior) Name() string {
	return b.name
}

// Passable возвращает false
func (b *StairsBehavior) Passable(block.Metadata) bool {
	return false
}

// SpawnValue не используется для ступеней: проверка поверхности смотрит на ориентацию
func (b *StairsBehavior) SpawnValue() block.SpawnValue {
	return block.SpawnNever
}

// Shape читает ориентацию ступени из метаданных
func (b *StairsBehavior) Shape(meta block.Metadata) block.Shape {
	return block.Stair(
		block.ParseHalf(meta.String("half", "bottom")),
		block.ParseFacing(meta.String("facing", "north")),
	)
}

// Opaque возвращает false
func (b *StairsBehavior) Opaque() bool {
	return false
}

// LightEmission возвращает 0
func (b *StairsBehavior) LightEmission() uint8 {
	return 0
}

// CreateMetadata создает начальные метаданные: обычная (не перевёрнутая) ступень
func (b *StairsBehavior) CreateMetadata() block.Metadata {
	return block.Metadata{"half": "bottom", "facing": "north"}
}
