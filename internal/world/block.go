package world

import (
	"maps"

	"github.com/annel0/spawnlight/internal/world/block"
)

// Block пара "тип + состояние" в одной позиции мира
type Block struct {
	ID      block.BlockID
	Payload block.Metadata // состояние: половина ступени, тип плиты, число слоёв снега
}

// NewBlock создаёт блок с метаданными по умолчанию из его поведения.
// Для незарегистрированного ID метаданные пустые.
func NewBlock(id block.BlockID) Block {
	b := Block{ID: id, Payload: block.Metadata{}}
	if behavior, ok := block.Get(id); ok {
		b.Payload = behavior.CreateMetadata()
	}
	return b
}

// NewBlockWithMetadata создаёт блок, дополняя метаданные по умолчанию переданными значениями
func NewBlockWithMetadata(id block.BlockID, meta block.Metadata) Block {
	b := NewBlock(id)
	maps.Copy(b.Payload, meta)
	return b
}

// GetBehavior возвращает поведение для блока
func (b Block) GetBehavior() (block.BlockBehavior, bool) {
	return block.Get(b.ID)
}

// Shape возвращает форму блока; неизвестный блок считается кубом
func (b Block) Shape() block.Shape {
	if behavior, ok := b.GetBehavior(); ok {
		return behavior.Shape(b.Payload)
	}
	return block.Cube()
}

// Passable сообщает, можно ли пройти сквозь блок; неизвестный блок проходим
func (b Block) Passable() bool {
	if behavior, ok := b.GetBehavior(); ok {
		return behavior.Passable(b.Payload)
	}
	return true
}
