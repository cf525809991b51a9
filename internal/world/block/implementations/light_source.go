package implementations

import (
	"github.com/annel0/spawnlight/internal/world/block"
)

// LightSourceBehavior блок, излучающий свет.
// Факел проходим, светокамень является твёрдым прозрачный куб.
type LightSourceBehavior struct {
	id       block.BlockID
	name     string
	emission uint8
	passable bool
}

func (b *LightSourceBehavior) ID() block.BlockID { return b.id }

func (b *LightSourceBehavior) Name() string { return b.name }

func (b *LightSourceBehavior) Passable(block.Metadata) bool { return b.passable }

func (b *LightSourceBehavior) SpawnValue() block.SpawnValue { return block.SpawnTransparent }

func (b *LightSourceBehavior) Shape(block.Metadata) block.Shape { return block.Cube() }

// Opaque возвращает false: источник света не гасит собственный свет
func (b *LightSourceBehavior) Opaque() bool { return false }

func (b *LightSourceBehavior) LightEmission() uint8 { return b.emission }

func (b *LightSourceBehavior) CreateMetadata() block.Metadata { return block.Metadata{} }
