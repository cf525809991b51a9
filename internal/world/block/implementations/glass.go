package implementations

import (
	"github.com/annel0/spawnlight/internal/world/block"
)

// TransparentBehavior твёрдый, но прозрачный блок (стекло, листва).
// Моб на нём не появляется, но блок не перекрывает место над поверхностью.
type TransparentBehavior struct {
	id   block.BlockID
	name string
}

func (b *TransparentBehavior) ID() block.BlockID { return b.id }

func (b *TransparentBehavior) Name() string { return b.name }

func (b *TransparentBehavior) Passable(block.Metadata) bool { return false }

func (b *TransparentBehavior) SpawnValue() block.SpawnValue { return block.SpawnTransparent }

func (b *TransparentBehavior) Shape(block.Metadata) block.Shape { return block.Cube() }

func (b *TransparentBehavior) Opaque() bool { return false }

func (b *TransparentBehavior) LightEmission() uint8 { return 0 }

func (b *TransparentBehavior) CreateMetadata() block.Metadata { return block.Metadata{} }
