package world

import (
	"sort"
	"sync"

	"github.com/annel0/spawnlight/internal/overlay"
	"github.com/annel0/spawnlight/internal/vec"
	"github.com/annel0/spawnlight/internal/world/block"
	"github.com/annel0/spawnlight/internal/world/block/implementations"
)

// maxLight максимальный уровень света
const maxLight = 15

// WorldManager хранит загруженные секции мира и отвечает на запросы оверлея.
// Незагруженные позиции читаются как воздух под открытым небом.
type WorldManager struct {
	name   string
	seed   int64
	chunks map[vec.Vec3]*Chunk
	mu     sync.RWMutex
}

var _ overlay.BlockSource = (*WorldManager)(nil)

// NewWorldManager создаёт пустой мир
func NewWorldManager(name string, seed int64) *WorldManager {
	return &WorldManager{
		name:   name,
		seed:   seed,
		chunks: make(map[vec.Vec3]*Chunk),
	}
}

// Name возвращает имя мира
func (wm *WorldManager) Name() string {
	return wm.name
}

// Seed возвращает сид генерации
func (wm *WorldManager) Seed() int64 {
	return wm.seed
}

// AddChunk добавляет (или заменяет) секцию
func (wm *WorldManager) AddChunk(c *Chunk) {
	wm.mu.Lock()
	defer wm.mu.Unlock()
	wm.chunks[c.Coords] = c
}

// GetChunk возвращает секцию по координатам секции
func (wm *WorldManager) GetChunk(coords vec.Vec3) (*Chunk, bool) {
	wm.mu.RLock()
	defer wm.mu.RUnlock()
	c, ok := wm.chunks[coords]
	return c, ok
}

// Chunks возвращает все загруженные секции в детерминированном порядке
func (wm *WorldManager) Chunks() []*Chunk {
	wm.mu.RLock()
	out := make([]*Chunk, 0, len(wm.chunks))
	for _, c := range wm.chunks {
		out = append(out, c)
	}
	wm.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].Coords, out[j].Coords
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		if a.Z != b.Z {
			return a.Z < b.Z
		}
		return a.X < b.X
	})
	return out
}

// ChunkCount возвращает число загруженных секций
func (wm *WorldManager) ChunkCount() int {
	wm.mu.RLock()
	defer wm.mu.RUnlock()
	return len(wm.chunks)
}

// GetBlock возвращает блок в мировой позиции
func (wm *WorldManager) GetBlock(pos vec.Vec3) Block {
	c, ok := wm.GetChunk(pos.ToChunkCoords())
	if !ok {
		return Block{ID: block.AirBlockID, Payload: block.Metadata{}}
	}
	local := pos.LocalInChunk()
	return Block{ID: c.GetBlock(local), Payload: c.GetBlockMetadata(local)}
}

// SetBlock устанавливает блок, создавая секцию при необходимости.
// Освещение не пересчитывается: после серии изменений вызовите RecalculateLight.
func (wm *WorldManager) SetBlock(pos vec.Vec3, b Block) {
	coords := pos.ToChunkCoords()

	wm.mu.Lock()
	c, ok := wm.chunks[coords]
	if !ok {
		c = NewChunk(coords)
		wm.chunks[coords] = c
	}
	wm.mu.Unlock()

	c.SetBlock(pos.LocalInChunk(), b)
}

// SetBlockID устанавливает блок с метаданными по умолчанию
func (wm *WorldManager) SetBlockID(pos vec.Vec3, id block.BlockID) {
	wm.SetBlock(pos, NewBlock(id))
}

// SetBlockWithMetadata устанавливает блок, дополняя метаданные по умолчанию
func (wm *WorldManager) SetBlockWithMetadata(pos vec.Vec3, id block.BlockID, meta block.Metadata) {
	wm.SetBlock(pos, NewBlockWithMetadata(id, meta))
}

// Shape реализует overlay.BlockSource
func (wm *WorldManager) Shape(pos vec.Vec3) block.Shape {
	return wm.GetBlock(pos).Shape()
}

// Passable реализует overlay.BlockSource
func (wm *WorldManager) Passable(pos vec.Vec3) bool {
	return wm.GetBlock(pos).Passable()
}

// Light реализует overlay.BlockSource
func (wm *WorldManager) Light(pos vec.Vec3) overlay.LightSample {
	c, ok := wm.GetChunk(pos.ToChunkCoords())
	if !ok {
		return overlay.LightSample{
			SkyLight:   maxLight,
			Passable:   true,
			Air:        true,
			SpawnValue: block.SpawnNever,
		}
	}

	local := pos.LocalInChunk()
	sky, blockLight := c.Light(local)
	b := Block{ID: c.GetBlock(local), Payload: c.GetBlockMetadata(local)}

	sample := overlay.LightSample{
		SkyLight:   sky,
		BlockLight: blockLight,
		Passable:   true,
		Air:        implementations.IsAir(b.ID),
		SpawnValue: block.SpawnNever,
	}
	if behavior, ok := b.GetBehavior(); ok {
		sample.Passable = behavior.Passable(b.Payload)
		sample.SpawnValue = behavior.SpawnValue()
	}
	return sample
}

// HighestSolid возвращает высоту самого верхнего непроходимого блока столбца
// в пределах загруженных секций; false, если столбец пуст
func (wm *WorldManager) HighestSolid(column vec.Vec2) (int, bool) {
	minY, maxY, ok := wm.verticalBounds()
	if !ok {
		return 0, false
	}
	for y := maxY; y >= minY; y-- {
		if !wm.Passable(column.At(y)) {
			return y, true
		}
	}
	return 0, false
}

// verticalBounds возвращает диапазон мировых Y загруженных секций
func (wm *WorldManager) verticalBounds() (minY, maxY int, ok bool) {
	wm.mu.RLock()
	defer wm.mu.RUnlock()

	first := true
	for coords := range wm.chunks {
		if first || coords.Y < minY {
			minY = coords.Y
		}
		if first || coords.Y > maxY {
			maxY = coords.Y
		}
		first = false
	}
	if first {
		return 0, 0, false
	}
	return minY * ChunkSize, maxY*ChunkSize + ChunkSize - 1, true
}
