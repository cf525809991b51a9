package world

import (
	"sync"

	"github.com/annel0/spawnlight/internal/vec"
	"github.com/annel0/spawnlight/internal/world/block"
)

// ChunkSize размер секции по каждой оси
const ChunkSize = 16

const chunkVolume = ChunkSize * ChunkSize * ChunkSize

// Chunk представляет секцию мира 16x16x16 блоков вместе с освещением
type Chunk struct {
	Coords vec.Vec3 // Координаты секции (глобальные / 16)

	Blocks     [chunkVolume]block.BlockID
	Metadata   map[vec.Vec3]block.Metadata // ключ: локальные координаты
	SkyLight   [chunkVolume]uint8
	BlockLight [chunkVolume]uint8

	ChangeCounter int          // Счетчик изменений с последнего сохранения
	Mu            sync.RWMutex // Мьютекс для безопасного доступа
}

// NewChunk создаёт пустую (заполненную воздухом) секцию
func NewChunk(coords vec.Vec3) *Chunk {
	return &Chunk{
		Coords:   coords,
		Metadata: make(map[vec.Vec3]block.Metadata),
	}
}

// index переводит локальные координаты в индекс массива (Y-major)
func index(local vec.Vec3) int {
	return (local.Y << 8) | (local.Z << 4) | local.X
}

// localFromIndex обратное преобразование к index
func localFromIndex(i int) vec.Vec3 {
	return vec.Vec3{X: i & 0xF, Y: i >> 8, Z: (i >> 4) & 0xF}
}

// Origin возвращает мировые координаты блока (0,0,0) секции
func (c *Chunk) Origin() vec.Vec3 {
	return vec.Vec3{X: c.Coords.X * ChunkSize, Y: c.Coords.Y * ChunkSize, Z: c.Coords.Z * ChunkSize}
}

// GetBlock возвращает ID блока по локальным координатам
func (c *Chunk) GetBlock(local vec.Vec3) block.BlockID {
	c.Mu.RLock()
	defer c.Mu.RUnlock()
	return c.Blocks[index(local)]
}

// GetBlockMetadata возвращает копию метаданных блока
func (c *Chunk) GetBlockMetadata(local vec.Vec3) block.Metadata {
	c.Mu.RLock()
	defer c.Mu.RUnlock()

	if meta, exists := c.Metadata[local]; exists {
		return meta.Clone()
	}
	return block.Metadata{}
}

// SetBlock устанавливает блок по локальным координатам.
// Метаданные заменяются целиком; пустые метаданные не хранятся.
func (c *Chunk) SetBlock(local vec.Vec3, b Block) {
	c.Mu.Lock()
	defer c.Mu.Unlock()
	c.setBlockLocked(local, b)
}

func (c *Chunk) setBlockLocked(local vec.Vec3, b Block) {
	c.Blocks[index(local)] = b.ID
	if len(b.Payload) > 0 {
		c.Metadata[local] = b.Payload.Clone()
	} else {
		delete(c.Metadata, local)
	}
	c.ChangeCounter++
}

// Light возвращает свет неба и свет от блоков по локальным координатам
func (c *Chunk) Light(local vec.Vec3) (sky, blockLight uint8) {
	c.Mu.RLock()
	defer c.Mu.RUnlock()
	i := index(local)
	return c.SkyLight[i], c.BlockLight[i]
}

// IsEmpty возвращает true, если секция целиком из воздуха
func (c *Chunk) IsEmpty() bool {
	c.Mu.RLock()
	defer c.Mu.RUnlock()
	for _, id := range c.Blocks {
		if id != block.AirBlockID {
			return false
		}
	}
	return true
}

// HasChanges возвращает true, если в чанке есть изменения
func (c *Chunk) HasChanges() bool {
	c.Mu.RLock()
	defer c.Mu.RUnlock()
	return c.ChangeCounter > 0
}

// ClearChanges сбрасывает счетчик изменений
func (c *Chunk) ClearChanges() {
	c.Mu.Lock()
	defer c.Mu.Unlock()
	c.ChangeCounter = 0
}
