package world

import (
	"fmt"

	"github.com/annel0/spawnlight/internal/vec"
	"github.com/annel0/spawnlight/internal/world/block"
)

// ChunkData сериализуемый снимок секции (без освещения: свет пересчитывается)
type ChunkData struct {
	Coords   vec.Vec3                  `json:"coords"`
	Blocks   []block.BlockID           `json:"blocks"`
	Metadata map[string]block.Metadata `json:"metadata,omitempty"` // ключ: "x:y:z" локально
}

// Export создаёт снимок секции
func (c *Chunk) Export() ChunkData {
	c.Mu.RLock()
	defer c.Mu.RUnlock()

	data := ChunkData{
		Coords: c.Coords,
		Blocks: append([]block.BlockID(nil), c.Blocks[:]...),
	}
	if len(c.Metadata) > 0 {
		data.Metadata = make(map[string]block.Metadata, len(c.Metadata))
		for local, meta := range c.Metadata {
			data.Metadata[fmt.Sprintf("%d:%d:%d", local.X, local.Y, local.Z)] = meta.Clone()
		}
	}
	return data
}

// ChunkFromData восстанавливает секцию из снимка
func ChunkFromData(data ChunkData) (*Chunk, error) {
	if len(data.Blocks) != chunkVolume {
		return nil, fmt.Errorf("некорректный размер секции %v: %d блоков", data.Coords, len(data.Blocks))
	}

	c := NewChunk(data.Coords)
	copy(c.Blocks[:], data.Blocks)

	for key, meta := range data.Metadata {
		var x, y, z int
		if _, err := fmt.Sscanf(key, "%d:%d:%d", &x, &y, &z); err != nil {
			return nil, fmt.Errorf("ошибка парсинга ключа '%s': %w", key, err)
		}
		if x < 0 || x >= ChunkSize || y < 0 || y >= ChunkSize || z < 0 || z >= ChunkSize {
			return nil, fmt.Errorf("некорректные координаты: %d,%d,%d", x, y, z)
		}
		c.Metadata[vec.Vec3{X: x, Y: y, Z: z}] = meta
	}
	return c, nil
}
