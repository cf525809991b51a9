package world

import (
	"github.com/annel0/spawnlight/internal/vec"
	"github.com/annel0/spawnlight/internal/world/block"
)

var neighbours = [...]vec.Vec3{
	{X: 1}, {X: -1},
	{Y: 1}, {Y: -1},
	{Z: 1}, {Z: -1},
}

// lightProps кэширует свойства блоков, нужные расчёту света
type lightProps struct {
	opaque   map[block.BlockID]bool
	emission map[block.BlockID]uint8
}

func newLightProps() lightProps {
	props := lightProps{
		opaque:   make(map[block.BlockID]bool),
		emission: make(map[block.BlockID]uint8),
	}
	for _, id := range block.IDs() {
		behavior, _ := block.Get(id)
		props.opaque[id] = behavior.Opaque()
		if e := behavior.LightEmission(); e > 0 {
			props.emission[id] = e
		}
	}
	return props
}

// RecalculateLight полностью пересчитывает освещение загруженных секций.
//
// Свет неба: в каждом столбце от верха загруженного объёма вниз уровень 15
// до первого непрозрачного блока. Затем свет неба и свет источников
// растекается в ширину с потерей 1 уровня на шаг; непрозрачные блоки его гасят.
func (wm *WorldManager) RecalculateLight() {
	wm.mu.Lock()
	defer wm.mu.Unlock()

	if len(wm.chunks) == 0 {
		return
	}

	for _, c := range wm.chunks {
		c.Mu.Lock()
	}
	defer func() {
		for _, c := range wm.chunks {
			c.Mu.Unlock()
		}
	}()

	props := newLightProps()

	// Верхняя секция каждого столбца и общий низ
	tops := make(map[vec.Vec2]int)
	minCY := 0
	first := true
	for coords, c := range wm.chunks {
		c.SkyLight = [chunkVolume]uint8{}
		c.BlockLight = [chunkVolume]uint8{}

		col := vec.Vec2{X: coords.X, Y: coords.Z}
		if top, ok := tops[col]; !ok || coords.Y > top {
			tops[col] = coords.Y
		}
		if first || coords.Y < minCY {
			minCY = coords.Y
		}
		first = false
	}

	var skyQueue []vec.Vec3
	for col, topCY := range tops {
		for lz := 0; lz < ChunkSize; lz++ {
			for lx := 0; lx < ChunkSize; lx++ {
				x := col.X*ChunkSize + lx
				z := col.Y*ChunkSize + lz
				for y := topCY*ChunkSize + ChunkSize - 1; y >= minCY*ChunkSize; y-- {
					pos := vec.Vec3{X: x, Y: y, Z: z}
					c, ok := wm.chunks[pos.ToChunkCoords()]
					if !ok {
						// Пропуск в загруженном объёме: открытое небо
						continue
					}
					i := index(pos.LocalInChunk())
					if props.opaque[c.Blocks[i]] {
						break
					}
					c.SkyLight[i] = maxLight
					skyQueue = append(skyQueue, pos)
				}
			}
		}
	}

	var blockQueue []vec.Vec3
	for coords, c := range wm.chunks {
		if len(props.emission) == 0 {
			break
		}
		origin := vec.Vec3{X: coords.X * ChunkSize, Y: coords.Y * ChunkSize, Z: coords.Z * ChunkSize}
		for i, id := range c.Blocks {
			if e, ok := props.emission[id]; ok {
				c.BlockLight[i] = e
				blockQueue = append(blockQueue, origin.Add(localFromIndex(i)))
			}
		}
	}

	wm.propagate(skyQueue, props, func(c *Chunk) *[chunkVolume]uint8 { return &c.SkyLight })
	wm.propagate(blockQueue, props, func(c *Chunk) *[chunkVolume]uint8 { return &c.BlockLight })
}

// propagate растекает свет из очереди источников (BFS). Вызывается под wm.mu.
func (wm *WorldManager) propagate(queue []vec.Vec3, props lightProps, layer func(*Chunk) *[chunkVolume]uint8) {
	for head := 0; head < len(queue); head++ {
		pos := queue[head]
		c := wm.chunks[pos.ToChunkCoords()]
		level := layer(c)[index(pos.LocalInChunk())]
		if level <= 1 {
			continue
		}

		for _, d := range neighbours {
			n := pos.Add(d)
			nc, ok := wm.chunks[n.ToChunkCoords()]
			if !ok {
				continue
			}
			ni := index(n.LocalInChunk())
			if props.opaque[nc.Blocks[ni]] {
				continue
			}
			if layer(nc)[ni] >= level-1 {
				continue
			}
			layer(nc)[ni] = level - 1
			queue = append(queue, n)
		}
	}
}
