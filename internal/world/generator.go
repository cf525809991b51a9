package world

import (
	"math/rand"

	"github.com/annel0/spawnlight/internal/util"
	"github.com/annel0/spawnlight/internal/vec"
	"github.com/annel0/spawnlight/internal/world/block"
)

// WorldGenerator генерирует ландшафт по карте высот из шума Перлина
type WorldGenerator struct {
	Seed        int64   // Сид для генерации шума
	NoiseScale  float64 // Масштаб шума (сглаженность ландшафта)
	BaseHeight  int     // Минимальная высота поверхности над низом мира
	Amplitude   float64 // Размах высот
	SnowLine    int     // Начиная с этой высоты поверхность покрывается снегом
	TorchChance float64 // Вероятность факела на поверхности
	StairChance float64 // Вероятность ступени на поверхности
	SlabChance  float64 // Вероятность плиты на поверхности

	noise *util.Noise
}

// NewWorldGenerator создаёт новый генератор мира
func NewWorldGenerator(seed int64) *WorldGenerator {
	return &WorldGenerator{
		Seed:        seed,
		NoiseScale:  0.05,
		BaseHeight:  6,
		Amplitude:   14,
		SnowLine:    17,
		TorchChance: 0.01,
		StairChance: 0.02,
		SlabChance:  0.02,
		noise:       util.NewNoise(seed),
	}
}

// Generate заполняет мир секциями в квадрате radiusChunks вокруг начала координат
// и в диапазоне секций [minCY, maxCY] по вертикали, затем пересчитывает свет
func (wg *WorldGenerator) Generate(w *WorldManager, radiusChunks, minCY, maxCY int) {
	if radiusChunks < 0 || maxCY < minCY {
		return
	}

	for cy := minCY; cy <= maxCY; cy++ {
		for cz := -radiusChunks; cz <= radiusChunks; cz++ {
			for cx := -radiusChunks; cx <= radiusChunks; cx++ {
				coords := vec.Vec3{X: cx, Y: cy, Z: cz}
				if _, ok := w.GetChunk(coords); !ok {
					w.AddChunk(NewChunk(coords))
				}
			}
		}
	}

	minY := minCY * ChunkSize
	maxY := maxCY*ChunkSize + ChunkSize - 1
	from := -radiusChunks * ChunkSize
	to := radiusChunks*ChunkSize + ChunkSize - 1

	for z := from; z <= to; z++ {
		for x := from; x <= to; x++ {
			wg.generateColumn(w, vec.Vec2{X: x, Y: z}, minY, maxY)
		}
	}

	w.RecalculateLight()
}

// SurfaceHeight возвращает высоту поверхности столбца относительно низа мира
func (wg *WorldGenerator) SurfaceHeight(column vec.Vec2) int {
	n := wg.noise.At(float64(column.X)*wg.NoiseScale, float64(column.Y)*wg.NoiseScale)
	return wg.BaseHeight + int(n*wg.Amplitude)
}

func (wg *WorldGenerator) generateColumn(w *WorldManager, column vec.Vec2, minY, maxY int) {
	// Отдельный генератор случайных чисел на столбец для детерминированности
	rng := rand.New(rand.NewSource(wg.columnSeed(column)))

	surface := minY + wg.SurfaceHeight(column)
	// Над поверхностью оставляем место под декор и две клетки воздуха
	if surface > maxY-3 {
		surface = maxY - 3
	}
	if surface < minY+1 {
		surface = minY + 1
	}

	w.SetBlockID(column.At(minY), block.BedrockBlockID)
	for y := minY + 1; y <= surface; y++ {
		id := block.StoneBlockID
		switch {
		case y == surface:
			id = block.GrassBlockID
		case y >= surface-3:
			id = block.DirtBlockID
		}
		w.SetBlockID(column.At(y), id)
	}

	top := column.At(surface + 1)
	if surface-minY >= wg.SnowLine {
		w.SetBlockWithMetadata(top, block.SnowLayerBlockID, block.Metadata{"layers": 1 + rng.Intn(8)})
		return
	}

	roll := rng.Float64()
	switch {
	case roll < wg.TorchChance:
		w.SetBlockID(top, block.TorchBlockID)
	case roll < wg.TorchChance+wg.StairChance:
		half := "bottom"
		if rng.Intn(2) == 1 {
			half = "top"
		}
		facings := [...]string{"north", "east", "south", "west"}
		w.SetBlockWithMetadata(top, block.StoneStairsBlockID, block.Metadata{
			"half":   half,
			"facing": facings[rng.Intn(len(facings))],
		})
	case roll < wg.TorchChance+wg.StairChance+wg.SlabChance:
		types := [...]string{"bottom", "top", "double"}
		w.SetBlockWithMetadata(top, block.StoneSlabBlockID, block.Metadata{"type": types[rng.Intn(len(types))]})
	}
}

func (wg *WorldGenerator) columnSeed(column vec.Vec2) int64 {
	return wg.Seed ^ int64(column.X)*73856093 ^ int64(column.Y)*19349663
}
