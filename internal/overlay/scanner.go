package overlay

import (
	"iter"
	"math"

	"github.com/annel0/spawnlight/internal/vec"
)

// Смещение точки над поверхностью, чтобы не сливалась с гранью блока
const (
	horizontalCenter = 0.5
	surfaceNudge     = 0.2
)

// Point одна точка оверлея, найденная сканированием
type Point struct {
	Offset vec.Vec3 // смещение от позиции наблюдателя
	Block  vec.Vec3 // мировая позиция поверхности
	Risk   SpawnRisk
	Color  RGB
	Height float64 // доля высоты блока, см. HeightOffset
}

// WorldPosition возвращает координаты точки в мире: центр блока по горизонтали,
// верх формы блока плюс небольшой подъём
func (p Point) WorldPosition() vec.Vec3Float {
	return vec.Vec3Float{
		X: float64(p.Block.X) + horizontalCenter,
		Y: float64(p.Block.Y) + p.Height + surfaceNudge,
		Z: float64(p.Block.Z) + horizontalCenter,
	}
}

// Scan перебирает сферу радиуса radius вокруг origin и возвращает точки,
// на которых может появиться моб. Последовательность ленивая и одноразовая:
// каждый вызов Scan перечитывает мир. При radius <= 0 последовательность пуста.
func Scan(src BlockSource, origin vec.Vec3, radius int, mode Mode) iter.Seq[Point] {
	return func(yield func(Point) bool) {
		if radius <= 0 || src == nil {
			return
		}
		r := float64(radius)

		for z := -radius; z <= radius; z++ {
			for x := -radius; x <= radius; x++ {
				for y := -radius; y <= radius; y++ {
					// Граница включительно: отбрасываем только строго дальше радиуса
					if math.Sqrt(float64(x*x+y*y+z*z)) > r {
						continue
					}

					offset := vec.Vec3{X: x, Y: y, Z: z}
					point, ok := evaluate(src, origin.Add(offset), mode)
					if !ok {
						continue
					}
					point.Offset = offset
					if !yield(point) {
						return
					}
				}
			}
		}
	}
}

// evaluate проверяет одну позицию и строит точку
func evaluate(src BlockSource, pos vec.Vec3, mode Mode) (Point, bool) {
	if !ValidSurface(src, pos) {
		return Point{}, false
	}

	above := src.Light(pos.Up(1))
	risk := ClassifySample(above)
	color, ok := ColorFor(mode, risk, above.BlockLight)
	if !ok {
		return Point{}, false
	}

	return Point{
		Block:  pos,
		Risk:   risk,
		Color:  color,
		Height: HeightOffset(src.Shape(pos)),
	}, true
}
