package vec

import "math"

// Vec3 представляет трехмерный вектор с целочисленными координатами.
// Y вертикальная ось.
type Vec3 struct {
	X int `json:"x"`
	Y int `json:"y"`
	Z int `json:"z"`
}

// Vec3Float представляет трехмерный вектор с плавающими координатами
type Vec3Float struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Up возвращает позицию на n блоков выше
func (v Vec3) Up(n int) Vec3 {
	return Vec3{X: v.X, Y: v.Y + n, Z: v.Z}
}

// Length возвращает евклидову длину вектора
func (v Vec3) Length() float64 {
	return math.Sqrt(float64(v.X*v.X + v.Y*v.Y + v.Z*v.Z))
}

// DistanceTo возвращает евклидово расстояние до другого вектора
func (v Vec3) DistanceTo(other Vec3) float64 {
	return v.Sub(other).Length()
}

// Equals проверяет равенство векторов
func (v Vec3) Equals(other Vec3) bool {
	return v.X == other.X && v.Y == other.Y && v.Z == other.Z
}

// Add складывает два вектора
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{
		X: v.X + other.X,
		Y: v.Y + other.Y,
		Z: v.Z + other.Z,
	}
}

// Sub вычитает вектор
func (v Vec3) Sub(other Vec3) Vec3 {
	return Vec3{
		X: v.X - other.X,
		Y: v.Y - other.Y,
		Z: v.Z - other.Z,
	}
}

// ToChunkCoords преобразует глобальные координаты в координаты секции 16x16x16
func (v Vec3) ToChunkCoords() Vec3 {
	return Vec3{X: v.X >> 4, Y: v.Y >> 4, Z: v.Z >> 4} // Деление на 16
}

// LocalInChunk возвращает локальные координаты внутри секции
func (v Vec3) LocalInChunk() Vec3 {
	return Vec3{X: v.X & 0xF, Y: v.Y & 0xF, Z: v.Z & 0xF} // Модуль 16
}

// Column возвращает горизонтальную проекцию (X, Z)
func (v Vec3) Column() Vec2 {
	return Vec2{X: v.X, Y: v.Z}
}

// ToFloat преобразует в вектор с плавающими координатами
func (v Vec3) ToFloat() Vec3Float {
	return Vec3Float{X: float64(v.X), Y: float64(v.Y), Z: float64(v.Z)}
}

// Floor возвращает позицию блока, в котором находится точка.
// Округление идёт к минус бесконечности, поэтому -0.5 даёт блок -1.
func (v Vec3Float) Floor() Vec3 {
	return Vec3{
		X: int(math.Floor(v.X)),
		Y: int(math.Floor(v.Y)),
		Z: int(math.Floor(v.Z)),
	}
}

// Add складывает два вектора
func (v Vec3Float) Add(other Vec3Float) Vec3Float {
	return Vec3Float{X: v.X + other.X, Y: v.Y + other.Y, Z: v.Z + other.Z}
}
