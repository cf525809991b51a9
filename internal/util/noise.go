package util

import (
	"github.com/aquilax/go-perlin"
)

// Параметры шума по умолчанию
const (
	noiseAlpha   = 2.0 // Сглаживание шума
	noiseBeta    = 2.0 // Частота шума
	noiseOctaves = 3   // Количество октав
)

// Noise генератор двумерного шума Перлина со своим сидом.
// Значения нормализованы в диапазон [0, 1].
type Noise struct {
	seed   int64
	perlin *perlin.Perlin
}

// NewNoise создаёт генератор шума для указанного сида
func NewNoise(seed int64) *Noise {
	return &Noise{
		seed:   seed,
		perlin: perlin.NewPerlin(noiseAlpha, noiseBeta, noiseOctaves, seed),
	}
}

// Seed возвращает сид генератора
func (n *Noise) Seed() int64 {
	return n.seed
}

// At возвращает значение шума в точке (от 0 до 1)
func (n *Noise) At(x, y float64) float64 {
	v := (n.perlin.Noise2D(x, y) + 1.0) / 2.0
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
