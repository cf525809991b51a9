package vec

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVec3FloatFloor(t *testing.T) {
	assert.Equal(t, Vec3{X: 1, Y: 64, Z: -1}, Vec3Float{X: 1.9, Y: 64.0, Z: -0.5}.Floor())
	assert.Equal(t, Vec3{X: -2, Y: -1, Z: 0}, Vec3Float{X: -1.01, Y: -0.0001, Z: 0.99}.Floor())
}

func TestVec3ChunkCoords(t *testing.T) {
	p := Vec3{X: -1, Y: 17, Z: 31}

	assert.Equal(t, Vec3{X: -1, Y: 1, Z: 1}, p.ToChunkCoords())
	assert.Equal(t, Vec3{X: 15, Y: 1, Z: 15}, p.LocalInChunk())
}

func TestVec3Length(t *testing.T) {
	assert.InDelta(t, 3.0, Vec3{X: 1, Y: 2, Z: 2}.Length(), 1e-9)
	assert.InDelta(t, math.Sqrt(3), Vec3{X: 1, Y: 1, Z: 1}.DistanceTo(Vec3{}), 1e-9)
	assert.Equal(t, Vec3{X: 4, Y: 7, Z: 4}, Vec3{X: 4, Y: 5, Z: 4}.Up(2))
}
