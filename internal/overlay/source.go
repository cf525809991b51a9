package overlay

import (
	"github.com/annel0/spawnlight/internal/vec"
	"github.com/annel0/spawnlight/internal/world/block"
	"github.com/google/uuid"
)

// LightSample снимок освещения и свойств материала в одной позиции
type LightSample struct {
	SkyLight   uint8 // 0..15
	BlockLight uint8 // 0..15
	Passable   bool
	Air        bool // воздух или воздух пещер
	SpawnValue block.SpawnValue
}

// Transparent материал не перекрывает место для моба
func (s LightSample) Transparent() bool {
	return s.SpawnValue == block.SpawnTransparent
}

// BlockSource доступ к данным мира только на чтение.
// Незагруженные позиции должны читаться как воздух.
type BlockSource interface {
	Shape(pos vec.Vec3) block.Shape
	Light(pos vec.Vec3) LightSample
	Passable(pos vec.Vec3) bool
}

// Observer текущее положение наблюдателя и мир, в котором он находится
type Observer struct {
	Position vec.Vec3Float
	World    BlockSource
}

// ObserverLocator находит наблюдателя по ID. Возвращает false, если наблюдатель сейчас недоступен (вышел).
type ObserverLocator interface {
	Locate(id uuid.UUID) (Observer, bool)
}

// LocatorFunc адаптирует функцию к ObserverLocator
type LocatorFunc func(id uuid.UUID) (Observer, bool)

// Locate вызывает f(id)
func (f LocatorFunc) Locate(id uuid.UUID) (Observer, bool) { return f(id) }

// Settings снимок конфигурации, читается перед каждым сканированием
type Settings struct {
	Radius      int
	DefaultMode Mode
}
