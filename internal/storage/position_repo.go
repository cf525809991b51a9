package storage

import (
	"context"

	"github.com/annel0/spawnlight/internal/vec"
	"github.com/google/uuid"
)

// PositionRepo хранит текущие позиции наблюдателей.
// Позиция привязана к ID наблюдателя и живёт, пока он подключён.
type PositionRepo interface {
	// Save сохраняет позицию наблюдателя
	Save(ctx context.Context, id uuid.UUID, pos vec.Vec3Float) error

	// Load возвращает позицию; false, если наблюдатель неизвестен
	Load(ctx context.Context, id uuid.UUID) (vec.Vec3Float, bool, error)

	// Delete удаляет позицию (наблюдатель отключился)
	Delete(ctx context.Context, id uuid.UUID) error

	// BatchSave сохраняет позиции нескольких наблюдателей одновременно
	BatchSave(ctx context.Context, positions map[uuid.UUID]vec.Vec3Float) error
}
