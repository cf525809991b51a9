package storage

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/annel0/spawnlight/internal/vec"
	"github.com/google/uuid"
)

// MemoryPositionRepo реализует PositionRepo в памяти.
// Данные теряются при перезапуске сервера, что для живых позиций и нужно.
type MemoryPositionRepo struct {
	mu   sync.RWMutex
	data map[uuid.UUID]vec.Vec3Float
}

var _ PositionRepo = (*MemoryPositionRepo)(nil)

// NewMemoryPositionRepo создает новый репозиторий позиций в памяти
func NewMemoryPositionRepo() *MemoryPositionRepo {
	return &MemoryPositionRepo{
		data: make(map[uuid.UUID]vec.Vec3Float),
	}
}

// MaxCoordinate предел координаты наблюдателя по модулю
const MaxCoordinate = 3e7

func validatePosition(id uuid.UUID, pos vec.Vec3Float) error {
	if id == uuid.Nil {
		return fmt.Errorf("недействительный ID наблюдателя")
	}
	for _, c := range [...]float64{pos.X, pos.Y, pos.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return fmt.Errorf("недействительная позиция %+v для %s", pos, id)
		}
		if math.Abs(c) > MaxCoordinate {
			return fmt.Errorf("позиция %+v для %s за пределами мира", pos, id)
		}
	}
	return nil
}

// Save сохраняет позицию наблюдателя в памяти
func (r *MemoryPositionRepo) Save(ctx context.Context, id uuid.UUID, pos vec.Vec3Float) error {
	if err := validatePosition(id, pos); err != nil {
		return err
	}

	// Проверяем контекст на отмену
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.data[id] = pos
	return nil
}

// Load загружает позицию наблюдателя из памяти
func (r *MemoryPositionRepo) Load(ctx context.Context, id uuid.UUID) (vec.Vec3Float, bool, error) {
	if err := ctx.Err(); err != nil {
		return vec.Vec3Float{}, false, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	pos, exists := r.data[id]
	return pos, exists, nil
}

// Get то же, что Load, без контекста (для горячего пути оверлея)
func (r *MemoryPositionRepo) Get(id uuid.UUID) (vec.Vec3Float, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	pos, exists := r.data[id]
	return pos, exists
}

// Delete удаляет позицию наблюдателя. Для отсутствующей записи возвращает ErrNotFound.
func (r *MemoryPositionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.data[id]; !exists {
		return fmt.Errorf("позиция наблюдателя %s: %w", id, ErrNotFound)
	}

	delete(r.data, id)
	return nil
}

// BatchSave сохраняет позиции нескольких наблюдателей; при ошибке валидации не сохраняет ничего
func (r *MemoryPositionRepo) BatchSave(ctx context.Context, positions map[uuid.UUID]vec.Vec3Float) error {
	if len(positions) == 0 {
		return nil // Нечего сохранять
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	for id, pos := range positions {
		if err := validatePosition(id, pos); err != nil {
			return fmt.Errorf("batch: %w", err)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for id, pos := range positions {
		r.data[id] = pos
	}
	return nil
}

// Count возвращает количество сохраненных позиций
func (r *MemoryPositionRepo) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.data)
}
