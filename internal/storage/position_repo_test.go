package storage

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/annel0/spawnlight/internal/vec"
	"github.com/google/uuid"
)

// TestMemoryPositionRepo тестирует in-memory репозиторий позиций
func TestMemoryPositionRepo(t *testing.T) {
	repo := NewMemoryPositionRepo()
	ctx := context.Background()

	t.Run("Save and Load", func(t *testing.T) {
		id := uuid.New()
		expectedPos := vec.Vec3Float{X: 10.5, Y: 64, Z: -3.25}

		if err := repo.Save(ctx, id, expectedPos); err != nil {
			t.Fatalf("Ошибка сохранения позиции: %v", err)
		}

		actualPos, found, err := repo.Load(ctx, id)
		if err != nil {
			t.Fatalf("Ошибка загрузки позиции: %v", err)
		}
		if !found {
			t.Fatal("Позиция не найдена")
		}
		if actualPos != expectedPos {
			t.Errorf("Неверная позиция: ожидалась %+v, получена %+v", expectedPos, actualPos)
		}
	})

	t.Run("Load Unknown Observer", func(t *testing.T) {
		pos, found, err := repo.Load(ctx, uuid.New())
		if err != nil {
			t.Fatalf("Ошибка при загрузке неизвестного наблюдателя: %v", err)
		}
		if found {
			t.Error("Позиция найдена для неизвестного наблюдателя")
		}
		if pos != (vec.Vec3Float{}) {
			t.Errorf("Ожидалась пустая позиция, получена: %+v", pos)
		}
	})

	t.Run("Invalid Input", func(t *testing.T) {
		if err := repo.Save(ctx, uuid.Nil, vec.Vec3Float{}); err == nil {
			t.Error("Ожидалась ошибка для пустого ID")
		}
		if err := repo.Save(ctx, uuid.New(), vec.Vec3Float{X: math.NaN()}); err == nil {
			t.Error("Ожидалась ошибка для NaN")
		}
		if err := repo.Save(ctx, uuid.New(), vec.Vec3Float{X: 1e19}); err == nil {
			t.Error("Ожидалась ошибка для координаты за пределами мира")
		}
		if err := repo.Save(ctx, uuid.New(), vec.Vec3Float{Z: -MaxCoordinate}); err != nil {
			t.Errorf("Граничная координата отклонена: %v", err)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		id := uuid.New()
		if err := repo.Save(ctx, id, vec.Vec3Float{X: 1}); err != nil {
			t.Fatalf("Ошибка сохранения: %v", err)
		}
		if err := repo.Delete(ctx, id); err != nil {
			t.Fatalf("Ошибка удаления: %v", err)
		}
		if _, found := repo.Get(id); found {
			t.Error("Позиция не удалена")
		}
		if err := repo.Delete(ctx, id); !errors.Is(err, ErrNotFound) {
			t.Errorf("Ожидалась ErrNotFound, получено: %v", err)
		}
	})

	t.Run("Batch Save", func(t *testing.T) {
		before := repo.Count()
		batch := map[uuid.UUID]vec.Vec3Float{
			uuid.New(): {X: 1, Y: 2, Z: 3},
			uuid.New(): {X: 4, Y: 5, Z: 6},
		}
		if err := repo.BatchSave(ctx, batch); err != nil {
			t.Fatalf("Ошибка batch сохранения: %v", err)
		}
		if repo.Count() != before+2 {
			t.Errorf("Ожидалось %d позиций, получено %d", before+2, repo.Count())
		}

		bad := map[uuid.UUID]vec.Vec3Float{
			uuid.New(): {X: 1},
			uuid.Nil:   {X: 2},
		}
		if err := repo.BatchSave(ctx, bad); err == nil {
			t.Error("Ожидалась ошибка для batch с пустым ID")
		}
		if repo.Count() != before+2 {
			t.Error("Невалидный batch не должен сохраняться частично")
		}
	})

	t.Run("Cancelled Context", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		if err := repo.Save(cancelled, uuid.New(), vec.Vec3Float{}); !errors.Is(err, context.Canceled) {
			t.Errorf("Ожидалась context.Canceled, получено: %v", err)
		}
	})
}
