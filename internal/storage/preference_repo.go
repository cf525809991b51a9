package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/annel0/spawnlight/internal/logging"
	"github.com/annel0/spawnlight/internal/overlay"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// PreferenceRepo хранит настройки оверлея наблюдателей между подключениями
type PreferenceRepo interface {
	overlay.PreferenceStore
	Delete(ctx context.Context, id uuid.UUID) error
}

// MemoryPreferenceRepo реализует PreferenceRepo в памяти.
// Используется, когда Redis не настроен.
type MemoryPreferenceRepo struct {
	mu   sync.RWMutex
	data map[uuid.UUID]overlay.Preference
}

var _ PreferenceRepo = (*MemoryPreferenceRepo)(nil)

// NewMemoryPreferenceRepo создаёт пустой репозиторий настроек
func NewMemoryPreferenceRepo() *MemoryPreferenceRepo {
	return &MemoryPreferenceRepo{data: make(map[uuid.UUID]overlay.Preference)}
}

// Load возвращает сохранённые настройки
func (r *MemoryPreferenceRepo) Load(ctx context.Context, id uuid.UUID) (overlay.Preference, bool, error) {
	if err := ctx.Err(); err != nil {
		return overlay.Preference{}, false, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	pref, ok := r.data[id]
	return pref, ok, nil
}

// Save сохраняет настройки
func (r *MemoryPreferenceRepo) Save(ctx context.Context, id uuid.UUID, pref overlay.Preference) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[id] = pref
	return nil
}

// Delete удаляет настройки наблюдателя
func (r *MemoryPreferenceRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.data, id)
	return nil
}

// RedisConfig содержит настройки подключения к Redis
type RedisConfig struct {
	Addr      string        // Адрес Redis сервера
	Password  string        // Пароль (пустой если не требуется)
	DB        int           // Номер базы данных
	KeyPrefix string        // Префикс для ключей
	TTL       time.Duration // Время жизни записей (0 означает бессрочно)
}

// DefaultRedisConfig возвращает конфигурацию по умолчанию
func DefaultRedisConfig() *RedisConfig {
	return &RedisConfig{
		Addr:      "localhost:6379",
		KeyPrefix: "spawnlight:pref:",
		TTL:       30 * 24 * time.Hour,
	}
}

// RedisPreferenceRepo хранит настройки в Redis в виде JSON
type RedisPreferenceRepo struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

var _ PreferenceRepo = (*RedisPreferenceRepo)(nil)

// NewRedisPreferenceRepo подключается к Redis и проверяет соединение
func NewRedisPreferenceRepo(ctx context.Context, config *RedisConfig) (*RedisPreferenceRepo, error) {
	if config == nil {
		config = DefaultRedisConfig()
	}

	client := redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.DB,
	})

	// Проверяем подключение
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logging.GetStorageLogger().Info("🔴 Connected to Redis at %s", config.Addr)
	return &RedisPreferenceRepo{
		client:    client,
		keyPrefix: config.KeyPrefix,
		ttl:       config.TTL,
	}, nil
}

func (r *RedisPreferenceRepo) key(id uuid.UUID) string {
	return r.keyPrefix + id.String()
}

// Load читает настройки; отсутствие ключа не считается ошибкой
func (r *RedisPreferenceRepo) Load(ctx context.Context, id uuid.UUID) (overlay.Preference, bool, error) {
	data, err := r.client.Get(ctx, r.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return overlay.Preference{}, false, nil
	}
	if err != nil {
		return overlay.Preference{}, false, fmt.Errorf("redis get: %w", err)
	}

	var pref overlay.Preference
	if err := json.Unmarshal(data, &pref); err != nil {
		return overlay.Preference{}, false, fmt.Errorf("повреждённые настройки %s: %w", id, err)
	}
	return pref, true, nil
}

// Save записывает настройки и продлевает TTL
func (r *RedisPreferenceRepo) Save(ctx context.Context, id uuid.UUID, pref overlay.Preference) error {
	data, err := json.Marshal(pref)
	if err != nil {
		return fmt.Errorf("ошибка сериализации настроек: %w", err)
	}
	if err := r.client.Set(ctx, r.key(id), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Delete удаляет настройки
func (r *RedisPreferenceRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.client.Del(ctx, r.key(id)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

// Close закрывает соединение с Redis
func (r *RedisPreferenceRepo) Close() error {
	return r.client.Close()
}
