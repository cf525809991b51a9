package storage

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/annel0/spawnlight/internal/overlay"
)

func testPreferenceRepo(t *testing.T, repo PreferenceRepo) {
	ctx := context.Background()
	id := uuid.New()

	_, found, err := repo.Load(ctx, id)
	require.NoError(t, err)
	assert.False(t, found)

	want := overlay.Preference{Mode: overlay.ModeLightLevel, Enabled: true}
	require.NoError(t, repo.Save(ctx, id, want))

	got, found, err := repo.Load(ctx, id)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, want, got)

	require.NoError(t, repo.Delete(ctx, id))
	_, found, err = repo.Load(ctx, id)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMemoryPreferenceRepo(t *testing.T) {
	testPreferenceRepo(t, NewMemoryPreferenceRepo())
}

func TestRedisPreferenceRepo(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR не задан, пропускаем тест Redis")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	repo, err := NewRedisPreferenceRepo(ctx, &RedisConfig{
		Addr:      addr,
		KeyPrefix: "spawnlight:test:" + uuid.NewString() + ":",
		TTL:       time.Minute,
	})
	require.NoError(t, err)
	defer repo.Close()

	testPreferenceRepo(t, repo)
}

func TestPreferenceRepo_WithProjector(t *testing.T) {
	repo := NewMemoryPreferenceRepo()
	id := uuid.New()
	locator := overlay.LocatorFunc(func(uuid.UUID) (overlay.Observer, bool) { return overlay.Observer{}, false })
	sink := nopSink{}

	first := overlay.NewProjector(overlay.Settings{Radius: 2}, locator, sink, overlay.WithPreferences(repo))
	first.Ensure(context.Background(), id).SetMode(overlay.ModeAll)

	second := overlay.NewProjector(overlay.Settings{Radius: 2}, locator, sink, overlay.WithPreferences(repo))
	assert.Equal(t, overlay.ModeAll, second.Ensure(context.Background(), id).Mode(), "режим восстанавливается после переподключения")
}

type nopSink struct{}

func (nopSink) Emit(uuid.UUID, float64, float64, float64, overlay.RGB) {}
