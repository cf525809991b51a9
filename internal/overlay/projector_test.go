package overlay

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestProjector_EnsureReturnsSameSession(t *testing.T) {
	p := NewProjector(Settings{Radius: 4, DefaultMode: ModeAll}, newFakeLocator(), newFakeSink())
	id := uuid.New()

	a := p.Ensure(context.Background(), id)
	b := p.Ensure(context.Background(), id)
	assert.Same(t, a, b, "на наблюдателя ровно одна сессия")
	assert.Equal(t, 1, p.Len())
	assert.Equal(t, ModeAll, a.Mode(), "режим по умолчанию из настроек")

	assert.True(t, p.Remove(id))
	assert.False(t, p.Remove(id))
	assert.Zero(t, p.Len())
}

func TestProjector_RestoresPreference(t *testing.T) {
	prefs := newFakePrefs()
	id := uuid.New()
	prefs.stored[id] = Preference{Mode: ModeLightLevel, Enabled: true}

	p := NewProjector(Settings{Radius: 4}, newFakeLocator(), newFakeSink(), WithPreferences(prefs))
	s := p.Ensure(context.Background(), id)
	assert.Equal(t, ModeLightLevel, s.Mode())
	assert.True(t, s.IsEnabled())
}

func TestProjector_PreferenceErrorFallsBackToDefault(t *testing.T) {
	prefs := newFakePrefs()
	prefs.loadErr = errors.New("хранилище недоступно")

	p := NewProjector(Settings{Radius: 4, DefaultMode: ModeAll}, newFakeLocator(), newFakeSink(), WithPreferences(prefs))
	s := p.Ensure(context.Background(), uuid.New())
	assert.Equal(t, ModeAll, s.Mode())
	assert.False(t, s.IsEnabled())
}

func TestProjector_SetSettings(t *testing.T) {
	p := NewProjector(Settings{Radius: 4, DefaultMode: Mode(200)}, newFakeLocator(), newFakeSink())
	assert.Equal(t, ModeSpawnable, p.Settings().DefaultMode, "недопустимый режим заменяется на spawnable")

	p.SetSettings(Settings{Radius: 9, DefaultMode: ModeLightLevel})
	assert.Equal(t, Settings{Radius: 9, DefaultMode: ModeLightLevel}, p.Settings())
}

func TestProjector_RadiusSnapshotPerScan(t *testing.T) {
	sink := newFakeSink()
	locator := newFakeLocator()
	id := uuid.New()
	locator.set(id, Observer{World: floorWorld()})

	p := NewProjector(Settings{Radius: 4}, locator, sink)
	s := p.Ensure(context.Background(), id)
	s.Show()
	require.Equal(t, 1, sink.count(id))

	p.SetSettings(Settings{Radius: 0})
	assert.Equal(t, StatusRendered, s.Update())
	assert.Equal(t, 1, sink.count(id), "нулевой радиус не даёт точек")
}

func TestProjector_UpdateAll(t *testing.T) {
	sink := newFakeSink()
	locator := newFakeLocator()
	rec := &countingRecorder{}
	p := NewProjector(Settings{Radius: 4}, locator, sink, WithRecorder(rec))

	visible, hidden, gone := uuid.New(), uuid.New(), uuid.New()
	locator.set(visible, Observer{World: floorWorld()})
	locator.set(hidden, Observer{World: floorWorld()})
	locator.set(gone, Observer{World: floorWorld()})

	p.Ensure(context.Background(), visible).Show()
	p.Ensure(context.Background(), hidden)
	p.Ensure(context.Background(), gone).Show()
	require.Equal(t, 3, p.Len())

	locator.drop(gone)
	summary := p.UpdateAll(context.Background())
	assert.Equal(t, UpdateSummary{Rendered: 1, Idle: 1, Removed: 1}, summary)

	assert.Equal(t, 2, p.Len())
	assert.ElementsMatch(t, []uuid.UUID{visible, hidden}, p.IDs())
	assert.Equal(t, 2, sink.count(visible))
	assert.Zero(t, sink.count(hidden))

	rec.mu.Lock()
	defer rec.mu.Unlock()
	assert.Equal(t, 1, rec.removed)
	assert.Equal(t, 2, rec.active)
	assert.Equal(t, 3, rec.scans)
	assert.Equal(t, 3, rec.points)
}

func TestProjector_Run(t *testing.T) {
	sink := newFakeSink()
	locator := newFakeLocator()
	id := uuid.New()
	locator.set(id, Observer{World: floorWorld()})

	p := NewProjector(Settings{Radius: 4}, locator, sink)
	p.Ensure(context.Background(), id).Show()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Run(ctx, 5*time.Millisecond)
		close(done)
	}()

	require.Eventually(t, func() bool { return sink.count(id) >= 3 }, time.Second, 5*time.Millisecond)

	locator.drop(id)
	require.Eventually(t, func() bool { return p.Len() == 0 }, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run не завершился после отмены контекста")
	}
}

func TestProjector_IDsSorted(t *testing.T) {
	p := NewProjector(Settings{Radius: 1}, newFakeLocator(), newFakeSink())
	for i := 0; i < 5; i++ {
		p.Ensure(context.Background(), uuid.New())
	}
	ids := p.IDs()
	require.Len(t, ids, 5)
	for i := 1; i < len(ids); i++ {
		assert.Less(t, ids[i-1].String(), ids[i].String())
	}
}

func TestProjector_UpdateAllSpan(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	locator := newFakeLocator()
	id := uuid.New()
	locator.set(id, Observer{World: floorWorld()})

	p := NewProjector(Settings{Radius: 4}, locator, newFakeSink(), WithTracer(tp.Tracer("test")))
	p.Ensure(context.Background(), id).Show()
	p.UpdateAll(context.Background())

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "overlay.UpdateAll", spans[0].Name())

	attrs := map[string]int64{}
	for _, kv := range spans[0].Attributes() {
		attrs[string(kv.Key)] = kv.Value.AsInt64()
	}
	assert.Equal(t, int64(1), attrs["overlay.sessions"])
	assert.Equal(t, int64(1), attrs["overlay.rendered"])
}
