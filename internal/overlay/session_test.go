package overlay

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/annel0/spawnlight/internal/vec"
)

type sessionFixture struct {
	projector *Projector
	sink      *fakeSink
	locator   *fakeLocator
	prefs     *fakePrefs
	id        uuid.UUID
	session   *Session
}

func newSessionFixture(t *testing.T) *sessionFixture {
	t.Helper()

	f := &sessionFixture{
		sink:    newFakeSink(),
		locator: newFakeLocator(),
		prefs:   newFakePrefs(),
		id:      uuid.New(),
	}
	f.projector = NewProjector(
		Settings{Radius: 4, DefaultMode: ModeSpawnable},
		f.locator, f.sink,
		WithPreferences(f.prefs),
	)
	f.locator.set(f.id, Observer{Position: vec.Vec3Float{X: 0.3, Y: 0, Z: 0.7}, World: floorWorld()})
	f.session = f.projector.Ensure(context.Background(), f.id)
	return f
}

func TestSession_InitialState(t *testing.T) {
	f := newSessionFixture(t)

	assert.False(t, f.session.IsEnabled(), "оверлей изначально выключен")
	assert.Equal(t, ModeSpawnable, f.session.Mode())
	assert.Equal(t, f.id, f.session.ID())

	assert.Equal(t, StatusIdle, f.session.Update())
	assert.Zero(t, f.sink.count(f.id), "выключенная сессия ничего не рисует")
}

func TestSession_ShowRendersImmediately(t *testing.T) {
	f := newSessionFixture(t)

	assert.Equal(t, StatusRendered, f.session.Show())
	assert.True(t, f.session.IsEnabled())
	require.Equal(t, 1, f.sink.count(f.id))
	assert.Equal(t, 1, f.sink.flushCount(f.id))

	p := f.sink.points[f.id][0]
	assert.InDelta(t, 0.5, p.X, 1e-9)
	assert.InDelta(t, 0.2, p.Y, 1e-9)
	assert.InDelta(t, 0.5, p.Z, 1e-9)
	assert.Equal(t, ColorRed, p.Color)
}

func TestSession_TogglePreviousState(t *testing.T) {
	f := newSessionFixture(t)

	assert.False(t, f.session.Toggle(), "возвращается состояние до переключения")
	assert.True(t, f.session.IsEnabled())
	assert.Equal(t, 1, f.sink.count(f.id), "включение сразу рисует кадр")

	assert.True(t, f.session.Toggle())
	assert.False(t, f.session.IsEnabled())

	for i := 1; i <= 7; i++ {
		f.session.Toggle()
		assert.Equal(t, i%2 == 1, f.session.IsEnabled(), "после %d переключений", i)
	}
}

func TestSession_HideIsIdempotent(t *testing.T) {
	f := newSessionFixture(t)

	f.session.Hide()
	assert.Zero(t, f.prefs.saveCount(), "скрытие уже скрытого оверлея ничего не сохраняет")

	f.session.Show()
	saves := f.prefs.saveCount()
	f.session.Hide()
	f.session.Hide()
	assert.Equal(t, saves+1, f.prefs.saveCount())
	assert.False(t, f.session.IsEnabled())
}

func TestSession_CycleMode(t *testing.T) {
	f := newSessionFixture(t)

	assert.Equal(t, ModeAll, f.session.CycleMode())
	assert.Equal(t, ModeLightLevel, f.session.CycleMode())
	assert.Equal(t, ModeSpawnable, f.session.CycleMode())

	f.session.SetMode(ModeLightLevel)
	assert.Equal(t, ModeLightLevel, f.session.Mode())

	f.session.SetMode(Mode(99))
	assert.Equal(t, ModeLightLevel, f.session.Mode(), "недопустимый режим игнорируется")

	pref := f.prefs.stored[f.id]
	assert.Equal(t, ModeLightLevel, pref.Mode)
}

func TestSession_ModeAffectsNextUpdate(t *testing.T) {
	f := newSessionFixture(t)
	w := floorWorld()
	w.light(vec.Vec3{}, 12, 0)
	f.locator.set(f.id, Observer{World: w})

	f.session.Show()
	assert.Zero(t, f.sink.count(f.id), "освещённая поверхность скрыта в режиме spawnable")

	f.session.SetMode(ModeAll)
	assert.Equal(t, StatusRendered, f.session.Update())
	require.Equal(t, 1, f.sink.count(f.id))
	assert.Equal(t, ColorGreen, f.sink.points[f.id][0].Color)
}

func TestSession_MissingObserverRemovesSession(t *testing.T) {
	f := newSessionFixture(t)
	f.session.Show()

	f.locator.drop(f.id)
	assert.Equal(t, StatusRemoved, f.session.Update())

	_, ok := f.projector.Session(f.id)
	assert.False(t, ok)
	assert.Zero(t, f.projector.Len())
}

func TestSession_FollowsObserver(t *testing.T) {
	f := newSessionFixture(t)
	f.session.Show()
	require.Equal(t, 1, f.sink.count(f.id))

	// Наблюдатель ушёл далеко: блок вне радиуса
	f.locator.set(f.id, Observer{Position: vec.Vec3Float{X: 50, Y: 0, Z: 0}, World: floorWorld()})
	assert.Equal(t, StatusRendered, f.session.Update())
	assert.Equal(t, 1, f.sink.count(f.id), "новых точек нет")
	assert.Equal(t, 2, f.sink.flushCount(f.id))
}

func TestSession_FlushErrorDoesNotFailUpdate(t *testing.T) {
	f := newSessionFixture(t)
	f.sink.flushErr = errFlush

	assert.Equal(t, StatusRendered, f.session.Show())
	assert.True(t, f.session.IsEnabled())
}

func TestSession_SlowPreferenceStoreDoesNotBlockUpdate(t *testing.T) {
	f := newSessionFixture(t)
	require.Equal(t, StatusRendered, f.session.Show())
	f.prefs.gate = make(chan struct{})

	hidden := make(chan struct{})
	go func() {
		f.session.Hide()
		close(hidden)
	}()
	require.Eventually(t, func() bool { return !f.session.IsEnabled() }, time.Second, time.Millisecond)

	updated := make(chan UpdateStatus, 1)
	go func() { updated <- f.session.Update() }()

	select {
	case status := <-updated:
		assert.Equal(t, StatusIdle, status)
	case <-time.After(time.Second):
		t.Fatal("Update ждёт сохранения настроек")
	}

	close(f.prefs.gate)
	<-hidden
	assert.False(t, f.prefs.stored[f.id].Enabled)
}
