package overlay

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/annel0/spawnlight/internal/vec"
	"github.com/annel0/spawnlight/internal/world/block"
	"github.com/google/uuid"
)

// cell одна позиция тестового мира
type cell struct {
	shape  block.Shape
	sample LightSample
}

// fakeWorld разреженный мир в памяти; всё незаданное считается воздухом с небом 15
type fakeWorld struct {
	cells   map[vec.Vec3]cell
	ambient LightSample
}

func newFakeWorld() *fakeWorld {
	return &fakeWorld{
		cells:   make(map[vec.Vec3]cell),
		ambient: LightSample{SkyLight: 15, Passable: true, Air: true},
	}
}

// solid ставит непроходимый куб с материалом SpawnAlways
func (w *fakeWorld) solid(pos vec.Vec3) {
	w.put(pos, block.Cube(), block.SpawnAlways)
}

func (w *fakeWorld) put(pos vec.Vec3, shape block.Shape, sv block.SpawnValue) {
	w.cells[pos] = cell{shape: shape, sample: LightSample{SpawnValue: sv}}
}

// light задаёт освещение воздуха в позиции
func (w *fakeWorld) light(pos vec.Vec3, blockLight, skyLight uint8) {
	w.cells[pos] = cell{
		shape:  block.Cube(),
		sample: LightSample{SkyLight: skyLight, BlockLight: blockLight, Passable: true, Air: true},
	}
}

func (w *fakeWorld) Shape(pos vec.Vec3) block.Shape {
	if c, ok := w.cells[pos]; ok {
		return c.shape
	}
	return block.Cube()
}

func (w *fakeWorld) Light(pos vec.Vec3) LightSample {
	if c, ok := w.cells[pos]; ok {
		return c.sample
	}
	return w.ambient
}

func (w *fakeWorld) Passable(pos vec.Vec3) bool {
	return w.Light(pos).Passable
}

// emitted одна точка, полученная sink'ом
type emitted struct {
	X, Y, Z float64
	Color   RGB
}

// fakeSink запоминает точки и вызовы Flush по адресатам
type fakeSink struct {
	mu       sync.Mutex
	points   map[uuid.UUID][]emitted
	flushes  map[uuid.UUID]int
	flushErr error
}

func newFakeSink() *fakeSink {
	return &fakeSink{
		points:  make(map[uuid.UUID][]emitted),
		flushes: make(map[uuid.UUID]int),
	}
}

func (s *fakeSink) Emit(addressee uuid.UUID, x, y, z float64, c RGB) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.points[addressee] = append(s.points[addressee], emitted{X: x, Y: y, Z: z, Color: c})
}

func (s *fakeSink) Flush(addressee uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flushes[addressee]++
	return s.flushErr
}

func (s *fakeSink) count(id uuid.UUID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.points[id])
}

func (s *fakeSink) flushCount(id uuid.UUID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flushes[id]
}

// fakeLocator наблюдатели, которых можно добавлять и убирать на лету
type fakeLocator struct {
	mu        sync.Mutex
	observers map[uuid.UUID]Observer
}

func newFakeLocator() *fakeLocator {
	return &fakeLocator{observers: make(map[uuid.UUID]Observer)}
}

func (l *fakeLocator) set(id uuid.UUID, obs Observer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.observers[id] = obs
}

func (l *fakeLocator) drop(id uuid.UUID) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.observers, id)
}

func (l *fakeLocator) Locate(id uuid.UUID) (Observer, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	obs, ok := l.observers[id]
	return obs, ok
}

// fakePrefs хранилище настроек со счётчиком записей
type fakePrefs struct {
	mu      sync.Mutex
	stored  map[uuid.UUID]Preference
	saves   int
	loadErr error
	// gate, если задан, задерживает Save до закрытия канала
	gate chan struct{}
}

func newFakePrefs() *fakePrefs {
	return &fakePrefs{stored: make(map[uuid.UUID]Preference)}
}

func (f *fakePrefs) Load(_ context.Context, id uuid.UUID) (Preference, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.loadErr != nil {
		return Preference{}, false, f.loadErr
	}
	pref, ok := f.stored[id]
	return pref, ok, nil
}

func (f *fakePrefs) Save(_ context.Context, id uuid.UUID, pref Preference) error {
	if f.gate != nil {
		<-f.gate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stored[id] = pref
	f.saves++
	return nil
}

func (f *fakePrefs) saveCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.saves
}

// countingRecorder считает вызовы Recorder
type countingRecorder struct {
	mu      sync.Mutex
	scans   int
	points  int
	active  int
	removed int
}

func (r *countingRecorder) ScanCompleted(_ Mode, points int, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scans++
	r.points += points
}

func (r *countingRecorder) SessionsChanged(active int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.active = active
}

func (r *countingRecorder) SessionRemoved() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.removed++
}

var errFlush = errors.New("канал закрыт")

// floorWorld мир с одним каменным блоком под наблюдателем в (0,0,0)
func floorWorld() *fakeWorld {
	w := newFakeWorld()
	w.solid(vec.Vec3{X: 0, Y: -1, Z: 0})
	w.light(vec.Vec3{X: 0, Y: 0, Z: 0}, 0, 0)
	return w
}
