package render

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/annel0/spawnlight/internal/eventbus"
	"github.com/annel0/spawnlight/internal/overlay"
	"github.com/google/uuid"
)

// publishTimeout ограничивает публикацию одного кадра
const publishTimeout = 2 * time.Second

// Source имя источника событий оверлея в шине
const Source = "overlay"

// BusSink копит точки прохода по адресатам и на Flush публикует
// один ParticleBatch в шину событий
type BusSink struct {
	bus   eventbus.EventBus
	codec *Codec

	mu      sync.Mutex
	pending map[uuid.UUID][]Particle
	seq     map[uuid.UUID]uint64
}

var (
	_ overlay.Sink    = (*BusSink)(nil)
	_ overlay.Flusher = (*BusSink)(nil)
)

// NewBusSink создаёт sink поверх шины событий
func NewBusSink(bus eventbus.EventBus, codec *Codec) *BusSink {
	return &BusSink{
		bus:     bus,
		codec:   codec,
		pending: make(map[uuid.UUID][]Particle),
		seq:     make(map[uuid.UUID]uint64),
	}
}

// Emit добавляет точку в текущий кадр адресата
func (s *BusSink) Emit(addressee uuid.UUID, x, y, z float64, c overlay.RGB) {
	s.mu.Lock()
	s.pending[addressee] = append(s.pending[addressee], Particle{X: x, Y: y, Z: z, Color: c})
	s.mu.Unlock()
}

// Flush публикует накопленный кадр. Пустой кадр тоже отправляется:
// клиент должен стереть точки предыдущего прохода.
func (s *BusSink) Flush(addressee uuid.UUID) error {
	s.mu.Lock()
	particles := s.pending[addressee]
	delete(s.pending, addressee)
	s.seq[addressee]++
	seq := s.seq[addressee]
	s.mu.Unlock()

	payload, err := s.codec.EncodeBatch(ParticleBatch{
		Observer:  addressee,
		Sequence:  seq,
		Particles: particles,
	})
	if err != nil {
		return fmt.Errorf("кодирование кадра: %w", err)
	}

	ev := eventbus.NewEnvelope(Source, EventParticleBatch, payload)
	ev.Priority = 3
	ev.Metadata["observer"] = addressee.String()
	ev.Metadata["points"] = strconv.Itoa(len(particles))

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()
	if err := s.bus.Publish(ctx, ev); err != nil {
		return fmt.Errorf("публикация кадра: %w", err)
	}
	return nil
}

// Forget удаляет состояние адресата (при отключении)
func (s *BusSink) Forget(addressee uuid.UUID) {
	s.mu.Lock()
	delete(s.pending, addressee)
	delete(s.seq, addressee)
	s.mu.Unlock()
}

// SubscribeBatches подписывается на кадры оверлея и вызывает fn для каждого
// успешно декодированного кадра. Повреждённые кадры передаются в onError, если он задан.
func SubscribeBatches(ctx context.Context, bus eventbus.EventBus, codec *Codec, fn func(ParticleBatch), onError func(error)) (eventbus.Subscription, error) {
	return bus.Subscribe(ctx, eventbus.Filter{Types: []string{EventParticleBatch}}, func(_ context.Context, ev *eventbus.Envelope) {
		batch, err := codec.DecodeBatch(ev.Payload)
		if err != nil {
			if onError != nil {
				onError(fmt.Errorf("событие %s: %w", ev.ID, err))
			}
			return
		}
		fn(batch)
	})
}
