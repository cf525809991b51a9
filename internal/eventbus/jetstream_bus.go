package eventbus

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	nats "github.com/nats-io/nats.go"
)

// Заголовки NATS, в которых едут поля Envelope. Полезная нагрузка идёт телом сообщения как есть.
const (
	hdrSource      = "Spawnlight-Source"
	hdrType        = "Spawnlight-Type"
	hdrTime        = "Spawnlight-Time"
	hdrVersion     = "Spawnlight-Version"
	hdrPriority    = "Spawnlight-Priority"
	hdrCorrelation = "Spawnlight-Correlation"
	hdrMetaPrefix  = "Spawnlight-Meta-"
)

// subjectRoot корень subject'ов: overlay.<EventType>.<observer|_>
const subjectRoot = "overlay"

// JetStreamBus реализует EventBus поверх NATS JetStream.
// Кадры оверлея недолговечны, поэтому стрим хранится в памяти сервера NATS.
type JetStreamBus struct {
	nc     *nats.Conn
	js     nats.JetStreamContext
	stream string

	published atomic.Uint64
	consumed  atomic.Uint64
	dropped   atomic.Uint64
}

var _ EventBus = (*JetStreamBus)(nil)

// NewJetStreamBus подключается к кластеру NATS и гарантирует наличие стрима.
// url: nats://127.0.0.1:4222, stream: "OVERLAY".
func NewJetStreamBus(url, stream string, retention time.Duration) (*JetStreamBus, error) {
	if stream == "" {
		stream = "OVERLAY"
	}

	nc, err := nats.Connect(url, nats.Name("spawnlight"), nats.MaxReconnects(-1))
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}

	js, err := nc.JetStream()
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("jetstream: %w", err)
	}

	if _, err = js.StreamInfo(stream); err != nil {
		_, err = js.AddStream(&nats.StreamConfig{
			Name:      stream,
			Subjects:  []string{subjectRoot + ".>"},
			Retention: nats.LimitsPolicy,
			MaxAge:    retention,
			Storage:   nats.MemoryStorage,
			Discard:   nats.DiscardOld,
		})
		if err != nil {
			nc.Close()
			return nil, fmt.Errorf("add stream %s: %w", stream, err)
		}
	}

	return &JetStreamBus{nc: nc, js: js, stream: stream}, nil
}

// subjectFor строит subject события. Адресат из Metadata["observer"]
// попадает в subject, чтобы сервер NATS мог фильтровать по наблюдателю.
func subjectFor(ev *Envelope) string {
	observer := ev.Metadata["observer"]
	if observer == "" {
		observer = "_"
	}
	return fmt.Sprintf("%s.%s.%s", subjectRoot, ev.EventType, observer)
}

// subscribeSubject сужает подписку, когда фильтр задаёт ровно один тип
func subscribeSubject(f Filter) string {
	if len(f.Types) == 1 {
		return fmt.Sprintf("%s.%s.>", subjectRoot, f.Types[0])
	}
	return subjectRoot + ".>"
}

func envelopeToMsg(ev *Envelope) *nats.Msg {
	msg := nats.NewMsg(subjectFor(ev))
	msg.Data = ev.Payload
	msg.Header.Set(hdrSource, ev.Source)
	msg.Header.Set(hdrType, ev.EventType)
	msg.Header.Set(hdrTime, ev.Timestamp.Format(time.RFC3339Nano))
	msg.Header.Set(hdrVersion, strconv.Itoa(ev.Version))
	msg.Header.Set(hdrPriority, strconv.Itoa(ev.Priority))
	if ev.CorrelationID != "" {
		msg.Header.Set(hdrCorrelation, ev.CorrelationID)
	}
	for k, v := range ev.Metadata {
		msg.Header.Set(hdrMetaPrefix+k, v)
	}
	return msg
}

func envelopeFromMsg(msg *nats.Msg) (*Envelope, error) {
	h := msg.Header
	ev := &Envelope{
		ID:            h.Get(nats.MsgIdHdr),
		Source:        h.Get(hdrSource),
		EventType:     h.Get(hdrType),
		CorrelationID: h.Get(hdrCorrelation),
		Payload:       msg.Data,
		Metadata:      make(map[string]string),
	}
	if ev.EventType == "" {
		return nil, fmt.Errorf("сообщение %s без типа события", msg.Subject)
	}

	var err error
	if ev.Timestamp, err = time.Parse(time.RFC3339Nano, h.Get(hdrTime)); err != nil {
		return nil, fmt.Errorf("время события: %w", err)
	}
	if ev.Version, err = strconv.Atoi(h.Get(hdrVersion)); err != nil {
		return nil, fmt.Errorf("версия события: %w", err)
	}
	ev.Priority, _ = strconv.Atoi(h.Get(hdrPriority))

	for key, values := range h {
		// после передачи по сети ключ может прийти в каноническом виде
		if name, ok := strings.CutPrefix(key, hdrMetaPrefix); ok && len(values) > 0 {
			ev.Metadata[strings.ToLower(name)] = values[0]
		}
	}
	return ev, nil
}

// Publish публикует Envelope: поля в заголовках, Payload телом сообщения.
// ID события служит ключом дедупликации JetStream.
func (jb *JetStreamBus) Publish(ctx context.Context, ev *Envelope) error {
	msg := envelopeToMsg(ev)
	if _, err := jb.js.PublishMsg(msg, nats.Context(ctx), nats.MsgId(ev.ID)); err != nil {
		jb.dropped.Add(1)
		return fmt.Errorf("jetstream publish %s: %w", msg.Subject, err)
	}
	jb.published.Add(1)
	return nil
}

// Subscribe создаёт эфемерный упорядоченный consumer, получающий только новые события.
func (jb *JetStreamBus) Subscribe(ctx context.Context, f Filter, h Handler) (Subscription, error) {
	subj := subscribeSubject(f)

	natSub, err := jb.js.Subscribe(subj, func(msg *nats.Msg) {
		ev, err := envelopeFromMsg(msg)
		if err != nil {
			jb.dropped.Add(1)
			return
		}
		if matchFilter(ev, f) {
			h(ctx, ev)
			jb.consumed.Add(1)
		}
	}, nats.OrderedConsumer(), nats.DeliverNew())
	if err != nil {
		return nil, fmt.Errorf("jetstream subscribe %s: %w", subj, err)
	}

	return &jetSub{natSub}, nil
}

// jetSub обёртка вокруг *nats.Subscription чтобы удовлетворить наш интерфейс.
type jetSub struct {
	s *nats.Subscription
}

func (j *jetSub) Unsubscribe() {
	_ = j.s.Unsubscribe()
}

// Metrics возвращает текущие метрики.
func (jb *JetStreamBus) Metrics() Stats {
	return Stats{
		Published: jb.published.Load(),
		Consumed:  jb.consumed.Load(),
		Dropped:   jb.dropped.Load(),
	}
}

// Close дожидается доставки и закрывает соединение
func (jb *JetStreamBus) Close() error {
	return jb.nc.Drain()
}
