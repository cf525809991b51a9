package eventbus

import (
	"context"

	"github.com/annel0/spawnlight/internal/logging"
)

// StartLoggingListener подписывается на события и пишет их в отладочный лог.
// Пустой список типов означает все события. Функция неблокирующая.
func StartLoggingListener(ctx context.Context, bus EventBus, types ...string) (Subscription, error) {
	sub, err := bus.Subscribe(ctx, Filter{Types: types}, func(ctx context.Context, ev *Envelope) {
		logging.Debug("[EventBus] %s %s src=%s observer=%s size=%dB", ev.ID, ev.EventType, ev.Source, ev.Metadata["observer"], len(ev.Payload))
	})
	if err != nil {
		return nil, err
	}
	logging.Info("🪵 LoggingListener: подписка на события активирована")
	return sub, nil
}
