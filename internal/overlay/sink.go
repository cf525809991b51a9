package overlay

import (
	"fmt"

	"github.com/google/uuid"
)

// RGB цвет точки оверлея
type RGB struct {
	R, G, B uint8
}

func (c RGB) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Sink принимает точки оверлея. Доставку выполняет реализация.
type Sink interface {
	Emit(addressee uuid.UUID, x, y, z float64, c RGB)
}

// Flusher необязательное расширение Sink: вызывается после завершения прохода
type Flusher interface {
	Flush(addressee uuid.UUID) error
}
