package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"github.com/annel0/spawnlight/internal/logging"
)

// RequestLogger снабжает каждый HTTP-запрос trace-ID и пишет краткие логи.
type RequestLogger struct {
	logger *logging.Logger
}

// NewRequestLogger создаёт middleware; при nil пишет в глобальный логгер
func NewRequestLogger(logger *logging.Logger) *RequestLogger {
	return &RequestLogger{logger: logger}
}

func (rl *RequestLogger) log() *logging.Logger {
	if rl.logger != nil {
		return rl.logger
	}
	return logging.Default()
}

// TraceID возвращает trace-ID активного спана или новый UUID
func TraceID(r *http.Request) string {
	span := trace.SpanFromContext(r.Context())
	if span.SpanContext().IsValid() {
		return span.SpanContext().TraceID().String()
	}
	return uuid.NewString()
}

// Handler оборачивает next журналированием запроса
func (rl *RequestLogger) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := TraceID(r)
		w.Header().Set("X-Trace-ID", traceID)

		start := time.Now()
		rl.log().Debug("[HTTP] ▶ %s %s ip=%s trace=%s", r.Method, r.URL.Path, r.RemoteAddr, traceID)

		sw := newStatusWriter(w)
		next.ServeHTTP(sw, r)

		rl.log().Info("[HTTP] ◀ %s %s %d %s trace=%s", r.Method, r.URL.Path, sw.status, time.Since(start), traceID)
	})
}
