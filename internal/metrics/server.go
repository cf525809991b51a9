package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/annel0/spawnlight/internal/logging"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server отдаёт /metrics и /healthz
type Server struct {
	srv *http.Server
}

// NewServer создаёт HTTP-сервер метрик для набора gatherer
func NewServer(addr string, gatherer prometheus.Gatherer) *Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	return &Server{srv: &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}}
}

// Handler возвращает HTTP-обработчик сервера
func (s *Server) Handler() http.Handler {
	return s.srv.Handler
}

// Start запускает сервер в отдельной горутине
func (s *Server) Start() {
	go func() {
		logging.Info("📈 Prometheus /metrics доступен по адресу %s", s.srv.Addr)
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Error("Ошибка Prometheus HTTP сервера: %v", err)
		}
	}()
}

// Shutdown останавливает сервер
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
