package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/annel0/spawnlight/internal/config"
	"github.com/annel0/spawnlight/internal/eventbus"
	"github.com/annel0/spawnlight/internal/logging"
	"github.com/annel0/spawnlight/internal/metrics"
	"github.com/annel0/spawnlight/internal/middleware"
	"github.com/annel0/spawnlight/internal/network"
	"github.com/annel0/spawnlight/internal/observability"
	"github.com/annel0/spawnlight/internal/overlay"
	"github.com/annel0/spawnlight/internal/render"
	"github.com/annel0/spawnlight/internal/storage"
	"github.com/annel0/spawnlight/internal/world"
)

func main() {
	configPath := flag.String("config", "", "путь к YAML конфигурации (по умолчанию $SPAWNLIGHT_CONFIG)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("❌ Ошибка загрузки конфигурации: %v", err)
	}

	if err := logging.InitDefaultLogger("server", logging.Options{Level: cfg.Logging.Level, File: cfg.Logging.File}); err != nil {
		log.Fatalf("❌ Ошибка инициализации логирования: %v", err)
	}
	defer logging.CloseDefaultLogger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		logging.Error("❌ %v", err)
		logging.CloseDefaultLogger()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	logging.Info("🔦 Запуск spawnlight: радиус=%d, режим=%s, период=%v",
		cfg.Overlay.Radius, cfg.Overlay.DefaultMode, cfg.Overlay.UpdateInterval())

	// === ТРАССИРОВКА ===
	if cfg.Telemetry.Enabled {
		shutdown, err := observability.InitTelemetry(ctx, observability.Options{
			ServiceName: cfg.Telemetry.ServiceName,
			Endpoint:    cfg.Telemetry.Endpoint,
			Insecure:    true,
			SampleRatio: cfg.Telemetry.SampleRatio,
		})
		if err != nil {
			logging.Warn("Трассировка отключена: %v", err)
		} else {
			defer func() {
				sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(sctx); err != nil {
					logging.Warn("Ошибка остановки трассировки: %v", err)
				}
			}()
		}
	}

	// === МИР ===
	wm, worldStore, err := openWorld(cfg)
	if err != nil {
		return err
	}
	defer worldStore.Close()

	// === НАСТРОЙКИ НАБЛЮДАТЕЛЕЙ ===
	prefs, closePrefs, err := openPreferences(ctx, cfg)
	if err != nil {
		return err
	}
	defer closePrefs()

	// === ШИНА СОБЫТИЙ ===
	bus, err := openBus(cfg)
	if err != nil {
		return err
	}
	defer bus.Close()

	if _, err := eventbus.StartLoggingListener(ctx, bus); err != nil {
		logging.Warn("LoggingListener не запущен: %v", err)
	}

	// === МЕТРИКИ ===
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	overlayMetrics := metrics.NewOverlayMetrics(registry)
	processMetrics := metrics.NewProcessMetrics(registry)
	busMetrics := eventbus.NewMetricsExporter(bus, registry)
	busMetrics.Start(10 * time.Second)
	defer busMetrics.Stop()

	metricsServer := metrics.NewServer(fmt.Sprintf(":%d", cfg.Server.GetMetricsPort()), registry)
	metricsServer.Start()

	// === ОВЕРЛЕЙ ===
	codec, err := render.NewCodec()
	if err != nil {
		return fmt.Errorf("создание кодека кадров: %w", err)
	}
	defer codec.Close()

	sink := render.NewBusSink(bus, codec)
	positions := storage.NewMemoryPositionRepo()
	gateway := network.NewGateway(wm, positions, bus, network.WithDisconnectHook(sink.Forget))

	projector := overlay.NewProjector(cfg.Overlay.Settings(), gateway, sink,
		overlay.WithPreferences(prefs),
		overlay.WithRecorder(overlayMetrics),
	)
	gateway.Bind(projector)

	if err := gateway.Start(ctx); err != nil {
		return fmt.Errorf("запуск шлюза: %w", err)
	}
	defer gateway.Stop()

	runDone := make(chan struct{})
	go func() {
		defer close(runDone)
		projector.Run(ctx, cfg.Overlay.UpdateInterval())
	}()

	mux := http.NewServeMux()
	mux.Handle("/ws", gateway)
	httpMetrics := middleware.NewPrometheusMiddleware("spawnlight", registry)
	requestLogger := middleware.NewRequestLogger(logging.Component("http"))
	wsServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.GetWSPort()),
		Handler:           requestLogger.Handler(httpMetrics.Handler(mux)),
		ReadHeaderTimeout: 5 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		if err := wsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	logging.Info("✅ Все сервисы запущены и готовы принимать соединения")
	logging.Info("   🌐 WebSocket: ws://localhost%s/ws", wsServer.Addr)
	logging.Info("   📈 Метрики: http://localhost:%d/metrics", cfg.Server.GetMetricsPort())

	var runErr error
	select {
	case <-ctx.Done():
		logging.Info("📡 Получен сигнал завершения, останавливаем сервисы...")
	case runErr = <-serveErr:
		runErr = fmt.Errorf("WebSocket сервер: %w", runErr)
	}

	// === GRACEFUL SHUTDOWN ===
	cancel()
	<-runDone

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := wsServer.Shutdown(shutdownCtx); err != nil {
		logging.Warn("Ошибка остановки WebSocket сервера: %v", err)
	}
	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		logging.Warn("Ошибка остановки сервера метрик: %v", err)
	}

	if saved, err := worldStore.SaveWorld(wm); err != nil {
		logging.Error("❌ Ошибка сохранения мира: %v", err)
	} else if saved > 0 {
		logging.Info("💾 Сохранено секций: %d", saved)
	}

	logging.Info("👋 Сервер остановлен (время работы %s)", processMetrics.GetUptime())
	return runErr
}

// openWorld загружает мир из badger; пустое хранилище заполняется генератором
func openWorld(cfg *config.Config) (*world.WorldManager, *storage.WorldStorage, error) {
	store, err := storage.NewWorldStorage(cfg.Storage.DataPath)
	if err != nil {
		return nil, nil, fmt.Errorf("открытие хранилища мира: %w", err)
	}

	wm := world.NewWorldManager("overworld", cfg.World.Seed)
	loaded, err := store.LoadWorld(wm)
	if err != nil {
		store.Close()
		return nil, nil, fmt.Errorf("загрузка мира: %w", err)
	}
	if loaded > 0 {
		logging.Info("🗺️ Мир загружен из %s: %d секций", cfg.Storage.DataPath, loaded)
		return wm, store, nil
	}

	start := time.Now()
	world.NewWorldGenerator(cfg.World.Seed).Generate(wm, cfg.World.RadiusChunks, cfg.World.MinChunkY, cfg.World.MaxChunkY)
	logging.Info("🗺️ Мир сгенерирован (seed=%d): %d секций за %v", cfg.World.Seed, wm.ChunkCount(), time.Since(start))

	saved, err := store.SaveWorld(wm)
	if err != nil {
		logging.Warn("Не удалось сохранить сгенерированный мир: %v", err)
	} else {
		logging.Debug("Сохранено секций: %d", saved)
	}
	return wm, store, nil
}

// openPreferences выбирает Redis, если задан адрес, иначе память процесса
func openPreferences(ctx context.Context, cfg *config.Config) (overlay.PreferenceStore, func(), error) {
	if cfg.Storage.RedisAddr == "" {
		logging.Info("💾 Настройки наблюдателей хранятся в памяти")
		return storage.NewMemoryPreferenceRepo(), func() {}, nil
	}

	repo, err := storage.NewRedisPreferenceRepo(ctx, &storage.RedisConfig{
		Addr:      cfg.Storage.RedisAddr,
		KeyPrefix: cfg.Storage.RedisPrefix,
		TTL:       time.Duration(cfg.Storage.PreferenceTTLHours) * time.Hour,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("подключение к Redis: %w", err)
	}
	return repo, func() { _ = repo.Close() }, nil
}

// openBus выбирает JetStream, если задан URL, иначе шину в памяти
func openBus(cfg *config.Config) (eventbus.EventBus, error) {
	if cfg.EventBus.URL == "" {
		logging.Info("📨 Используется EventBus в памяти")
		return eventbus.NewMemoryBus(1024), nil
	}

	bus, err := eventbus.NewJetStreamBus(cfg.EventBus.URL, cfg.EventBus.Stream, cfg.EventBus.RetentionDuration())
	if err != nil {
		return nil, fmt.Errorf("подключение к JetStream: %w", err)
	}
	logging.Info("📨 JetStream EventBus подключён: %s", cfg.EventBus.URL)
	return bus, nil
}
