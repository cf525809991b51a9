package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/annel0/spawnlight/internal/overlay"
)

// Config корневая структура конфигурации сервера.
type Config struct {
	Overlay   OverlayConfig   `yaml:"overlay"`
	Server    ServerConfig    `yaml:"server"`
	EventBus  EventBusConfig  `yaml:"eventbus"`
	Storage   StorageConfig   `yaml:"storage"`
	World     WorldConfig     `yaml:"world"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// OverlayConfig параметры оверлея спавна
type OverlayConfig struct {
	Radius           int          `yaml:"radius"`
	DefaultMode      overlay.Mode `yaml:"default_mode"`
	UpdateIntervalMS int          `yaml:"update_interval_ms"`
}

// UpdateInterval возвращает период обновления сессий
func (o OverlayConfig) UpdateInterval() time.Duration {
	return time.Duration(o.UpdateIntervalMS) * time.Millisecond
}

// Settings возвращает снимок настроек для Projector
func (o OverlayConfig) Settings() overlay.Settings {
	return overlay.Settings{Radius: o.Radius, DefaultMode: o.DefaultMode}
}

type ServerConfig struct {
	WSPort      int `yaml:"ws_port"`
	MetricsPort int `yaml:"metrics_port"`
}

// GetWSPort возвращает порт websocket-шлюза с поддержкой fallback значений
func (s *ServerConfig) GetWSPort() int {
	return getPortWithEnvFallback(s.WSPort, "SPAWNLIGHT_WS_PORT", 8090)
}

// GetMetricsPort возвращает Prometheus метрики порт с поддержкой fallback значений
func (s *ServerConfig) GetMetricsPort() int {
	return getPortWithEnvFallback(s.MetricsPort, "SPAWNLIGHT_METRICS_PORT", 2112)
}

type EventBusConfig struct {
	URL       string `yaml:"url"`
	Stream    string `yaml:"stream"`
	Retention int    `yaml:"retention_hours"`
}

// RetentionDuration возвращает срок хранения сообщений в потоке
func (e EventBusConfig) RetentionDuration() time.Duration {
	return time.Duration(e.Retention) * time.Hour
}

type StorageConfig struct {
	DataPath           string `yaml:"data_path"`
	RedisAddr          string `yaml:"redis_addr"`
	RedisPrefix        string `yaml:"redis_prefix"`
	PreferenceTTLHours int    `yaml:"preference_ttl_hours"`
}

type WorldConfig struct {
	Seed         int64 `yaml:"seed"`
	RadiusChunks int   `yaml:"radius_chunks"`
	MinChunkY    int   `yaml:"min_chunk_y"`
	MaxChunkY    int   `yaml:"max_chunk_y"`
}

type TelemetryConfig struct {
	Enabled     bool    `yaml:"enabled"`
	ServiceName string  `yaml:"service_name"`
	Endpoint    string  `yaml:"endpoint"`
	SampleRatio float64 `yaml:"sample_ratio"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Default возвращает конфигурацию по умолчанию
func Default() *Config {
	return &Config{
		Overlay: OverlayConfig{
			Radius:           16,
			DefaultMode:      overlay.ModeSpawnable,
			UpdateIntervalMS: 500,
		},
		EventBus: EventBusConfig{
			Stream:    "OVERLAY",
			Retention: 1,
		},
		Storage: StorageConfig{
			DataPath:           "data/world",
			RedisPrefix:        "spawnlight:pref:",
			PreferenceTTLHours: 24 * 30,
		},
		World: WorldConfig{
			Seed:         1337,
			RadiusChunks: 4,
			MinChunkY:    -1,
			MaxChunkY:    2,
		},
		Telemetry: TelemetryConfig{
			ServiceName: "spawnlight",
			Endpoint:    "localhost:4318",
			SampleRatio: 1,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate проверяет согласованность значений
func (c *Config) Validate() error {
	var errs []error
	if c.Overlay.Radius < 0 {
		errs = append(errs, fmt.Errorf("overlay.radius не может быть отрицательным: %d", c.Overlay.Radius))
	}
	if !c.Overlay.DefaultMode.Valid() {
		errs = append(errs, fmt.Errorf("overlay.default_mode: неизвестный режим %d", c.Overlay.DefaultMode))
	}
	if c.Overlay.UpdateIntervalMS <= 0 {
		errs = append(errs, fmt.Errorf("overlay.update_interval_ms должен быть больше 0: %d", c.Overlay.UpdateIntervalMS))
	}
	if c.World.RadiusChunks < 0 {
		errs = append(errs, fmt.Errorf("world.radius_chunks не может быть отрицательным: %d", c.World.RadiusChunks))
	}
	if c.World.MinChunkY > c.World.MaxChunkY {
		errs = append(errs, fmt.Errorf("world.min_chunk_y (%d) больше world.max_chunk_y (%d)", c.World.MinChunkY, c.World.MaxChunkY))
	}
	if c.Storage.PreferenceTTLHours < 0 {
		errs = append(errs, fmt.Errorf("storage.preference_ttl_hours не может быть отрицательным: %d", c.Storage.PreferenceTTLHours))
	}
	if c.Telemetry.SampleRatio < 0 || c.Telemetry.SampleRatio > 1 {
		errs = append(errs, fmt.Errorf("telemetry.sample_ratio вне диапазона [0, 1]: %v", c.Telemetry.SampleRatio))
	}
	return errors.Join(errs...)
}

// getPortWithEnvFallback возвращает порт с приоритетом: config -> env -> default
func getPortWithEnvFallback(configPort int, envVar string, defaultPort int) int {
	if configPort > 0 {
		return configPort
	}

	if envVal := os.Getenv(envVar); envVal != "" {
		if port, err := strconv.Atoi(envVal); err == nil && port > 0 {
			return port
		}
	}

	return defaultPort
}

// Load читает YAML файл конфигурации поверх значений по умолчанию.
// Если path == "", пытается прочитать путь из ENV SPAWNLIGHT_CONFIG;
// если и он не задан, возвращает Default().
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv("SPAWNLIGHT_CONFIG")
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("чтение конфигурации %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("разбор конфигурации %s: %w", path, err)
		}
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv подставляет адреса внешних сервисов из окружения, если они не заданы в файле
func applyEnv(cfg *Config) {
	if cfg.EventBus.URL == "" {
		cfg.EventBus.URL = os.Getenv("SPAWNLIGHT_NATS_URL")
	}
	if cfg.Storage.RedisAddr == "" {
		cfg.Storage.RedisAddr = os.Getenv("SPAWNLIGHT_REDIS_ADDR")
	}
	if lvl := os.Getenv("SPAWNLIGHT_LOG_LEVEL"); lvl != "" {
		cfg.Logging.Level = lvl
	}
}
