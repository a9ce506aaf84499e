package config

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config корневая структура конфигурации приложения.

type Config struct {
	Safety   SafetyConfig   `yaml:"safety"`
	EventBus EventBusConfig `yaml:"eventbus"`
	Server   ServerConfig   `yaml:"server"`
	Grid     GridConfig     `yaml:"grid"`
}

// SafetyConfig параметры контроллера безопасности раскопок
type SafetyConfig struct {
	// Полная переоценка выполняется раз в RebuildIntervalTicks тиков
	RebuildIntervalTicks int `yaml:"rebuild_interval_ticks"`
	// Тайлы с приоритетом >= ReservedPriority не управляются автоматически
	ReservedPriority int `yaml:"reserved_priority"`
	// Включать ли контроллер сразу после старта
	Enabled bool `yaml:"enabled"`
}

type EventBusConfig struct {
	URL       string `yaml:"url"`
	Stream    string `yaml:"stream"`
	Buffer    int    `yaml:"buffer"`
	Retention int    `yaml:"retention_hours"`
}

type ServerConfig struct {
	RESTPort int `yaml:"rest_port"`
}

// GridConfig размеры демонстрационной сетки и сид генератора
type GridConfig struct {
	Width  int   `yaml:"width"`
	Height int   `yaml:"height"`
	Depth  int   `yaml:"depth"`
	Seed   int64 `yaml:"seed"`
}

// GetRESTPort возвращает REST API порт с поддержкой fallback значений
func (s *ServerConfig) GetRESTPort() int {
	return getIntWithEnvFallback(s.RESTPort, "DIGSAFE_REST_PORT", 8090)
}

// GetRebuildInterval возвращает интервал полной переоценки в тиках
func (s *SafetyConfig) GetRebuildInterval() int {
	return getIntWithEnvFallback(s.RebuildIntervalTicks, "DIGSAFE_REBUILD_INTERVAL", 100)
}

// GetReservedPriority возвращает порог ручного резервирования тайлов
func (s *SafetyConfig) GetReservedPriority() int {
	return getIntWithEnvFallback(s.ReservedPriority, "DIGSAFE_RESERVED_PRIORITY", 6)
}

// GetBuffer возвращает размер буфера шины событий
func (e *EventBusConfig) GetBuffer() int {
	return getIntWithEnvFallback(e.Buffer, "DIGSAFE_BUS_BUFFER", 1024)
}

// Dimensions возвращает размеры сетки с дефолтами 64x64x16
func (g *GridConfig) Dimensions() (int, int, int) {
	w, h, d := g.Width, g.Height, g.Depth
	if w <= 0 {
		w = 64
	}
	if h <= 0 {
		h = 64
	}
	if d <= 0 {
		d = 16
	}
	return w, h, d
}

// getIntWithEnvFallback возвращает значение с приоритетом: config -> env -> default
func getIntWithEnvFallback(configVal int, envVar string, defaultVal int) int {
	// Если значение задано в конфиге и больше 0, используем его
	if configVal > 0 {
		return configVal
	}

	// Пробуем прочитать из environment variable
	if envVal := os.Getenv(envVar); envVal != "" {
		if v, err := strconv.Atoi(envVal); err == nil && v > 0 {
			return v
		}
	}

	return defaultVal
}

// Load читает YAML файл конфигурации.
// Если path == "", пытается прочитать из ENV DIGSAFE_CONFIG или возвращает nil, nil.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv("DIGSAFE_CONFIG")
		if path == "" {
			return nil, nil // конфиг не задан — использовать дефолты
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
