package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/annel0/digsafe/internal/api"
	"github.com/annel0/digsafe/internal/config"
	"github.com/annel0/digsafe/internal/eventbus"
	"github.com/annel0/digsafe/internal/grid"
	"github.com/annel0/digsafe/internal/logging"
	"github.com/annel0/digsafe/internal/observability"
	"github.com/annel0/digsafe/internal/safety"
	"github.com/annel0/digsafe/internal/tasks"
	"github.com/annel0/digsafe/internal/vec"
)

func main() {
	configPath := flag.String("config", "", "Путь к YAML конфигурации (или ENV DIGSAFE_CONFIG)")
	tickRate := flag.Duration("tick", 50*time.Millisecond, "Период симуляционного тика")
	flag.Parse()

	// Инициализируем систему логирования
	if err := logging.InitDefaultLogger("server"); err != nil {
		log.Fatalf("❌ Ошибка инициализации логирования: %v", err)
	}
	defer logging.CloseDefaultLogger()

	logging.Info("⛏️ Запуск DigSafe — контроллера безопасности раскопок...")

	// === КОНФИГУРАЦИЯ ===
	cfg, err := config.Load(*configPath)
	if err != nil {
		logging.Error("❌ Ошибка чтения конфигурации: %v", err)
		log.Fatalf("❌ Ошибка чтения конфигурации: %v", err)
	}
	if cfg == nil {
		cfg = &config.Config{}
		logging.Info("Конфигурация не задана, используются значения по умолчанию")
	}

	restPort := fmt.Sprintf(":%d", cfg.Server.GetRESTPort())
	logging.Info("📡 Конфигурация: REST API=%s, rebuild_interval=%d тиков, reserved_priority=%d",
		restPort, cfg.Safety.GetRebuildInterval(), cfg.Safety.GetReservedPriority())

	// === OBSERVABILITY ===
	ctx := context.Background()
	shutdownTelemetry, err := observability.InitTelemetry(ctx, "digsafe")
	if err != nil {
		// Трассировка не критична для работы контроллера
		logging.Warn("OpenTelemetry недоступен: %v", err)
		shutdownTelemetry = func(context.Context) error { return nil }
	}

	// === ИНИЦИАЛИЗАЦИЯ КОМПОНЕНТОВ ===

	// Сетка тайлов и демонстрационные разметки проходки
	w, h, d := cfg.Grid.Dimensions()
	store := grid.NewGridMap(vec.Vec3{X: w, Y: h, Z: d})
	gen := grid.NewGenerator(cfg.Grid.Seed)
	gen.Populate(store)
	logging.Info("🗺️ Сетка %dx%dx%d заполнена (seed=%d)", w, h, d, cfg.Grid.Seed)

	// Подсистема задач
	system := tasks.NewTaskList(store)

	// Шина событий: JetStream при заданном URL, иначе in-memory
	var bus eventbus.EventBus
	var jsBus *eventbus.JetStreamBus
	if cfg.EventBus.URL != "" {
		stream := cfg.EventBus.Stream
		if stream == "" {
			stream = "DIGSAFE"
		}
		retention := time.Duration(cfg.EventBus.Retention) * time.Hour
		jsBus, err = eventbus.NewJetStreamBus(cfg.EventBus.URL, stream, retention)
		if err != nil {
			logging.Error("❌ Ошибка подключения к JetStream: %v", err)
			log.Fatalf("❌ Ошибка подключения к JetStream: %v", err)
		}
		bus = jsBus
		logging.Info("📨 Шина событий: JetStream (%s, stream=%s)", cfg.EventBus.URL, stream)
	} else {
		bus = eventbus.NewMemoryBus(cfg.EventBus.GetBuffer())
		logging.Info("📨 Шина событий: in-memory (буфер=%d)", cfg.EventBus.GetBuffer())
	}
	eventbus.Init(bus)

	if err := eventbus.StartLoggingListener(bus); err != nil {
		logging.Warn("Логирующий слушатель шины не запущен: %v", err)
	}
	busMetrics := eventbus.NewMetricsExporter(bus)
	busMetrics.Start()
	defer busMetrics.Stop()

	// Контроллер безопасности
	controller := safety.NewController(store, system, safety.Config{
		RebuildInterval:  uint64(cfg.Safety.GetRebuildInterval()),
		ReservedPriority: cfg.Safety.GetReservedPriority(),
		Metrics:          safety.NewMetrics(),
	})

	sub, err := safety.Attach(ctx, bus, controller)
	if err != nil {
		logging.Error("❌ Ошибка подписки контроллера на шину: %v", err)
		log.Fatalf("❌ Ошибка подписки контроллера на шину: %v", err)
	}
	defer sub.Unsubscribe()

	if cfg.Safety.Enabled {
		controller.Enable(ctx)
	}

	// REST API
	restServer := api.NewRestServer(api.Config{
		Port:       restPort,
		Controller: controller,
	})
	restServer.StartAsync()

	// Источник тиков: имитирует периодические уведомления хоста
	tickCtx, stopTicks := context.WithCancel(ctx)
	go runTicker(tickCtx, *tickRate)

	logging.Info("✅ Все сервисы запущены")
	logging.Info("   🌐 REST API: %s", restServer.Addr())
	logging.Info("   ❤️  Health check: %s/health", restServer.Addr())
	logging.Info("   📊 Метрики: %s/metrics", restServer.Addr())
	logging.Info("💡 Примеры использования REST API:")
	logging.Info("   curl %s/api/safety/status", restServer.Addr())
	logging.Info("   curl -X POST %s/api/safety/rebuild", restServer.Addr())

	// Канал для получения сигналов ОС
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logging.Info("📡 Получен сигнал %v, завершение работы...", sig)

	// === GRACEFUL SHUTDOWN ===
	stopTicks()
	controller.Disable()
	if jsBus != nil {
		jsBus.Close()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := shutdownTelemetry(shutdownCtx); err != nil {
		logging.Warn("Ошибка остановки телеметрии: %v", err)
	}

	logging.Info("✅ Сервер остановлен")
}

// runTicker публикует тики симуляции в шину с заданным периодом
func runTicker(ctx context.Context, rate time.Duration) {
	ticker := time.NewTicker(rate)
	defer ticker.Stop()

	var counter uint64
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			counter++
			ev, err := eventbus.NewEnvelope("server", eventbus.EventTick, 3,
				eventbus.TickPayload{Counter: counter})
			if err != nil {
				continue
			}
			_ = eventbus.Publish(ctx, ev)
		}
	}
}
