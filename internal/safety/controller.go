package safety

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/annel0/digsafe/internal/grid"
	"github.com/annel0/digsafe/internal/logging"
	"github.com/annel0/digsafe/internal/registry"
	"github.com/annel0/digsafe/internal/tasks"
	"github.com/annel0/digsafe/internal/vec"
)

// Config параметры контроллера безопасности
type Config struct {
	// RebuildInterval — минимальное число тиков между полными переоценками
	RebuildInterval uint64
	// ReservedPriority — тайлы с приоритетом >= порога зарезервированы
	// пользователем и автоматикой не трогаются
	ReservedPriority int
	// Metrics — метрики Prometheus; nil допустим (метрики не пишутся)
	Metrics *Metrics
}

// Controller следит, чтобы слой не вскрывался, пока слой прямо над ним
// не закрыт: группы тайлов проходки оцениваются реестром компонентов,
// неготовые — помечаются небезопасными, их живые операции снимаются.
// Все точки входа синхронные; хост гарантирует, что его колбэки не
// перекрываются, внутренний мьютекс прикрывает только админ-вызовы REST.
type Controller struct {
	mu     sync.Mutex
	store  grid.TileStore
	system tasks.TaskSystem

	reg   *registry.Registry
	eval  *registry.Evaluator
	index *tasks.Index

	rebuildInterval  uint64
	reservedPriority int
	metrics          *Metrics
	tracer           trace.Tracer

	enabled      bool
	lastPassTick uint64

	passes    uint64
	cancelled uint64
}

// NewController создаёт контроллер поверх хранилища тайлов и подсистемы задач
func NewController(store grid.TileStore, system tasks.TaskSystem, cfg Config) *Controller {
	if cfg.RebuildInterval == 0 {
		cfg.RebuildInterval = 100
	}
	if cfg.ReservedPriority == 0 {
		cfg.ReservedPriority = 6
	}

	reg := registry.NewRegistry()
	return &Controller{
		store:            store,
		system:           system,
		reg:              reg,
		eval:             registry.NewEvaluator(reg),
		index:            tasks.NewIndex(system, store),
		rebuildInterval:  cfg.RebuildInterval,
		reservedPriority: cfg.ReservedPriority,
		metrics:          cfg.Metrics,
		tracer:           otel.Tracer("digsafe/safety"),
	}
}

// Enable включает автоматику и сразу выполняет полный цикл
func (c *Controller) Enable(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.enabled {
		return
	}
	c.enabled = true
	logging.Info("🛡️ Контроллер безопасности включён")
	c.evaluateAll(ctx)
}

// Disable выключает автоматику и сбрасывает всё производное состояние
func (c *Controller) Disable() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.enabled {
		return
	}
	c.enabled = false
	c.reg.Reset()
	c.index.Reset()
	c.lastPassTick = 0
	logging.Info("🛡️ Контроллер безопасности выключен")
}

// Enabled сообщает, включена ли автоматика
func (c *Controller) Enabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.enabled
}

// HandleTick обрабатывает периодический тик симуляции.
// Полный цикл выполняется не чаще, чем раз в rebuildInterval тиков.
func (c *Controller) HandleTick(ctx context.Context, counter uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.enabled {
		return
	}
	if counter-c.lastPassTick < c.rebuildInterval {
		return
	}
	c.lastPassTick = counter
	c.evaluateAll(ctx)
}

// ForceEvaluate выполняет полный цикл немедленно, независимо от тиков.
// Работает и при выключенной автоматике (разовая ручная проверка).
func (c *Controller) ForceEvaluate(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.evaluateAll(ctx)
}

// HandleMapLoaded обрабатывает загрузку карты: немедленный полный цикл
func (c *Controller) HandleMapLoaded(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.enabled {
		return
	}
	c.evaluateAll(ctx)
}

// HandleMapUnloaded обрабатывает выгрузку карты: производное состояние
// больше не относится ни к чему и сбрасывается
func (c *Controller) HandleMapUnloaded() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reg.Reset()
	c.index.Reset()
	c.lastPassTick = 0
}

// HandlePaused обрабатывает паузу симуляции: немедленный полный цикл
func (c *Controller) HandlePaused(ctx context.Context) {
	c.HandleMapLoaded(ctx)
}

// HandleUnpaused обрабатывает снятие паузы: немедленный полный цикл
func (c *Controller) HandleUnpaused(ctx context.Context) {
	c.HandleMapLoaded(ctx)
}

// evaluateAll — полный цикл управления: пересборка реестра и индекса,
// затем по каждому компоненту — вердикт готовности и разметка тайлов.
// Вызывается только под c.mu.
func (c *Controller) evaluateAll(ctx context.Context) {
	_, span := c.tracer.Start(ctx, "safety.evaluate_all")
	defer span.End()

	start := time.Now()

	c.reg.Build(c.store)
	c.index.Refresh()

	cancelledBefore := c.cancelled
	for slot := 0; slot < c.reg.Slots(); slot++ {
		comp := c.reg.Component(slot)
		if comp == nil || comp.Empty() {
			continue
		}

		ready := c.eval.Ready(slot)
		for _, pos := range comp.Tiles() {
			c.manageTile(pos, ready)
		}
	}

	c.passes++
	elapsed := time.Since(start)
	cancelledNow := c.cancelled - cancelledBefore

	span.SetAttributes(
		attribute.Int("components", c.reg.Count()),
		attribute.Int("tracked_tiles", c.reg.Tracked()),
		attribute.Int64("cancelled", int64(cancelledNow)),
	)
	c.metrics.ObservePass(elapsed, c.reg.Count(), c.reg.Tracked(), cancelledNow)

	logging.Debug("Полный цикл: компонентов=%d тайлов=%d снято_операций=%d за %s",
		c.reg.Count(), c.reg.Tracked(), cancelledNow, elapsed)
}

// manageTile применяет вердикт готовности компонента к одному тайлу.
// Тайл без метаданных приоритета не управляется; тайл с приоритетом
// на уровне порога и выше зарезервирован пользователем.
// Отмена операции — действие на уровне тайла: снимается только та
// операция, что живёт именно на этом тайле.
func (c *Controller) manageTile(pos vec.Vec3, ready bool) {
	prio, ok := c.store.Priority(pos)
	if !ok {
		return // UNMANAGED: метаданных нет
	}
	if prio >= c.reservedPriority {
		return // ручное резервирование
	}

	if ready {
		c.store.SetUnsafe(pos, false)
		if b := c.store.BlockAt(pos); b != nil {
			b.SetDesignated(true)
		}
		return
	}

	c.store.SetUnsafe(pos, true)
	if t := c.index.ChannelAt(pos); t != nil {
		c.index.Cancel(t)
		c.cancelled++
		logging.Debug("Операция %d на %v снята: компонент не готов", t.ID, pos)
	}
}

// HandleTaskStarted — инкрементальный путь при запуске операции.
// Если прямо над стартовавшей операцией остался неразрешённый тайл
// проходки, операция снимается немедленно: её предпосылка не закрыта.
func (c *Controller) HandleTaskStarted(ctx context.Context, t *tasks.Task) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.enabled || t == nil {
		return
	}

	above := t.Pos.Above()
	if !c.store.Designation(above).IsChannel() {
		return
	}

	c.index.Cancel(t)
	c.cancelled++
	c.store.SetUnsafe(above, true)
	logging.Debug("Операция %d на %v снята на старте: над ней незакрытая проходка", t.ID, t.Pos)
}

// HandleTaskCompleted — инкрементальный путь при завершении операции.
// Колонна завершённого тайла и её 8 соседей переоцениваются точечно:
// над ними работать по-прежнему небезопасно, под ними — уже можно,
// если правило готовности на уровне тайла это подтверждает.
func (c *Controller) HandleTaskCompleted(ctx context.Context, t *tasks.Task) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.enabled || t == nil {
		return
	}

	if t.Kind == tasks.TaskChannel {
		// Разметка тайла разрешена — убираем его из отслеживания,
		// чтобы точечная переоценка видела колонну открытой
		c.reg.Discard(t.Pos)
	}

	c.settleColumn(t.Pos)
	for _, n := range t.Pos.Neighbors8() {
		c.settleColumn(n)
	}
}

// settleColumn — точечная переоценка одной колонны: тайл над ней
// остаётся небезопасным, пока он сам неразрешённая проходка; тайл под
// ней освобождается, если правило готовности уровня тайла выполняется.
func (c *Controller) settleColumn(p vec.Vec3) {
	above := p.Above()
	if c.store.Designation(above).IsChannel() && c.manageable(above) {
		c.store.SetUnsafe(above, true)
	}

	below := p.Below()
	if c.store.Designation(below).Designated() && c.manageable(below) && c.eval.TileReady(below) {
		c.store.SetUnsafe(below, false)
	}
}

// manageable проверяет, подлежит ли тайл автоматическому управлению
func (c *Controller) manageable(pos vec.Vec3) bool {
	prio, ok := c.store.Priority(pos)
	return ok && prio < c.reservedPriority
}

// DumpComponents возвращает снимок текущих компонентов для диагностики
func (c *Controller) DumpComponents() []registry.ComponentInfo {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reg.Snapshot()
}

// Status — сводка состояния контроллера
type Status struct {
	Enabled      bool   `json:"enabled"`
	Passes       uint64 `json:"passes"`
	Cancelled    uint64 `json:"cancelled_total"`
	Components   int    `json:"components"`
	TrackedTiles int    `json:"tracked_tiles"`
	LastPassTick uint64 `json:"last_pass_tick"`
}

// Status возвращает сводку состояния контроллера
func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Status{
		Enabled:      c.enabled,
		Passes:       c.passes,
		Cancelled:    c.cancelled,
		Components:   c.reg.Count(),
		TrackedTiles: c.reg.Tracked(),
		LastPassTick: c.lastPassTick,
	}
}
