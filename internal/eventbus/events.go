package eventbus

// Типы событий, которыми хост симуляции уведомляет контроллер.
const (
	EventTick          = "tick"
	EventTaskStarted   = "task_started"
	EventTaskCompleted = "task_completed"
	EventMapLoaded     = "map_loaded"
	EventMapUnloaded   = "map_unloaded"
	EventPaused        = "paused"
	EventUnpaused      = "unpaused"
)

// TickPayload несёт монотонно растущий счётчик тиков симуляции.
type TickPayload struct {
	Counter uint64 `json:"counter"`
}

// TaskPayload описывает операцию раскопки в событиях жизненного цикла.
// Kind: 0 — обычная выемка (dig), 1 — проходка вниз (channel).
type TaskPayload struct {
	TaskID uint64 `json:"task_id"`
	Kind   uint8  `json:"kind"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Z      int    `json:"z"`
}
