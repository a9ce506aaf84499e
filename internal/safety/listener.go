package safety

import (
	"context"

	"github.com/annel0/digsafe/internal/eventbus"
	"github.com/annel0/digsafe/internal/logging"
	"github.com/annel0/digsafe/internal/tasks"
	"github.com/annel0/digsafe/internal/vec"
)

// Attach подписывает контроллер на уведомления хоста через шину событий.
// Доставка шины последовательная, поэтому колбэки контроллера
// не перекрываются во времени.
func Attach(ctx context.Context, bus eventbus.EventBus, c *Controller) (eventbus.Subscription, error) {
	filter := eventbus.Filter{Types: []string{
		eventbus.EventTick,
		eventbus.EventTaskStarted,
		eventbus.EventTaskCompleted,
		eventbus.EventMapLoaded,
		eventbus.EventMapUnloaded,
		eventbus.EventPaused,
		eventbus.EventUnpaused,
	}}

	return bus.Subscribe(ctx, filter, func(ctx context.Context, ev *eventbus.Envelope) {
		switch ev.EventType {
		case eventbus.EventTick:
			var p eventbus.TickPayload
			if err := ev.Decode(&p); err != nil {
				logging.Warn("Не удалось декодировать tick: %v", err)
				return
			}
			c.HandleTick(ctx, p.Counter)

		case eventbus.EventTaskStarted:
			if t := decodeTask(ev); t != nil {
				c.HandleTaskStarted(ctx, t)
			}

		case eventbus.EventTaskCompleted:
			if t := decodeTask(ev); t != nil {
				c.HandleTaskCompleted(ctx, t)
			}

		case eventbus.EventMapLoaded:
			c.HandleMapLoaded(ctx)

		case eventbus.EventMapUnloaded:
			c.HandleMapUnloaded()

		case eventbus.EventPaused:
			c.HandlePaused(ctx)

		case eventbus.EventUnpaused:
			c.HandleUnpaused(ctx)
		}
	})
}

// decodeTask восстанавливает ссылку на задачу из полезной нагрузки.
// Контроллер задачей не владеет: ID стабилен, хост разрешит его сам.
func decodeTask(ev *eventbus.Envelope) *tasks.Task {
	var p eventbus.TaskPayload
	if err := ev.Decode(&p); err != nil {
		logging.Warn("Не удалось декодировать %s: %v", ev.EventType, err)
		return nil
	}
	return &tasks.Task{
		ID:   p.TaskID,
		Kind: tasks.TaskKind(p.Kind),
		Pos:  vec.Vec3{X: p.X, Y: p.Y, Z: p.Z},
	}
}
