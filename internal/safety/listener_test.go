package safety

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/annel0/digsafe/internal/eventbus"
	"github.com/annel0/digsafe/internal/tasks"
	"github.com/annel0/digsafe/internal/vec"
)

// TestAttachDispatch: события шины доходят до контроллера и меняют
// состояние сетки — сквозная проверка подписки.
func TestAttachDispatch(t *testing.T) {
	ctx := context.Background()
	store, system, c := fixture(t)
	bus := eventbus.NewMemoryBus(64)

	sub, err := Attach(ctx, bus, c)
	require.NoError(t, err)
	defer sub.Unsubscribe()

	lower := vec.Vec3{X: 5, Y: 5, Z: 0}
	channel(store, 5, 5, 0, 1)
	c.Enable(ctx)
	require.True(t, store.Unsafe(lower))

	// Хост завершает верхнюю проходку и сообщает об этом через шину
	upperTask := system.Add(tasks.TaskChannel, vec.Vec3{X: 5, Y: 5, Z: 1})
	require.True(t, system.Complete(upperTask))

	ev, err := eventbus.NewEnvelope("host", eventbus.EventTaskCompleted, 5, eventbus.TaskPayload{
		TaskID: upperTask.ID,
		Kind:   uint8(tasks.TaskChannel),
		X:      5, Y: 5, Z: 1,
	})
	require.NoError(t, err)
	require.NoError(t, bus.Publish(ctx, ev))

	assert.Eventually(t, func() bool {
		return !store.Unsafe(lower)
	}, time.Second, 10*time.Millisecond, "завершение сверху должно открыть нижний тайл")
}

// TestAttachTick: тики через шину запускают полный цикл по интервалу.
func TestAttachTick(t *testing.T) {
	ctx := context.Background()
	_, _, c := fixture(t)
	bus := eventbus.NewMemoryBus(64)

	sub, err := Attach(ctx, bus, c)
	require.NoError(t, err)
	defer sub.Unsubscribe()

	c.Enable(ctx)
	base := c.Status().Passes

	ev, err := eventbus.NewEnvelope("host", eventbus.EventTick, 3, eventbus.TickPayload{Counter: 100})
	require.NoError(t, err)
	require.NoError(t, bus.Publish(ctx, ev))

	assert.Eventually(t, func() bool {
		return c.Status().Passes == base+1
	}, time.Second, 10*time.Millisecond)
}
