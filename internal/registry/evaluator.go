package registry

import (
	"github.com/annel0/digsafe/internal/vec"
)

// Evaluator отвечает на вопрос, безопасно ли работать под компонентом.
// Чистое чтение поверх Registry, без побочных эффектов.
type Evaluator struct {
	reg *Registry
}

// NewEvaluator создаёт оценщик готовности поверх реестра
func NewEvaluator(reg *Registry) *Evaluator {
	return &Evaluator{reg: reg}
}

// Ready сообщает, готов ли компонент к выполнению работ.
// Готовность требует, чтобы НАД КАЖДЫМ тайлом компонента не было
// непустого компонента: одной заблокированной колонны достаточно,
// чтобы отложить всю связную группу целиком.
func (e *Evaluator) Ready(slot int) bool {
	c := e.reg.Component(slot)
	if c == nil || c.Empty() {
		return true
	}

	for pos := range c.tiles {
		if !e.TileReady(pos) {
			return false
		}
	}
	return true
}

// TileReady — то же правило готовности на уровне одного тайла:
// компонент, занимающий ту же колонну слоем выше, отсутствует или пуст.
func (e *Evaluator) TileReady(pos vec.Vec3) bool {
	above := e.reg.ComponentAt(pos.Above())
	return above == nil || above.Empty()
}
