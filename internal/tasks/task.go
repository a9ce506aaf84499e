package tasks

import (
	"github.com/annel0/digsafe/internal/vec"
)

// TaskKind различает обычную выемку и проходку вниз
type TaskKind uint8

const (
	TaskDig     TaskKind = iota // Обычная выемка, слой ниже не вскрывается
	TaskChannel                 // Проходка: вскрывает пол тайла
)

// String возвращает строковое представление вида операции
func (k TaskKind) String() string {
	switch k {
	case TaskDig:
		return "dig"
	case TaskChannel:
		return "channel"
	default:
		return "unknown"
	}
}

// Task представляет активную операцию раскопки в списке задач хоста.
// Контроллер не владеет задачей: он только читает её и просит хоста
// снять её через TaskSystem.
type Task struct {
	ID   uint64   // Стабильный идентификатор, выдаётся хостом
	Kind TaskKind // Вид операции
	Pos  vec.Vec3 // Позиция тайла операции
}

// TaskSystem — интерфейс подсистемы задач хоста.
type TaskSystem interface {
	// Snapshot возвращает все живые задачи на момент вызова
	Snapshot() []*Task
	// Remove снимает задачу; хранилище тайлов при этом возвращает
	// разметке тайла неактивную форму того же вида.
	// Возвращает false, если задача уже не живая.
	Remove(t *Task) bool
}
