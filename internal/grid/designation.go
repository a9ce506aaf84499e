package grid

// Designation определяет состояние раскопки тайла.
// Проходка (channel) вскрывает пол и открывает слой ниже,
// обычная выемка (dig) слой ниже не трогает.
type Designation uint8

const (
	DesignationNone          Designation = iota // Тайл не размечен
	DesignationDig                              // Выемка назначена, операция не запущена
	DesignationChannel                          // Проходка назначена, операция не запущена
	DesignationDigActive                        // Выемка выполняется
	DesignationChannelActive                    // Проходка выполняется
)

// String возвращает строковое представление разметки
func (d Designation) String() string {
	switch d {
	case DesignationNone:
		return "none"
	case DesignationDig:
		return "dig"
	case DesignationChannel:
		return "channel"
	case DesignationDigActive:
		return "dig_active"
	case DesignationChannelActive:
		return "channel_active"
	default:
		return "unknown"
	}
}

// IsChannel сообщает, размечен ли тайл под проходку (включая выполняемую).
// Именно такие тайлы отслеживает реестр компонентов.
func (d Designation) IsChannel() bool {
	return d == DesignationChannel || d == DesignationChannelActive
}

// IsDig сообщает, размечен ли тайл под обычную выемку
func (d Designation) IsDig() bool {
	return d == DesignationDig || d == DesignationDigActive
}

// Designated сообщает, размечен ли тайл под какую-либо операцию
func (d Designation) Designated() bool {
	return d != DesignationNone
}

// Pending возвращает неактивную форму той же разметки.
// Используется при отмене операции: данные разметки сохраняются,
// снимается только выполняемая операция.
func (d Designation) Pending() Designation {
	switch d {
	case DesignationDigActive:
		return DesignationDig
	case DesignationChannelActive:
		return DesignationChannel
	default:
		return d
	}
}

// Active возвращает выполняемую форму той же разметки
func (d Designation) Active() Designation {
	switch d {
	case DesignationDig:
		return DesignationDigActive
	case DesignationChannel:
		return DesignationChannelActive
	default:
		return d
	}
}
