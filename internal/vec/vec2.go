package vec

// Vec2 представляет 2D координаты тайла внутри одного слоя
type Vec2 struct {
	X, Y int
}

// ToBlockCoords преобразует координаты тайла в координаты блока 16x16
func (v Vec2) ToBlockCoords() Vec2 {
	return Vec2{X: v.X >> 4, Y: v.Y >> 4} // Деление на 16
}

// LocalInBlock возвращает локальные координаты внутри блока
func (v Vec2) LocalInBlock() Vec2 {
	return Vec2{X: v.X & 0xF, Y: v.Y & 0xF} // Модуль 16
}
