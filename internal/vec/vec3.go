package vec

// Vec3 представляет глобальные координаты тайла.
// Z — номер слоя (этажа); слои нумеруются снизу вверх.
type Vec3 struct {
	X int
	Y int
	Z int
}

// Flat возвращает 2D-проекцию координат внутри слоя
func (v Vec3) Flat() Vec2 {
	return Vec2{X: v.X, Y: v.Y}
}

// Above возвращает координаты тайла слоем выше
func (v Vec3) Above() Vec3 {
	return Vec3{X: v.X, Y: v.Y, Z: v.Z + 1}
}

// Below возвращает координаты тайла слоем ниже
func (v Vec3) Below() Vec3 {
	return Vec3{X: v.X, Y: v.Y, Z: v.Z - 1}
}

// Equals проверяет точное совпадение координат
func (v Vec3) Equals(other Vec3) bool {
	return v.X == other.X && v.Y == other.Y && v.Z == other.Z
}

// Neighbors8 возвращает 8 соседей тайла в пределах того же слоя.
// Выход за границы сетки здесь не проверяется — это забота вызывающего.
func (v Vec3) Neighbors8() [8]Vec3 {
	return [8]Vec3{
		{X: v.X - 1, Y: v.Y - 1, Z: v.Z},
		{X: v.X, Y: v.Y - 1, Z: v.Z},
		{X: v.X + 1, Y: v.Y - 1, Z: v.Z},
		{X: v.X - 1, Y: v.Y, Z: v.Z},
		{X: v.X + 1, Y: v.Y, Z: v.Z},
		{X: v.X - 1, Y: v.Y + 1, Z: v.Z},
		{X: v.X, Y: v.Y + 1, Z: v.Z},
		{X: v.X + 1, Y: v.Y + 1, Z: v.Z},
	}
}
