package registry

import (
	"fmt"
	"sort"

	"github.com/annel0/digsafe/internal/grid"
	"github.com/annel0/digsafe/internal/vec"
)

// Component — максимальное множество тайлов проходки одного слоя,
// связанных цепочкой 8-соседств внутри этого слоя.
type Component struct {
	layer int
	tiles map[vec.Vec3]struct{}
}

// Layer возвращает слой компонента
func (c *Component) Layer() int { return c.layer }

// Size возвращает количество тайлов в компоненте
func (c *Component) Size() int { return len(c.tiles) }

// Empty сообщает, опустел ли компонент
func (c *Component) Empty() bool { return len(c.tiles) == 0 }

// Has проверяет принадлежность тайла компоненту
func (c *Component) Has(pos vec.Vec3) bool {
	_, ok := c.tiles[pos]
	return ok
}

// Tiles возвращает копию множества тайлов, отсортированную по (z, y, x)
func (c *Component) Tiles() []vec.Vec3 {
	result := make([]vec.Vec3, 0, len(c.tiles))
	for pos := range c.tiles {
		result = append(result, pos)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Z != result[j].Z {
			return result[i].Z < result[j].Z
		}
		if result[i].Y != result[j].Y {
			return result[i].Y < result[j].Y
		}
		return result[i].X < result[j].X
	})
	return result
}

// Registry группирует тайлы проходки в связные компоненты по слоям.
// Слоты компонентов переиспользуются через пул освободившихся индексов,
// чтобы индексы не росли неограниченно. Состояние полностью
// пересобирается при каждом цикле управления.
type Registry struct {
	components []*Component
	slots      map[vec.Vec3]int
	free       map[int]struct{}
}

// NewRegistry создаёт пустой реестр компонентов
func NewRegistry() *Registry {
	return &Registry{
		slots: make(map[vec.Vec3]int),
		free:  make(map[int]struct{}),
	}
}

// Reset полностью очищает реестр
func (r *Registry) Reset() {
	r.components = r.components[:0]
	r.slots = make(map[vec.Vec3]int)
	r.free = make(map[int]struct{})
}

// Build очищает реестр и пересканирует всю сетку: слой за слоем,
// блок за блоком; каждый тайл проходки добавляется в порядке обхода.
// Операция сознательно линейна по объёму сетки — инкрементальный
// диффинг не применяется.
func (r *Registry) Build(store grid.TileStore) {
	r.Reset()

	size := store.Size()
	for z := 0; z < size.Z; z++ {
		for bx := 0; bx*grid.BlockSize < size.X; bx++ {
			for by := 0; by*grid.BlockSize < size.Y; by++ {
				origin := vec.Vec3{X: bx * grid.BlockSize, Y: by * grid.BlockSize, Z: z}
				b := store.BlockAt(origin)
				if b == nil {
					continue // блок не материализован — разметки нет
				}
				r.addBlock(store, origin, size)
			}
		}
	}
}

// addBlock добавляет все тайлы проходки одного блока 16x16
func (r *Registry) addBlock(store grid.TileStore, origin vec.Vec3, size vec.Vec3) {
	for lx := 0; lx < grid.BlockSize; lx++ {
		for ly := 0; ly < grid.BlockSize; ly++ {
			pos := vec.Vec3{X: origin.X + lx, Y: origin.Y + ly, Z: origin.Z}
			if pos.X >= size.X || pos.Y >= size.Y {
				continue
			}
			if store.Designation(pos).IsChannel() {
				r.Add(pos)
			}
		}
	}
}

// Add включает тайл в реестр и возвращает индекс его слота.
// Уже проиндексированный тайл — no-op. Слоты всех проиндексированных
// 8-соседей тайла сливаются в один: первый встреченный слот становится
// принимающим, остальные опустошаются и возвращаются в пул.
func (r *Registry) Add(pos vec.Vec3) int {
	if slot, ok := r.slots[pos]; ok {
		return slot
	}

	var found []int
	seen := make(map[int]struct{})
	for _, n := range pos.Neighbors8() {
		if slot, ok := r.slots[n]; ok {
			if _, dup := seen[slot]; !dup {
				seen[slot] = struct{}{}
				found = append(found, slot)
			}
		}
	}

	var slot int
	if len(found) == 0 {
		slot = r.allocSlot(pos.Z)
	} else {
		slot = found[0]
		for _, donor := range found[1:] {
			r.merge(slot, donor)
		}
	}

	r.components[slot].tiles[pos] = struct{}{}
	r.slots[pos] = slot
	return slot
}

// Discard убирает тайл из отслеживания (его разметка разрешена).
// Опустевший компонент возвращает слот в пул.
func (r *Registry) Discard(pos vec.Vec3) {
	slot, ok := r.slots[pos]
	if !ok {
		return
	}

	c := r.components[slot]
	if _, ok := c.tiles[pos]; !ok {
		// Нарушение инварианта слота — реестр повреждён
		panic(fmt.Sprintf("registry: слот %d не содержит проиндексированный тайл %v", slot, pos))
	}

	delete(c.tiles, pos)
	delete(r.slots, pos)
	if c.Empty() {
		r.free[slot] = struct{}{}
	}
}

// allocSlot возвращает слот для нового компонента: наименьший из пула
// освободившихся либо новый в конце коллекции
func (r *Registry) allocSlot(layer int) int {
	if len(r.free) > 0 {
		slot := -1
		for s := range r.free {
			if slot < 0 || s < slot {
				slot = s
			}
		}
		delete(r.free, slot)
		c := r.components[slot]
		c.layer = layer
		c.tiles = make(map[vec.Vec3]struct{})
		return slot
	}

	r.components = append(r.components, &Component{
		layer: layer,
		tiles: make(map[vec.Vec3]struct{}),
	})
	return len(r.components) - 1
}

// merge переливает все тайлы донорского слота в принимающий,
// перенаправляет их индексные записи и возвращает донора в пул
func (r *Registry) merge(host, donor int) {
	hc := r.components[host]
	dc := r.components[donor]

	for pos := range dc.tiles {
		hc.tiles[pos] = struct{}{}
		r.slots[pos] = host
	}

	dc.tiles = make(map[vec.Vec3]struct{})
	r.free[donor] = struct{}{}
}

// SlotAt возвращает индекс слота тайла
func (r *Registry) SlotAt(pos vec.Vec3) (int, bool) {
	slot, ok := r.slots[pos]
	return slot, ok
}

// ComponentAt возвращает компонент тайла или nil, если тайл не отслеживается
func (r *Registry) ComponentAt(pos vec.Vec3) *Component {
	slot, ok := r.slots[pos]
	if !ok {
		return nil
	}
	return r.components[slot]
}

// Component возвращает компонент по индексу слота или nil
func (r *Registry) Component(slot int) *Component {
	if slot < 0 || slot >= len(r.components) {
		return nil
	}
	return r.components[slot]
}

// Slots возвращает количество слотов в коллекции (включая пустые)
func (r *Registry) Slots() int { return len(r.components) }

// Count возвращает количество непустых компонентов
func (r *Registry) Count() int {
	count := 0
	for _, c := range r.components {
		if !c.Empty() {
			count++
		}
	}
	return count
}

// Tracked возвращает количество отслеживаемых тайлов
func (r *Registry) Tracked() int { return len(r.slots) }

// FreeSlots возвращает отсортированные индексы пула освободившихся слотов
func (r *Registry) FreeSlots() []int {
	result := make([]int, 0, len(r.free))
	for s := range r.free {
		result = append(result, s)
	}
	sort.Ints(result)
	return result
}

// ComponentInfo — снимок компонента для диагностического дампа
type ComponentInfo struct {
	Slot  int        `json:"slot"`
	Layer int        `json:"layer"`
	Tiles []vec.Vec3 `json:"tiles"`
}

// Snapshot возвращает снимок всех непустых компонентов для дампа
func (r *Registry) Snapshot() []ComponentInfo {
	result := make([]ComponentInfo, 0, len(r.components))
	for slot, c := range r.components {
		if c.Empty() {
			continue
		}
		result = append(result, ComponentInfo{
			Slot:  slot,
			Layer: c.layer,
			Tiles: c.Tiles(),
		})
	}
	return result
}
