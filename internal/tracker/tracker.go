package tracker

import "github.com/sirkon/greenzone/internal/dllist"

// New конструктор учёта обращений к кадрам.
func New() *Tracker {
	return &Tracker{
		order: dllist.New[int](),
		nodes: map[int]*dllist.Node[int]{},
	}
}

// Tracker порядок обращений к кадрам без повторов: недавние в конце.
type Tracker struct {
	order *dllist.DLList[int]
	nodes map[int]*dllist.Node[int]
}

// Touch перемещает кадр в конец порядка. Возвращает true если кадр
// уже учитывался.
func (t *Tracker) Touch(frame int) (present bool) {
	if n, ok := t.nodes[frame]; ok {
		t.order.MoveToBack(n)
		return true
	}

	t.nodes[frame] = t.order.PushBack(frame)
	return false
}

// Remove прекращает учёт кадра.
func (t *Tracker) Remove(frame int) {
	n, ok := t.nodes[frame]
	if !ok {
		return
	}

	t.order.Delete(n)
	delete(t.nodes, frame)
}

// DropOldest прекращает учёт давнее всех использованного кадра.
func (t *Tracker) DropOldest() {
	if n := t.order.First(); n != nil {
		t.Remove(n.Value())
	}
}

// Oldest возвращает первый от давних к недавним кадр удовлетворяющий условию.
func (t *Tracker) Oldest(accept func(frame int) bool) (int, bool) {
	for n := t.order.First(); n != nil; n = n.Next() {
		if accept(n.Value()) {
			return n.Value(), true
		}
	}

	return 0, false
}

// Has проверка учёта кадра.
func (t *Tracker) Has(frame int) bool {
	_, ok := t.nodes[frame]
	return ok
}

// Len число учитываемых кадров.
func (t *Tracker) Len() int {
	return t.order.Len()
}

// Frames кадры от давних к недавним.
func (t *Tracker) Frames() []int {
	res := make([]int, 0, t.order.Len())
	for n := t.order.First(); n != nil; n = n.Next() {
		res = append(res, n.Value())
	}

	return res
}

// Clear сброс учёта.
func (t *Tracker) Clear() {
	t.order.Clear()
	t.nodes = map[int]*dllist.Node[int]{}
}
