package dllist

// New конструктор пустого двусвязного списка.
func New[T any]() *DLList[T] {
	return &DLList[T]{}
}

// DLList двусвязный список с удалением произвольного узла за O(1).
// WARNING: Не предоставляет гарантий безопасности при многопоточном доступе.
type DLList[T any] struct {
	first *Node[T]
	last  *Node[T]
	size  int
}

// PushBack добавление нового значения в конец списка с возвратом созданного узла.
func (l *DLList[T]) PushBack(v T) *Node[T] {
	n := &Node[T]{
		prev:  l.last,
		value: v,
	}
	l.size++

	if l.first == nil {
		l.first = n
		l.last = n
		return n
	}

	l.last.next = n
	l.last = n

	return n
}

// First первый узел списка или nil для пустого списка.
func (l *DLList[T]) First() *Node[T] {
	return l.first
}

// Last последний узел списка или nil для пустого списка.
func (l *DLList[T]) Last() *Node[T] {
	return l.last
}

// Len число узлов в списке.
func (l *DLList[T]) Len() int {
	return l.size
}

// Delete удаление данного узла из списка.
func (l *DLList[T]) Delete(n *Node[T]) {
	if n.prev != nil {
		n.prev.next = n.next
	}

	if n.next != nil {
		n.next.prev = n.prev
	}

	if l.first == n {
		l.first = n.next
	}

	if l.last == n {
		l.last = n.prev
	}

	n.cleanup()
	l.size--
}

// MoveToBack перенос узла в конец списка.
func (l *DLList[T]) MoveToBack(n *Node[T]) {
	if l.last == n {
		return
	}

	l.Delete(n)
	n.prev = l.last
	l.last.next = n
	l.last = n
	l.size++
}

// Clear удаление всех узлов.
func (l *DLList[T]) Clear() {
	l.first = nil
	l.last = nil
	l.size = 0
}
