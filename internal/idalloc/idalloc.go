package idalloc

import (
	"math"

	"github.com/sirkon/errors"
)

// ErrExhausted все 63-битные идентификаторы выданы.
const ErrExhausted errors.Const = "record id space exhausted"

// New конструктор распределителя идентификаторов начинающего с seed.
func New(seed uint64) *Allocator {
	return &Allocator{
		last: seed,
	}
}

// Allocator монотонно возрастающие идентификаторы записей, не переиспользуются.
// WARNING: Не предоставляет гарантий безопасности при многопоточном доступе.
type Allocator struct {
	last uint64
}

// Next выдача очередного идентификатора.
func (a *Allocator) Next() (uint64, error) {
	if a.last >= math.MaxInt64 {
		return 0, errors.Wrap(ErrExhausted, "allocate record id").Uint64("last-id", a.last)
	}

	a.last++
	return a.last, nil
}

// Last последний выданный идентификатор.
func (a *Allocator) Last() uint64 {
	return a.last
}
