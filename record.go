package greenzone

import (
	"github.com/sirkon/errors"
)

// payload содержимое записи: либо буфер в памяти, либо ссылка на вторичное хранилище.
type payload interface {
	size() int
}

// resident данные слепка в памяти.
type resident struct {
	data []byte
}

func (p resident) size() int { return len(p.data) }

// demoted данные слепка лежат во вторичном хранилище под идентификатором записи.
type demoted struct {
	length int
}

func (p demoted) size() int { return p.length }

// record слепок одного кадра. Держателями записи являются основная линия
// и ветки, refs считает их, данные освобождаются при уходе последнего.
type record struct {
	id      uint64
	refs    int
	payload payload
}

func newRecord(id uint64, data []byte) *record {
	return &record{
		id:      id,
		refs:    1,
		payload: resident{data: data},
	}
}

func (r *record) length() int {
	return r.payload.size()
}

func (r *record) isDemoted() bool {
	_, ok := r.payload.(demoted)
	return ok
}

// bytes данные слепка из памяти или из вторичного хранилища.
// Возвращаемый слайс нельзя изменять.
func (r *record) bytes(store SecondaryStore) ([]byte, error) {
	switch p := r.payload.(type) {
	case resident:
		return p.data, nil
	case demoted:
		data, err := store.Fetch(r.id)
		if err != nil {
			return nil, errors.Wrap(errorIO(err, "fetch demoted snapshot"), "get record bytes").
				Uint64("record-id", r.id)
		}

		return data, nil
	default:
		panic(errors.Newf("unexpected payload type %T", r.payload))
	}
}

// setBytes замена данных. Данные уже лежащие во вторичном хранилище
// обновляются там же, не поднимаясь в память.
func (r *record) setBytes(store SecondaryStore, data []byte) error {
	if !r.isDemoted() {
		r.payload = resident{data: data}
		return nil
	}

	if err := store.Store(r.id, data); err != nil {
		return errors.Wrap(errorIO(err, "store snapshot"), "update demoted record").
			Uint64("record-id", r.id).
			Int("length", len(data))
	}

	r.payload = demoted{length: len(data)}
	return nil
}

// demote перенос данных во вторичное хранилище, ничего не делает для уже перенесённых.
func (r *record) demote(store SecondaryStore) error {
	p, ok := r.payload.(resident)
	if !ok {
		return nil
	}

	if err := store.Store(r.id, p.data); err != nil {
		return errors.Wrap(errorIO(err, "store snapshot"), "demote record").
			Uint64("record-id", r.id).
			Int("length", len(p.data))
	}

	r.payload = demoted{length: len(p.data)}
	return nil
}

// promote возврат данных в память, ничего не делает для данных в памяти.
func (r *record) promote(store SecondaryStore) error {
	if !r.isDemoted() {
		return nil
	}

	data, err := store.Fetch(r.id)
	if err != nil {
		return errors.Wrap(errorIO(err, "fetch snapshot"), "promote record").Uint64("record-id", r.id)
	}

	if err := store.Release(r.id); err != nil {
		return errors.Wrap(errorIO(err, "release snapshot"), "promote record").Uint64("record-id", r.id)
	}

	r.payload = resident{data: data}
	return nil
}

// release освобождение данных во вторичном хранилище. Память для данных
// в памяти освобождается сборщиком мусора.
func (r *record) release(store SecondaryStore) error {
	if !r.isDemoted() {
		return nil
	}

	if err := store.Release(r.id); err != nil {
		return errors.Wrap(errorIO(err, "release snapshot"), "release record").Uint64("record-id", r.id)
	}

	return nil
}
