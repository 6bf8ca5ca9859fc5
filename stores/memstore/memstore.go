package memstore

import (
	"github.com/sirkon/errors"
	"golang.org/x/exp/slices"

	"github.com/sirkon/greenzone"
)

// New конструктор хранилища в памяти процесса. Нулевое ограничение
// означает отсутствие ограничения.
func New(capacity uint64) *Store {
	return &Store{
		data:     map[uint64][]byte{},
		capacity: capacity,
	}
}

// Opener для greenzone.New.
func Opener(capacity uint64) greenzone.StoreOpener {
	return func(int) (greenzone.SecondaryStore, error) {
		return New(capacity), nil
	}
}

// Store вторичное хранилище в памяти процесса, используется в тестах
// и для сессий без диска.
// WARNING: Не предоставляет гарантий безопасности при многопоточном доступе.
type Store struct {
	data     map[uint64][]byte
	consumed uint64
	capacity uint64
}

// Store для реализации greenzone.SecondaryStore
func (s *Store) Store(key uint64, data []byte) error {
	prev := uint64(len(s.data[key]))
	if s.capacity > 0 && s.consumed-prev+uint64(len(data)) > s.capacity {
		return errors.Newf("store capacity exceeded").
			Uint64("key", key).
			Int("length", len(data)).
			Uint64("consumed", s.consumed).
			Uint64("capacity", s.capacity)
	}

	s.data[key] = slices.Clone(data)
	s.consumed = s.consumed - prev + uint64(len(data))
	return nil
}

// Fetch для реализации greenzone.SecondaryStore
func (s *Store) Fetch(key uint64) ([]byte, error) {
	data, ok := s.data[key]
	if !ok {
		return nil, errors.Wrap(greenzone.ErrNotFound, "fetch entry").Uint64("key", key)
	}

	return slices.Clone(data), nil
}

// Release для реализации greenzone.SecondaryStore
func (s *Store) Release(key uint64) error {
	data, ok := s.data[key]
	if !ok {
		return nil
	}

	s.consumed -= uint64(len(data))
	delete(s.data, key)
	return nil
}

// Clear для реализации greenzone.SecondaryStore
func (s *Store) Clear() error {
	s.data = map[uint64][]byte{}
	s.consumed = 0
	return nil
}

// Consumed для реализации greenzone.SecondaryStore
func (s *Store) Consumed() uint64 {
	return s.consumed
}

// Len число хранимых записей.
func (s *Store) Len() int {
	return len(s.data)
}

var _ greenzone.SecondaryStore = &Store{}
