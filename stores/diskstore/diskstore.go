// Package diskstore вторичное хранилище в одном файле из блоков
// фиксированного размера. Размер блока равен ожидаемому размеру слепка,
// поэтому обычный слепок занимает ровно один блок.
package diskstore

import (
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/sirkon/errors"

	"github.com/sirkon/greenzone"
	"github.com/sirkon/greenzone/internal/dir"
)

const (
	blocksFileName   = "states.blocks"
	defaultBlockSize = 4096
)

// New создание хранилища во временной директории сессии внутри base.
// Вместимость задаётся в байтах и округляется вниз до целого числа блоков.
func New(base string, capacity uint64, blockSize int) (*Store, error) {
	if blockSize <= 0 {
		blockSize = defaultBlockSize
	}

	d, err := dir.New(filepath.Join(base, uuid.NewString()))
	if err != nil {
		return nil, errors.Wrap(err, "prepare session directory").Str("base-path", base)
	}

	file, err := d.Create(blocksFileName)
	if err != nil {
		_ = d.Remove()
		return nil, errors.Wrap(err, "create blocks file").Str("session-path", d.Path())
	}

	return &Store{
		dir:       d,
		file:      file,
		blockSize: blockSize,
		maxBlocks: int(capacity / uint64(blockSize)),
		entries:   map[uint64]entry{},
	}, nil
}

// Opener для greenzone.New, размер блока берётся из ожидаемого размера слепка.
func Opener(base string, capacity uint64) greenzone.StoreOpener {
	return func(expectedSize int) (greenzone.SecondaryStore, error) {
		return New(base, capacity, expectedSize)
	}
}

// Store хранилище блоков.
// WARNING: Не предоставляет гарантий безопасности при многопоточном доступе.
type Store struct {
	dir  *dir.Dir
	file *os.File

	blockSize int
	maxBlocks int
	allocated int   // блоков в файле
	free      []int // освобождённые блоки

	entries map[uint64]entry
}

type entry struct {
	blocks []int
	length int
}

// Store для реализации greenzone.SecondaryStore
func (s *Store) Store(key uint64, data []byte) error {
	prev := s.entries[key]
	need := s.blocksFor(len(data))
	if need > s.available()+len(prev.blocks) {
		return errors.Newf("store capacity exceeded").
			Uint64("key", key).
			Int("length", len(data)).
			Int("blocks-required", need).
			Int("blocks-available", s.available()+len(prev.blocks))
	}

	// Прежние блоки могут быть использованы повторно.
	s.free = append(s.free, prev.blocks...)
	delete(s.entries, key)
	blocks := s.allocate(need)

	for i, block := range blocks {
		chunk := data[i*s.blockSize : min(len(data), (i+1)*s.blockSize)]
		if _, err := s.file.WriteAt(chunk, s.offset(block)); err != nil {
			s.free = append(s.free, blocks...)
			return errors.Wrap(err, "write block").Uint64("key", key).Int("block", block)
		}
	}

	s.entries[key] = entry{
		blocks: blocks,
		length: len(data),
	}

	return nil
}

// Fetch для реализации greenzone.SecondaryStore
func (s *Store) Fetch(key uint64) ([]byte, error) {
	e, ok := s.entries[key]
	if !ok {
		return nil, errors.Wrap(greenzone.ErrNotFound, "fetch entry").Uint64("key", key)
	}

	res := make([]byte, e.length)
	for i, block := range e.blocks {
		chunk := res[i*s.blockSize : min(e.length, (i+1)*s.blockSize)]
		if _, err := s.file.ReadAt(chunk, s.offset(block)); err != nil {
			return nil, errors.Wrap(err, "read block").Uint64("key", key).Int("block", block)
		}
	}

	return res, nil
}

// Release для реализации greenzone.SecondaryStore
func (s *Store) Release(key uint64) error {
	e, ok := s.entries[key]
	if !ok {
		return nil
	}

	s.free = append(s.free, e.blocks...)
	delete(s.entries, key)
	return nil
}

// Clear для реализации greenzone.SecondaryStore
func (s *Store) Clear() error {
	if err := s.file.Truncate(0); err != nil {
		return errors.Wrap(err, "truncate blocks file")
	}

	s.entries = map[uint64]entry{}
	s.free = s.free[:0]
	s.allocated = 0
	return nil
}

// Consumed для реализации greenzone.SecondaryStore
func (s *Store) Consumed() uint64 {
	return uint64(s.allocated-len(s.free)) * uint64(s.blockSize)
}

// Path путь к директории сессии.
func (s *Store) Path() string {
	return s.dir.Path()
}

// Close закрытие файла и удаление директории сессии.
func (s *Store) Close() error {
	if err := s.file.Close(); err != nil {
		return errors.Wrap(err, "close blocks file")
	}

	if err := s.dir.Remove(); err != nil {
		return errors.Wrap(err, "remove session directory")
	}

	return nil
}

func (s *Store) blocksFor(length int) int {
	return (length + s.blockSize - 1) / s.blockSize
}

func (s *Store) offset(block int) int64 {
	return int64(block) * int64(s.blockSize)
}

func (s *Store) available() int {
	return len(s.free) + s.maxBlocks - s.allocated
}

// allocate выделение блоков: сначала из освобождённых, затем в конце файла.
// Наличие места проверяется вызывающим.
func (s *Store) allocate(count int) []int {
	res := make([]int, 0, count)
	for len(res) < count && len(s.free) > 0 {
		res = append(res, s.free[len(s.free)-1])
		s.free = s.free[:len(s.free)-1]
	}
	for len(res) < count {
		res = append(res, s.allocated)
		s.allocated++
	}

	return res
}

var _ greenzone.SecondaryStore = &Store{}
