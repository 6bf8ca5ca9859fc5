// Package sqlitestore вторичное хранилище слепков в таблице SQLite.
package sqlitestore

import (
	"database/sql"

	"github.com/sirkon/errors"
	_ "modernc.org/sqlite"

	"github.com/sirkon/greenzone"
)

const memoryPath = ":memory:"

var pragmas = []string{
	"PRAGMA journal_mode=WAL",
	"PRAGMA busy_timeout=10000",
	"PRAGMA synchronous=OFF",
}

const schema = `CREATE TABLE IF NOT EXISTS states (
	key  INTEGER PRIMARY KEY,
	data BLOB NOT NULL
)`

// Open открытие базы по данному пути, ":memory:" даёт базу в памяти.
// Таблица очищается при открытии, слепки не переживают сессию.
func Open(path string, capacity uint64) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrap(err, "open database").Str("db-path", path)
	}

	// Каждое соединение с :memory: видит свою базу.
	db.SetMaxOpenConns(1)

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, errors.Wrap(err, "set pragma").Str("pragma", pragma)
		}
	}

	for _, query := range []string{schema, "DELETE FROM states"} {
		if _, err := db.Exec(query); err != nil {
			_ = db.Close()
			return nil, errors.Wrap(err, "prepare states table")
		}
	}

	return &Store{
		db:       db,
		capacity: capacity,
		lengths:  map[uint64]int{},
	}, nil
}

// Opener для greenzone.New.
func Opener(path string, capacity uint64) greenzone.StoreOpener {
	return func(int) (greenzone.SecondaryStore, error) {
		return Open(path, capacity)
	}
}

// OpenMemory хранилище в базе в памяти процесса.
func OpenMemory(capacity uint64) (*Store, error) {
	return Open(memoryPath, capacity)
}

// Store хранилище слепков в SQLite. Объём учитывается по длинам
// записанных данных без служебных расходов базы.
// WARNING: Не предоставляет гарантий безопасности при многопоточном доступе.
type Store struct {
	db       *sql.DB
	capacity uint64
	consumed uint64
	lengths  map[uint64]int
}

// Store для реализации greenzone.SecondaryStore
func (s *Store) Store(key uint64, data []byte) error {
	prev := uint64(s.lengths[key])
	if s.capacity > 0 && s.consumed-prev+uint64(len(data)) > s.capacity {
		return errors.Newf("store capacity exceeded").
			Uint64("key", key).
			Int("length", len(data)).
			Uint64("consumed", s.consumed).
			Uint64("capacity", s.capacity)
	}

	if data == nil {
		data = []byte{}
	}
	if _, err := s.db.Exec(
		"INSERT INTO states (key, data) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET data = excluded.data",
		int64(key),
		data,
	); err != nil {
		return errors.Wrap(err, "upsert state").Uint64("key", key)
	}

	s.lengths[key] = len(data)
	s.consumed = s.consumed - prev + uint64(len(data))
	return nil
}

// Fetch для реализации greenzone.SecondaryStore
func (s *Store) Fetch(key uint64) ([]byte, error) {
	var data []byte
	err := s.db.QueryRow("SELECT data FROM states WHERE key = ?", int64(key)).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.Wrap(greenzone.ErrNotFound, "fetch state").Uint64("key", key)
		}

		return nil, errors.Wrap(err, "select state").Uint64("key", key)
	}

	return data, nil
}

// Release для реализации greenzone.SecondaryStore
func (s *Store) Release(key uint64) error {
	length, ok := s.lengths[key]
	if !ok {
		return nil
	}

	if _, err := s.db.Exec("DELETE FROM states WHERE key = ?", int64(key)); err != nil {
		return errors.Wrap(err, "delete state").Uint64("key", key)
	}

	delete(s.lengths, key)
	s.consumed -= uint64(length)
	return nil
}

// Clear для реализации greenzone.SecondaryStore
func (s *Store) Clear() error {
	if _, err := s.db.Exec("DELETE FROM states"); err != nil {
		return errors.Wrap(err, "delete all states")
	}

	s.lengths = map[uint64]int{}
	s.consumed = 0
	return nil
}

// Consumed для реализации greenzone.SecondaryStore
func (s *Store) Consumed() uint64 {
	return s.consumed
}

// Close закрытие базы.
func (s *Store) Close() error {
	if err := s.db.Close(); err != nil {
		return errors.Wrap(err, "close database")
	}

	return nil
}

var _ greenzone.SecondaryStore = &Store{}
