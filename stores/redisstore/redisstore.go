// Package redisstore вторичное хранилище слепков в Redis. Ключи сессии
// лежат в собственном пространстве имён и удаляются при закрытии.
package redisstore

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirkon/errors"

	"github.com/sirkon/greenzone"
)

//go:generate mockgen -destination=../../internal/mocks/redis_client.go -package=mocks . Client

// Client часть клиента Redis используемая хранилищем.
type Client interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

const (
	keyPrefix      = "greenzone"
	defaultTimeout = 5 * time.Second
)

// New хранилище поверх данного клиента. Нулевое ограничение объёма
// означает отсутствие ограничения.
func New(client Client, capacity uint64, timeout time.Duration) *Store {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Store{
		client:    client,
		namespace: keyPrefix + ":" + uuid.NewString() + ":",
		timeout:   timeout,
		capacity:  capacity,
		lengths:   map[uint64]int{},
	}
}

// Opener подключение к Redis по URL вида redis://host:port/db.
func Opener(url string, capacity uint64) greenzone.StoreOpener {
	return func(int) (greenzone.SecondaryStore, error) {
		opts, err := redis.ParseURL(url)
		if err != nil {
			return nil, errors.Wrap(err, "parse redis url")
		}

		client := redis.NewClient(opts)
		ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, errors.Wrap(err, "ping redis").Str("redis-addr", opts.Addr)
		}

		s := New(client, capacity, defaultTimeout)
		s.closer = client
		return s, nil
	}
}

// Store хранилище слепков в Redis.
// WARNING: Не предоставляет гарантий безопасности при многопоточном доступе.
type Store struct {
	client    Client
	closer    interface{ Close() error }
	namespace string
	timeout   time.Duration

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

	ctx, cancel := s.context()
	defer cancel()

	if err := s.client.Set(ctx, s.key(key), data, 0).Err(); err != nil {
		return errors.Wrap(err, "set state").Uint64("key", key)
	}

	s.lengths[key] = len(data)
	s.consumed = s.consumed - prev + uint64(len(data))
	return nil
}

// Fetch для реализации greenzone.SecondaryStore
func (s *Store) Fetch(key uint64) ([]byte, error) {
	ctx, cancel := s.context()
	defer cancel()

	data, err := s.client.Get(ctx, s.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, errors.Wrap(greenzone.ErrNotFound, "get state").Uint64("key", key)
		}

		return nil, errors.Wrap(err, "get state").Uint64("key", key)
	}

	return data, nil
}

// Release для реализации greenzone.SecondaryStore
func (s *Store) Release(key uint64) error {
	length, ok := s.lengths[key]
	if !ok {
		return nil
	}

	ctx, cancel := s.context()
	defer cancel()

	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil {
		return errors.Wrap(err, "delete state").Uint64("key", key)
	}

	delete(s.lengths, key)
	s.consumed -= uint64(length)
	return nil
}

// Clear для реализации greenzone.SecondaryStore
func (s *Store) Clear() error {
	if len(s.lengths) == 0 {
		return nil
	}

	keys := make([]string, 0, len(s.lengths))
	for key := range s.lengths {
		keys = append(keys, s.key(key))
	}

	ctx, cancel := s.context()
	defer cancel()

	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return errors.Wrap(err, "delete all states").Int("keys", len(keys))
	}

	s.lengths = map[uint64]int{}
	s.consumed = 0
	return nil
}

// Consumed для реализации greenzone.SecondaryStore
func (s *Store) Consumed() uint64 {
	return s.consumed
}

// Close удаление ключей сессии и закрытие клиента, если он открыт хранилищем.
func (s *Store) Close() error {
	if err := s.Clear(); err != nil {
		return errors.Wrap(err, "drop session keys")
	}

	if s.closer != nil {
		if err := s.closer.Close(); err != nil {
			return errors.Wrap(err, "close redis client")
		}
	}

	return nil
}

func (s *Store) key(key uint64) string {
	return s.namespace + strconv.FormatUint(key, 10)
}

func (s *Store) context() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), s.timeout)
}

var _ greenzone.SecondaryStore = &Store{}
