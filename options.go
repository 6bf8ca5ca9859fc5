package greenzone

import (
	"fmt"

	"github.com/sirkon/greenzone/internal/idalloc"
)

// Option тип опции для создания кэша.
type Option interface {
	String() string
	apply(c *Cache)
}

// WithLogger задаёт логгер событий кэша.
func WithLogger(logger Logger) Option {
	return loggerOption{logger: logger}
}

// OnInvalidate задаёт обработчик уведомлений об инвалидации кадров начиная с данного.
func OnInvalidate(f func(frame int)) Option {
	return invalidateOption(f)
}

// WithIDSeed задаёт начальное значение счётчика идентификаторов записей.
func WithIDSeed(seed uint64) Option {
	return idSeedOption(seed)
}

type loggerOption struct {
	logger Logger
}

func (o loggerOption) String() string {
	return fmt.Sprintf("set logger %T", o.logger)
}

func (o loggerOption) apply(c *Cache) {
	if o.logger != nil {
		c.log = o.logger
	}
}

type invalidateOption func(frame int)

func (o invalidateOption) String() string {
	return "set invalidation callback"
}

func (o invalidateOption) apply(c *Cache) {
	c.onInvalidate = o
}

type idSeedOption uint64

func (o idSeedOption) String() string {
	return fmt.Sprintf("seed record ids with %d", uint64(o))
}

func (o idSeedOption) apply(c *Cache) {
	c.ids = idalloc.New(uint64(o))
}
