// Package greenzone кэш слепков состояния эмулятора по номерам кадров.
//
// Кэш решает какие кадры захватывать, где держать слепки (память или
// вторичное хранилище), что вытеснять при превышении ограничений, как
// разделять слепки между ветками и как сохранять основную линию в файл проекта.
package greenzone

import (
	"io"
	"math"

	"github.com/sirkon/errors"

	"github.com/sirkon/greenzone/internal/idalloc"
	"github.com/sirkon/greenzone/internal/tracker"
)

// Primary обозначение основной линии среди держателей записей.
const Primary = -1

// New конструктор кэша. Размер слепка текущего состояния эмулятора
// принимается за ожидаемый, под него открывается вторичное хранилище.
func New(emu Emulator, movie Movie, settings Settings, opener StoreOpener, opts ...Option) (*Cache, error) {
	c := &Cache{
		emu:      emu,
		movie:    movie,
		settings: settings,
		log:      nopLogger{},
		ids:      idalloc.New(0),
		current:  newIndex(),
		accessed: tracker.New(),
		branches: map[int]map[int]*record{},
		branchID: map[int]struct{}{},
	}

	for _, opt := range opts {
		opt.apply(c)
	}

	expected := len(emu.SaveState())
	if expected > math.MaxInt32 {
		return nil, errors.Wrap(
			errorInvalidCapacity("expected snapshot size does not fit secondary storage"),
			"mount cache",
		).Int("expected-size", expected)
	}
	c.expected = uint64(expected)
	c.observed = uint64(expected)

	store, err := opener(expected)
	if err != nil {
		return nil, errors.Wrap(err, "open secondary store")
	}
	c.store = store

	return c, nil
}

// Cache кэш слепков.
// WARNING: Не предоставляет гарантий безопасности при многопоточном доступе.
type Cache struct {
	emu      Emulator
	movie    Movie
	settings Settings
	store    SecondaryStore
	log      Logger
	ids      *idalloc.Allocator

	onInvalidate func(frame int)

	current  *index
	accessed *tracker.Tracker

	// кадр → ветка → запись, пустые отображения не хранятся
	branches map[int]map[int]*record
	branchID map[int]struct{}

	mem      uint64 // объём записей в памяти
	expected uint64 // размер слепка при подключении
	observed uint64 // размер последнего принятого слепка
}

// Get слепок данного кадра. Возвращаемый слайс нельзя изменять.
func (c *Cache) Get(frame int) (data []byte, exists bool, err error) {
	if frame == 0 && c.anchored() {
		return c.movie.AnchorState(), true, nil
	}

	r, ok := c.current.get(frame)
	if !ok {
		return nil, false, nil
	}

	if err := c.touch(frame); err != nil {
		return nil, false, errors.Wrap(err, "touch frame").Int("frame", frame)
	}

	data, err = r.bytes(c.store)
	if err != nil {
		return nil, false, errors.Wrap(err, "read snapshot").Int("frame", frame)
	}

	return data, true, nil
}

// Has проверка наличия слепка кадра.
func (c *Cache) Has(frame int) bool {
	if frame == 0 && c.anchored() {
		return true
	}

	return c.current.has(frame)
}

// Closest ближайший слепок строго до данного кадра.
func (c *Cache) Closest(frame int) (int, []byte, bool, error) {
	f, ok := c.current.lastBefore(frame)
	if !ok {
		if c.anchored() && frame > 0 {
			return 0, c.movie.AnchorState(), true, nil
		}

		return 0, nil, false, nil
	}

	data, exists, err := c.Get(f)
	return f, data, exists, err
}

// InitialState слепок нулевого кадра.
func (c *Cache) InitialState() ([]byte, error) {
	if c.anchored() {
		return c.movie.AnchorState(), nil
	}

	r, ok := c.current.get(0)
	if !ok {
		return nil, nil
	}

	return r.bytes(c.store)
}

// Invalidate удаление слепков начиная с данного кадра. Нулевой кадр сессии
// начинающейся с включения питания не удаляется.
func (c *Cache) Invalidate(frame int) (bool, error) {
	if !c.Any() {
		return false, nil
	}

	if frame == 0 && !c.anchored() {
		frame = 1
	}

	invalidated, err := c.invalidateFrom(frame)
	if c.onInvalidate != nil {
		c.onInvalidate(frame)
	}
	if err != nil {
		return invalidated, errors.Wrap(err, "invalidate states").Int("from-frame", frame)
	}

	return invalidated, nil
}

func (c *Cache) invalidateFrom(frame int) (bool, error) {
	frames := c.current.from(frame)
	for _, f := range frames {
		if err := c.removeState(f); err != nil {
			return true, err
		}
	}

	c.reportUsage()
	return len(frames) > 0, nil
}

// Clear удаление всех слепков основной линии.
func (c *Cache) Clear() error {
	for _, f := range c.current.keys() {
		if err := c.removeState(f); err != nil {
			return errors.Wrap(err, "clear states")
		}
	}
	c.accessed.Clear()

	if len(c.branchID) == 0 {
		if err := c.store.Clear(); err != nil {
			return errors.Wrap(errorIO(err, "clear secondary store"), "clear states")
		}
		c.mem = 0
	}

	c.reportUsage()
	return nil
}

// ClearHistory удаление всех слепков кроме нулевого кадра.
func (c *Cache) ClearHistory() error {
	for _, f := range c.current.from(1) {
		if err := c.removeState(f); err != nil {
			return errors.Wrap(err, "clear state history")
		}
	}

	c.reportUsage()
	return nil
}

// Any есть ли в кэше слепки кроме нулевого кадра.
func (c *Cache) Any() bool {
	if c.anchored() {
		return c.current.len() > 0
	}

	return c.current.len() > 1
}

// StateCount число слепков основной линии.
func (c *Cache) StateCount() int {
	return c.current.len()
}

// LastKey последний кадр со слепком или 0.
func (c *Cache) LastKey() int {
	f, _ := c.current.last()
	return f
}

// LastEmulatedFrame последний кадр до которого доходила эмуляция с сохранением слепка.
func (c *Cache) LastEmulatedFrame() int {
	if c.StateCount() == 0 {
		return 0
	}

	return c.LastKey()
}

// Frames кадры основной линии по возрастанию.
func (c *Cache) Frames() []int {
	return c.current.keys()
}

// IsDemoted проверка, что слепок кадра лежит во вторичном хранилище.
func (c *Cache) IsDemoted(frame int) bool {
	r, ok := c.current.get(frame)
	return ok && r.isDemoted()
}

// MemoryUsed объём слепков основной линии в памяти. Записи оставшиеся
// только в ветках не учитываются.
func (c *Cache) MemoryUsed() uint64 {
	return c.mem
}

// SecondaryUsed объём занятый во вторичном хранилище.
func (c *Cache) SecondaryUsed() uint64 {
	return c.store.Consumed()
}

// LastID последний выданный идентификатор записи.
func (c *Cache) LastID() uint64 {
	return c.ids.Last()
}

// Close закрытие вторичного хранилища, если оно это поддерживает.
func (c *Cache) Close() error {
	if closer, ok := c.store.(io.Closer); ok {
		return closer.Close()
	}

	return nil
}

func (c *Cache) anchored() bool {
	return c.movie.StartsFromSavestate()
}

// removeState удаление кадра из основной линии.
func (c *Cache) removeState(frame int) error {
	r, ok := c.current.delete(frame)
	if !ok {
		return nil
	}

	c.accessed.Remove(frame)
	return c.dropPrimary(r)
}

// dropPrimary уход основной линии из держателей записи.
func (c *Cache) dropPrimary(r *record) error {
	if !r.isDemoted() {
		c.mem -= uint64(r.length())
	}

	return c.unref(r)
}

// unref уход одного из держателей записи, последний освобождает данные.
func (c *Cache) unref(r *record) error {
	r.refs--
	if r.refs > 0 {
		return nil
	}

	return r.release(c.store)
}

func (c *Cache) newRecord(data []byte) (*record, error) {
	id, err := c.ids.Next()
	if err != nil {
		return nil, Error{
			Code: CodeIDExhausted,
			Msg:  "allocate record id",
			err:  err,
		}
	}

	c.mem += uint64(len(data))
	return newRecord(id, data), nil
}

func (c *Cache) reportUsage() {
	c.log.Usage(c.mem, c.store.Consumed())
}
