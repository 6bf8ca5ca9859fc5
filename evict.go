package greenzone

import (
	"github.com/sirkon/errors"
)

// maxStates сколько слепков ожидаемого размера вмещает общее ограничение.
func (c *Cache) maxStates() int {
	if c.expected == 0 {
		return 0
	}

	return int(c.settings.TotalCap() / c.expected)
}

func (c *Cache) used() uint64 {
	return c.mem + c.store.Consumed()
}

// evict освобождение места перед записью incoming байт в кадр target.
func (c *Cache) evict(target int, incoming int64) error {
	limit := c.settings.TotalCap()
	for int64(c.used())+incoming > int64(limit) {
		victim, ok := c.victim(target)
		if !ok {
			c.log.WarningCannotEvict(uint64(int64(c.used())+incoming), limit)
			break
		}

		r, _ := c.current.get(victim)
		length, wasDemoted := r.length(), r.isDemoted()
		if err := c.removeState(victim); err != nil {
			return errors.Wrap(err, "remove evicted state").Int("frame", victim)
		}
		c.log.DebugEvict(victim, length, wasDemoted)
	}

	for c.mem > uint64(c.settings.MemoryCap) {
		demotedAny, err := c.demoteOldest(target)
		if err != nil {
			return errors.Wrap(err, "demote least recently used state")
		}
		if !demotedAny {
			break
		}
	}

	return nil
}

// victim выбор кадра для удаления. Нулевой кадр и target не выбираются никогда,
// как и кадры, удаление которых ничего не освобождает.
//
// Предпочтение отдаётся второму кадру из пары соседних, между которыми
// были только лаг-кадры, иначе выбирается самый ранний. Кадр, за которым
// следует метка, пропускается, но не более maxStates/3 раз, после этого
// выбирается самый ранний.
func (c *Cache) victim(target int) (int, bool) {
	first, ok := c.evictableFrom(0, target)
	if !ok {
		return 0, false
	}

	skips := c.maxStates() / 3
	for cand := first; cand < c.current.len(); {
		pos, ok := c.lagPairFrom(cand, target)
		if !ok {
			if pos, ok = c.evictableFrom(cand, target); !ok {
				break
			}
		}

		frame := c.current.at(pos)
		if !c.movie.IsMarker(frame + 1) {
			return frame, true
		}

		skips--
		if skips < 0 {
			break
		}
		cand = pos + 1
	}

	return c.current.at(first), true
}

// evictableFrom позиция первого кадра допустимого к удалению начиная с данной.
func (c *Cache) evictableFrom(pos, target int) (int, bool) {
	for ; pos < c.current.len(); pos++ {
		if c.evictable(c.current.at(pos), target) {
			return pos, true
		}
	}

	return 0, false
}

// evictable проверка, что удаление кадра из основной линии освободит место.
// Запись во вторичном хранилище, разделённая с ветками, остаётся на месте.
func (c *Cache) evictable(frame, target int) bool {
	if frame == 0 || frame == target {
		return false
	}

	r, ok := c.current.get(frame)
	return ok && (!r.isDemoted() || r.refs == 1)
}

// lagPairFrom позиция второго кадра первой пары соседних кадров между
// которыми только лаг, второй кадр пары не раньше pos.
func (c *Cache) lagPairFrom(pos, target int) (int, bool) {
	if pos < 1 {
		pos = 1
	}

	for ; pos < c.current.len(); pos++ {
		frame := c.current.at(pos)
		if !c.evictable(frame, target) {
			continue
		}

		if c.allLag(c.current.at(pos-1), frame) {
			return pos, true
		}
	}

	return 0, false
}

// allLag проверка что все кадры из [from, upTo) лаговые. Для ещё
// не записанного в журнал текущего кадра спрашивается эмулятор.
func (c *Cache) allLag(from, upTo int) bool {
	if current := c.emu.Frame(); upTo >= current {
		upTo = current - 1
		if !c.emu.IsLagged() {
			return false
		}
	}

	for i := from; i < upTo; i++ {
		if !c.movie.IsLagFrame(i) {
			return false
		}
	}

	return true
}

// demoteOldest перенос во вторичное хранилище давнее всех использованного
// слепка основной линии в памяти. Если таких среди учтённых нет, то берётся
// самый ранний кадр в памяти.
func (c *Cache) demoteOldest(target int) (bool, error) {
	resident := func(frame int) bool {
		r, ok := c.current.get(frame)
		return ok && frame != target && !r.isDemoted()
	}

	frame, ok := c.accessed.Oldest(resident)
	if !ok {
		for _, f := range c.current.keys() {
			if resident(f) {
				frame, ok = f, true
				break
			}
		}
	}
	if !ok {
		return false, nil
	}

	return true, c.demoteFrame(frame)
}

func (c *Cache) demoteFrame(frame int) error {
	r, ok := c.current.get(frame)
	if !ok {
		return nil
	}

	return c.demoteRecord(frame, r)
}

func (c *Cache) demoteRecord(frame int, r *record) error {
	if r.isDemoted() {
		return nil
	}

	length := r.length()
	if err := r.demote(c.store); err != nil {
		return errors.Wrap(err, "demote state").Int("frame", frame)
	}

	c.mem -= uint64(length)
	c.log.DebugDemote(frame, length)
	return nil
}

func (c *Cache) promoteRecord(frame int, r *record) error {
	if !r.isDemoted() {
		return nil
	}

	if err := r.promote(c.store); err != nil {
		return errors.Wrap(err, "promote state").Int("frame", frame)
	}

	c.mem += uint64(r.length())
	c.log.DebugPromote(frame, r.length())
	return nil
}
