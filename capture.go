package greenzone

import (
	"github.com/sirkon/errors"
	"golang.org/x/exp/slices"
)

const (
	// bytesPerFrequencyStep на каждые столько байт слепка интервал захвата растёт на кадр.
	bytesPerFrequencyStep = 65536

	minFrequency          = 1
	minFrequencyDeveloper = 2
	maxFrequency          = 16
)

// Capture запрос на захват текущего состояния эмулятора. Без force
// слепок может быть и не сделан, это решает политика захвата.
func (c *Cache) Capture(force bool) error {
	frame := c.emu.Frame()
	if !c.shouldCapture(frame, force) {
		return nil
	}

	if err := c.SetState(frame, slices.Clone(c.emu.SaveState())); err != nil {
		return errors.Wrap(err, "capture state").Int("frame", frame)
	}

	return nil
}

func (c *Cache) shouldCapture(frame int, force bool) bool {
	switch {
	case frame == 0 && c.anchored():
		// Нулевой кадр такой сессии уже есть во внешнем слепке.
		return false
	case force:
		return true
	case frame == 0:
		return true
	case c.movie.IsMarker(frame + 1):
		return true
	}

	last, _ := c.current.lastAtOrBefore(frame)
	return frame-last >= c.frequency()
}

// frequency интервал захвата в кадрах по размеру последнего слепка.
func (c *Cache) frequency() int {
	lower := minFrequency
	if c.settings.DeveloperBuild {
		lower = minFrequencyDeveloper
	}

	freq := int(c.observed / bytesPerFrequencyStep)
	switch {
	case freq < lower:
		return lower
	case freq > maxFrequency:
		return maxFrequency
	default:
		return freq
	}
}

// SetState запись слепка кадра. Вытеснение выполняется до записи, поэтому
// записываемый кадр никогда не выбирается для удаления. Кэш владеет
// переданным буфером после вызова.
func (c *Cache) SetState(frame int, data []byte) error {
	existing, exists := c.current.get(frame)

	incoming := int64(len(data))
	if exists && (existing.refs == 1 || !existing.isDemoted()) {
		incoming -= int64(existing.length())
	}
	if err := c.evict(frame, incoming); err != nil {
		return errors.Wrap(err, "free space for the state").Int("frame", frame)
	}

	if exists && existing.refs == 1 {
		prev, wasDemoted := existing.length(), existing.isDemoted()
		if err := existing.setBytes(c.store, data); err != nil {
			return errors.Wrap(err, "overwrite state").Int("frame", frame)
		}
		if !wasDemoted {
			c.mem = c.mem - uint64(prev) + uint64(len(data))
		}
	} else {
		r, err := c.newRecord(data)
		if err != nil {
			return errors.Wrap(err, "create state record").Int("frame", frame)
		}

		if exists {
			// Запись разделена с ветками: они сохраняют прежние данные.
			if err := c.dropPrimary(existing); err != nil {
				return errors.Wrap(err, "detach shared state").Int("frame", frame)
			}
		}
		c.current.put(frame, r)
	}

	c.observed = uint64(len(data))
	c.log.DebugCapture(frame, len(data))

	if err := c.touch(frame); err != nil {
		return errors.Wrap(err, "touch written state").Int("frame", frame)
	}

	c.reportUsage()
	return nil
}
