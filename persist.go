package greenzone

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"io"
	"math"

	"github.com/sirkon/errors"
)

// Формат раздела проекта:
//
//	4 байта: число слепков
//	для каждого слепка
//	4 байта: номер кадра
//	4 байта: длина слепка
//	n байтов: слепок
//
// Все целые знаковые, little endian.
const (
	sectionCountSize  = 4
	sectionHeaderSize = 8
)

// Save сохранение основной линии в раздел файла проекта. Если слепки не
// помещаются в Settings.DiskSaveCap, то пропускаются самые ранние, сначала
// не защищённые метками. Ветки не сохраняются.
func (c *Cache) Save(w io.Writer) error {
	excluded := c.excludeStates()
	if len(excluded) > 0 {
		c.log.WarningSaveExcluded(len(excluded), uint64(c.settings.DiskSaveCap))
	}

	var retained []int
	for _, frame := range c.current.keys() {
		if _, ok := excluded[frame]; ok {
			continue
		}
		if frame > math.MaxInt32 {
			return errors.Newf("frame number does not fit the format").Int("frame", frame)
		}

		retained = append(retained, frame)
	}

	dst := bufio.NewWriter(w)
	var buf [sectionHeaderSize]byte

	binary.LittleEndian.PutUint32(buf[:sectionCountSize], uint32(int32(len(retained))))
	if _, err := dst.Write(buf[:sectionCountSize]); err != nil {
		return errors.Wrap(err, "write states count")
	}

	for _, frame := range retained {
		if err := c.touch(frame); err != nil {
			return errors.Wrap(err, "touch saved state").Int("frame", frame)
		}

		r, _ := c.current.get(frame)
		data, err := r.bytes(c.store)
		if err != nil {
			return errors.Wrap(err, "read saved state").Int("frame", frame)
		}

		binary.LittleEndian.PutUint32(buf[:4], uint32(int32(frame)))
		binary.LittleEndian.PutUint32(buf[4:8], uint32(int32(len(data))))
		if _, err := dst.Write(buf[:sectionHeaderSize]); err != nil {
			return errors.Wrap(err, "write state header").Int("frame", frame)
		}

		if _, err := dst.Write(data); err != nil {
			return errors.Wrap(err, "write state data").Int("frame", frame)
		}
	}

	if err := dst.Flush(); err != nil {
		return errors.Wrap(err, "flush saved states")
	}

	return nil
}

// excludeStates кадры, которые не поместятся в ограничение на объём
// сохраняемых данных.
func (c *Cache) excludeStates() map[int]struct{} {
	limit := uint64(c.settings.DiskSaveCap)
	frames := c.current.keys()

	entry := func(frame int) uint64 {
		r, _ := c.current.get(frame)
		return sectionHeaderSize + uint64(r.length())
	}

	size := uint64(sectionCountSize)
	for _, frame := range frames {
		size += entry(frame)
	}

	res := map[int]struct{}{}
	pos := 0
	for size > limit {
		for pos < len(frames) && c.movie.IsMarker(frames[pos]+1) {
			pos++
		}
		if pos >= len(frames) {
			break
		}

		res[frames[pos]] = struct{}{}
		size -= entry(frames[pos])
		pos++
	}

	// Меток слишком много, пропускаем и их.
	for pos = 0; size > limit && pos < len(frames); pos++ {
		if _, ok := res[frames[pos]]; ok {
			continue
		}

		res[frames[pos]] = struct{}{}
		size -= entry(frames[pos])
	}

	return res
}

// Load восстановление основной линии из раздела файла проекта. Слепки
// проходят через SetState, поэтому ограничения действуют и здесь.
func (c *Cache) Load(r io.Reader) error {
	if err := c.Clear(); err != nil {
		return errors.Wrap(err, "clear states before load")
	}

	err := ScanSection(r, func(frame int, data []byte) error {
		if err := c.SetState(frame, data); err != nil {
			return errors.Wrap(err, "restore state").Int("frame", frame)
		}

		return nil
	})
	if err != nil {
		return errors.Wrap(err, "load states")
	}

	return nil
}

// ScanSection разбор раздела файла проекта без создания кэша. Обработчик
// получает слепки в порядке записи и владеет переданным буфером.
func ScanSection(r io.Reader, visit func(frame int, data []byte) error) error {
	src := bufio.NewReader(r)
	var buf [sectionHeaderSize]byte

	if _, err := io.ReadFull(src, buf[:sectionCountSize]); err != nil {
		return errorCorruptData("read states count", err)
	}

	count := int32(binary.LittleEndian.Uint32(buf[:sectionCountSize]))
	if count < 0 {
		return errors.Wrap(errorCorruptData("negative states count", nil), "scan section").Int32("count", count)
	}

	for i := int32(0); i < count; i++ {
		if _, err := io.ReadFull(src, buf[:sectionHeaderSize]); err != nil {
			return errors.Wrap(errorCorruptData("read state header", err), "scan section").Int32("state-no", i)
		}

		frame := int32(binary.LittleEndian.Uint32(buf[:4]))
		length := int32(binary.LittleEndian.Uint32(buf[4:8]))
		if frame < 0 || length < 0 {
			return errors.Wrap(errorCorruptData("negative frame or length", nil), "scan section").
				Int32("frame", frame).
				Int32("length", length)
		}

		// Длина не проверена, поэтому буфер растёт по мере поступления данных.
		var data bytes.Buffer
		if _, err := io.CopyN(&data, src, int64(length)); err != nil {
			return errors.Wrap(errorCorruptData("read state data", err), "scan section").
				Int32("frame", frame).
				Int32("length", length)
		}

		if err := visit(int(frame), data.Bytes()); err != nil {
			return err
		}
	}

	return nil
}
