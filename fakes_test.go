package greenzone_test

import (
	"bytes"
	"testing"

	"github.com/sirkon/errors"

	"github.com/sirkon/greenzone"
	"github.com/sirkon/greenzone/internal/tlog"
	"github.com/sirkon/greenzone/stores/memstore"
)

// machine эмулятор и журнал для тестов. Слепок кадра заполнен байтом номера кадра.
type machine struct {
	frame  int
	size   int
	fill   byte
	lagged bool

	lag     map[int]bool
	markers map[int]bool
	anchor  []byte
}

func newMachine(size int) *machine {
	return &machine{
		size:    size,
		lag:     map[int]bool{},
		markers: map[int]bool{},
	}
}

func (m *machine) SaveState() []byte {
	return bytes.Repeat([]byte{byte(m.frame) + m.fill}, m.size)
}

func (m *machine) Frame() int                { return m.frame }
func (m *machine) IsLagged() bool            { return m.lagged }
func (m *machine) IsLagFrame(frame int) bool { return m.lag[frame] }
func (m *machine) IsMarker(frame int) bool   { return m.markers[frame] }
func (m *machine) StartsFromSavestate() bool { return m.anchor != nil }
func (m *machine) AnchorState() []byte       { return m.anchor }

func (m *machine) state(frame int) []byte {
	return bytes.Repeat([]byte{byte(frame) + m.fill}, m.size)
}

func settings(memory, disk uint64) greenzone.Settings {
	res := greenzone.DefaultSettings()
	res.MemoryCap = greenzone.ByteSize(memory)
	res.DiskCap = greenzone.ByteSize(disk)
	return res
}

func newCache(t *testing.T, m *machine, s greenzone.Settings, opts ...greenzone.Option) *greenzone.Cache {
	t.Helper()

	c, err := greenzone.New(m, m, s, memstore.Opener(uint64(s.DiskCap)), opts...)
	if err != nil {
		tlog.Error(t, errors.Wrap(err, "create cache"))
		t.FailNow()
	}

	return c
}

// captureFrames принудительный захват данных кадров по порядку.
func captureFrames(t *testing.T, c *greenzone.Cache, m *machine, frames ...int) {
	t.Helper()

	for _, frame := range frames {
		m.frame = frame
		if err := c.Capture(true); err != nil {
			tlog.Error(t, errors.Wrap(err, "capture").Int("frame", frame))
			t.FailNow()
		}
	}
}

func frameRange(from, to int) []int {
	var res []int
	for i := from; i <= to; i++ {
		res = append(res, i)
	}
	return res
}

func mustGet(t *testing.T, c *greenzone.Cache, frame int) []byte {
	t.Helper()

	data, ok, err := c.Get(frame)
	if err != nil {
		tlog.Error(t, errors.Wrap(err, "get state").Int("frame", frame))
		t.FailNow()
	}
	if !ok {
		t.Fatalf("state of frame %d expected", frame)
	}

	return data
}
