package greenzone_test

import (
	"bytes"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/sirkon/deepequal"
	"github.com/sirkon/errors"

	"github.com/sirkon/greenzone"
	"github.com/sirkon/greenzone/internal/mocks"
	"github.com/sirkon/greenzone/internal/tlog"
	"github.com/sirkon/greenzone/stores/memstore"
)

func TestCaptureFrequency(t *testing.T) {
	tests := []struct {
		name      string
		size      int
		developer bool
		markers   []int
		want      []int
	}{
		{
			name: "small-states-every-frame",
			size: 100,
			want: frameRange(0, 10),
		},
		{
			name:      "small-states-developer-build",
			size:      100,
			developer: true,
			want:      []int{0, 2, 4, 6, 8, 10},
		},
		{
			name: "large-states",
			size: 3 * 65536,
			want: []int{0, 3, 6, 9},
		},
		{
			name:    "large-states-with-marker",
			size:    3 * 65536,
			markers: []int{5},
			want:    []int{0, 3, 4, 7, 10},
		},
		{
			name: "huge-states-capped",
			size: 20 * 65536,
			want: []int{0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newMachine(tt.size)
			for _, marker := range tt.markers {
				m.markers[marker] = true
			}
			s := greenzone.DefaultSettings()
			s.DeveloperBuild = tt.developer
			c := newCache(t, m, s)

			for frame := 0; frame <= 10; frame++ {
				m.frame = frame
				if err := c.Capture(false); err != nil {
					tlog.Error(t, errors.Wrap(err, "capture").Int("frame", frame))
					return
				}
			}

			if got := c.Frames(); !deepequal.Equal(tt.want, got) {
				t.Error("unexpected captured frames")
				deepequal.SideBySide(t, "frames", tt.want, got)
			}
		})
	}
}

func TestCaptureForced(t *testing.T) {
	m := newMachine(20 * 65536)
	c := newCache(t, m, greenzone.DefaultSettings())

	captureFrames(t, c, m, 0, 1, 2)
	if got, want := c.Frames(), []int{0, 1, 2}; !deepequal.Equal(want, got) {
		deepequal.SideBySide(t, "frames", want, got)
	}
}

func TestCaptureCopiesEmulatorBuffer(t *testing.T) {
	ctrl := gomock.NewController(t)
	emu := mocks.NewMockEmulator(ctrl)
	movie := mocks.NewMockMovie(ctrl)

	buf := []byte("state")
	emu.EXPECT().SaveState().Return(buf).AnyTimes()
	emu.EXPECT().Frame().Return(0).AnyTimes()
	movie.EXPECT().StartsFromSavestate().Return(false).AnyTimes()

	c, err := greenzone.New(emu, movie, greenzone.DefaultSettings(), memstore.Opener(0))
	if err != nil {
		tlog.Error(t, errors.Wrap(err, "create cache"))
		return
	}

	if err := c.Capture(false); err != nil {
		tlog.Error(t, errors.Wrap(err, "capture"))
		return
	}

	// Буфер эмулятора переиспользуется, кэш не должен этого заметить.
	copy(buf, "xxxxx")
	if got := mustGet(t, c, 0); string(got) != "state" {
		t.Errorf("cached state changed together with emulator buffer: %q", got)
	}
}

func TestAnchoredSession(t *testing.T) {
	m := newMachine(10)
	m.anchor = []byte("anchor")
	c := newCache(t, m, greenzone.DefaultSettings())

	captureFrames(t, c, m, 0)
	if c.StateCount() != 0 {
		t.Errorf("frame 0 of anchored session must not be captured, got %v", c.Frames())
	}
	if !c.Has(0) {
		t.Error("frame 0 of anchored session must be available")
	}
	if c.Any() {
		t.Error("no states expected yet")
	}
	if got := mustGet(t, c, 0); !bytes.Equal(got, m.anchor) {
		t.Errorf("anchor state expected, got %q", got)
	}

	captureFrames(t, c, m, 1, 2)
	if !c.Any() {
		t.Error("states expected")
	}

	frame, data, ok, err := c.Closest(1)
	if err != nil {
		tlog.Error(t, errors.Wrap(err, "closest to 1"))
		return
	}
	if !ok || frame != 0 || !bytes.Equal(data, m.anchor) {
		t.Errorf("anchor expected as closest to frame 1, got frame %d (%v)", frame, ok)
	}

	initial, err := c.InitialState()
	if err != nil {
		tlog.Error(t, errors.Wrap(err, "initial state"))
		return
	}
	if !bytes.Equal(initial, m.anchor) {
		t.Errorf("anchor expected as initial state, got %q", initial)
	}

	// Нулевой кадр такой сессии инвалидируется вместе с остальными.
	var notified []int
	c = newCache(t, m, greenzone.DefaultSettings(), greenzone.OnInvalidate(func(frame int) {
		notified = append(notified, frame)
	}))
	captureFrames(t, c, m, 1, 2)
	if _, err := c.Invalidate(0); err != nil {
		tlog.Error(t, errors.Wrap(err, "invalidate"))
		return
	}
	if c.StateCount() != 0 || !deepequal.Equal([]int{0}, notified) {
		t.Errorf("all states must be invalidated from frame 0, got %v, notified %v", c.Frames(), notified)
	}
}

func TestCaptureOverwriteKeepsUsage(t *testing.T) {
	m := newMachine(10)
	c := newCache(t, m, greenzone.DefaultSettings())

	captureFrames(t, c, m, 0, 1)
	used := c.MemoryUsed()

	m.fill = 100
	captureFrames(t, c, m, 1)
	if c.MemoryUsed() != used {
		t.Errorf("overwrite must not change usage: %d != %d", c.MemoryUsed(), used)
	}
	if got := mustGet(t, c, 1); !bytes.Equal(got, m.state(1)) {
		t.Errorf("overwritten state expected, got %v", got)
	}
}
