package greenzone_test

import (
	"bytes"
	"testing"

	"github.com/sirkon/deepequal"
	"github.com/sirkon/errors"

	"github.com/sirkon/greenzone"
	"github.com/sirkon/greenzone/internal/tlog"
)

func TestBranchSharesStates(t *testing.T) {
	m := newMachine(10)
	c := newCache(t, m, greenzone.DefaultSettings())
	captureFrames(t, c, m, frameRange(0, 3)...)

	used := c.MemoryUsed()
	id := c.AddBranch()
	if id != 0 {
		t.Errorf("first branch id must be 0, got %d", id)
	}
	if c.MemoryUsed() != used {
		t.Errorf("branch must not copy states: %d != %d", c.MemoryUsed(), used)
	}
	if holder, ok := c.DuplicateOf(2, greenzone.Primary); !ok || holder != id {
		t.Errorf("branch %d expected to share frame 2, got %d (%v)", id, holder, ok)
	}
	if holder, ok := c.DuplicateOf(2, id); !ok || holder != greenzone.Primary {
		t.Errorf("primary timeline expected to share frame 2, got %d (%v)", holder, ok)
	}

	// Перезапись разделённого кадра не затрагивает ветку, прежний слепок
	// остаётся только у ветки и в объёме основной линии не учитывается.
	m.fill = 100
	captureFrames(t, c, m, 2)
	if c.MemoryUsed() != used {
		t.Errorf("overwritten shared state must replace the primary one: %d != %d", c.MemoryUsed(), used)
	}
	if got := mustGet(t, c, 2); !bytes.Equal(got, m.state(2)) {
		t.Error("primary timeline must see the new state")
	}
	branchState, ok, err := c.BranchGet(id, 2)
	if err != nil {
		tlog.Error(t, errors.Wrap(err, "get branch state"))
		return
	}
	m.fill = 0
	if !ok || !bytes.Equal(branchState, m.state(2)) {
		t.Error("branch must keep the old state")
	}
	if _, ok := c.DuplicateOf(2, id); ok {
		t.Error("frame 2 must not be shared anymore")
	}

	if err := c.RemoveBranch(id); err != nil {
		tlog.Error(t, errors.Wrap(err, "remove branch"))
		return
	}
	if c.MemoryUsed() != used {
		t.Errorf("branch removal must not touch primary usage: %d != %d", c.MemoryUsed(), used)
	}
	if len(c.Branches()) != 0 {
		t.Errorf("no branches expected, got %v", c.Branches())
	}
}

func TestBranchAddRemoveKeepsUsage(t *testing.T) {
	m := newMachine(10)
	c := newCache(t, m, greenzone.DefaultSettings())
	captureFrames(t, c, m, frameRange(0, 5)...)

	used := c.MemoryUsed()
	id := c.AddBranch()
	if err := c.RemoveBranch(id); err != nil {
		tlog.Error(t, errors.Wrap(err, "remove branch"))
		return
	}
	if c.MemoryUsed() != used {
		t.Errorf("usage changed: %d != %d", c.MemoryUsed(), used)
	}

	// Неизвестная ветка.
	if err := c.RemoveBranch(42); err != nil {
		tlog.Error(t, errors.Wrap(err, "remove unknown branch"))
	}
}

func TestBranchIDs(t *testing.T) {
	m := newMachine(10)
	c := newCache(t, m, greenzone.DefaultSettings())
	captureFrames(t, c, m, 0, 1)

	ids := []int{c.AddBranch(), c.AddBranch(), c.AddBranch()}
	if want := []int{0, 1, 2}; !deepequal.Equal(want, ids) {
		deepequal.SideBySide(t, "ids", want, ids)
	}

	if err := c.RemoveBranch(1); err != nil {
		tlog.Error(t, errors.Wrap(err, "remove branch"))
		return
	}
	if id := c.AddBranch(); id != 1 {
		t.Errorf("lowest free id 1 expected, got %d", id)
	}
	if want, got := []int{0, 1, 2}, c.Branches(); !deepequal.Equal(want, got) {
		deepequal.SideBySide(t, "branches", want, got)
	}
}

func TestSharedFrameSurvivesBranchRemoval(t *testing.T) {
	m := newMachine(10)
	c := newCache(t, m, greenzone.DefaultSettings())
	captureFrames(t, c, m, frameRange(0, 10)...)

	first := c.AddBranch()
	second := c.AddBranch()
	if holder, ok := c.DuplicateOf(10, first); !ok || holder != greenzone.Primary {
		t.Errorf("frame 10 must be shared with primary timeline, got %d (%v)", holder, ok)
	}

	if err := c.RemoveBranch(first); err != nil {
		tlog.Error(t, errors.Wrap(err, "remove first branch"))
		return
	}

	if got := mustGet(t, c, 10); !bytes.Equal(got, m.state(10)) {
		t.Error("primary state of frame 10 must survive")
	}
	data, ok, err := c.BranchGet(second, 10)
	if err != nil {
		tlog.Error(t, errors.Wrap(err, "get branch state"))
		return
	}
	if !ok || !bytes.Equal(data, m.state(10)) {
		t.Error("branch state of frame 10 must survive")
	}
	if _, ok, _ := c.BranchGet(first, 10); ok {
		t.Error("removed branch must have no states")
	}
}

func TestLoadBranch(t *testing.T) {
	m := newMachine(10)
	c := newCache(t, m, greenzone.DefaultSettings())
	captureFrames(t, c, m, frameRange(0, 3)...)
	id := c.AddBranch()
	initial := mustGet(t, c, 0)

	// Расхождение основной линии с веткой.
	if _, err := c.Invalidate(2); err != nil {
		tlog.Error(t, errors.Wrap(err, "invalidate"))
		return
	}
	m.fill = 100
	captureFrames(t, c, m, 2, 5)

	ok, err := c.LoadBranch(id)
	if err != nil {
		tlog.Error(t, errors.Wrap(err, "load branch"))
		return
	}
	if !ok {
		t.Fatal("branch must be loaded")
	}

	m.fill = 0
	if want, got := frameRange(0, 3), c.Frames(); !deepequal.Equal(want, got) {
		t.Error("unexpected frames after branch load")
		deepequal.SideBySide(t, "frames", want, got)
	}
	for _, frame := range c.Frames() {
		if got := mustGet(t, c, frame); !bytes.Equal(got, m.state(frame)) {
			t.Errorf("state of frame %d must come from the branch", frame)
		}
	}
	if got := mustGet(t, c, 0); !bytes.Equal(got, initial) {
		t.Error("frame 0 must be kept")
	}

	// Основная линия не разделяет слепки с веткой после загрузки.
	if holder, ok := c.DuplicateOf(3, id); ok {
		t.Errorf("loaded states must be copies, frame 3 is shared with %d", holder)
	}

	if ok, err := c.LoadBranch(7); ok || err != nil {
		t.Errorf("unknown branch must not be loaded, got %v %v", ok, err)
	}
}

func TestLoadBranchUnderCapacity(t *testing.T) {
	const (
		total    = 1_000_000
		expected = 100_000
	)

	m := newMachine(expected)
	c := newCache(t, m, settings(total, 0))
	captureFrames(t, c, m, frameRange(0, 7)...)
	id := c.AddBranch()

	if _, err := c.Invalidate(1); err != nil {
		tlog.Error(t, errors.Wrap(err, "invalidate"))
		return
	}
	m.fill = 100
	captureFrames(t, c, m, 1, 2)

	if _, err := c.LoadBranch(id); err != nil {
		tlog.Error(t, errors.Wrap(err, "load branch"))
		return
	}

	m.fill = 0
	if want, got := c.BranchFrames(id), c.Frames(); !deepequal.Equal(want, got) {
		t.Error("all branch frames must be loaded")
		deepequal.SideBySide(t, "frames", want, got)
	}
	for _, frame := range c.Frames() {
		if got := mustGet(t, c, frame); !bytes.Equal(got, m.state(frame)) {
			t.Errorf("state of frame %d must come from the branch", frame)
		}
	}
	if used := c.MemoryUsed() + c.SecondaryUsed(); used != 8*expected {
		t.Errorf("%d bytes used, %d expected", used, 8*expected)
	}
}

func TestUpdateBranch(t *testing.T) {
	m := newMachine(10)
	c := newCache(t, m, greenzone.DefaultSettings())
	captureFrames(t, c, m, 0, 1)
	id := c.AddBranch()

	captureFrames(t, c, m, 2, 3)
	if err := c.UpdateBranch(id); err != nil {
		tlog.Error(t, errors.Wrap(err, "update branch"))
		return
	}

	if want, got := []int{0, 1, 2, 3}, c.BranchFrames(id); !deepequal.Equal(want, got) {
		deepequal.SideBySide(t, "branch frames", want, got)
	}
	if c.MemoryUsed() != 40 {
		t.Errorf("states must stay shared, %d bytes used", c.MemoryUsed())
	}
}
