package memstore

import (
	"testing"

	"github.com/sirkon/errors"

	"github.com/sirkon/greenzone"
	"github.com/sirkon/greenzone/internal/tlog"
)

func TestStore(t *testing.T) {
	s := New(10)

	if err := s.Store(1, []byte("12345")); err != nil {
		tlog.Error(t, errors.Wrap(err, "store first"))
		return
	}
	if err := s.Store(2, []byte("123")); err != nil {
		tlog.Error(t, errors.Wrap(err, "store second"))
		return
	}
	if s.Consumed() != 8 {
		t.Errorf("expected 8 bytes consumed, got %d", s.Consumed())
	}

	if err := s.Store(3, []byte("123")); err == nil {
		t.Error("capacity error expected")
	} else {
		tlog.Log(t, errors.Wrap(err, "expected error"))
	}

	// Замена существующей записи учитывает её прежнюю длину.
	if err := s.Store(1, []byte("1234567")); err != nil {
		tlog.Error(t, errors.Wrap(err, "replace first"))
		return
	}
	if s.Consumed() != 10 {
		t.Errorf("expected 10 bytes consumed, got %d", s.Consumed())
	}

	data, err := s.Fetch(1)
	if err != nil {
		tlog.Error(t, errors.Wrap(err, "fetch first"))
		return
	}
	if string(data) != "1234567" {
		t.Errorf("unexpected data %q", data)
	}

	if err := s.Release(1); err != nil {
		tlog.Error(t, errors.Wrap(err, "release first"))
		return
	}
	if _, err := s.Fetch(1); !errors.Is(err, greenzone.ErrNotFound) {
		t.Errorf("not found error expected, got %v", err)
	}
	if s.Consumed() != 3 || s.Len() != 1 {
		t.Errorf("unexpected state after release: %d bytes in %d entries", s.Consumed(), s.Len())
	}

	if err := s.Clear(); err != nil {
		tlog.Error(t, errors.Wrap(err, "clear"))
		return
	}
	if s.Consumed() != 0 || s.Len() != 0 {
		t.Error("store must be empty after clear")
	}
}
