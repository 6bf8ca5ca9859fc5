package tlog

import (
	stderrs "errors"
	"fmt"
	"strings"
	"testing"

	"github.com/sirkon/errors"
)

type recorder struct {
	logs   []string
	errors []string
}

func (r *recorder) Helper() {}

func (r *recorder) Log(a ...any) {
	r.logs = append(r.logs, fmt.Sprint(a...))
}

func (r *recorder) Error(a ...any) {
	r.errors = append(r.errors, fmt.Sprint(a...))
}

func TestRender(t *testing.T) {
	t.Run("plain-error", func(t *testing.T) {
		var r recorder
		Log(&r, stderrs.New("plain"))
		if len(r.logs) != 1 || !strings.Contains(r.logs[0], "plain") {
			t.Errorf("unexpected output %q", r.logs)
		}
	})

	t.Run("context", func(t *testing.T) {
		var r recorder
		Error(&r, errors.New("ctx error").Int("frame", 12).Str("store", "disk"))
		if len(r.errors) != 1 {
			t.Fatalf("one error expected, got %q", r.errors)
		}

		out := r.errors[0]
		for _, part := range []string{"ctx error", "frame", "12", "store", "disk"} {
			if !strings.Contains(out, part) {
				t.Errorf("%q is missing in %q", part, out)
			}
		}
	})

	t.Run("check", func(t *testing.T) {
		var r recorder
		if Check(&r, nil) {
			t.Error("nil error must pass")
		}
		if !Check(&r, errors.New("fail")) {
			t.Error("non-nil error must fail")
		}
		if len(r.errors) != 1 {
			t.Errorf("one error expected, got %d", len(r.errors))
		}
	})
}
