// Package tlog вывод ошибок со структурированным контекстом в тестах.
package tlog

import (
	"fmt"
	"strings"

	"github.com/sirkon/errors"
)

const (
	bold  = "\033[1m"
	red   = "\033[1;31m"
	reset = "\033[0m"
)

// Log вывод ошибки в журнал теста.
func Log(t TestingPrinter, err error) {
	t.Helper()
	t.Log(render(err, bold))
}

// Error вывод ошибки с провалом теста.
func Error(t TestingPrinter, err error) {
	t.Helper()
	t.Error(render(err, red))
}

// Check возвращает false для nil, иначе проваливает тест и возвращает true.
func Check(t TestingPrinter, err error) bool {
	if err == nil {
		return false
	}

	t.Helper()
	t.Error(render(err, red))
	return true
}

func render(err error, highlight string) string {
	if err == nil {
		return "<nil>"
	}

	var b strings.Builder
	b.WriteString(highlight)
	b.WriteString(err.Error())
	b.WriteString(reset)
	b.WriteByte('\n')

	d := errors.GetContextDeliverer(err)
	if d == nil {
		return b.String()
	}

	var c contextCollector
	d.Deliver(&c)

	width := 0
	for _, v := range c.vars {
		width = max(width, len(v.name))
	}

	for _, v := range c.vars {
		_, _ = fmt.Fprintf(&b, "    %s%s%s: %s%v\n", bold, v.name, reset, strings.Repeat(" ", width-len(v.name)), v.value)
	}

	return b.String()
}
