// Package zlog реализация greenzone.Logger поверх zerolog.
package zlog

import (
	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"

	"github.com/sirkon/greenzone"
)

// New логгер событий кэша пишущий в данный zerolog.Logger.
func New(log zerolog.Logger) *Logger {
	return &Logger{
		log: log.With().Str("component", "greenzone").Logger(),
	}
}

// Logger логгер событий кэша.
type Logger struct {
	log zerolog.Logger
}

// DebugCapture для реализации greenzone.Logger
func (l *Logger) DebugCapture(frame, length int) {
	l.log.Debug().Int("frame", frame).Str("size", size(length)).Msg("state captured")
}

// DebugEvict для реализации greenzone.Logger
func (l *Logger) DebugEvict(frame, length int, demoted bool) {
	l.log.Debug().
		Int("frame", frame).
		Str("size", size(length)).
		Bool("demoted", demoted).
		Msg("state evicted")
}

// DebugDemote для реализации greenzone.Logger
func (l *Logger) DebugDemote(frame, length int) {
	l.log.Debug().Int("frame", frame).Str("size", size(length)).Msg("state moved to secondary store")
}

// DebugPromote для реализации greenzone.Logger
func (l *Logger) DebugPromote(frame, length int) {
	l.log.Debug().Int("frame", frame).Str("size", size(length)).Msg("state moved back to memory")
}

// WarningCannotEvict для реализации greenzone.Logger
func (l *Logger) WarningCannotEvict(used, limit uint64) {
	l.log.Warn().
		Str("used", humanize.IBytes(used)).
		Str("limit", humanize.IBytes(limit)).
		Msg("capacity exceeded with nothing left to evict")
}

// WarningSaveExcluded для реализации greenzone.Logger
func (l *Logger) WarningSaveExcluded(excluded int, limit uint64) {
	l.log.Warn().
		Int("excluded", excluded).
		Str("limit", humanize.IBytes(limit)).
		Msg("states excluded from saved project")
}

// Usage для реализации greenzone.Logger
func (l *Logger) Usage(memory, secondary uint64) {
	l.log.Trace().
		Str("memory", humanize.IBytes(memory)).
		Str("secondary", humanize.IBytes(secondary)).
		Msg("usage")
}

func size(length int) string {
	return humanize.IBytes(uint64(length))
}

var _ greenzone.Logger = &Logger{}
