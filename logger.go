package greenzone

// Logger абстракция логирования событий кэша. Реализация логирования
// делается пользователями библиотеки, готовые варианты лежат в observe/.
type Logger interface {
	// DebugCapture слепок кадра принят в кэш.
	DebugCapture(frame, length int)
	// DebugEvict слепок кадра удалён из основной линии из-за превышения общего ограничения.
	DebugEvict(frame, length int, demoted bool)
	// DebugDemote слепок кадра перенесён во вторичное хранилище.
	DebugDemote(frame, length int)
	// DebugPromote слепок кадра возвращён в память.
	DebugPromote(frame, length int)
	// WarningCannotEvict общее ограничение нарушено, но удалять больше нечего.
	WarningCannotEvict(used, limit uint64)
	// WarningSaveExcluded при сохранении проекта часть слепков пропущена из-за ограничения.
	WarningSaveExcluded(excluded int, limit uint64)
	// Usage текущий объём слепков в памяти и во вторичном хранилище.
	Usage(memory, secondary uint64)
}

type nopLogger struct{}

func (nopLogger) DebugCapture(int, int)             {}
func (nopLogger) DebugEvict(int, int, bool)         {}
func (nopLogger) DebugDemote(int, int)              {}
func (nopLogger) DebugPromote(int, int)             {}
func (nopLogger) WarningCannotEvict(uint64, uint64) {}
func (nopLogger) WarningSaveExcluded(int, uint64)   {}
func (nopLogger) Usage(uint64, uint64)              {}

// Loggers объединение логгеров, события передаются каждому по порядку.
func Loggers(loggers ...Logger) Logger {
	return multiLogger(loggers)
}

type multiLogger []Logger

func (m multiLogger) DebugCapture(frame, length int) {
	for _, l := range m {
		l.DebugCapture(frame, length)
	}
}

func (m multiLogger) DebugEvict(frame, length int, demoted bool) {
	for _, l := range m {
		l.DebugEvict(frame, length, demoted)
	}
}

func (m multiLogger) DebugDemote(frame, length int) {
	for _, l := range m {
		l.DebugDemote(frame, length)
	}
}

func (m multiLogger) DebugPromote(frame, length int) {
	for _, l := range m {
		l.DebugPromote(frame, length)
	}
}

func (m multiLogger) WarningCannotEvict(used, limit uint64) {
	for _, l := range m {
		l.WarningCannotEvict(used, limit)
	}
}

func (m multiLogger) WarningSaveExcluded(excluded int, limit uint64) {
	for _, l := range m {
		l.WarningSaveExcluded(excluded, limit)
	}
}

func (m multiLogger) Usage(memory, secondary uint64) {
	for _, l := range m {
		l.Usage(memory, secondary)
	}
}
