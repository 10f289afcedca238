// Package mclog is the injectable logging interface the move framework
// logs through, so callers can capture or silence diagnostics without
// the framework ever calling log.Printf directly.
package mclog

// Logger is implemented by anything that can record leveled, formatted
// diagnostics: container collisions, insufficient grand-canonical
// inventory, NaN energies, field-iteration progress.
type Logger interface {
	Debugf(format string, v ...any)
	Infof(format string, v ...any)
	Warnf(format string, v ...any)
	Errorf(format string, v ...any)
}

// NoOpLogger discards everything. It is the default for any component
// that isn't given a Logger explicitly.
type NoOpLogger struct{}

func (NoOpLogger) Debugf(format string, v ...any) {}
func (NoOpLogger) Infof(format string, v ...any)  {}
func (NoOpLogger) Warnf(format string, v ...any)  {}
func (NoOpLogger) Errorf(format string, v ...any) {}

// NewNoOp returns a Logger that discards everything.
func NewNoOp() Logger { return NoOpLogger{} }
