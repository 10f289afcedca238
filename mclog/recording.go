package mclog

import (
	"fmt"
	"strings"
)

// Entry is one recorded log line.
type Entry struct {
	Level   string
	Message string
}

// Recording is a Logger that keeps every message it receives, so tests
// can assert on it without capturing stdout.
type Recording struct {
	Entries []Entry
}

// NewRecording returns an empty Recording logger.
func NewRecording() *Recording { return &Recording{} }

func (r *Recording) Debugf(format string, v ...any) { r.record("DEBUG", format, v...) }
func (r *Recording) Infof(format string, v ...any)  { r.record("INFO", format, v...) }
func (r *Recording) Warnf(format string, v ...any)  { r.record("WARN", format, v...) }
func (r *Recording) Errorf(format string, v ...any) { r.record("ERROR", format, v...) }

func (r *Recording) record(level, format string, v ...any) {
	r.Entries = append(r.Entries, Entry{Level: level, Message: fmt.Sprintf(format, v...)})
}

// Has reports whether any recorded entry at the given level contains substr.
func (r *Recording) Has(level, substr string) bool {
	for _, e := range r.Entries {
		if e.Level == level && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}
