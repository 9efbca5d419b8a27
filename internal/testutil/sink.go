// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"fmt"
	"slices"
	"sync"
)

const (
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

type (
	// Entry is one message captured by RecordingSink.
	Entry struct {
		Level   string
		Message string
		KeyVals []any
	}

	// RecordingSink is a concurrency-safe logging sink that keeps every entry.
	RecordingSink struct {
		mu      sync.Mutex
		entries []Entry
	}
)

func (s *RecordingSink) record(level string, msg any, keyvals []any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, Entry{Level: level, Message: fmt.Sprint(msg), KeyVals: keyvals})
}

func (s *RecordingSink) Debug(msg any, keyvals ...any) { s.record(LevelDebug, msg, keyvals) }
func (s *RecordingSink) Info(msg any, keyvals ...any)  { s.record(LevelInfo, msg, keyvals) }
func (s *RecordingSink) Warn(msg any, keyvals ...any)  { s.record(LevelWarn, msg, keyvals) }
func (s *RecordingSink) Error(msg any, keyvals ...any) { s.record(LevelError, msg, keyvals) }

// Entries returns a snapshot of all recorded entries.
func (s *RecordingSink) Entries() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.entries)
}

// Messages returns the messages recorded at level, in arrival order.
func (s *RecordingSink) Messages(level string) []string {
	var out []string
	for _, e := range s.Entries() {
		if e.Level == level {
			out = append(out, e.Message)
		}
	}
	return out
}
