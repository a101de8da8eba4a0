package testutil

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

// CapturedRecord is one log record held by a CaptureHandler.
type CapturedRecord struct {
	Level   slog.Level
	Message string
	Attrs   map[string]any
}

// CaptureHandler is a slog.Handler that keeps every record in memory so
// tests can assert on what a component logged. All levels are captured
// regardless of the logger's configured level.
type CaptureHandler struct {
	mu      sync.Mutex
	attrs   []slog.Attr
	records []CapturedRecord
}

// NewCapturedLogger returns a logger wired to a fresh CaptureHandler.
func NewCapturedLogger() (*slog.Logger, *CaptureHandler) {
	handler := &CaptureHandler{}
	return slog.New(handler), handler
}

// Handle implements slog.Handler.
func (h *CaptureHandler) Handle(_ context.Context, r slog.Record) error {
	attrs := make(map[string]any, r.NumAttrs()+len(h.attrs))
	for _, a := range h.attrs {
		attrs[a.Key] = a.Value.Any()
	}
	r.Attrs(func(a slog.Attr) bool {
		attrs[a.Key] = a.Value.Any()
		return true
	})

	h.mu.Lock()
	defer h.mu.Unlock()
	h.records = append(h.records, CapturedRecord{
		Level:   r.Level,
		Message: r.Message,
		Attrs:   attrs,
	})
	return nil
}

// Enabled implements slog.Handler.
func (h *CaptureHandler) Enabled(context.Context, slog.Level) bool {
	return true
}

// WithAttrs implements slog.Handler. The derived handler shares the record
// buffer so Logger.With chains still land in the same capture.
func (h *CaptureHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &sharedCapture{parent: h, attrs: merged}
}

// WithGroup implements slog.Handler. Groups are flattened; attribute keys
// inside a group keep their bare names, which is enough for test assertions.
func (h *CaptureHandler) WithGroup(string) slog.Handler {
	return h
}

// Records returns a copy of every captured record.
func (h *CaptureHandler) Records() []CapturedRecord {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]CapturedRecord, len(h.records))
	copy(out, h.records)
	return out
}

// RecordsAt returns the captured records at the given level.
func (h *CaptureHandler) RecordsAt(level slog.Level) []CapturedRecord {
	h.mu.Lock()
	defer h.mu.Unlock()
	var out []CapturedRecord
	for _, r := range h.records {
		if r.Level == level {
			out = append(out, r)
		}
	}
	return out
}

// ContainsMessage reports whether any captured record's message contains
// the given substring.
func (h *CaptureHandler) ContainsMessage(message string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, r := range h.records {
		if strings.Contains(r.Message, message) {
			return true
		}
	}
	return false
}

// ContainsAttr reports whether any captured record carries the attribute
// with exactly the given value.
func (h *CaptureHandler) ContainsAttr(key string, value any) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, r := range h.records {
		if v, ok := r.Attrs[key]; ok && v == value {
			return true
		}
	}
	return false
}

// Reset drops every captured record.
func (h *CaptureHandler) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.records = h.records[:0]
}

// Len returns the number of captured records.
func (h *CaptureHandler) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.records)
}

// sharedCapture forwards records to its parent CaptureHandler with a fixed
// attribute set prepended.
type sharedCapture struct {
	parent *CaptureHandler
	attrs  []slog.Attr
}

func (s *sharedCapture) Handle(ctx context.Context, r slog.Record) error {
	clone := r.Clone()
	clone.AddAttrs(s.attrs...)
	return s.parent.Handle(ctx, clone)
}

func (s *sharedCapture) Enabled(context.Context, slog.Level) bool {
	return true
}

func (s *sharedCapture) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(s.attrs)+len(attrs))
	merged = append(merged, s.attrs...)
	merged = append(merged, attrs...)
	return &sharedCapture{parent: s.parent, attrs: merged}
}

func (s *sharedCapture) WithGroup(string) slog.Handler {
	return s
}

// RequireLogged fails the test unless a record at the given level contains
// the message substring.
func RequireLogged(t *testing.T, handler *CaptureHandler, level slog.Level, message string) {
	t.Helper()

	for _, r := range handler.RecordsAt(level) {
		if strings.Contains(r.Message, message) {
			return
		}
	}

	t.Errorf("expected a %s log containing %q", level, message)
	for _, r := range handler.RecordsAt(level) {
		t.Logf("  captured: %s", r.Message)
	}
}

// RequireNoErrors fails the test if any error-level record was captured.
func RequireNoErrors(t *testing.T, handler *CaptureHandler) {
	t.Helper()

	errs := handler.RecordsAt(slog.LevelError)
	if len(errs) == 0 {
		return
	}
	for _, r := range errs {
		t.Errorf("unexpected error log: %s %v", r.Message, r.Attrs)
	}
}
