package ui

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"
)

// Entry records a single UI method call.
type Entry struct {
	Method string
	Value  string
}

// RecordingUI implements UI for tests. Every call is kept in an entry log
// that can be inspected with Entries and HasMessage. It has no colours.
type RecordingUI struct {
	mu      sync.Mutex
	entries []Entry
}

func NewRecordingUI() *RecordingUI {
	return &RecordingUI{}
}

func (r *RecordingUI) record(method, value string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, Entry{Method: method, Value: value})
}

func (r *RecordingUI) Style(t StyledText) string {
	return t.Text
}

func (r *RecordingUI) Info(format string, args ...any) {
	r.record("Info", fmt.Sprintf(format, args...))
}

func (r *RecordingUI) Success(format string, args ...any) {
	r.record("Success", fmt.Sprintf(format, args...))
}

func (r *RecordingUI) Warn(format string, args ...any) {
	r.record("Warn", fmt.Sprintf(format, args...))
}

func (r *RecordingUI) Error(format string, args ...any) {
	r.record("Error", fmt.Sprintf(format, args...))
}

func (r *RecordingUI) Critical(format string, args ...any) {
	r.record("Critical", fmt.Sprintf(format, args...))
}

func (r *RecordingUI) Section(title string) {
	r.record("Section", title)
}

// KeyValue records one entry per row, formatted as "label: value".
func (r *RecordingUI) KeyValue(rows [][2]string) {
	for _, row := range rows {
		r.record("KeyValue", row[0]+": "+row[1])
	}
}

// Table records one entry per row, cells joined by " | ".
func (r *RecordingUI) Table(headers []string, rows [][]string) {
	for _, row := range rows {
		r.record("Table", strings.Join(row, " | "))
	}
}

func (r *RecordingUI) JSON(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	r.record("JSON", string(data))
	return nil
}

func (r *RecordingUI) Spinner(msg string) func() {
	r.record("Spinner", msg)
	return func() {}
}

// Entries returns all recorded calls in order.
func (r *RecordingUI) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Entry{}, r.entries...)
}

// Messages returns the values recorded by method.
func (r *RecordingUI) Messages(method string) []string {
	var out []string
	for _, e := range r.Entries() {
		if e.Method == method {
			out = append(out, e.Value)
		}
	}
	return out
}

// HasMessage reports whether any recorded value contains substr, ignoring
// case.
func (r *RecordingUI) HasMessage(substr string) bool {
	lower := strings.ToLower(substr)
	for _, e := range r.Entries() {
		if strings.Contains(strings.ToLower(e.Value), lower) {
			return true
		}
	}
	return false
}
