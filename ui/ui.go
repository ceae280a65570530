package ui

import (
	"encoding/json"
)

// Severity classifies the visual weight of a piece of inline text.
type Severity uint8

const (
	SeverityInfo     Severity = iota // plain
	SeveritySuccess                  // green, e.g. a resolved profile
	SeverityWarn                     // yellow, e.g. no profile
	SeverityError                    // red
	SeverityCritical                 // bold
)

// StyledText pairs a plain string with a Severity annotation. It marshals
// to JSON as the plain text.
type StyledText struct {
	Text     string
	Severity Severity
}

func (s StyledText) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Text)
}

// UI is everything the suiprofile commands print.
//
// Production code uses TerminalUI, tests use RecordingUI.
type UI interface {
	// Style returns the text from t coloured according to its Severity.
	// When colours are disabled the plain text is returned unchanged.
	Style(t StyledText) string

	Info(format string, args ...any)
	Success(format string, args ...any)
	Warn(format string, args ...any)
	// Error writes a failure in red. It does not exit.
	Error(format string, args ...any)
	Critical(format string, args ...any)

	// Section writes a separator centred around title.
	Section(title string)

	// KeyValue renders an aligned 2-column block.
	KeyValue(rows [][2]string)

	// Table renders a bordered table. No header row is rendered when
	// headers is empty.
	Table(headers []string, rows [][]string)

	// JSON writes v as indented JSON, with no styling.
	JSON(v any) error

	// Spinner starts an animated spinner with msg and returns the function
	// that stops it.
	//
	//   stop := u.Spinner("Resolving profiles...")
	//   defer stop()
	Spinner(msg string) func()
}
