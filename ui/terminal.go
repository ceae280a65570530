package ui

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/logrusorgru/aurora"
	runewidth "github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

const sectionWidth = 50

// TerminalUI writes coloured output to a terminal. Colours and the spinner
// are turned off when the output is not a terminal.
type TerminalUI struct {
	out      io.Writer
	au       aurora.Aurora
	terminal bool
}

// NewTerminalUI creates a TerminalUI writing to os.Stdout.
func NewTerminalUI() *TerminalUI {
	return NewTerminalUIWithWriter(os.Stdout, term.IsTerminal(int(os.Stdout.Fd())))
}

func NewTerminalUIWithWriter(out io.Writer, terminal bool) *TerminalUI {
	return &TerminalUI{
		out:      out,
		au:       aurora.NewAurora(terminal),
		terminal: terminal,
	}
}

func (u *TerminalUI) writeLine(line string) {
	fmt.Fprintln(u.out, line)
}

func (u *TerminalUI) Style(t StyledText) string {
	switch t.Severity {
	case SeveritySuccess:
		return u.au.Green(t.Text).String()
	case SeverityWarn:
		return u.au.Yellow(t.Text).String()
	case SeverityError:
		return u.au.Red(t.Text).String()
	case SeverityCritical:
		return u.au.Bold(t.Text).String()
	default:
		return t.Text
	}
}

func (u *TerminalUI) Info(format string, args ...any) {
	u.writeLine(fmt.Sprintf(format, args...))
}

func (u *TerminalUI) Success(format string, args ...any) {
	u.writeLine(u.au.Green(fmt.Sprintf(format, args...)).String())
}

func (u *TerminalUI) Warn(format string, args ...any) {
	u.writeLine(u.au.Yellow(fmt.Sprintf(format, args...)).String())
}

func (u *TerminalUI) Error(format string, args ...any) {
	u.writeLine(u.au.Red(fmt.Sprintf(format, args...)).String())
}

func (u *TerminalUI) Critical(format string, args ...any) {
	u.writeLine(u.au.Bold(fmt.Sprintf(format, args...)).String())
}

// Section prints
//
//	============= Profiles on testnet ==============
//
// surrounded by blank lines.
func (u *TerminalUI) Section(title string) {
	titled := " " + title + " "
	bars := sectionWidth - runewidth.StringWidth(titled)
	if bars < 6 {
		bars = 6
	}
	left := bars / 2
	line := strings.Repeat("=", left) + titled + strings.Repeat("=", bars-left)
	fmt.Fprintf(u.out, "\n%s\n\n", line)
}

func (u *TerminalUI) KeyValue(rows [][2]string) {
	maxLabel := 0
	for _, r := range rows {
		if w := runewidth.StringWidth(r[0]); w > maxLabel {
			maxLabel = w
		}
	}
	for _, r := range rows {
		fmt.Fprintf(u.out, "%s  %s\n", runewidth.FillRight(r[0], maxLabel), r[1])
	}
}

func cellWidth(s string) int {
	return runewidth.StringWidth(ansi.Strip(s))
}

// Table renders a bordered table. Cells may carry colours from Style; they
// are ignored when computing column widths.
func (u *TerminalUI) Table(headers []string, rows [][]string) {
	ncols := len(headers)
	for _, r := range rows {
		if len(r) > ncols {
			ncols = len(r)
		}
	}
	if ncols == 0 {
		return
	}

	widths := make([]int, ncols)
	for _, row := range append([][]string{headers}, rows...) {
		for i, cell := range row {
			if w := cellWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	borderStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	border := func(s string) string { return borderStyle.Render(s) }
	rule := func(left, mid, right string) string {
		parts := make([]string, ncols)
		for i, w := range widths {
			parts[i] = strings.Repeat("─", w+2)
		}
		return border(left + strings.Join(parts, mid) + right)
	}
	renderRow := func(cells []string) string {
		parts := make([]string, ncols)
		for i := range parts {
			val := ""
			if i < len(cells) {
				val = cells[i]
			}
			parts[i] = " " + val + strings.Repeat(" ", widths[i]-cellWidth(val)) + " "
		}
		return border("│") + strings.Join(parts, border("│")) + border("│")
	}

	u.writeLine(rule("┌", "┬", "┐"))
	if len(headers) > 0 {
		u.writeLine(renderRow(headers))
		u.writeLine(rule("├", "┼", "┤"))
	}
	for _, row := range rows {
		u.writeLine(renderRow(row))
	}
	u.writeLine(rule("└", "┴", "┘"))
}

func (u *TerminalUI) JSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	u.writeLine(string(data))
	return nil
}

// Spinner only prints msg when the output is not a terminal.
func (u *TerminalUI) Spinner(msg string) func() {
	if !u.terminal {
		u.writeLine(msg)
		return func() {}
	}
	s := spinner.New(spinner.CharSets[14], 80*time.Millisecond, spinner.WithWriter(u.out))
	s.Suffix = " " + msg
	s.Start()
	return func() {
		s.Stop()
		// the spinner leaves the cursor on its line
		fmt.Fprintln(u.out)
	}
}
