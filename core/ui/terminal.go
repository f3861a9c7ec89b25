// Package ui renders coloured terminal output for hostname checks.
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"hostforge/core/generator"
	"hostforge/core/validator"
)

// Colors for terminal output
const (
	Reset  = "\033[0m"
	Bold   = "\033[1m"
	Dim    = "\033[2m"
	Red    = "\033[31m"
	Green  = "\033[32m"
	Yellow = "\033[33m"
	Blue   = "\033[34m"
	Cyan   = "\033[36m"
)

// Writer is the UI output destination
type Writer struct {
	out       io.Writer
	noColor   bool
	verbosity int
}

// NewWriter creates a UI writer
func NewWriter(out io.Writer, noColor bool) *Writer {
	if out == nil {
		out = os.Stdout
	}
	return &Writer{
		out:       out,
		noColor:   noColor,
		verbosity: 1,
	}
}

// SetVerbosity sets output verbosity (0=quiet, 1=normal, 2=verbose)
func (w *Writer) SetVerbosity(level int) {
	w.verbosity = level
}

// color applies color if enabled
func (w *Writer) color(c, text string) string {
	if w.noColor {
		return text
	}
	return c + text + Reset
}

// Println writes a line with newline
func (w *Writer) Println(format string, args ...interface{}) {
	fmt.Fprintf(w.out, format+"\n", args...)
}

// line writes s verbatim
func (w *Writer) line(s string) {
	fmt.Fprintln(w.out, s)
}

// Header prints a section header
func (w *Writer) Header(title string) {
	w.line(w.color(Bold+Cyan, "━━━ " + title + " ━━━"))
}

// Success prints a success message
func (w *Writer) Success(format string, args ...interface{}) {
	w.line(w.color(Green, "✓ ") + fmt.Sprintf(format, args...))
}

// Warning prints a warning
func (w *Writer) Warning(format string, args ...interface{}) {
	w.line(w.color(Yellow, "⚠ ") + fmt.Sprintf(format, args...))
}

// Error prints an error
func (w *Writer) Error(format string, args ...interface{}) {
	w.line(w.color(Red, "✗ ") + fmt.Sprintf(format, args...))
}

// Info prints an info message
func (w *Writer) Info(format string, args ...interface{}) {
	if w.verbosity < 1 {
		return
	}
	w.line(w.color(Blue, "ℹ ") + fmt.Sprintf(format, args...))
}

// Debug prints a debug message
func (w *Writer) Debug(format string, args ...interface{}) {
	if w.verbosity < 2 {
		return
	}
	w.line(w.color(Dim, "  "+fmt.Sprintf(format, args...)))
}

// Report prints one validation report: a verdict line, then errors,
// warnings and suggestions.
func (w *Writer) Report(hostname string, r validator.Report) {
	if r.IsValid {
		w.Success("%s", w.color(Bold, hostname))
	} else {
		w.Error("%s", w.color(Bold, hostname))
	}
	for _, msg := range r.Errors {
		w.line("    " + w.color(Red, "error: ") + msg)
	}
	for _, msg := range r.Warnings {
		w.line("    " + w.color(Yellow, "warning: ") + msg)
	}
	if w.verbosity < 1 {
		return
	}
	for _, msg := range r.Suggestions {
		w.line("    " + w.color(Cyan, "hint: ") + msg)
	}
}

// Reports prints several reports and a summary line
func (w *Writer) Reports(results []validator.Result) {
	valid := 0
	for _, res := range results {
		w.Report(res.Hostname, res.Validation)
		if res.Validation.IsValid {
			valid++
		}
	}
	w.line("")
	summary := fmt.Sprintf("%d/%d valid", valid, len(results))
	if valid == len(results) {
		w.line(w.color(Green, summary))
	} else {
		w.line(w.color(Yellow, summary))
	}
}

// Suggestions prints a numbered suggestion list
func (w *Writer) Suggestions(hostname string, suggestions []string) {
	w.Header("Suggestions for " + hostname)
	if len(suggestions) == 0 {
		w.Success("no suggestions")
		return
	}
	for i, s := range suggestions {
		w.Println("%2d. %s", i+1, s)
	}
}

// Decoded prints an identifier broken into its segments
func (w *Writer) Decoded(d *generator.Decoded) {
	w.Header(d.Hostname)
	rows := [][2]string{
		{"vendor", segment(d.Vendor, d.Codes.Vendor)},
		{"type", segment(d.Type, d.Codes.Type)},
		{"sector", segment(d.Sector, d.Codes.Sector)},
		{"location", segment(d.Location, d.Codes.Location)},
		{"number", fmt.Sprintf("%d", d.Number)},
	}
	for _, row := range rows {
		w.Println("  %-9s %s", row[0], row[1])
	}
	if !d.Complete() {
		w.Warning("some codes are not in the current catalogs")
	}
}

func segment(name, code string) string {
	if name == "" {
		return strings.TrimSpace(code + " (unknown)")
	}
	return name + " (" + code + ")"
}
