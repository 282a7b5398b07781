package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"talc/internal/diag"
	"talc/internal/source"
)

// PrettyOpts configures diagnostic rendering.
type PrettyOpts struct {
	// Color enables ANSI colors.
	Color bool
	// Context is the number of source lines shown before the primary line.
	Context int
}

// Pretty renders diagnostics as
//
//	<path>:<line>:<col>: <SEV> <CODE>: <message>
//
// followed by the source line with a caret underline, then notes in the
// same format. Call bag.Sort() first for deterministic output.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	for _, d := range bag.Items() {
		writeHeading(w, fs, d.Primary, d.Severity, d.Code, d.Message, opts)
		writeContext(w, fs, d.Primary)
		for _, n := range d.Notes {
			writeHeading(w, fs, n.Span, diag.SevInfo, diag.UnknownCode, n.Msg, opts)
			writeContext(w, fs, n.Span)
		}
	}
}

func writeHeading(w io.Writer, fs *source.FileSet, sp source.Span, sev diag.Severity, code diag.Code, msg string, opts PrettyOpts) {
	path, lc := fs.LineCol(sp)
	sevText := sev.String()
	if opts.Color {
		sevText = severityColor(sev).Sprint(sevText)
	}
	if code == diag.UnknownCode {
		fmt.Fprintf(w, "%s:%d:%d: %s: %s\n", path, lc.Line, lc.Col, sevText, msg)
		return
	}
	fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n", path, lc.Line, lc.Col, sevText, code, msg)
}

func writeContext(w io.Writer, fs *source.FileSet, sp source.Span) {
	if int(sp.File) >= fs.Len() {
		return
	}
	file := fs.Get(sp.File)
	line := lineContaining(file, sp.Start)
	if line == "" {
		return
	}
	fmt.Fprintf(w, "    %s\n", line)

	lc := file.LineCol(sp.Start)
	col := int(lc.Col) - 1
	width := int(sp.Len())
	if width < 1 {
		width = 1
	}
	if col+width > len(line) {
		width = max(len(line)-col, 1)
	}
	fmt.Fprintf(w, "    %s%s\n", strings.Repeat(" ", col), strings.Repeat("^", width))
}

// lineContaining returns the full source line holding the byte offset,
// without its trailing newline.
func lineContaining(file *source.File, off uint32) string {
	content := file.Content
	if int(off) > len(content) {
		return ""
	}
	start := int(off)
	for start > 0 && content[start-1] != '\n' {
		start--
	}
	end := int(off)
	for end < len(content) && content[end] != '\n' {
		end++
	}
	return string(content[start:end])
}

func severityColor(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return color.New(color.FgRed, color.Bold)
	case diag.SevWarning:
		return color.New(color.FgYellow, color.Bold)
	default:
		return color.New(color.FgCyan)
	}
}
