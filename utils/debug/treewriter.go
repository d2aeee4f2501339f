// Package debug has helpers to produce readable dumps of conversion state for
// debug reports.
package debug

import (
	"fmt"
	"strconv"
	"strings"
)

const indent = "  "

// TreeWriter accumulates indented lines.
type TreeWriter struct {
	w *strings.Builder
}

func NewTreeWriter() *TreeWriter {
	return &TreeWriter{
		w: &strings.Builder{},
	}
}

func (tw TreeWriter) String() string {
	return tw.w.String()
}

func (tw TreeWriter) Line(depth int, format string, args ...any) {
	tw.w.WriteString(strings.Repeat(indent, depth))
	fmt.Fprintf(tw.w, format, args...)
	tw.w.WriteByte('\n')
}

// TextBlock writes quoted value so multi line content stays on a single line.
// Empty values are skipped entirely.
func (tw TreeWriter) TextBlock(depth int, label, value string) {
	if value == "" {
		return
	}
	tw.w.WriteString(strings.Repeat(indent, depth))
	tw.w.WriteString(label)
	tw.w.WriteString(": ")
	tw.w.WriteString(strconv.Quote(value))
	tw.w.WriteByte('\n')
}

// List writes label followed by the values, one per line.
func (tw TreeWriter) List(depth int, label string, values []string) {
	if len(values) == 0 {
		return
	}
	tw.Line(depth, "%s[%d]", label, len(values))
	for _, v := range values {
		tw.w.WriteString(strings.Repeat(indent, depth+1))
		tw.w.WriteString(strconv.Quote(v))
		tw.w.WriteByte('\n')
	}
}
