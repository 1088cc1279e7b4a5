package cli

import (
	"strings"

	"github.com/jmylchreest/imagepalette/internal/colour"
)

// Table formats rows into aligned columns. Widths are measured in visible
// terminal cells, so cells may carry ANSI colour escapes.
type Table struct {
	headers   []string
	rows      [][]string
	separator string
	rule      string
	style     func(string) string
}

// NewTable creates a new table with the given headers.
func NewTable(headers []string) *Table {
	return &Table{
		headers:   headers,
		rows:      make([][]string, 0),
		separator: "  ",
		rule:      "-",
		style:     func(s string) string { return s },
	}
}

// SetBorders sets the column separator and the character repeated for
// horizontal rules.
func (t *Table) SetBorders(separator, rule string) {
	t.separator = separator
	t.rule = rule
}

// SetBorderStyle sets a function applied to separators and rules, such as
// colouring them.
func (t *Table) SetBorderStyle(style func(string) string) {
	t.style = style
}

// AddRow adds a row to the table, padding or truncating it to the header count.
func (t *Table) AddRow(row []string) {
	if len(row) != len(t.headers) {
		newRow := make([]string, len(t.headers))
		copy(newRow, row)
		row = newRow
	}
	t.rows = append(t.rows, row)
}

// Render formats and returns the table as a string.
func (t *Table) Render() string {
	if len(t.headers) == 0 {
		return ""
	}

	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = colour.VisibleWidth(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			widths[i] = max(widths[i], colour.VisibleWidth(cell))
		}
	}

	sep := t.style(t.separator)
	total := 0
	for _, w := range widths {
		total += w
	}
	total += colour.VisibleWidth(t.separator) * (len(widths) - 1)
	rule := t.style(strings.Repeat(t.rule, total))

	var b strings.Builder
	writeRow := func(cells []string) {
		for i, cell := range cells {
			if i > 0 {
				b.WriteString(sep)
			}
			b.WriteString(padRight(cell, widths[i]))
		}
		b.WriteString("\n")
	}

	writeRow(t.headers)
	b.WriteString(rule)
	b.WriteString("\n")
	for _, row := range t.rows {
		writeRow(row)
	}
	b.WriteString(rule)
	b.WriteString("\n")
	return b.String()
}

// padRight pads s with spaces to width visible cells. Longer strings are
// returned unchanged.
func padRight(s string, width int) string {
	if n := colour.VisibleWidth(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}
