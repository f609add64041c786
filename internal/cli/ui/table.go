package ui

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
)

func style(noColor bool, attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if noColor {
		c.DisableColor()
	}
	return c
}

// Table renders rows under a highlighted header, columns padded to the
// widest cell.
type Table struct {
	writer  io.Writer
	headers []string
	rows    [][]string
	noColor bool
}

// NewTable creates a table with the given headers
func NewTable(w io.Writer, noColor bool, headers ...string) *Table {
	return &Table{writer: w, headers: headers, noColor: noColor}
}

// AddRow appends a row. Missing cells render empty; extra cells are dropped.
func (t *Table) AddRow(cells ...string) {
	row := make([]string, len(t.headers))
	copy(row, cells)
	t.rows = append(t.rows, row)
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Render writes the table
func (t *Table) Render() {
	if len(t.headers) == 0 {
		return
	}

	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = utf8.RuneCountInString(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if n := utf8.RuneCountInString(cell); n > widths[i] {
				widths[i] = n
			}
		}
	}

	head := style(t.noColor, color.Bold, color.FgCyan)
	rule := style(t.noColor, color.FgHiBlack)

	last := len(t.headers) - 1
	for i, h := range t.headers {
		head.Fprint(t.writer, cell(h, widths[i], i == last))
	}
	fmt.Fprintln(t.writer)

	for i, w := range widths {
		rule.Fprint(t.writer, cell(strings.Repeat("─", w), w, i == last))
	}
	fmt.Fprintln(t.writer)

	for _, row := range t.rows {
		for i, c := range row {
			fmt.Fprint(t.writer, cell(c, widths[i], i == last))
		}
		fmt.Fprintln(t.writer)
	}
}

func cell(s string, width int, last bool) string {
	if last {
		return s
	}
	return pad(s, width) + "  "
}

func pad(s string, width int) string {
	if n := utf8.RuneCountInString(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

// KeyValueTable renders aligned "key: value" lines
type KeyValueTable struct {
	writer  io.Writer
	keys    []string
	values  []string
	noColor bool
}

// NewKeyValueTable creates a new key-value table
func NewKeyValueTable(w io.Writer, noColor bool) *KeyValueTable {
	return &KeyValueTable{writer: w, noColor: noColor}
}

// AddRow adds a key-value pair
func (t *KeyValueTable) AddRow(key, value string) {
	t.keys = append(t.keys, key)
	t.values = append(t.values, value)
}

// Render writes the pairs
func (t *KeyValueTable) Render() {
	width := 0
	for _, k := range t.keys {
		if n := utf8.RuneCountInString(k) + 1; n > width {
			width = n
		}
	}

	key := style(t.noColor, color.FgCyan)
	for i, k := range t.keys {
		key.Fprint(t.writer, pad(k+":", width))
		fmt.Fprintf(t.writer, " %s\n", t.values[i])
	}
}

// Header writes a bold title underlined to its own width
func Header(w io.Writer, title string, noColor bool) {
	style(noColor, color.Bold, color.FgCyan).Fprintln(w, title)
	style(noColor, color.FgHiBlack).Fprintln(w, strings.Repeat("─", utf8.RuneCountInString(title)))
}
