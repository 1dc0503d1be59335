package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Table renders rows in aligned, space-separated columns.
type Table struct {
	Color bool

	headers []string
	rows    [][]string
	widths  []int
}

// NewTable creates a table with the given column headers.
func NewTable(headers ...string) *Table {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	return &Table{headers: headers, widths: widths}
}

// AddRow adds a row. Missing values are blank; extra values are dropped.
func (t *Table) AddRow(values ...string) {
	row := make([]string, len(t.headers))
	for i := range t.headers {
		if i < len(values) {
			row[i] = values[i]
		}
		t.widths[i] = max(t.widths[i], lipgloss.Width(row[i]))
	}
	t.rows = append(t.rows, row)
}

// Render returns the table with a header rule.
func (t *Table) Render() string {
	if len(t.headers) == 0 {
		return ""
	}
	p := painter(t.Color)
	var b strings.Builder
	line := func(cells []string, style *lipgloss.Style) {
		var l strings.Builder
		for i, c := range cells {
			if i > 0 {
				l.WriteString("  ")
			}
			cell := c
			if i < len(cells)-1 {
				cell += strings.Repeat(" ", t.widths[i]-lipgloss.Width(c))
			}
			if style != nil {
				cell = p.paint(*style, cell)
			}
			l.WriteString(cell)
		}
		b.WriteString(strings.TrimRight(l.String(), " "))
		b.WriteByte('\n')
	}

	line(t.headers, &styleHeader)
	rules := make([]string, len(t.widths))
	for i, w := range t.widths {
		rules[i] = strings.Repeat("─", w)
	}
	line(rules, &styleMuted)
	for _, row := range t.rows {
		line(row, nil)
	}
	return b.String()
}
