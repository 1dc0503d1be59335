package render

import (
	"fmt"
	"strings"

	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"

	"github.com/dshills/autograde/internal/grade"
)

const (
	DefaultWidth = 78
	minWidth     = 40

	rightColumn = 8
	goodMark    = "✅"
	failMark    = "❌"
	bar         = "│"
)

// TextOptions controls the human-readable report.
type TextOptions struct {
	Width int
	Color bool
}

// Wrap word-wraps s to width columns. Newlines in s force breaks and words
// longer than width are split.
func Wrap(s string, width int) []string {
	var out []string
	for _, para := range strings.Split(s, "\n") {
		if para == "" {
			out = append(out, "")
			continue
		}
		wrapped := wrap.String(wordwrap.String(para, width), width)
		for _, line := range strings.Split(wrapped, "\n") {
			out = append(out, strings.TrimRight(line, " "))
		}
	}
	return out
}

// Text renders a boxed report. Only deductions worth printing are shown;
// the machine-readable outputs carry the rest.
func Text(r *grade.ResultsReport, opts TextOptions) string {
	width := opts.Width
	if width == 0 {
		width = DefaultWidth
	}
	width = max(width, minWidth)
	left := width - rightColumn - 6
	p := painter(opts.Color)

	rule := strings.Repeat("─", width-1)
	fraction := func(detail string, top, bottom float64, passing bool) string {
		mark := p.paint(stylePass, goodMark)
		if !passing {
			mark = p.paint(styleFail, failMark)
		}
		frac := fmt.Sprintf("%*s", rightColumn*2+1, fmt.Sprintf("%.1f/%.1f", top, bottom))
		return fmt.Sprintf("%s %-*s %s %s\n", bar, left-rightColumn-2, detail, frac, mark)
	}

	var b strings.Builder
	b.WriteString("┌" + rule + "\n")
	fmt.Fprintf(&b, "%s %s\n", bar, p.paint(styleHeader, "Autograder for "+r.Project))
	if r.Description != "" {
		for _, line := range Wrap(r.Description, width-2) {
			fmt.Fprintf(&b, "%s %s\n", bar, line)
		}
	}
	b.WriteString("├" + rule + "\n")
	b.WriteString(bar + "\n")

	for _, res := range r.Results {
		b.WriteString(fraction(res.Title, res.Points, res.MaxPoints, res.Passes))
		for _, d := range res.Printable() {
			lines := Wrap(d.Description, left-2)
			cost := ""
			if d.Cost != 0 {
				cost = p.paint(styleFail, fmt.Sprintf("%*s", rightColumn, fmt.Sprintf("(%.1f)", -d.Cost)))
			}
			if cost == "" {
				fmt.Fprintf(&b, "%s - %s\n", bar, lines[0])
			} else {
				fmt.Fprintf(&b, "%s - %-*s %s\n", bar, left-2, lines[0], cost)
			}
			for _, line := range lines[1:] {
				fmt.Fprintf(&b, "%s   %s\n", bar, p.paint(styleMuted, line))
			}
		}
		b.WriteString(bar + "\n")
	}

	b.WriteString("├" + rule + "\n")
	b.WriteString(fraction("Total points:", r.Points, r.MaxPoints, r.AllPassing))
	b.WriteString("└" + rule + "\n")
	return b.String()
}
