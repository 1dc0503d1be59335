// Package render produces the human-readable forms of a grading report:
// a boxed terminal report and Markdown.
package render

import (
	"fmt"
	"strings"

	"github.com/dshills/autograde/internal/grade"
)

// Markdown renders a report as Markdown.
func Markdown(r *grade.ResultsReport) string {
	var b strings.Builder

	// Summary
	fmt.Fprintf(&b, "# Autograder Report: %s\n\n", r.Project)
	if r.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", r.Description)
	}
	fmt.Fprintf(&b, "**Result:** %s\n", verdict(r.AllPassing))
	fmt.Fprintf(&b, "**Points:** %.1f / %.1f\n", r.Points, r.MaxPoints)
	fmt.Fprintf(&b, "**Failing:** %d of %d\n\n", r.Failed(), len(r.Results))

	// Results by category
	for _, cat := range []grade.Category{grade.CategoryTests, grade.CategoryStyle, grade.CategoryCoverage} {
		results := filterResults(r.Results, cat)
		if len(results) == 0 {
			continue
		}
		fmt.Fprintf(&b, "## %s\n\n", cat)
		for _, res := range results {
			renderResult(&b, res)
		}
	}

	if len(r.Results) == 0 {
		b.WriteString("Nothing to grade.\n\n")
	}

	return b.String()
}

func verdict(passing bool) string {
	if passing {
		return "PASS"
	}
	return "FAIL"
}

func filterResults(results []grade.EvaluatorResult, cat grade.Category) []grade.EvaluatorResult {
	var out []grade.EvaluatorResult
	for _, res := range results {
		if res.Category == cat {
			out = append(out, res)
		}
	}
	return out
}

func renderResult(b *strings.Builder, res grade.EvaluatorResult) {
	fmt.Fprintf(b, "### %s %s (%.1f / %.1f)\n\n", verdict(res.Passes), res.Title, res.Points, res.MaxPoints)
	printable := res.Printable()
	for _, d := range printable {
		lines := strings.Split(d.Description, "\n")
		if d.Cost != 0 {
			fmt.Fprintf(b, "- %s **(-%.1f)**\n", lines[0], d.Cost)
		} else {
			fmt.Fprintf(b, "- %s\n", lines[0])
		}
		for _, l := range lines[1:] {
			fmt.Fprintf(b, "  %s\n", l)
		}
	}
	if len(printable) > 0 {
		b.WriteString("\n")
	}
}
