// Package style combines the format checker, the two lint passes and the
// compiler log into a single all-or-nothing style grade.
package style

import (
	"fmt"
	"log/slog"

	"github.com/dshills/autograde/internal/grade"
	"github.com/dshills/autograde/internal/policy"
	"github.com/dshills/autograde/internal/snapshot"
)

const (
	ToolFormat   = "GoogleJavaFormat"
	ToolLint     = "CheckStyle"
	ToolCompiler = "Compiler"

	titlePass = "No warning / style deductions"
	titleFail = "Warning / style deductions"
)

// Inputs are the reports the style grade reads. Any of them may be nil.
type Inputs struct {
	Format     *snapshot.FormatReport
	LintMain   *snapshot.LintReport
	LintTest   *snapshot.LintReport
	CompileLog *snapshot.CompileLog
}

// FromSnapshot picks the style inputs out of a snapshot.
func FromSnapshot(s *snapshot.Snapshot) Inputs {
	return Inputs{Format: s.Format, LintMain: s.LintMain, LintTest: s.LintTest, CompileLog: s.CompileLog}
}

func check(tool, section, desc string, passing bool, passed, checked int) grade.Deduction {
	return grade.StyleDeduction(desc, 0, grade.StyleDetail{
		Tool: tool, Section: section, Passing: passing, NumPassed: passed, NumChecked: checked,
	})
}

// Format checks that every file the formatter scanned is formatted. An
// empty report counts as missing.
func Format(r *snapshot.FormatReport) grade.Deduction {
	if r == nil || len(r.Files) == 0 {
		return check(ToolFormat, "", ToolFormat+": no input found", false, 0, 0)
	}
	ok, n := r.Formatted(), len(r.Files)
	desc := fmt.Sprintf("%s: %d of %d files passed", ToolFormat, ok, n)
	if ok != n {
		desc += "; run the googleJavaFormat task to fix"
	}
	return check(ToolFormat, "", desc, ok == n, ok, n)
}

// Lint checks that every file in one module's lint report is clean.
func Lint(module string, r *snapshot.LintReport) grade.Deduction {
	if r == nil {
		return check(ToolLint, module, fmt.Sprintf("%s (%s): report not found", ToolLint, module), false, 0, 0)
	}
	clean, n := r.Clean(), len(r.Files)
	return check(ToolLint, module,
		fmt.Sprintf("%s (%s): %d of %d files passed", ToolLint, module, clean, n), clean == n, clean, n)
}

// Compiler checks that the compiler printed nothing.
func Compiler(l *snapshot.CompileLog) grade.Deduction {
	switch {
	case l == nil:
		return check(ToolCompiler, "", ToolCompiler+": Can't find output", false, 0, 0)
	case l.Clean():
		return check(ToolCompiler, "", ToolCompiler+": No warnings or errors", true, 0, 0)
	default:
		return check(ToolCompiler, "", ToolCompiler+": One or more warnings / errors", false, 0, 0)
	}
}

// Evaluate grades style for p. Only the checks p enables take part; the
// full budget is awarded when all of them pass and nothing otherwise.
func Evaluate(p *policy.Project, in Inputs, log *slog.Logger) grade.EvaluatorResult {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	if p.StylePoints == 0 {
		return grade.Passing(0, titlePass, grade.CategoryStyle)
	}

	deductions := []grade.Deduction{}
	if p.UseLint {
		deductions = append(deductions, Lint("main", in.LintMain), Lint("test", in.LintTest))
	}
	if p.UseFormatCheck {
		deductions = append(deductions, Format(in.Format))
	}
	if p.UseCompilerWarnings {
		deductions = append(deductions, Compiler(in.CompileLog))
	}

	passing := true
	for _, d := range deductions {
		log.Debug("style check", "tool", d.Style.Tool, "section", d.Style.Section, "passing", d.Style.Passing)
		passing = passing && d.Style.Passing
	}
	log.Info("style graded", "checks", len(deductions), "passing", passing)

	if passing {
		res := grade.Passing(p.StylePoints, titlePass, grade.CategoryStyle)
		res.Deductions = deductions
		return res
	}
	return grade.Failing(p.StylePoints, titleFail, grade.CategoryStyle, deductions...)
}
