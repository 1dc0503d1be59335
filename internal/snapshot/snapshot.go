// Package snapshot holds already-parsed tool reports. Everything here is
// read-only once built; a nil pointer means the report was not found.
package snapshot

import (
	"slices"
	"strings"
	"time"
)

// Snapshot bundles every tool report available for one grading run.
type Snapshot struct {
	Tests      *TestReport
	Coverage   *CoverageReport
	Format     *FormatReport
	LintMain   *LintReport
	LintTest   *LintReport
	CompileLog *CompileLog
}

// TestReport is the union of every unit-test suite the runner wrote.
type TestReport struct {
	Suites []TestSuite
}

type TestSuite struct {
	Name  string
	Path  string
	Cases []TestCase
}

// TestCase is one executed test. MethodName may carry a batch index
// suffix such as "name()[3]".
type TestCase struct {
	ClassName  string
	MethodName string
	Failed     bool
	Skipped    bool
	Message    string
}

// Cases returns all test cases across suites in report order.
func (r *TestReport) Cases() []TestCase {
	if r == nil {
		return nil
	}
	var out []TestCase
	for _, s := range r.Suites {
		out = append(out, s.Cases...)
	}
	return out
}

// CounterKind names a coverage metric.
type CounterKind string

const (
	CounterInstruction CounterKind = "INSTRUCTION"
	CounterLine        CounterKind = "LINE"
	CounterBranch      CounterKind = "BRANCH"
	CounterComplexity  CounterKind = "COMPLEXITY"
	CounterMethod      CounterKind = "METHOD"
	CounterClass       CounterKind = "CLASS"
)

// CounterKinds lists every counter kind in report order.
var CounterKinds = []CounterKind{
	CounterInstruction, CounterLine, CounterBranch, CounterComplexity, CounterMethod, CounterClass,
}

func (k CounterKind) Valid() bool {
	return slices.Contains(CounterKinds, k)
}

// CoverageReport is a package/class tree of coverage counters. Class
// names keep the tool's slash and dollar form ("a/b/C$1"). HTMLPath, when
// set, points at the browsable version of the same report.
type CoverageReport struct {
	Path     string
	HTMLPath string
	Packages []Package
}

type Package struct {
	Name    string
	Classes []Class
}

type Class struct {
	Name     string
	Counters []Counter
}

type Counter struct {
	Kind    CounterKind
	Missed  int
	Covered int
}

// Counter returns the counter of the given kind. A class without one has
// no code of that kind and reports a zero counter.
func (c Class) Counter(kind CounterKind) Counter {
	for _, ctr := range c.Counters {
		if ctr.Kind == kind {
			return ctr
		}
	}
	return Counter{Kind: kind}
}

// Classes returns every class in the report in package order.
func (r *CoverageReport) Classes() []Class {
	if r == nil {
		return nil
	}
	var out []Class
	for _, p := range r.Packages {
		out = append(out, p.Classes...)
	}
	return out
}

// FormatStatus is the per-file verdict of the format checker.
type FormatStatus string

const (
	FormatFormatted   FormatStatus = "FORMATTED"
	FormatUnformatted FormatStatus = "UNFORMATTED"
	FormatInvalid     FormatStatus = "INVALID"
	FormatUnknown     FormatStatus = "UNKNOWN"
)

// FormatReport is the format checker's per-file state table.
type FormatReport struct {
	Path  string
	Files []FormatFile
}

type FormatFile struct {
	Path    string
	ModTime time.Time
	Size    int64
	Status  FormatStatus
}

// Formatted returns how many files are reported as formatted.
func (r *FormatReport) Formatted() int {
	n := 0
	for _, f := range r.Files {
		if f.Status == FormatFormatted {
			n++
		}
	}
	return n
}

// LintReport is a CheckStyle-shaped report for one module.
type LintReport struct {
	Path  string
	Files []LintFile
}

type LintFile struct {
	Name   string
	Errors []LintError
}

type LintError struct {
	Line     int
	Column   int
	Severity string
	Message  string
	Source   string
}

// Clean returns how many files have no errors.
func (r *LintReport) Clean() int {
	n := 0
	for _, f := range r.Files {
		if len(f.Errors) == 0 {
			n++
		}
	}
	return n
}

// CompileLog is the captured compiler output.
type CompileLog struct {
	Path  string
	Lines []string
}

// Clean reports whether the log has no non-blank lines.
func (l *CompileLog) Clean() bool {
	for _, line := range l.Lines {
		if strings.TrimSpace(line) != "" {
			return false
		}
	}
	return true
}
