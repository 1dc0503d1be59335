package coverage

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/dshills/autograde/internal/grade"
	"github.com/dshills/autograde/internal/policy"
	"github.com/dshills/autograde/internal/snapshot"
)

// Class is a reported class after anonymous inner classes have been merged
// into it. Name is in dotted form.
type Class struct {
	Name     string
	Counters map[snapshot.CounterKind]snapshot.Counter
}

// Fold merges every anonymous class into its named parent, summing their
// counters, and normalizes the names. Classes keep the order in which
// their named form first appears.
func Fold(r *snapshot.CoverageReport) []Class {
	var order []string
	byName := map[string]*Class{}
	for _, c := range r.Classes() {
		name := c.Name
		if IsAnonymous(name) {
			name = AnonymousParent(name)
		}
		name = NormalizeClassName(name)
		fc, ok := byName[name]
		if !ok {
			fc = &Class{Name: name, Counters: map[snapshot.CounterKind]snapshot.Counter{}}
			byName[name] = fc
			order = append(order, name)
		}
		for _, kind := range snapshot.CounterKinds {
			ctr := c.Counter(kind)
			if ctr.Missed+ctr.Covered == 0 {
				continue
			}
			sum := fc.Counters[kind]
			sum.Kind = kind
			sum.Missed += ctr.Missed
			sum.Covered += ctr.Covered
			fc.Counters[kind] = sum
		}
	}
	out := make([]Class, 0, len(order))
	for _, n := range order {
		out = append(out, *byName[n])
	}
	return out
}

// CounterKind maps a policy metric onto the report counter it reads.
func CounterKind(m policy.Metric) snapshot.CounterKind {
	if m == policy.MetricInstruction {
		return snapshot.CounterInstruction
	}
	return snapshot.CounterLine
}

// Evaluate grades the coverage requirement of p against r. The award is
// all or nothing: every in-scope class with code must reach the minimum
// percentage. A nil report means the coverage tool never ran.
func Evaluate(p *policy.Project, r *snapshot.CoverageReport, log *slog.Logger) grade.EvaluatorResult {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	if p.CoveragePoints == 0 {
		return grade.Passing(0, "No test coverage requirement", grade.CategoryCoverage)
	}
	if r == nil {
		log.Warn("coverage report missing", "project", p.Name)
		return grade.Failing(p.CoveragePoints, "No test coverage results found", grade.CategoryCoverage)
	}

	kind := CounterKind(p.CoverageMetric)
	classes := Fold(r)
	byName := make(map[string]Class, len(classes))
	names := make([]string, 0, len(classes))
	for _, c := range classes {
		byName[c.Name] = c
		names = append(names, c.Name)
	}
	inScope := Resolve(p.Coverage, names)
	slices.Sort(inScope)

	var wins, fails []grade.Deduction
	for _, name := range inScope {
		ctr := byName[name].Counters[kind]
		total := ctr.Covered + ctr.Missed
		if total == 0 {
			log.Debug("coverage skip, no code", "class", name)
			continue
		}
		pct := 100 * float64(ctr.Covered) / float64(total)
		d := grade.CoverageDeduction(fmt.Sprintf("Coverage of %s: %.1f%%", name, pct), 0, name, pct)
		log.Debug("coverage", "class", name, "percentage", pct)
		if pct < p.CoveragePercentage {
			fails = append(fails, d)
		} else {
			wins = append(wins, d)
		}
	}

	if len(wins)+len(fails) == 0 {
		log.Warn("no classes in scope for coverage", "project", p.Name, "reported", len(names), "in_scope", len(inScope))
		return grade.Failing(p.CoveragePoints, "Test coverage: no classes specified for coverage!", grade.CategoryCoverage)
	}

	by := "(by " + strings.ToLower(string(kind)) + ")"
	if len(fails) == 0 {
		log.Info("coverage passed", "classes", len(wins))
		res := grade.Passing(p.CoveragePoints,
			fmt.Sprintf("Test coverage meets %.0f%% %s requirement", p.CoveragePercentage, by),
			grade.CategoryCoverage)
		res.Deductions = wins
		return res
	}
	log.Info("coverage failed", "failing", len(fails), "passing", len(wins))
	where := r.HTMLPath
	if where == "" {
		where = r.Path
	}
	if where != "" {
		fails = append(fails, grade.Basic("See the coverage report for details:\n"+where, 0))
	}
	return grade.Failing(p.CoveragePoints,
		fmt.Sprintf("Classes with coverage below %.0f%% %s requirement", p.CoveragePercentage, by),
		grade.CategoryCoverage, fails...)
}
