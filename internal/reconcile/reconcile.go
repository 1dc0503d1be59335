// Package reconcile matches a topic's declared tests against the test
// cases the runner reported and turns the outcome into points.
package reconcile

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/dshills/autograde/internal/grade"
	"github.com/dshills/autograde/internal/policy"
	"github.com/dshills/autograde/internal/snapshot"
)

// BaseMethodName drops any parameter or batch index suffix from a reported
// method name: "name()[3]" and "name(String)" both become "name".
func BaseMethodName(method string) string {
	if i := strings.IndexByte(method, '('); i >= 0 {
		return method[:i]
	}
	return method
}

type key struct{ class, method string }

// Index groups reported test cases by class and base method name.
type Index map[key][]snapshot.TestCase

// NewIndex builds an Index over cases, keeping report order per key.
func NewIndex(cases []snapshot.TestCase) Index {
	idx := Index{}
	for _, c := range cases {
		k := key{c.ClassName, BaseMethodName(c.MethodName)}
		idx[k] = append(idx[k], c)
	}
	return idx
}

// Find returns the reported cases for a declared test.
func (idx Index) Find(t policy.Test) []snapshot.TestCase {
	return idx[key{t.ClassName, t.MethodName}]
}

// Test computes the deduction for one declared test.
func Test(t policy.Test, cases []snapshot.TestCase) grade.Deduction {
	name := t.FullName()
	if t.Batch {
		if len(cases) == 0 {
			return grade.BatchDeduction(name+": missing", t.MaxPoints, name, 0, 0)
		}
		failed := 0
		for _, c := range cases {
			if c.Failed {
				failed++
			}
		}
		cost := min(float64(failed)*t.Points, t.MaxPoints)
		desc := fmt.Sprintf("%s:\n%d of %d passing (-%.1f / fail)", name, len(cases)-failed, len(cases), t.Points)
		return grade.BatchDeduction(desc, cost, name, len(cases)-failed, len(cases))
	}
	if len(cases) == 0 {
		return grade.TestDeduction(name+": missing", t.Points, name)
	}
	for _, c := range cases {
		if c.Failed {
			return grade.TestDeduction(name+": failed", t.Points, name)
		}
	}
	return grade.TestDeduction(name+": passed", 0, name)
}

// Topic grades one topic. The summed deduction is clamped to the topic
// budget, and the topic passes only when nothing was deducted.
func Topic(t policy.Topic, idx Index, log *slog.Logger) grade.EvaluatorResult {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	deductions := make([]grade.Deduction, 0, len(t.Tests))
	total, passed, provisioned := 0.0, 0, 0.0
	for _, test := range t.Tests {
		d := Test(test, idx.Find(test))
		log.Debug("test", "topic", t.Name, "test", test.FullName(), "cost", d.Cost)
		if d.Cost == 0 {
			passed++
		}
		total += d.Cost
		provisioned += test.Budget()
		deductions = append(deductions, d)
	}
	if provisioned > t.MaxPoints {
		log.Warn("topic tests can deduct more than the topic budget",
			"topic", t.Name, "tests", provisioned, "budget", t.MaxPoints)
	}
	deduct := max(0, min(total, t.MaxPoints))
	res := grade.EvaluatorResult{
		Passes:     deduct == 0,
		Points:     t.MaxPoints - deduct,
		MaxPoints:  t.MaxPoints,
		Title:      fmt.Sprintf("%s: %d of %d tests passed", t.Name, passed, len(t.Tests)),
		Category:   grade.CategoryTests,
		Deductions: deductions,
	}
	log.Info("topic graded", "topic", t.Name, "points", res.Points, "max", res.MaxPoints)
	return res
}

// Project grades every topic of p in declaration order. A nil report means
// the test runner produced nothing, and each topic fails outright.
func Project(p *policy.Project, r *snapshot.TestReport, log *slog.Logger) []grade.EvaluatorResult {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	out := make([]grade.EvaluatorResult, 0, len(p.Topics))
	if r == nil {
		log.Warn("unit test results missing", "project", p.Name)
		for _, t := range p.Topics {
			out = append(out, Missing(t))
		}
		return out
	}
	idx := NewIndex(r.Cases())
	for _, t := range p.Topics {
		out = append(out, Topic(t, idx, log))
	}
	return out
}

// Missing is the result for a topic when no test report exists.
func Missing(t policy.Topic) grade.EvaluatorResult {
	return grade.Failing(t.MaxPoints, t.Name+": no unit test results found", grade.CategoryTests)
}
