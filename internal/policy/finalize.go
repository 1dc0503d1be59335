package policy

// Finalize returns a copy of p with every derived value filled in:
// a zero topic budget becomes the sum of its tests' budgets, a zero
// project budget becomes topics + style + coverage, and an unset coverage
// metric becomes LINE. Finalize is idempotent.
func Finalize(p Project) Project {
	out := p
	if out.CoverageMetric == "" {
		out.CoverageMetric = MetricLine
	}

	out.Coverage = nil
	if len(p.Coverage) > 0 {
		out.Coverage = append([]Directive(nil), p.Coverage...)
	}

	out.Topics = nil
	for _, t := range p.Topics {
		nt := Topic{Name: t.Name, MaxPoints: t.MaxPoints}
		if len(t.Tests) > 0 {
			nt.Tests = append([]Test(nil), t.Tests...)
		}
		if nt.MaxPoints == 0 {
			nt.MaxPoints = testBudget(nt.Tests)
		}
		out.Topics = append(out.Topics, nt)
	}

	if out.MaxPoints == 0 {
		out.MaxPoints = componentBudget(out)
	}
	return out
}

// Build finalizes p and validates the result. Any validation problem is
// returned as a single error naming every offending element.
func Build(p Project) (Project, error) {
	fp := Finalize(p)
	if err := Check(&fp); err != nil {
		return Project{}, err
	}
	return fp, nil
}

func testBudget(tests []Test) float64 {
	var sum float64
	for _, t := range tests {
		sum += t.Budget()
	}
	return sum
}

func componentBudget(p Project) float64 {
	sum := p.StylePoints + p.CoveragePoints
	for _, t := range p.Topics {
		sum += t.MaxPoints
	}
	return sum
}
