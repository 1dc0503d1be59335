package policy

import (
	"errors"
	"fmt"
	"math"
)

// budgetTolerance absorbs float rounding when comparing an explicit project
// budget with the sum of its parts.
const budgetTolerance = 1e-9

// ValidationError describes a single policy problem.
type ValidationError struct {
	Path    string
	Message string
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Path, v.Message)
}

// Validate checks a finalized project for structural validity.
func Validate(p *Project) []ValidationError {
	var errs []ValidationError
	root := fmt.Sprintf("project[%s]", p.Name)

	if p.Name == "" {
		errs = append(errs, ValidationError{"project", "name required"})
	}
	errs = append(errs, checkPoints(root+".max_points", p.MaxPoints)...)
	errs = append(errs, checkPoints(root+".style_points", p.StylePoints)...)
	errs = append(errs, checkPoints(root+".coverage_points", p.CoveragePoints)...)

	if !isFinite(p.CoveragePercentage) || p.CoveragePercentage < 0 || p.CoveragePercentage > 100 {
		errs = append(errs, ValidationError{root + ".coverage_percentage", fmt.Sprintf("must be between 0 and 100, got %v", p.CoveragePercentage)})
	}
	if !p.CoverageMetric.Valid() {
		errs = append(errs, ValidationError{root + ".coverage_metric", fmt.Sprintf("invalid: %q", p.CoverageMetric)})
	}
	if p.CoveragePoints > 0 && len(p.Coverage) == 0 {
		errs = append(errs, ValidationError{root + ".coverage", fmt.Sprintf("coverage points specified (%v) but no coverage directives", p.CoveragePoints)})
	}

	for i, d := range p.Coverage {
		prefix := fmt.Sprintf("%s.coverage[%d]", root, i)
		if !d.Scope.Valid() {
			errs = append(errs, ValidationError{prefix + ".scope", fmt.Sprintf("invalid: %q", d.Scope)})
		}
		if d.Name == "" {
			errs = append(errs, ValidationError{prefix + ".name", "required"})
		}
	}

	topicNames := make(map[string]bool)
	for i, t := range p.Topics {
		prefix := fmt.Sprintf("%s.topic[%s]", root, t.Name)
		switch {
		case t.Name == "":
			prefix = fmt.Sprintf("%s.topics[%d]", root, i)
			errs = append(errs, ValidationError{prefix + ".name", "required"})
		case topicNames[t.Name]:
			errs = append(errs, ValidationError{prefix, "duplicate topic name"})
		default:
			topicNames[t.Name] = true
		}
		errs = append(errs, validateTopic(prefix, t)...)
	}

	if isFinite(p.MaxPoints) {
		if sum := componentBudget(*p); math.Abs(sum-p.MaxPoints) > budgetTolerance {
			errs = append(errs, ValidationError{root + ".max_points", fmt.Sprintf("explicit budget %v does not match topics + style + coverage (%v)", p.MaxPoints, sum)})
		}
	}

	return errs
}

func validateTopic(prefix string, t Topic) []ValidationError {
	var errs []ValidationError
	errs = append(errs, checkPoints(prefix+".max_points", t.MaxPoints)...)
	if t.MaxPoints == 0 {
		errs = append(errs, ValidationError{prefix, "no max points specified and none on the tests either"})
	}

	seen := make(map[string]bool)
	for i, tc := range t.Tests {
		tp := fmt.Sprintf("%s.test[%s]", prefix, tc.FullName())
		if tc.ClassName == "" || tc.MethodName == "" {
			tp = fmt.Sprintf("%s.tests[%d]", prefix, i)
			errs = append(errs, ValidationError{tp, "class and method name required"})
		} else if seen[tc.FullName()] {
			errs = append(errs, ValidationError{tp, "more than one definition for the same method"})
		}
		seen[tc.FullName()] = true

		if !isFinite(tc.Points) || tc.Points <= 0 {
			errs = append(errs, ValidationError{tp + ".points", fmt.Sprintf("must be positive, got %v", tc.Points)})
		}
		switch {
		case tc.Batch && (!isFinite(tc.MaxPoints) || tc.MaxPoints <= 0):
			errs = append(errs, ValidationError{tp + ".max_points", "batch test needs a positive max points cap"})
		case !tc.Batch && tc.MaxPoints != 0:
			errs = append(errs, ValidationError{tp + ".max_points", "only batch tests may specify max points"})
		}
	}
	return errs
}

func checkPoints(path string, v float64) []ValidationError {
	switch {
	case !isFinite(v):
		return []ValidationError{{path, fmt.Sprintf("must be finite, got %v", v)}}
	case v < 0:
		return []ValidationError{{path, fmt.Sprintf("must be zero or positive, got %v", v)}}
	}
	return nil
}

// Check validates p and joins every problem into one error.
func Check(p *Project) error {
	verrs := Validate(p)
	if len(verrs) == 0 {
		return nil
	}
	errs := make([]error, 0, len(verrs))
	for _, v := range verrs {
		errs = append(errs, v)
	}
	return fmt.Errorf("policy: invalid project %q: %w", p.Name, errors.Join(errs...))
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
