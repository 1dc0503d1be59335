// Package schema checks that a ResultsReport is internally consistent
// before it is written out.
package schema

import (
	"fmt"
	"math"

	"github.com/dshills/autograde/internal/grade"
)

// tolerance absorbs float rounding in point sums.
const tolerance = 1e-9

// ValidationError describes a single schema violation.
type ValidationError struct {
	Path    string
	Message string
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Path, v.Message)
}

func near(a, b float64) bool {
	return math.Abs(a-b) <= tolerance
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Validate checks a ResultsReport for structural validity.
func Validate(r *grade.ResultsReport) []ValidationError {
	var errs []ValidationError

	if r.Tool == "" {
		errs = append(errs, ValidationError{"tool", "required"})
	}
	if r.Project == "" {
		errs = append(errs, ValidationError{"project", "required"})
	}
	if !finite(r.MaxPoints) || r.MaxPoints < 0 {
		errs = append(errs, ValidationError{"max_points", fmt.Sprintf("must be finite and >= 0, got %v", r.MaxPoints)})
	}
	if r.Points < -tolerance || r.Points > r.MaxPoints+tolerance {
		errs = append(errs, ValidationError{"points", fmt.Sprintf("%v outside [0, %v]", r.Points, r.MaxPoints)})
	}

	// Verify totals against the results
	passing, points := grade.Aggregate(r.Results)
	if r.AllPassing != passing {
		errs = append(errs, ValidationError{"all_passing", fmt.Sprintf("expected %v, got %v", passing, r.AllPassing)})
	}
	if !near(r.Points, points) {
		errs = append(errs, ValidationError{"points", fmt.Sprintf("expected %v, got %v", points, r.Points)})
	}
	maxSum := 0.0
	for _, res := range r.Results {
		maxSum += res.MaxPoints
	}
	if !near(r.MaxPoints, maxSum) {
		errs = append(errs, ValidationError{"max_points", fmt.Sprintf("expected sum of results %v, got %v", maxSum, r.MaxPoints)})
	}

	for i, res := range r.Results {
		errs = append(errs, validateResult(fmt.Sprintf("results[%d]", i), res)...)
	}
	return errs
}

func validateResult(prefix string, res grade.EvaluatorResult) []ValidationError {
	var errs []ValidationError
	if res.Title == "" {
		errs = append(errs, ValidationError{prefix + ".title", "required"})
	}
	if !res.Category.Valid() {
		errs = append(errs, ValidationError{prefix + ".category", fmt.Sprintf("invalid: %q", res.Category)})
	}
	if !finite(res.MaxPoints) || res.MaxPoints < 0 {
		errs = append(errs, ValidationError{prefix + ".max_points", fmt.Sprintf("must be finite and >= 0, got %v", res.MaxPoints)})
	}
	if res.Points < -tolerance || res.Points > res.MaxPoints+tolerance {
		errs = append(errs, ValidationError{prefix + ".points", fmt.Sprintf("%v outside [0, %v]", res.Points, res.MaxPoints)})
	}
	if res.Passes && !near(res.Points, res.MaxPoints) {
		errs = append(errs, ValidationError{prefix + ".passes", fmt.Sprintf("passing result awarded %v of %v", res.Points, res.MaxPoints)})
	}

	for j, d := range res.Deductions {
		dp := fmt.Sprintf("%s.deductions[%d]", prefix, j)
		if !d.Kind.Valid() {
			errs = append(errs, ValidationError{dp + ".kind", fmt.Sprintf("invalid: %q", d.Kind)})
		}
		if d.Description == "" {
			errs = append(errs, ValidationError{dp + ".description", "required"})
		}
		if !finite(d.Cost) || d.Cost < 0 {
			errs = append(errs, ValidationError{dp + ".cost", fmt.Sprintf("must be finite and >= 0, got %v", d.Cost)})
		}
		if msg := detailMismatch(d); msg != "" {
			errs = append(errs, ValidationError{dp, msg})
		}
	}
	return errs
}

// detailMismatch reports a deduction whose detail field does not match
// its kind.
func detailMismatch(d grade.Deduction) string {
	details := []struct {
		kind    grade.DeductionKind
		present bool
	}{
		{grade.KindTest, d.Test != nil},
		{grade.KindBatch, d.Batch != nil},
		{grade.KindStyle, d.Style != nil},
		{grade.KindCoverage, d.Coverage != nil},
	}
	own := false
	for _, det := range details {
		if det.present && det.kind != d.Kind {
			return fmt.Sprintf("%s detail on %s deduction", det.kind, d.Kind)
		}
		if det.kind == d.Kind {
			own = det.present
		}
	}
	if d.Kind != grade.KindBasic && d.Kind.Valid() && !own {
		return fmt.Sprintf("missing %s detail", d.Kind)
	}
	return ""
}
