// Package grade defines the result types every evaluator produces and the
// arithmetic that combines them into a project report.
package grade

// ResultsReport is the final, serializable outcome of grading a project.
type ResultsReport struct {
	Tool        string            `json:"tool" yaml:"tool"`
	Version     string            `json:"version" yaml:"version"`
	Project     string            `json:"project" yaml:"project"`
	Description string            `json:"description" yaml:"description"`
	AllPassing  bool              `json:"all_passing" yaml:"all_passing"`
	Points      float64           `json:"points" yaml:"points"`
	MaxPoints   float64           `json:"max_points" yaml:"max_points"`
	Results     []EvaluatorResult `json:"results" yaml:"results"`
}

// EvaluatorResult is one graded unit: a topic of unit tests, the style
// checks, or the coverage requirement.
type EvaluatorResult struct {
	Passes     bool        `json:"passes" yaml:"passes"`
	Points     float64     `json:"points" yaml:"points"`
	MaxPoints  float64     `json:"max_points" yaml:"max_points"`
	Title      string      `json:"title" yaml:"title"`
	Category   Category    `json:"category" yaml:"category"`
	Deductions []Deduction `json:"deductions" yaml:"deductions"`
}

// Deduction is one audit entry explaining why points were or were not lost.
// Kind selects which detail field, if any, is populated. Cost is 0 for
// informational entries and positive for penalties.
type Deduction struct {
	Kind        DeductionKind   `json:"kind" yaml:"kind"`
	Description string          `json:"description" yaml:"description"`
	Cost        float64         `json:"cost" yaml:"cost"`
	Test        *TestDetail     `json:"test,omitempty" yaml:"test,omitempty"`
	Batch       *BatchDetail    `json:"batch,omitempty" yaml:"batch,omitempty"`
	Style       *StyleDetail    `json:"style,omitempty" yaml:"style,omitempty"`
	Coverage    *CoverageDetail `json:"coverage,omitempty" yaml:"coverage,omitempty"`
}

// TestDetail identifies the declared test behind a unit-test deduction.
type TestDetail struct {
	Name string `json:"name" yaml:"name"`
}

// BatchDetail records how many generated cases of a batch test passed.
type BatchDetail struct {
	Name      string `json:"name" yaml:"name"`
	NumPassed int    `json:"num_passed" yaml:"num_passed"`
	NumTotal  int    `json:"num_total" yaml:"num_total"`
}

// StyleDetail records the outcome of one style or compiler check.
type StyleDetail struct {
	Tool       string `json:"tool" yaml:"tool"`
	Section    string `json:"section,omitempty" yaml:"section,omitempty"`
	Passing    bool   `json:"passing" yaml:"passing"`
	NumPassed  int    `json:"num_passed" yaml:"num_passed"`
	NumChecked int    `json:"num_checked" yaml:"num_checked"`
}

// CoverageDetail records the measured coverage of one class.
type CoverageDetail struct {
	ClassName  string  `json:"class_name" yaml:"class_name"`
	Percentage float64 `json:"percentage" yaml:"percentage"`
}

// Basic returns a deduction with no extra detail.
func Basic(description string, cost float64) Deduction {
	return Deduction{Kind: KindBasic, Description: description, Cost: cost}
}

// TestDeduction returns a deduction for a plain declared test.
func TestDeduction(description string, cost float64, name string) Deduction {
	return Deduction{Kind: KindTest, Description: description, Cost: cost, Test: &TestDetail{Name: name}}
}

// BatchDeduction returns a deduction for a batch test.
func BatchDeduction(description string, cost float64, name string, passed, total int) Deduction {
	return Deduction{
		Kind: KindBatch, Description: description, Cost: cost,
		Batch: &BatchDetail{Name: name, NumPassed: passed, NumTotal: total},
	}
}

// StyleDeduction returns a deduction for a style or compiler check.
func StyleDeduction(description string, cost float64, d StyleDetail) Deduction {
	return Deduction{Kind: KindStyle, Description: description, Cost: cost, Style: &d}
}

// CoverageDeduction returns a deduction for one class's coverage.
func CoverageDeduction(description string, cost float64, className string, pct float64) Deduction {
	return Deduction{
		Kind: KindCoverage, Description: description, Cost: cost,
		Coverage: &CoverageDetail{ClassName: className, Percentage: pct},
	}
}

// Passing returns a passing result worth points out of points with no
// deductions.
func Passing(points float64, title string, cat Category) EvaluatorResult {
	return EvaluatorResult{
		Passes:     true,
		Points:     points,
		MaxPoints:  points,
		Title:      title,
		Category:   cat,
		Deductions: []Deduction{},
	}
}

// Failing returns a result that awards nothing out of maxPoints.
func Failing(maxPoints float64, title string, cat Category, deductions ...Deduction) EvaluatorResult {
	if deductions == nil {
		deductions = []Deduction{}
	}
	return EvaluatorResult{
		Passes:     false,
		Points:     0,
		MaxPoints:  maxPoints,
		Title:      title,
		Category:   cat,
		Deductions: deductions,
	}
}
