// Package policy defines the grading policy for a project: its topics,
// the tests inside each topic, style toggles, and coverage directives.
package policy

// Project is the top-level gradable unit.
type Project struct {
	Name                string      `json:"name" yaml:"name" toml:"name"`
	Description         string      `json:"description" yaml:"description" toml:"description"`
	MaxPoints           float64     `json:"max_points" yaml:"max_points" toml:"max_points"`
	StylePoints         float64     `json:"style_points" yaml:"style_points" toml:"style_points"`
	UseFormatCheck      bool        `json:"use_format_check" yaml:"use_format_check" toml:"use_format_check"`
	UseLint             bool        `json:"use_lint" yaml:"use_lint" toml:"use_lint"`
	UseCompilerWarnings bool        `json:"use_compiler_warnings" yaml:"use_compiler_warnings" toml:"use_compiler_warnings"`
	CoveragePoints      float64     `json:"coverage_points" yaml:"coverage_points" toml:"coverage_points"`
	CoverageMetric      Metric      `json:"coverage_metric" yaml:"coverage_metric" toml:"coverage_metric"`
	CoveragePercentage  float64     `json:"coverage_percentage" yaml:"coverage_percentage" toml:"coverage_percentage"`
	Coverage            []Directive `json:"coverage,omitempty" yaml:"coverage,omitempty" toml:"coverage,omitempty"`
	Topics              []Topic     `json:"topics,omitempty" yaml:"topics,omitempty" toml:"topics,omitempty"`
}

// Topic is a named, point-bearing group of tests.
type Topic struct {
	Name      string  `json:"name" yaml:"name" toml:"name"`
	MaxPoints float64 `json:"max_points" yaml:"max_points" toml:"max_points"`
	Tests     []Test  `json:"tests,omitempty" yaml:"tests,omitempty" toml:"tests,omitempty"`
}

// Test maps one declared check onto a test-runner class and method.
// A batch test stands for every runtime-generated case sharing the method
// name; it costs Points per failing case, capped at MaxPoints.
type Test struct {
	ClassName  string  `json:"class_name" yaml:"class_name" toml:"class_name"`
	MethodName string  `json:"method_name" yaml:"method_name" toml:"method_name"`
	Points     float64 `json:"points" yaml:"points" toml:"points"`
	MaxPoints  float64 `json:"max_points,omitempty" yaml:"max_points,omitempty" toml:"max_points,omitempty"`
	Batch      bool    `json:"batch,omitempty" yaml:"batch,omitempty" toml:"batch,omitempty"`
}

// Directive includes or excludes a class or package from the coverage
// requirement.
type Directive struct {
	Scope   Scope  `json:"scope" yaml:"scope" toml:"scope"`
	Name    string `json:"name" yaml:"name" toml:"name"`
	Exclude bool   `json:"exclude,omitempty" yaml:"exclude,omitempty" toml:"exclude,omitempty"`
}

// FullName returns the dotted class.method name used in reports.
func (t Test) FullName() string {
	return t.ClassName + "." + t.MethodName
}

// Budget is the most a single test can cost its topic.
func (t Test) Budget() float64 {
	if t.Batch {
		return t.MaxPoints
	}
	return t.Points
}
