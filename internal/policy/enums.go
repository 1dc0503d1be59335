package policy

// Metric selects which coverage counter is compared against the threshold.
type Metric string

const (
	MetricLine        Metric = "LINE"
	MetricInstruction Metric = "INSTRUCTION"
)

func (m Metric) Valid() bool {
	switch m {
	case MetricLine, MetricInstruction:
		return true
	}
	return false
}

// Scope says whether a directive names a class or a package.
type Scope string

const (
	ScopeClass   Scope = "CLASS"
	ScopePackage Scope = "PACKAGE"
)

func (s Scope) Valid() bool {
	switch s {
	case ScopeClass, ScopePackage:
		return true
	}
	return false
}
