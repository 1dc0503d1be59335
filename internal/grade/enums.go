package grade

// Category tags which part of the grade a result belongs to.
type Category string

const (
	CategoryTests    Category = "Tests"
	CategoryStyle    Category = "Style"
	CategoryCoverage Category = "Coverage"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryTests, CategoryStyle, CategoryCoverage:
		return true
	}
	return false
}

// DeductionKind selects the variant of a Deduction.
type DeductionKind string

const (
	KindBasic    DeductionKind = "basic"
	KindTest     DeductionKind = "test"
	KindBatch    DeductionKind = "batch"
	KindStyle    DeductionKind = "style"
	KindCoverage DeductionKind = "coverage"
)

func (k DeductionKind) Valid() bool {
	switch k {
	case KindBasic, KindTest, KindBatch, KindStyle, KindCoverage:
		return true
	}
	return false
}
