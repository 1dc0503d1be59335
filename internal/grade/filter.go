package grade

// WorthPrinting reports whether a deduction belongs in the human-readable
// report. Passing tests, fully passing batches, and passing style checks
// are left to the machine-readable output.
func (d Deduction) WorthPrinting() bool {
	switch d.Kind {
	case KindTest:
		return d.Cost != 0
	case KindBatch:
		return d.Batch == nil || d.Batch.NumTotal == 0 || d.Batch.NumPassed != d.Batch.NumTotal
	case KindStyle:
		return d.Style == nil || !d.Style.Passing
	}
	return true
}

// Printable returns the deductions of r worth printing, in order.
func (r EvaluatorResult) Printable() []Deduction {
	var out []Deduction
	for _, d := range r.Deductions {
		if d.WorthPrinting() {
			out = append(out, d)
		}
	}
	return out
}

// Failed returns the number of results that did not pass.
func (r ResultsReport) Failed() int {
	n := 0
	for _, res := range r.Results {
		if !res.Passes {
			n++
		}
	}
	return n
}
