package grade

// Aggregate folds results into the overall pass flag and awarded points.
// Points are summed as reported; each evaluator already clamps itself to
// its own budget.
func Aggregate(results []EvaluatorResult) (allPassing bool, points float64) {
	allPassing = true
	for _, r := range results {
		allPassing = allPassing && r.Passes
		points += r.Points
	}
	return allPassing, points
}

// NewReport assembles a ResultsReport for a project.
func NewReport(project, description string, maxPoints float64, results []EvaluatorResult) ResultsReport {
	if results == nil {
		results = []EvaluatorResult{}
	}
	passing, points := Aggregate(results)
	return ResultsReport{
		Project:     project,
		Description: description,
		AllPassing:  passing,
		Points:      points,
		MaxPoints:   maxPoints,
		Results:     results,
	}
}
