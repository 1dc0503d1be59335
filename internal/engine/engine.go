// Package engine grades a project: it validates the policy, runs the test,
// style and coverage evaluators over a snapshot, and folds their results
// into a ResultsReport.
package engine

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/dshills/autograde/internal/coverage"
	"github.com/dshills/autograde/internal/grade"
	"github.com/dshills/autograde/internal/policy"
	"github.com/dshills/autograde/internal/reconcile"
	"github.com/dshills/autograde/internal/snapshot"
	"github.com/dshills/autograde/internal/style"
)

// ToolName is recorded in every report.
const ToolName = "autograde"

// Options configures a grading run.
type Options struct {
	// Logger receives evaluator diagnostics. Nil discards them.
	Logger *slog.Logger
	// Version is stamped into the report.
	Version string
	// Concurrency bounds how many evaluators run at once. Zero means no
	// limit; 1 evaluates sequentially.
	Concurrency int
}

// Evaluate grades p against s. The only error sources are an invalid
// policy and a cancelled context; missing reports become failing results.
// Results are ordered topics first (in declaration order), then style,
// then coverage. Style and coverage are omitted when their budget is 0.
func Evaluate(ctx context.Context, p policy.Project, s *snapshot.Snapshot, opts Options) (grade.ResultsReport, error) {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	p, err := policy.Build(p)
	if err != nil {
		return grade.ResultsReport{}, fmt.Errorf("engine.Evaluate: %w", err)
	}
	if s == nil {
		s = &snapshot.Snapshot{}
	}
	log = log.With("project", p.Name)

	var idx reconcile.Index
	if s.Tests != nil {
		idx = reconcile.NewIndex(s.Tests.Cases())
	} else {
		log.Warn("unit test results missing")
	}

	type task func() grade.EvaluatorResult
	var tasks []task
	for _, t := range p.Topics {
		if s.Tests == nil {
			tasks = append(tasks, func() grade.EvaluatorResult { return reconcile.Missing(t) })
			continue
		}
		tasks = append(tasks, func() grade.EvaluatorResult { return reconcile.Topic(t, idx, log) })
	}
	if p.StylePoints != 0 {
		tasks = append(tasks, func() grade.EvaluatorResult {
			return style.Evaluate(&p, style.FromSnapshot(s), log)
		})
	}
	if p.CoveragePoints != 0 {
		tasks = append(tasks, func() grade.EvaluatorResult {
			return coverage.Evaluate(&p, s.Coverage, log)
		})
	}

	results := make([]grade.EvaluatorResult, len(tasks))
	g, gctx := errgroup.WithContext(ctx)
	if opts.Concurrency > 0 {
		g.SetLimit(opts.Concurrency)
	}
	for i, run := range tasks {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = run()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return grade.ResultsReport{}, fmt.Errorf("engine.Evaluate: %w", err)
	}

	report := grade.NewReport(p.Name, p.Description, p.MaxPoints, results)
	report.Tool = ToolName
	report.Version = opts.Version
	log.Info("graded", "points", report.Points, "max", report.MaxPoints, "all_passing", report.AllPassing)
	return report, nil
}
