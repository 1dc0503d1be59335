package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/dshills/autograde/internal/artifact"
	"github.com/dshills/autograde/internal/engine"
	"github.com/dshills/autograde/internal/export"
	"github.com/dshills/autograde/internal/grade"
	"github.com/dshills/autograde/internal/policy"
	"github.com/dshills/autograde/internal/render"
	"github.com/dshills/autograde/internal/schema"
	"github.com/dshills/autograde/internal/snapshot"
	"github.com/dshills/autograde/internal/source"
	"github.com/dshills/autograde/internal/store"
)

type gradeFlags struct {
	policyPath  string
	builtin     string
	layout      string
	reportDir   string
	formats     []string
	historyDB   string
	width       int
	concurrency int
	noHeader    bool
	quiet       bool
	showCompile bool
}

func newGradeCmd(rf *rootFlags) *cobra.Command {
	f := &gradeFlags{}

	cmd := &cobra.Command{
		Use:   "grade [build-dir]",
		Short: "Grade a build directory and write reports",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(rf, cmd.OutOrStdout(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			if len(args) == 1 {
				e.cfg.BuildDir = args[0]
			}
			return runGrade(cmd.Context(), e, f)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.policyPath, "policy", "", "Policy file (.yaml, .json, or .toml)")
	flags.StringVar(&f.builtin, "builtin", "", "Use an embedded policy by name instead of a file")
	flags.StringVar(&f.layout, "layout", "", "Build layout: gradle or maven (default: detect)")
	flags.StringVar(&f.reportDir, "report-dir", "", "Directory for report files")
	flags.StringSliceVar(&f.formats, "format", nil, "Report formats: json, yaml, txt, md (may be repeated)")
	flags.StringVar(&f.historyDB, "history-db", "", "Record the run in this sqlite database")
	flags.IntVar(&f.width, "width", 0, "Text report width")
	flags.IntVar(&f.concurrency, "concurrency", -1, "Evaluators run at once (0: unlimited)")
	flags.BoolVar(&f.noHeader, "no-header", false, "Omit the generated-file header from report.yml")
	flags.BoolVar(&f.quiet, "quiet", false, "Do not print the text report to stdout")
	flags.BoolVar(&f.showCompile, "show-compile-log", false, "Print the numbered compiler log to stderr when it is not clean")

	return cmd
}

func runGrade(ctx context.Context, e *env, f *gradeFlags) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := e.cfg
	if f.layout != "" {
		cfg.Layout = f.layout
	}
	if f.reportDir != "" {
		cfg.ReportDir = f.reportDir
	}
	if len(f.formats) > 0 {
		cfg.Formats = f.formats
	}
	if f.historyDB != "" {
		cfg.HistoryDB = f.historyDB
	}
	if f.width > 0 {
		cfg.Output.Width = f.width
	}
	if f.concurrency >= 0 {
		cfg.Concurrency = f.concurrency
	}
	if f.builtin == "" && f.policyPath == "" {
		f.policyPath = cfg.Policy
	}

	// 1. Policy
	p, policyHash, err := loadPolicy(f.policyPath, f.builtin)
	if err != nil {
		return exitError(exitPolicy, "failed to load policy: %v", err)
	}
	e.log.Info("policy loaded", "project", p.Name, "max_points", p.MaxPoints, "hash", policyHash)

	formats, err := export.ParseFormats(cfg.Formats)
	if err != nil {
		return exitError(exitPolicy, "%v", err)
	}

	// 2. Snapshot
	src, err := source.Resolve(cfg.Layout, cfg.BuildDir)
	if err != nil {
		return exitError(exitPolicy, "%v", err)
	}
	e.log.Info("loading reports", "dir", cfg.BuildDir, "layout", src.Name())
	snap, err := src.Load(ctx, e.log)
	if err != nil {
		return exitError(exitIO, "failed to load build reports: %v", err)
	}

	// 3. Grade
	report, err := engine.Evaluate(ctx, p, snap, engine.Options{
		Logger:      e.log,
		Version:     version,
		Concurrency: cfg.Concurrency,
	})
	if err != nil {
		if ctx.Err() != nil {
			return exitError(exitIO, "grading interrupted: %v", err)
		}
		return exitError(exitPolicy, "%v", err)
	}

	// 4. Consistency
	if verrs := schema.Validate(&report); len(verrs) > 0 {
		fmt.Fprintln(e.stderr, "Report consistency errors:")
		for _, v := range verrs {
			fmt.Fprintf(e.stderr, "  %s\n", v)
		}
		return exitError(exitConsistency, "report failed consistency check")
	}

	// 5. Output
	now := timeNow()
	opts := export.Options{Width: cfg.Output.Width}
	if !f.noHeader {
		opts.Header = policy.Header(now)
	}
	paths, err := export.WriteReports(cfg.Reports(), &report, formats, opts)
	if err != nil {
		return exitError(exitIO, "failed to write reports: %v", err)
	}
	for _, path := range paths {
		e.log.Info("wrote report", "path", path)
	}

	if !f.quiet {
		fmt.Fprint(e.stdout, render.Text(&report, render.TextOptions{Width: cfg.Output.Width, Color: e.color}))
	}
	if f.showCompile {
		printCompileLog(e.stderr, snap.CompileLog)
	}

	// 6. History
	if cfg.HistoryDB != "" {
		if err := recordRun(cfg.HistoryDB, &report, policyHash, now); err != nil {
			return exitError(exitIO, "failed to record history: %v", err)
		}
		e.log.Info("recorded run", "db", cfg.HistoryDB)
	}

	if !report.AllPassing {
		return exitError(exitNotPassing, "")
	}
	return nil
}

// loadPolicy reads the policy from a file or the builtin set and returns
// it with a hash of its source bytes.
func loadPolicy(path, builtin string) (policy.Project, string, error) {
	if builtin != "" {
		p, err := policy.LoadBuiltin(builtin)
		if err != nil {
			return policy.Project{}, "", err
		}
		var b bytes.Buffer
		if err := policy.Encode(&b, p, policy.FormatJSON, ""); err != nil {
			return policy.Project{}, "", err
		}
		return p, artifact.Hash(b.Bytes()), nil
	}
	f, err := artifact.Load(path)
	if err != nil {
		return policy.Project{}, "", err
	}
	p, err := policy.Decode(f.Data, policy.FormatFromPath(path))
	if err != nil {
		return policy.Project{}, "", fmt.Errorf("%s: %w", path, err)
	}
	return p, f.Hash, nil
}

func recordRun(dbPath string, r *grade.ResultsReport, policyHash string, at time.Time) error {
	db, err := store.Open(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()
	_, err = db.SaveRun(r, policyHash, at)
	return err
}

func printCompileLog(w io.Writer, l *snapshot.CompileLog) {
	if l == nil || l.Clean() {
		return
	}
	fmt.Fprintf(w, "Compiler output (%s):\n", l.Path)
	fmt.Fprint(w, artifact.LineNumbered(&artifact.File{Path: l.Path, Lines: l.Lines}))
}
