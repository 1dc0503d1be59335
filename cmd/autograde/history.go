package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/dshills/autograde/internal/render"
	"github.com/dshills/autograde/internal/store"
)

type historyFlags struct {
	dbPath  string
	project string
	limit   int
	show    int64
}

func newHistoryCmd(rf *rootFlags) *cobra.Command {
	f := &historyFlags{}
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded grading runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(rf, cmd.OutOrStdout(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			return runHistory(e, f)
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&f.dbPath, "history-db", "", "History database (default: history_db from config)")
	flags.StringVar(&f.project, "project", "", "Only list runs for this project")
	flags.IntVar(&f.limit, "limit", 20, "Maximum runs to list")
	flags.Int64Var(&f.show, "show", 0, "Print the stored report for this run ID")
	return cmd
}

func runHistory(e *env, f *historyFlags) error {
	path := f.dbPath
	if path == "" {
		path = e.cfg.HistoryDB
	}
	if path == "" {
		return exitError(exitPolicy, "no history database configured (set history_db or --history-db)")
	}
	db, err := store.Open(path)
	if err != nil {
		return exitError(exitIO, "failed to open history: %v", err)
	}
	defer db.Close()

	if f.show > 0 {
		r, err := db.GetReport(f.show)
		if err != nil {
			return exitError(exitIO, "%v", err)
		}
		if r == nil {
			return exitError(exitIO, "run %d not found", f.show)
		}
		fmt.Fprint(e.stdout, render.Text(r, render.TextOptions{Width: e.cfg.Output.Width, Color: e.color}))
		return nil
	}

	runs, err := db.ListRuns(f.project, f.limit)
	if err != nil {
		return exitError(exitIO, "%v", err)
	}
	if len(runs) == 0 {
		fmt.Fprintln(e.stdout, "No runs recorded.")
		return nil
	}
	tbl := render.NewTable("ID", "GRADED", "PROJECT", "RESULT", "POINTS", "POLICY")
	tbl.Color = e.color
	for _, r := range runs {
		result := "FAIL"
		if r.AllPassing {
			result = "PASS"
		}
		tbl.AddRow(
			strconv.FormatInt(r.ID, 10),
			r.GradedAt.Local().Format(time.DateTime),
			r.Project,
			result,
			fmt.Sprintf("%.1f/%.1f", r.Points, r.MaxPoints),
			shortHash(r.PolicyHash),
		)
	}
	fmt.Fprint(e.stdout, tbl.Render())
	return nil
}

func shortHash(h string) string {
	const n = len("sha256:") + 12
	if len(h) > n {
		return h[:n]
	}
	return h
}
