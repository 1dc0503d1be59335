package store

import (
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/dshills/autograde/internal/grade"
)

func openTest(t *testing.T) *DB {
	t.Helper()
	db, err := OpenInMemory()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func report(project string, passing bool) *grade.ResultsReport {
	results := []grade.EvaluatorResult{grade.Passing(1, "No warning / style deductions", grade.CategoryStyle)}
	if !passing {
		results = append(results, grade.Failing(3, "No test coverage results found", grade.CategoryCoverage))
	}
	r := grade.NewReport(project, "desc", 4, results)
	r.Tool = "autograde"
	r.Version = "test"
	return &r
}

func TestSaveAndList(t *testing.T) {
	db := openTest(t)
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	if _, err := db.SaveRun(report("RPN", false), "sha256:aa", at); err != nil {
		t.Fatal(err)
	}
	if _, err := db.SaveRun(report("Sort", true), "sha256:bb", at.Add(time.Hour)); err != nil {
		t.Fatal(err)
	}
	id, err := db.SaveRun(report("RPN", true), "sha256:aa", at.Add(2*time.Hour))
	if err != nil {
		t.Fatal(err)
	}

	all, err := db.ListRuns("", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 || all[0].ID != id {
		t.Fatalf("ListRuns = %+v", all)
	}

	rpn, err := db.ListRuns("RPN", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(rpn) != 2 || !rpn[0].AllPassing || rpn[1].AllPassing {
		t.Errorf("RPN runs = %+v", rpn)
	}
	if !rpn[0].GradedAt.Equal(at.Add(2 * time.Hour)) {
		t.Errorf("graded_at = %v", rpn[0].GradedAt)
	}
	if rpn[0].PolicyHash != "sha256:aa" || rpn[0].Version != "test" {
		t.Errorf("run = %+v", rpn[0])
	}

	limited, err := db.ListRuns("", 1)
	if err != nil || len(limited) != 1 {
		t.Errorf("limited = (%v, %v)", limited, err)
	}
}

func TestGetReport(t *testing.T) {
	db := openTest(t)
	want := report("RPN", false)
	id, err := db.SaveRun(want, "sha256:aa", time.Now())
	if err != nil {
		t.Fatal(err)
	}
	got, err := db.GetReport(id)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("GetReport = %+v, want %+v", got, want)
	}
	missing, err := db.GetReport(id + 100)
	if err != nil || missing != nil {
		t.Errorf("missing run = (%v, %v)", missing, err)
	}
}

func TestResultCounts(t *testing.T) {
	db := openTest(t)
	id, err := db.SaveRun(report("RPN", false), "", time.Now())
	if err != nil {
		t.Fatal(err)
	}
	passed, failed, err := db.ResultCounts(id)
	if err != nil {
		t.Fatal(err)
	}
	if passed != 1 || failed != 1 {
		t.Errorf("counts = %d passed, %d failed", passed, failed)
	}
}

func TestOpenFileAndReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "history.db")
	db, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.SaveRun(report("RPN", true), "", time.Now()); err != nil {
		t.Fatal(err)
	}
	if err := db.Close(); err != nil {
		t.Fatal(err)
	}

	db, err = Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	runs, err := db.ListRuns("", 0)
	if err != nil || len(runs) != 1 {
		t.Errorf("after reopen = (%v, %v)", runs, err)
	}
}
