package reconcile

import (
	"fmt"
	"testing"

	"github.com/dshills/autograde/internal/grade"
	"github.com/dshills/autograde/internal/policy"
	"github.com/dshills/autograde/internal/snapshot"
)

func TestBaseMethodName(t *testing.T) {
	tests := []struct{ in, want string }{
		{"testAdd", "testAdd"},
		{"testAdd()", "testAdd"},
		{"testNumbers()[3]", "testNumbers"},
		{"testParam(String)[12]", "testParam"},
	}
	for _, tt := range tests {
		if got := BaseMethodName(tt.in); got != tt.want {
			t.Errorf("BaseMethodName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func batchCases(class, method string, total, failed int) []snapshot.TestCase {
	out := make([]snapshot.TestCase, total)
	for i := range out {
		out[i] = snapshot.TestCase{
			ClassName:  class,
			MethodName: fmt.Sprintf("%s()[%d]", method, i+1),
			Failed:     i < failed,
		}
	}
	return out
}

func TestTestDeduction(t *testing.T) {
	plain := policy.Test{ClassName: "A", MethodName: "m", Points: 2}
	batch := policy.Test{ClassName: "A", MethodName: "gen", Points: 1, MaxPoints: 5, Batch: true}

	tests := []struct {
		name     string
		test     policy.Test
		cases    []snapshot.TestCase
		wantCost float64
		wantDesc string
		wantKind grade.DeductionKind
	}{
		{"plain missing", plain, nil, 2, "A.m: missing", grade.KindTest},
		{"plain passed", plain, []snapshot.TestCase{{ClassName: "A", MethodName: "m"}}, 0, "A.m: passed", grade.KindTest},
		{"plain failed", plain, []snapshot.TestCase{
			{ClassName: "A", MethodName: "m"},
			{ClassName: "A", MethodName: "m", Failed: true},
		}, 2, "A.m: failed", grade.KindTest},
		{"batch missing", batch, nil, 5, "A.gen: missing", grade.KindBatch},
		{"batch 3 of 20 failed", batch, batchCases("A", "gen", 20, 3), 3, "A.gen:\n17 of 20 passing (-1.0 / fail)", grade.KindBatch},
		{"batch 8 of 20 failed", batch, batchCases("A", "gen", 20, 8), 5, "A.gen:\n12 of 20 passing (-1.0 / fail)", grade.KindBatch},
		{"batch all pass", batch, batchCases("A", "gen", 4, 0), 0, "A.gen:\n4 of 4 passing (-1.0 / fail)", grade.KindBatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Test(tt.test, tt.cases)
			if d.Cost != tt.wantCost {
				t.Errorf("cost = %v, want %v", d.Cost, tt.wantCost)
			}
			if d.Description != tt.wantDesc {
				t.Errorf("description = %q, want %q", d.Description, tt.wantDesc)
			}
			if d.Kind != tt.wantKind {
				t.Errorf("kind = %q, want %q", d.Kind, tt.wantKind)
			}
		})
	}
}

func TestBatchDetailCounts(t *testing.T) {
	batch := policy.Test{ClassName: "A", MethodName: "gen", Points: 1, MaxPoints: 5, Batch: true}
	d := Test(batch, batchCases("A", "gen", 20, 3))
	if d.Batch == nil || d.Batch.NumPassed != 17 || d.Batch.NumTotal != 20 {
		t.Errorf("batch detail = %+v", d.Batch)
	}
}

func TestIndexMatchesExactClass(t *testing.T) {
	idx := NewIndex([]snapshot.TestCase{
		{ClassName: "pkg.ATest", MethodName: "m()"},
		{ClassName: "pkg.ATestOther", MethodName: "m"},
	})
	got := idx.Find(policy.Test{ClassName: "pkg.ATest", MethodName: "m"})
	if len(got) != 1 || got[0].ClassName != "pkg.ATest" {
		t.Errorf("Find = %+v", got)
	}
}

func topic() policy.Topic {
	return policy.Topic{Name: "Basics", MaxPoints: 5, Tests: []policy.Test{
		{ClassName: "T", MethodName: "a", Points: 2},
		{ClassName: "T", MethodName: "b", Points: 3},
	}}
}

func TestTopic(t *testing.T) {
	tests := []struct {
		name      string
		cases     []snapshot.TestCase
		wantPass  bool
		wantPts   float64
		wantTitle string
	}{
		{"all pass", []snapshot.TestCase{{ClassName: "T", MethodName: "a"}, {ClassName: "T", MethodName: "b"}}, true, 5, "Basics: 2 of 2 tests passed"},
		{"one fails", []snapshot.TestCase{{ClassName: "T", MethodName: "a", Failed: true}, {ClassName: "T", MethodName: "b"}}, false, 3, "Basics: 1 of 2 tests passed"},
		{"one missing", []snapshot.TestCase{{ClassName: "T", MethodName: "a"}}, false, 2, "Basics: 1 of 2 tests passed"},
		{"none", nil, false, 0, "Basics: 0 of 2 tests passed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Topic(topic(), NewIndex(tt.cases), nil)
			if got.Passes != tt.wantPass || got.Points != tt.wantPts || got.MaxPoints != 5 {
				t.Errorf("result = (%v, %v/%v), want (%v, %v/5)", got.Passes, got.Points, got.MaxPoints, tt.wantPass, tt.wantPts)
			}
			if got.Title != tt.wantTitle {
				t.Errorf("title = %q, want %q", got.Title, tt.wantTitle)
			}
			if got.Category != grade.CategoryTests {
				t.Errorf("category = %q", got.Category)
			}
		})
	}
}

func TestTopicClampsDeduction(t *testing.T) {
	tp := policy.Topic{Name: "Over", MaxPoints: 2, Tests: []policy.Test{
		{ClassName: "T", MethodName: "a", Points: 2},
		{ClassName: "T", MethodName: "b", Points: 2},
	}}
	got := Topic(tp, NewIndex(nil), nil)
	if got.Points != 0 || got.MaxPoints != 2 || got.Passes {
		t.Errorf("result = %+v", got)
	}
}

func TestProjectMissingReport(t *testing.T) {
	p := &policy.Project{Name: "P", Topics: []policy.Topic{topic(), {Name: "More", MaxPoints: 1}}}
	got := Project(p, nil, nil)
	if len(got) != 2 {
		t.Fatalf("got %d results", len(got))
	}
	for i, r := range got {
		if r.Passes || r.Points != 0 || r.MaxPoints != p.Topics[i].MaxPoints {
			t.Errorf("result %d = %+v", i, r)
		}
	}
	if got[0].Title != "Basics: no unit test results found" {
		t.Errorf("title = %q", got[0].Title)
	}
}

func TestProjectUsesAllSuites(t *testing.T) {
	p := &policy.Project{Name: "P", Topics: []policy.Topic{topic()}}
	r := &snapshot.TestReport{Suites: []snapshot.TestSuite{
		{Name: "one", Cases: []snapshot.TestCase{{ClassName: "T", MethodName: "a"}}},
		{Name: "two", Cases: []snapshot.TestCase{{ClassName: "T", MethodName: "b"}}},
	}}
	got := Project(p, r, nil)
	if len(got) != 1 || !got[0].Passes || got[0].Points != 5 {
		t.Errorf("result = %+v", got)
	}
}
