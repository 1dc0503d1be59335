package style

import (
	"strings"
	"testing"

	"github.com/dshills/autograde/internal/grade"
	"github.com/dshills/autograde/internal/policy"
	"github.com/dshills/autograde/internal/snapshot"
)

func cleanInputs() Inputs {
	return Inputs{
		Format: &snapshot.FormatReport{Files: []snapshot.FormatFile{
			{Path: "A.java", Status: snapshot.FormatFormatted},
		}},
		LintMain:   &snapshot.LintReport{Files: []snapshot.LintFile{{Name: "A.java"}}},
		LintTest:   &snapshot.LintReport{Files: []snapshot.LintFile{{Name: "ATest.java"}}},
		CompileLog: &snapshot.CompileLog{Lines: []string{""}},
	}
}

func allOn() *policy.Project {
	return &policy.Project{Name: "P", StylePoints: 1, UseFormatCheck: true, UseLint: true, UseCompilerWarnings: true}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name        string
		r           *snapshot.FormatReport
		wantPass    bool
		wantDesc    string
		wantPassed  int
		wantChecked int
	}{
		{"missing", nil, false, "GoogleJavaFormat: no input found", 0, 0},
		{"empty", &snapshot.FormatReport{}, false, "GoogleJavaFormat: no input found", 0, 0},
		{"all formatted", &snapshot.FormatReport{Files: []snapshot.FormatFile{
			{Status: snapshot.FormatFormatted}, {Status: snapshot.FormatFormatted},
		}}, true, "GoogleJavaFormat: 2 of 2 files passed", 2, 2},
		{"one unformatted", &snapshot.FormatReport{Files: []snapshot.FormatFile{
			{Status: snapshot.FormatFormatted}, {Status: snapshot.FormatUnformatted},
		}}, false, "GoogleJavaFormat: 1 of 2 files passed; run the googleJavaFormat task to fix", 1, 2},
		{"invalid", &snapshot.FormatReport{Files: []snapshot.FormatFile{
			{Status: snapshot.FormatInvalid},
		}}, false, "GoogleJavaFormat: 0 of 1 files passed; run the googleJavaFormat task to fix", 0, 1},
		{"mostly unformatted", &snapshot.FormatReport{Files: []snapshot.FormatFile{
			{Status: snapshot.FormatFormatted}, {Status: snapshot.FormatUnformatted}, {Status: snapshot.FormatUnknown},
		}}, false, "GoogleJavaFormat: 1 of 3 files passed; run the googleJavaFormat task to fix", 1, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Format(tt.r)
			if d.Style.Passing != tt.wantPass || d.Description != tt.wantDesc {
				t.Errorf("Format = (%v, %q), want (%v, %q)", d.Style.Passing, d.Description, tt.wantPass, tt.wantDesc)
			}
			if d.Style.NumPassed != tt.wantPassed || d.Style.NumChecked != tt.wantChecked {
				t.Errorf("counts = %d of %d, want %d of %d", d.Style.NumPassed, d.Style.NumChecked, tt.wantPassed, tt.wantChecked)
			}
			if d.Cost != 0 {
				t.Errorf("cost = %v, want 0", d.Cost)
			}
		})
	}
}

func TestLint(t *testing.T) {
	if d := Lint("main", nil); d.Style.Passing || d.Description != "CheckStyle (main): report not found" {
		t.Errorf("missing lint = %+v", d)
	}
	r := &snapshot.LintReport{Files: []snapshot.LintFile{
		{Name: "A.java"},
		{Name: "B.java", Errors: []snapshot.LintError{{Line: 1, Message: "x"}}},
	}}
	d := Lint("test", r)
	if d.Style.Passing || d.Description != "CheckStyle (test): 1 of 2 files passed" || d.Style.Section != "test" {
		t.Errorf("lint = %+v", d)
	}
	if d := Lint("main", &snapshot.LintReport{}); !d.Style.Passing {
		t.Error("a lint report with no files should pass")
	}
}

func TestCompiler(t *testing.T) {
	tests := []struct {
		name string
		l    *snapshot.CompileLog
		pass bool
		desc string
	}{
		{"missing", nil, false, "Compiler: Can't find output"},
		{"empty", &snapshot.CompileLog{}, true, "Compiler: No warnings or errors"},
		{"warnings", &snapshot.CompileLog{Lines: []string{"warning: [deprecation]"}}, false, "Compiler: One or more warnings / errors"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Compiler(tt.l)
			if d.Style.Passing != tt.pass || d.Description != tt.desc {
				t.Errorf("Compiler = (%v, %q)", d.Style.Passing, d.Description)
			}
		})
	}
}

func TestEvaluateZeroBudget(t *testing.T) {
	p := allOn()
	p.StylePoints = 0
	got := Evaluate(p, Inputs{}, nil)
	if !got.Passes || got.Points != 0 || got.MaxPoints != 0 {
		t.Errorf("result = %+v", got)
	}
}

func TestEvaluateAllTogglesOff(t *testing.T) {
	p := &policy.Project{Name: "P", StylePoints: 2}
	got := Evaluate(p, Inputs{}, nil)
	if !got.Passes || got.Points != 2 || len(got.Deductions) != 0 {
		t.Errorf("result = %+v", got)
	}
}

func TestEvaluateAllClean(t *testing.T) {
	got := Evaluate(allOn(), cleanInputs(), nil)
	if !got.Passes || got.Points != 1 || got.Title != "No warning / style deductions" {
		t.Errorf("result = %+v", got)
	}
	if len(got.Deductions) != 4 {
		t.Errorf("expected 4 audit entries, got %d", len(got.Deductions))
	}
	if got.Category != grade.CategoryStyle {
		t.Errorf("category = %q", got.Category)
	}
}

func TestEvaluateFailClosed(t *testing.T) {
	in := cleanInputs()
	in.CompileLog = nil
	got := Evaluate(allOn(), in, nil)
	if got.Passes || got.Points != 0 || got.MaxPoints != 1 || got.Title != "Warning / style deductions" {
		t.Errorf("result = %+v", got)
	}
	last := got.Deductions[len(got.Deductions)-1]
	if !strings.Contains(last.Description, "Can't find output") {
		t.Errorf("last deduction = %q", last.Description)
	}
}

func TestEvaluateDisabledCheckIgnored(t *testing.T) {
	p := allOn()
	p.UseCompilerWarnings = false
	in := cleanInputs()
	in.CompileLog = &snapshot.CompileLog{Lines: []string{"error: boom"}}
	got := Evaluate(p, in, nil)
	if !got.Passes || len(got.Deductions) != 3 {
		t.Errorf("result = %+v", got)
	}
}

func TestFromSnapshot(t *testing.T) {
	s := &snapshot.Snapshot{CompileLog: &snapshot.CompileLog{}}
	if FromSnapshot(s).CompileLog == nil || FromSnapshot(s).Format != nil {
		t.Error("FromSnapshot did not copy the report pointers")
	}
}
