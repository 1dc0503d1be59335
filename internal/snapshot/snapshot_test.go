package snapshot

import "testing"

func TestCasesFlattensSuites(t *testing.T) {
	r := &TestReport{Suites: []TestSuite{
		{Name: "A", Cases: []TestCase{{ClassName: "A", MethodName: "x"}}},
		{Name: "B", Cases: []TestCase{{ClassName: "B", MethodName: "y"}, {ClassName: "B", MethodName: "z"}}},
	}}
	got := r.Cases()
	if len(got) != 3 || got[2].MethodName != "z" {
		t.Errorf("Cases() = %+v", got)
	}
	var missing *TestReport
	if missing.Cases() != nil {
		t.Error("expected nil cases from nil report")
	}
}

func TestClassCounter(t *testing.T) {
	c := Class{Name: "a/B", Counters: []Counter{
		{Kind: CounterInstruction, Missed: 3, Covered: 7},
		{Kind: CounterLine, Missed: 1, Covered: 4},
	}}
	if got := c.Counter(CounterLine); got.Missed != 1 || got.Covered != 4 {
		t.Errorf("LINE counter = %+v", got)
	}
	if got := c.Counter(CounterBranch); got.Missed != 0 || got.Covered != 0 || got.Kind != CounterBranch {
		t.Errorf("BRANCH counter = %+v, want zero", got)
	}
}

func TestCompileLogClean(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  bool
	}{
		{"empty", nil, true},
		{"blank lines", []string{"", "   ", "\t"}, true},
		{"warning", []string{"", "Foo.java:3: warning: unchecked"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := &CompileLog{Lines: tt.lines}
			if got := l.Clean(); got != tt.want {
				t.Errorf("Clean() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFormattedAndLintClean(t *testing.T) {
	f := &FormatReport{Files: []FormatFile{
		{Path: "A.java", Status: FormatFormatted},
		{Path: "B.java", Status: FormatUnformatted},
		{Path: "C.java", Status: FormatFormatted},
	}}
	if f.Formatted() != 2 {
		t.Errorf("Formatted() = %d, want 2", f.Formatted())
	}
	l := &LintReport{Files: []LintFile{
		{Name: "A.java"},
		{Name: "B.java", Errors: []LintError{{Line: 3, Message: "bad"}}},
	}}
	if l.Clean() != 1 {
		t.Errorf("Clean() = %d, want 1", l.Clean())
	}
}
