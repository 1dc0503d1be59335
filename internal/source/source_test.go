package source

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/dshills/autograde/internal/snapshot"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

const suiteXML = `<testsuite name="T"><testcase name="a()" classname="T"/><testcase name="b()" classname="T"><failure message="no"/></testcase></testsuite>`

const jacocoXML = `<report name="x"><package name="p"><class name="p/A"><counter type="LINE" missed="1" covered="9"/></class></package></report>`

const checkstyleXML = `<checkstyle><file name="A.java"/></checkstyle>`

func gradleBuild(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, dir, "test-results/test/TEST-T.xml", suiteXML)
	writeFile(t, dir, "test-results/test/TEST-broken.xml", "<testsuite")
	writeFile(t, dir, "reports/jacoco/test/jacocoTestReport.xml", jacocoXML)
	writeFile(t, dir, "reports/checkstyle/main.xml", checkstyleXML)
	writeFile(t, dir, "reports/checkstyle/test.xml", checkstyleXML)
	writeFile(t, dir, "google-java-format/1.7/fileStates.txt", "B.java,1,2,FORMATTED\n")
	writeFile(t, dir, "google-java-format/1.8/fileStates.txt", "A.java,1,2,UNFORMATTED\n")
	writeFile(t, dir, "logs/compile.log", "")
	return dir
}

func TestBuildDirGradle(t *testing.T) {
	src := &BuildDir{Dir: gradleBuild(t), Layout: Gradle}
	s, err := src.Load(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if s.Tests == nil || len(s.Tests.Cases()) != 2 {
		t.Fatalf("tests = %+v", s.Tests)
	}
	if s.Coverage == nil || len(s.Coverage.Classes()) != 1 || s.Coverage.HTMLPath == "" {
		t.Errorf("coverage = %+v", s.Coverage)
	}
	if s.LintMain == nil || s.LintTest == nil {
		t.Error("lint reports missing")
	}
	if s.Format == nil || len(s.Format.Files) != 1 || s.Format.Files[0].Path != "A.java" {
		t.Errorf("format = %+v", s.Format)
	}
	if s.CompileLog == nil || !s.CompileLog.Clean() {
		t.Errorf("compile log = %+v", s.CompileLog)
	}
	if src.Name() != "gradle" {
		t.Errorf("name = %q", src.Name())
	}
}

func TestBuildDirFormatUsesNewestVersion(t *testing.T) {
	tests := []struct {
		name     string
		files    map[string]string
		wantPath string
		wantOK   bool
	}{
		{"stale unformatted row ignored", map[string]string{
			"1.7": "A.java,1,2,UNFORMATTED\n",
			"1.8": "A.java,3,2,FORMATTED\n",
		}, "1.8", true},
		{"numeric segment order", map[string]string{
			"1.9":  "A.java,1,2,FORMATTED\n",
			"1.10": "A.java,3,2,UNFORMATTED\n",
		}, "1.10", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			for version, content := range tt.files {
				writeFile(t, dir, "google-java-format/"+version+"/fileStates.txt", content)
			}
			s, err := (&BuildDir{Dir: dir, Layout: Gradle}).Load(context.Background(), nil)
			if err != nil {
				t.Fatal(err)
			}
			if s.Format == nil || len(s.Format.Files) != 1 {
				t.Fatalf("format = %+v", s.Format)
			}
			if got := filepath.Base(filepath.Dir(s.Format.Path)); got != tt.wantPath {
				t.Errorf("read version %q, want %q", got, tt.wantPath)
			}
			if ok := s.Format.Formatted() == len(s.Format.Files); ok != tt.wantOK {
				t.Errorf("formatted = %v, want %v", ok, tt.wantOK)
			}
		})
	}
}

func TestCompareVersions(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"1.7", "1.8", -1},
		{"1.10", "1.9", 1},
		{"1.8", "1.8", 0},
		{"1.8", "1.8.1", -1},
		{"1.8-beta", "1.8", 1},
	}
	for _, tt := range tests {
		if got := compareVersions(tt.a, tt.b); got != tt.want {
			t.Errorf("compareVersions(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestBuildDirEmpty(t *testing.T) {
	s, err := (&BuildDir{Dir: t.TempDir(), Layout: Gradle}).Load(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if s.Tests != nil || s.Coverage != nil || s.Format != nil || s.LintMain != nil || s.LintTest != nil || s.CompileLog != nil {
		t.Errorf("expected all reports missing, got %+v", s)
	}
}

func TestBuildDirUnparseableIsMissing(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "reports/jacoco/test/jacocoTestReport.xml", "not xml")
	writeFile(t, dir, "reports/checkstyle/main.xml", "")
	writeFile(t, dir, "test-results/test/TEST-x.xml", "<testsuite")
	s, err := (&BuildDir{Dir: dir, Layout: Gradle}).Load(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if s.Coverage != nil || s.LintMain != nil || s.Tests != nil {
		t.Errorf("expected unreadable reports to be nil, got %+v", s)
	}
}

func TestBuildDirMaven(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "surefire-reports/TEST-T.xml", suiteXML)
	writeFile(t, dir, "site/jacoco/jacoco.xml", jacocoXML)
	writeFile(t, dir, "checkstyle-result.xml", checkstyleXML)
	writeFile(t, dir, "google-java-format/fileStates.txt", "A.java,1,2,FORMATTED\n")

	src, err := Resolve("", dir)
	if err != nil {
		t.Fatal(err)
	}
	if src.Name() != "maven" {
		t.Fatalf("detected layout %q, want maven", src.Name())
	}
	s, err := src.Load(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if s.Tests == nil || s.Coverage == nil || s.LintMain == nil || s.Format == nil {
		t.Errorf("snapshot = %+v", s)
	}
	if s.LintTest != nil || s.CompileLog != nil {
		t.Error("expected absent maven reports to be nil")
	}
}

func TestBuildDirCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := (&BuildDir{Dir: gradleBuild(t), Layout: Gradle}).Load(ctx, nil)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name    string
		layout  string
		want    string
		wantErr bool
	}{
		{"default", "", "gradle", false},
		{"explicit maven", "maven", "maven", false},
		{"case insensitive", "Gradle", "gradle", false},
		{"unknown", "ant", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src, err := Resolve(tt.layout, t.TempDir())
			if tt.wantErr {
				if err == nil {
					t.Error("expected error")
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if src.Name() != tt.want {
				t.Errorf("Name() = %q, want %q", src.Name(), tt.want)
			}
		})
	}
}

func TestStatic(t *testing.T) {
	want := &snapshot.Snapshot{CompileLog: &snapshot.CompileLog{}}
	got, err := (&Static{Snapshot: want}).Load(context.Background(), nil)
	if err != nil || got != want {
		t.Errorf("Static.Load = (%v, %v)", got, err)
	}
}
