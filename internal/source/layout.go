package source

// Layout names where a build tool leaves each report, relative to the
// build directory. Globs may match several files.
type Layout struct {
	Name         string
	TestGlob     string
	Coverage     string
	CoverageHTML string
	LintMain     string
	LintTest     string
	FormatGlob   string
	CompileLog   string
}

var Gradle = Layout{
	Name:         "gradle",
	TestGlob:     "test-results/test/*.xml",
	Coverage:     "reports/jacoco/test/jacocoTestReport.xml",
	CoverageHTML: "reports/jacoco/test/html/index.html",
	LintMain:     "reports/checkstyle/main.xml",
	LintTest:     "reports/checkstyle/test.xml",
	FormatGlob:   "google-java-format/*/fileStates.txt",
	CompileLog:   "logs/compile.log",
}

var Maven = Layout{
	Name:         "maven",
	TestGlob:     "surefire-reports/TEST-*.xml",
	Coverage:     "site/jacoco/jacoco.xml",
	CoverageHTML: "site/jacoco/index.html",
	LintMain:     "checkstyle-result.xml",
	LintTest:     "checkstyle-test-result.xml",
	FormatGlob:   "google-java-format/fileStates.txt",
	CompileLog:   "logs/compile.log",
}

// Layouts lists the known layouts by name.
var Layouts = map[string]Layout{
	Gradle.Name: Gradle,
	Maven.Name:  Maven,
}
