package config

// Default configuration values.
var (
	DefaultBuildDir  = "./build"
	DefaultLayout    = ""
	DefaultPolicy    = "autograde-policy.yaml"
	DefaultFormats   = []string{"json", "yaml", "txt"}
	DefaultLogLevel  = "warn"
	DefaultConfigDir = "."

	DefaultOutput = Output{
		Color: true,
		Width: 78,
	}
)

// ReportSubdir is where reports go under the build directory when
// report_dir is not set.
const ReportSubdir = "autograder"
