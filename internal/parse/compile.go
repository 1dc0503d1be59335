package parse

import (
	"github.com/dshills/autograde/internal/artifact"
	"github.com/dshills/autograde/internal/snapshot"
)

// CompileLog wraps captured compiler output. Any content, including none,
// is a valid log.
func CompileLog(data []byte, path string) *snapshot.CompileLog {
	return &snapshot.CompileLog{Path: path, Lines: artifact.SplitLines(string(data))}
}
