// Package parse decodes the report formats written by the Java build
// tools into snapshot values.
package parse

import (
	"bytes"
	"errors"
)

// ErrEmpty is returned for a report file with no content. Callers treat
// it the same as a missing file.
var ErrEmpty = errors.New("parse: empty report")

func empty(data []byte) bool {
	return len(bytes.TrimSpace(data)) == 0
}
