package main

import (
	"fmt"
	"time"
)

// Process exit codes.
const (
	exitNotPassing  = 2
	exitPolicy      = 3
	exitIO          = 4
	exitConsistency = 5
)

type exitErr struct {
	code int
	msg  string
}

func (e *exitErr) Error() string { return e.msg }

func exitError(code int, format string, args ...any) error {
	return &exitErr{code: code, msg: fmt.Sprintf(format, args...)}
}

// timeNow is swapped in tests to keep generated headers stable.
var timeNow = time.Now
