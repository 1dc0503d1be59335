package parse

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/dshills/autograde/internal/snapshot"
)

type checkstyleReport struct {
	XMLName xml.Name         `xml:"checkstyle"`
	Files   []checkstyleFile `xml:"file"`
}

type checkstyleFile struct {
	Name   string            `xml:"name,attr"`
	Errors []checkstyleError `xml:"error"`
}

type checkstyleError struct {
	Line     int    `xml:"line,attr"`
	Column   int    `xml:"column,attr"`
	Severity string `xml:"severity,attr"`
	Message  string `xml:"message,attr"`
	Source   string `xml:"source,attr"`
}

// CheckStyle decodes a CheckStyle XML report.
func CheckStyle(data []byte, path string) (*snapshot.LintReport, error) {
	if empty(data) {
		return nil, fmt.Errorf("parse.CheckStyle %s: %w", path, ErrEmpty)
	}
	var cr checkstyleReport
	if err := xml.NewDecoder(bytes.NewReader(data)).Decode(&cr); err != nil {
		return nil, fmt.Errorf("parse.CheckStyle %s: %w", path, err)
	}
	r := &snapshot.LintReport{Path: path, Files: make([]snapshot.LintFile, 0, len(cr.Files))}
	for _, f := range cr.Files {
		lf := snapshot.LintFile{Name: f.Name}
		for _, e := range f.Errors {
			lf.Errors = append(lf.Errors, snapshot.LintError(e))
		}
		r.Files = append(r.Files, lf)
	}
	return r, nil
}
