package parse

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"

	"github.com/dshills/autograde/internal/snapshot"
)

type junitSuite struct {
	Name  string      `xml:"name,attr"`
	Cases []junitCase `xml:"testcase"`
}

type junitCase struct {
	Name      string    `xml:"name,attr"`
	ClassName string    `xml:"classname,attr"`
	Failure   *junitMsg `xml:"failure"`
	Error     *junitMsg `xml:"error"`
	Skipped   *junitMsg `xml:"skipped"`
}

type junitMsg struct {
	Message string `xml:"message,attr"`
	Text    string `xml:",chardata"`
}

func (m *junitMsg) text() string {
	if m == nil {
		return ""
	}
	if m.Message != "" {
		return m.Message
	}
	return m.Text
}

// JUnit decodes a JUnit XML report. Both a single <testsuite> root and a
// <testsuites> wrapper are accepted. A case with <failure> or <error>
// counts as failed.
func JUnit(data []byte, path string) ([]snapshot.TestSuite, error) {
	if empty(data) {
		return nil, fmt.Errorf("parse.JUnit %s: %w", path, ErrEmpty)
	}
	dec := xml.NewDecoder(bytes.NewReader(data))
	var suites []snapshot.TestSuite
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse.JUnit %s: %w", path, err)
		}
		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "testsuite" {
			continue
		}
		var js junitSuite
		if err := dec.DecodeElement(&js, &se); err != nil {
			return nil, fmt.Errorf("parse.JUnit %s: %w", path, err)
		}
		suites = append(suites, js.toSnapshot(path))
	}
	if len(suites) == 0 {
		return nil, fmt.Errorf("parse.JUnit %s: no testsuite element", path)
	}
	return suites, nil
}

func (js junitSuite) toSnapshot(path string) snapshot.TestSuite {
	s := snapshot.TestSuite{Name: js.Name, Path: path, Cases: make([]snapshot.TestCase, 0, len(js.Cases))}
	for _, c := range js.Cases {
		tc := snapshot.TestCase{
			ClassName:  c.ClassName,
			MethodName: c.Name,
			Failed:     c.Failure != nil || c.Error != nil,
			Skipped:    c.Skipped != nil,
		}
		switch {
		case c.Failure != nil:
			tc.Message = c.Failure.text()
		case c.Error != nil:
			tc.Message = c.Error.text()
		case c.Skipped != nil:
			tc.Message = c.Skipped.text()
		}
		s.Cases = append(s.Cases, tc)
	}
	return s
}
