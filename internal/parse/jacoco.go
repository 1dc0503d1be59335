package parse

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"fortio.org/safecast"

	"github.com/dshills/autograde/internal/snapshot"
)

type jacocoReport struct {
	XMLName  xml.Name        `xml:"report"`
	Name     string          `xml:"name,attr"`
	Packages []jacocoPackage `xml:"package"`
}

type jacocoPackage struct {
	Name    string        `xml:"name,attr"`
	Classes []jacocoClass `xml:"class"`
}

type jacocoClass struct {
	Name     string          `xml:"name,attr"`
	Counters []jacocoCounter `xml:"counter"`
}

type jacocoCounter struct {
	Type    string `xml:"type,attr"`
	Missed  int64  `xml:"missed,attr"`
	Covered int64  `xml:"covered,attr"`
}

// JaCoCo decodes a JaCoCo XML coverage report. Only class-level counters
// are kept; method, source-file and roll-up counters are ignored.
func JaCoCo(data []byte, path string) (*snapshot.CoverageReport, error) {
	if empty(data) {
		return nil, fmt.Errorf("parse.JaCoCo %s: %w", path, ErrEmpty)
	}
	var jr jacocoReport
	if err := xml.NewDecoder(bytes.NewReader(data)).Decode(&jr); err != nil {
		return nil, fmt.Errorf("parse.JaCoCo %s: %w", path, err)
	}

	r := &snapshot.CoverageReport{Path: path, Packages: make([]snapshot.Package, 0, len(jr.Packages))}
	for _, jp := range jr.Packages {
		p := snapshot.Package{Name: jp.Name, Classes: make([]snapshot.Class, 0, len(jp.Classes))}
		for _, jc := range jp.Classes {
			c := snapshot.Class{Name: jc.Name}
			for _, ctr := range jc.Counters {
				kind := snapshot.CounterKind(ctr.Type)
				if !kind.Valid() {
					return nil, fmt.Errorf("parse.JaCoCo %s: class %s: unknown counter type %q", path, jc.Name, ctr.Type)
				}
				missed, err := safecast.Conv[int](ctr.Missed)
				if err != nil {
					return nil, fmt.Errorf("parse.JaCoCo %s: class %s: missed: %w", path, jc.Name, err)
				}
				covered, err := safecast.Conv[int](ctr.Covered)
				if err != nil {
					return nil, fmt.Errorf("parse.JaCoCo %s: class %s: covered: %w", path, jc.Name, err)
				}
				if missed < 0 || covered < 0 {
					return nil, fmt.Errorf("parse.JaCoCo %s: class %s: negative counter", path, jc.Name)
				}
				c.Counters = append(c.Counters, snapshot.Counter{Kind: kind, Missed: missed, Covered: covered})
			}
			p.Classes = append(p.Classes, c)
		}
		r.Packages = append(r.Packages, p)
	}
	return r, nil
}
