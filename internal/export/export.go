// Package export writes a grading report to disk in its machine- and
// human-readable forms.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dshills/autograde/internal/grade"
	"github.com/dshills/autograde/internal/render"
)

// Format is a report output format.
type Format string

const (
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatText     Format = "txt"
	FormatMarkdown Format = "md"
)

// DefaultFormats are written when none are configured.
var DefaultFormats = []Format{FormatJSON, FormatYAML, FormatText}

func (f Format) Valid() bool {
	switch f {
	case FormatJSON, FormatYAML, FormatText, FormatMarkdown:
		return true
	}
	return false
}

// FileName is the report file written for f.
func (f Format) FileName() string {
	if f == FormatYAML {
		return "report.yml"
	}
	return "report." + string(f)
}

// ParseFormats converts configured names into formats. "yml" and "text"
// are accepted as aliases; duplicates are dropped.
func ParseFormats(names []string) ([]Format, error) {
	var out []Format
	seen := map[Format]bool{}
	for _, n := range names {
		f := Format(strings.ToLower(strings.TrimSpace(n)))
		switch f {
		case "yml":
			f = FormatYAML
		case "text":
			f = FormatText
		case "markdown":
			f = FormatMarkdown
		}
		if !f.Valid() {
			return nil, fmt.Errorf("unknown report format %q (want json, yaml, txt or md)", n)
		}
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	return out, nil
}

// Options controls encoding.
type Options struct {
	// Header is prepended to YAML output, typically policy.Header.
	Header string
	// Width of the text report; 0 uses the default.
	Width int
}

// Encode writes r to w in format f. Files never carry colour.
func Encode(w io.Writer, r *grade.ResultsReport, f Format, opts Options) error {
	switch f {
	case FormatJSON:
		data, err := json.MarshalIndent(r, "", "  ")
		if err != nil {
			return fmt.Errorf("export.Encode: %w", err)
		}
		data = append(data, '\n')
		_, err = w.Write(data)
		return err
	case FormatYAML:
		if _, err := io.WriteString(w, opts.Header); err != nil {
			return err
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("export.Encode: %w", err)
		}
		return enc.Close()
	case FormatText:
		_, err := io.WriteString(w, render.Text(r, render.TextOptions{Width: opts.Width}))
		return err
	case FormatMarkdown:
		_, err := io.WriteString(w, render.Markdown(r))
		return err
	}
	return fmt.Errorf("export.Encode: unknown format %q", f)
}

// WriteReports writes one file per format into dir, creating it if needed,
// and returns the paths written.
func WriteReports(dir string, r *grade.ResultsReport, formats []Format, opts Options) ([]string, error) {
	if len(formats) == 0 {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("export.WriteReports: %w", err)
	}
	paths := make([]string, 0, len(formats))
	for _, f := range formats {
		var b strings.Builder
		if err := Encode(&b, r, f, opts); err != nil {
			return paths, err
		}
		path := filepath.Join(dir, f.FileName())
		if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
			return paths, fmt.Errorf("export.WriteReports: %w", err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// Decode reads a report previously written as JSON or YAML.
func Decode(data []byte, f Format) (grade.ResultsReport, error) {
	var r grade.ResultsReport
	var err error
	switch f {
	case FormatJSON:
		err = json.Unmarshal(data, &r)
	case FormatYAML:
		err = yaml.Unmarshal(data, &r)
	default:
		err = fmt.Errorf("format %q cannot be decoded", f)
	}
	if err != nil {
		return grade.ResultsReport{}, fmt.Errorf("export.Decode: %w", err)
	}
	return r, nil
}
