package policy

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Format is a persisted policy encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

func (f Format) Valid() bool {
	switch f {
	case FormatYAML, FormatJSON, FormatTOML:
		return true
	}
	return false
}

// FormatFromPath picks a format from a file extension, defaulting to YAML.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".toml":
		return FormatTOML
	default:
		return FormatYAML
	}
}

// Header is the comment prepended to exported YAML and TOML policies.
func Header(now time.Time) string {
	return fmt.Sprintf("# THIS FILE IS AUTOMATICALLY GENERATED (%s), DO NOT EDIT!\n", now.Format(time.RFC1123))
}

// Decode parses a persisted policy, finalizes it, and validates it.
// Unknown keys are rejected so typos do not silently drop requirements.
func Decode(data []byte, f Format) (Project, error) {
	var p Project
	switch f {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&p); err != nil && err != io.EOF {
			return Project{}, fmt.Errorf("policy.Decode: yaml: %w", err)
		}
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&p); err != nil {
			return Project{}, fmt.Errorf("policy.Decode: json: %w", err)
		}
	case FormatTOML:
		md, err := toml.Decode(string(data), &p)
		if err != nil {
			return Project{}, fmt.Errorf("policy.Decode: toml: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return Project{}, fmt.Errorf("policy.Decode: toml: unknown keys %v", undecoded)
		}
	default:
		return Project{}, fmt.Errorf("policy.Decode: unknown format %q", f)
	}
	return Build(p)
}

// Load reads and decodes the policy file at path.
func Load(path string) (Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Project{}, fmt.Errorf("policy.Load: %w", err)
	}
	p, err := Decode(data, FormatFromPath(path))
	if err != nil {
		return Project{}, fmt.Errorf("policy.Load %s: %w", path, err)
	}
	return p, nil
}

// Encode writes p in the given format. header, if non-empty, is written
// first; it is ignored for JSON, which has no comments.
func Encode(w io.Writer, p Project, f Format, header string) error {
	if header != "" && f != FormatJSON {
		if _, err := io.WriteString(w, header); err != nil {
			return fmt.Errorf("policy.Encode: %w", err)
		}
	}
	switch f {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(p); err != nil {
			return fmt.Errorf("policy.Encode: yaml: %w", err)
		}
		return enc.Close()
	case FormatJSON:
		data, err := json.MarshalIndent(p, "", "  ")
		if err != nil {
			return fmt.Errorf("policy.Encode: json: %w", err)
		}
		_, err = w.Write(append(data, '\n'))
		return err
	case FormatTOML:
		if err := toml.NewEncoder(w).Encode(p); err != nil {
			return fmt.Errorf("policy.Encode: toml: %w", err)
		}
		return nil
	}
	return fmt.Errorf("policy.Encode: unknown format %q", f)
}
