package policy

import (
	"embed"
	"fmt"
	"strings"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// LoadBuiltin loads an embedded example policy by name.
func LoadBuiltin(name string) (Project, error) {
	data, err := builtinFS.ReadFile("builtin/" + name + ".yaml")
	if err != nil {
		return Project{}, fmt.Errorf("policy.LoadBuiltin: unknown policy %q: %w", name, err)
	}
	p, err := Decode(data, FormatYAML)
	if err != nil {
		return Project{}, fmt.Errorf("policy.LoadBuiltin: %q: %w", name, err)
	}
	return p, nil
}

// List returns the names of all embedded policies.
func List() ([]string, error) {
	entries, err := builtinFS.ReadDir("builtin")
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		n := e.Name()
		if strings.HasSuffix(n, ".yaml") {
			names = append(names, strings.TrimSuffix(n, ".yaml"))
		}
	}
	return names, nil
}
