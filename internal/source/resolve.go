package source

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Resolve picks a build-directory source. An explicit layout name wins;
// otherwise the layout is detected from which test report directory exists.
func Resolve(layout, dir string) (Source, error) {
	if layout != "" {
		l, ok := Layouts[strings.ToLower(layout)]
		if !ok {
			return nil, fmt.Errorf("unknown build layout %q (want gradle or maven)", layout)
		}
		return &BuildDir{Dir: dir, Layout: l}, nil
	}

	if isDir(filepath.Join(dir, "surefire-reports")) {
		return &BuildDir{Dir: dir, Layout: Maven}, nil
	}
	return &BuildDir{Dir: dir, Layout: Gradle}, nil
}

func isDir(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.IsDir()
}
