package source

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/dshills/autograde/internal/artifact"
	"github.com/dshills/autograde/internal/parse"
	"github.com/dshills/autograde/internal/snapshot"
)

// BuildDir reads reports from a build output directory. A report that is
// absent or cannot be parsed is left nil in the snapshot so that its
// evaluator fails closed; only I/O failures are returned as errors.
type BuildDir struct {
	Dir    string
	Layout Layout
}

func (b *BuildDir) Name() string { return b.Layout.Name }

func (b *BuildDir) path(rel string) string {
	return filepath.Join(b.Dir, filepath.FromSlash(rel))
}

// Load reads every report concurrently.
func (b *BuildDir) Load(ctx context.Context, log *slog.Logger) (*snapshot.Snapshot, error) {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	log = log.With("layout", b.Layout.Name, "build_dir", b.Dir)
	s := &snapshot.Snapshot{}
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		r, err := b.loadTests(ctx, log)
		s.Tests = r
		return err
	})
	g.Go(func() error {
		f, err := b.optional(ctx, b.Layout.Coverage)
		if f == nil || err != nil {
			return err
		}
		r, err := parse.JaCoCo(f.Data, f.Path)
		if err != nil {
			log.Warn("coverage report unreadable", "err", err)
			return nil
		}
		r.HTMLPath = b.path(b.Layout.CoverageHTML)
		s.Coverage = r
		return nil
	})
	g.Go(func() error {
		r, err := b.loadLint(ctx, log, b.Layout.LintMain)
		s.LintMain = r
		return err
	})
	g.Go(func() error {
		r, err := b.loadLint(ctx, log, b.Layout.LintTest)
		s.LintTest = r
		return err
	})
	g.Go(func() error {
		r, err := b.loadFormat(ctx, log)
		s.Format = r
		return err
	})
	g.Go(func() error {
		f, err := b.optional(ctx, b.Layout.CompileLog)
		if f == nil || err != nil {
			return err
		}
		s.CompileLog = parse.CompileLog(f.Data, f.Path)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("source.Load: %w", err)
	}
	logMissing(log, s)
	return s, nil
}

func (b *BuildDir) optional(ctx context.Context, rel string) (*artifact.File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return artifact.LoadOptional(b.path(rel))
}

func (b *BuildDir) glob(ctx context.Context, rel string) ([]*artifact.File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return artifact.Glob(b.path(rel))
}

func (b *BuildDir) loadTests(ctx context.Context, log *slog.Logger) (*snapshot.TestReport, error) {
	files, err := b.glob(ctx, b.Layout.TestGlob)
	if err != nil || len(files) == 0 {
		return nil, err
	}
	r := &snapshot.TestReport{}
	for _, f := range files {
		suites, err := parse.JUnit(f.Data, f.Path)
		if err != nil {
			log.Warn("test report unreadable", "err", err)
			continue
		}
		r.Suites = append(r.Suites, suites...)
	}
	if len(r.Suites) == 0 {
		return nil, nil
	}
	return r, nil
}

func (b *BuildDir) loadLint(ctx context.Context, log *slog.Logger, rel string) (*snapshot.LintReport, error) {
	f, err := b.optional(ctx, rel)
	if f == nil || err != nil {
		return nil, err
	}
	r, err := parse.CheckStyle(f.Data, f.Path)
	if err != nil {
		if !errors.Is(err, parse.ErrEmpty) {
			log.Warn("lint report unreadable", "err", err)
		}
		return nil, nil
	}
	return r, nil
}

// loadFormat reads the format state file. When several formatter
// versions have left one behind, only the newest version's file counts.
func (b *BuildDir) loadFormat(ctx context.Context, log *slog.Logger) (*snapshot.FormatReport, error) {
	files, err := b.glob(ctx, b.Layout.FormatGlob)
	if err != nil || len(files) == 0 {
		return nil, err
	}
	f := newestVersion(files)
	if len(files) > 1 {
		log.Debug("ignoring format state from older formatter versions", "using", f.Path, "found", len(files))
	}
	r, err := parse.FormatStates(f.Data, f.Path)
	if err != nil {
		log.Warn("format report unreadable", "err", err)
		return nil, nil
	}
	return r, nil
}

// newestVersion picks the file whose parent directory names the highest
// version, comparing dotted segments numerically.
func newestVersion(files []*artifact.File) *artifact.File {
	return slices.MaxFunc(files, func(a, b *artifact.File) int {
		return compareVersions(filepath.Base(filepath.Dir(a.Path)), filepath.Base(filepath.Dir(b.Path)))
	})
}

func compareVersions(a, b string) int {
	split := func(r rune) bool { return r == '.' || r == '-' }
	as, bs := strings.FieldsFunc(a, split), strings.FieldsFunc(b, split)
	for i := 0; i < len(as) && i < len(bs); i++ {
		an, aerr := strconv.Atoi(as[i])
		bn, berr := strconv.Atoi(bs[i])
		var c int
		if aerr == nil && berr == nil {
			c = cmp.Compare(an, bn)
		} else {
			c = strings.Compare(as[i], bs[i])
		}
		if c != 0 {
			return c
		}
	}
	return cmp.Compare(len(as), len(bs))
}

func logMissing(log *slog.Logger, s *snapshot.Snapshot) {
	reports := []struct {
		name    string
		missing bool
	}{
		{"tests", s.Tests == nil},
		{"coverage", s.Coverage == nil},
		{"format", s.Format == nil},
		{"lint_main", s.LintMain == nil},
		{"lint_test", s.LintTest == nil},
		{"compile_log", s.CompileLog == nil},
	}
	for _, r := range reports {
		if r.missing {
			log.Debug("report not found", "report", r.name)
		}
	}
}
