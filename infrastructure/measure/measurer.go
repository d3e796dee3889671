// Package measure collects raw and gzip sizes of build output files.
package measure

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"

	"github.com/klauspost/compress/gzip"

	"asset-size-action/domain/assets"
	"asset-size-action/infrastructure/logging"
)

// Measurer implements assets.Measurer by scanning a project directory
type Measurer struct {
	patterns []string
	level    int
}

// Option is a functional option for configuring Measurer
type Option func(*Measurer)

// WithCompressionLevel overrides the gzip level used for the gzip size
func WithCompressionLevel(level int) Option {
	return func(m *Measurer) {
		m.level = level
	}
}

// NewMeasurer creates a measurer for the given slash-separated globs,
// relative to the project directory (e.g. "dist/assets/**.js").
func NewMeasurer(patterns []string, opts ...Option) *Measurer {
	m := &Measurer{
		patterns: append([]string(nil), patterns...),
		level:    gzip.BestCompression,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Measure implements assets.Measurer. Keys are paths relative to dir using
// forward slashes, e.g. "dist/assets/app-<hash>.js".
func (m *Measurer) Measure(ctx context.Context, dir string) (assets.SizeMap, error) {
	sizes := make(assets.SizeMap)

	for _, pattern := range m.patterns {
		re, err := compileGlob(filepath.ToSlash(pattern))
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
		}

		root := filepath.Join(dir, filepath.FromSlash(globRoot(filepath.ToSlash(pattern))))
		if err := m.walk(ctx, dir, root, re, sizes); err != nil {
			return nil, err
		}
	}

	logging.Debug("measured build output",
		logging.String("dir", dir),
		logging.Int("files", len(sizes)))
	return sizes, nil
}

func (m *Measurer) walk(ctx context.Context, dir, root string, re *regexp.Regexp, sizes assets.SizeMap) error {
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if !re.MatchString(rel) {
			return nil
		}
		if _, seen := sizes[rel]; seen {
			return nil
		}

		size, err := m.fileSize(path)
		if err != nil {
			return err
		}
		sizes[rel] = size
		return nil
	})
	if errors.Is(err, fs.ErrNotExist) {
		// No build output for this pattern
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to scan %s: %w", root, err)
	}
	return nil
}

func (m *Measurer) fileSize(path string) (assets.Size, error) {
	f, err := os.Open(path)
	if err != nil {
		return assets.Size{}, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	var gz countingWriter
	zw, err := gzip.NewWriterLevel(&gz, m.level)
	if err != nil {
		return assets.Size{}, fmt.Errorf("failed to create gzip writer: %w", err)
	}

	raw, err := io.Copy(zw, f)
	if err != nil {
		return assets.Size{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := zw.Close(); err != nil {
		return assets.Size{}, fmt.Errorf("failed to compress %s: %w", path, err)
	}

	return assets.Size{Raw: raw, Gzip: gz.n}, nil
}

type countingWriter struct {
	n int64
}

func (w *countingWriter) Write(p []byte) (int, error) {
	w.n += int64(len(p))
	return len(p), nil
}

// Ensure Measurer implements assets.Measurer
var _ assets.Measurer = (*Measurer)(nil)
