// Package dataset serves country lists that need no network: the packaged
// dataset file shipped next to the binary and the minimal bundled file
// compiled into it.
package dataset

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/couchcryptid/country-explorer/internal/domain"
)

//go:embed countries_fallback.json
var bundledJSON []byte

// ErrNotConfigured is returned by a File with no path.
var ErrNotConfigured = errors.New("dataset: no packaged dataset configured")

// File reads a packaged dataset from disk. A successful read is cached, so
// repeated attempts in one chain cost nothing; a failed read is retried on
// the next call.
type File struct {
	path   string
	logger *slog.Logger

	mu      sync.Mutex
	records []domain.RawCountry
}

// NewFile creates a packaged dataset reader for path. An empty path is
// valid and makes every List fail with ErrNotConfigured.
func NewFile(path string, logger *slog.Logger) *File {
	return &File{path: path, logger: logger}
}

// List returns the dataset records.
func (f *File) List(ctx context.Context) ([]domain.RawCountry, error) {
	if f.path == "" {
		return nil, ErrNotConfigured
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.records != nil {
		return f.records, nil
	}

	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("read packaged dataset: %w", err)
	}
	records, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("packaged dataset %s: %w", f.path, err)
	}
	f.logger.Info("packaged dataset loaded", "path", f.path, "count", len(records))
	f.records = records
	return records, nil
}

// Bundled is the minimal dataset compiled into the binary.
type Bundled struct {
	records []domain.RawCountry
}

// NewBundled decodes the embedded dataset. It panics if the embedded file is
// malformed, which is a build defect.
func NewBundled() *Bundled {
	records, err := decode(bundledJSON)
	if err != nil {
		panic(fmt.Sprintf("dataset: bundled file: %v", err))
	}
	return &Bundled{records: records}
}

// NewBundledFrom wraps an in-memory dataset, for tests and custom builds.
func NewBundledFrom(records []domain.RawCountry) *Bundled {
	return &Bundled{records: records}
}

// List returns a copy of the bundled records slice.
func (b *Bundled) List(context.Context) ([]domain.RawCountry, error) {
	return append([]domain.RawCountry(nil), b.records...), nil
}

func decode(data []byte) ([]domain.RawCountry, error) {
	var out []domain.RawCountry
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return out, nil
}
