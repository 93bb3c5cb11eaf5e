// Package fallback runs an ordered list of alternative data sources and
// returns the first usable result.
//
// Sources are tried strictly in order, one at a time, never raced. A source
// succeeds when it returns no error and its result passes the chain's
// usability check; the chain stops there. Failures are logged and counted,
// never returned: total exhaustion yields the zero value.
package fallback

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// ErrUnusable marks a source that answered without error but with a result
// the chain cannot use (typically an empty list).
var ErrUnusable = errors.New("unusable result")

// Outcomes reported to an Observer.
const (
	OutcomeSuccess = "success"
	OutcomeEmpty   = "empty"
	OutcomeError   = "error"
	OutcomeSkipped = "skipped"
)

// Source is one attempt in a chain.
type Source[T any] struct {
	Name  string
	Fetch func(ctx context.Context) (T, error)
}

// Observer receives per-attempt outcomes, e.g. for metrics.
type Observer interface {
	ObserveAttempt(chain, source, outcome string, elapsed time.Duration)
	ObserveExhausted(chain string)
}

// Chain is an ordered source list with short-circuit on success.
type Chain[T any] struct {
	name     string
	sources  []Source[T]
	usable   func(T) bool
	logger   *slog.Logger
	observer Observer
}

// New creates a chain. Sources with a nil Fetch are skipped at resolve time,
// which lets callers leave unconfigured providers in place.
func New[T any](name string, usable func(T) bool, logger *slog.Logger, sources ...Source[T]) *Chain[T] {
	if usable == nil {
		panic("fallback: nil usability check for chain " + name)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Chain[T]{
		name:    name,
		sources: sources,
		usable:  usable,
		logger:  logger,
	}
}

// WithObserver attaches an observer and returns the chain.
func (c *Chain[T]) WithObserver(o Observer) *Chain[T] {
	c.observer = o
	return c
}

// Name returns the chain name used in logs and metrics.
func (c *Chain[T]) Name() string { return c.name }

// Resolve tries each source in order and returns the first usable result with
// the name of the source that produced it. When every source fails, or ctx is
// done before one succeeds, it returns the zero value and "".
func (c *Chain[T]) Resolve(ctx context.Context) (T, string) {
	var zero T
	for _, src := range c.sources {
		if src.Fetch == nil {
			c.observe(src.Name, OutcomeSkipped, 0)
			continue
		}
		if err := ctx.Err(); err != nil {
			c.logger.Debug("fallback chain cancelled", "chain", c.name, "source", src.Name, "error", err)
			return zero, ""
		}

		start := time.Now()
		result, err := try(ctx, src)
		elapsed := time.Since(start)

		switch {
		case err != nil:
			c.observe(src.Name, OutcomeError, elapsed)
			c.logger.Debug("fallback source failed", "chain", c.name, "source", src.Name, "error", err)
		case !c.usable(result):
			c.observe(src.Name, OutcomeEmpty, elapsed)
			c.logger.Debug("fallback source unusable", "chain", c.name, "source", src.Name, "error", ErrUnusable)
		default:
			c.observe(src.Name, OutcomeSuccess, elapsed)
			c.logger.Debug("fallback source resolved", "chain", c.name, "source", src.Name, "elapsed", elapsed)
			return result, src.Name
		}
	}

	if c.observer != nil {
		c.observer.ObserveExhausted(c.name)
	}
	c.logger.Warn("fallback chain exhausted", "chain", c.name, "sources", len(c.sources))
	return zero, ""
}

// try runs one source, turning a panic into an error so a misbehaving
// provider cannot take the chain down.
func try[T any](ctx context.Context, src Source[T]) (result T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("source %s panicked: %v", src.Name, r)
		}
	}()
	return src.Fetch(ctx)
}

func (c *Chain[T]) observe(source, outcome string, elapsed time.Duration) {
	if c.observer != nil {
		c.observer.ObserveAttempt(c.name, source, outcome, elapsed)
	}
}

// NonEmpty is the usability check for list results.
func NonEmpty[E any](s []E) bool { return len(s) > 0 }

// NotNil is the usability check for optional results.
func NotNil[P any](p *P) bool { return p != nil }
