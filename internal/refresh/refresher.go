// Package refresh keeps the proxy's country list warm by reloading it from
// the upstream chain on a fixed interval.
package refresh

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"
)

// ErrNotWarm is reported until the first refresh has produced a list.
var ErrNotWarm = errors.New("country list not resolved yet")

// Loader reloads a dataset and reports how many records it produced.
type Loader interface {
	Refresh(ctx context.Context) (int, error)
}

// Observer records refresh outcomes and whether the loop is running.
type Observer interface {
	ObserveRefresh(outcome string, elapsed time.Duration)
	SetRefresherRunning(running bool)
}

// Refresher runs Loader.Refresh until its context is cancelled.
type Refresher struct {
	loader   Loader
	interval time.Duration
	clock    clockwork.Clock
	logger   *slog.Logger
	observer Observer
	ready    atomic.Bool
}

// New creates a Refresher. A nil clock uses the real clock; observer may be nil.
func New(loader Loader, interval time.Duration, clock clockwork.Clock, logger *slog.Logger, observer Observer) *Refresher {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Refresher{
		loader:   loader,
		interval: interval,
		clock:    clock,
		logger:   logger,
		observer: observer,
	}
}

// CheckReadiness returns nil once a refresh has succeeded.
func (r *Refresher) CheckReadiness(_ context.Context) error {
	if !r.ready.Load() {
		return ErrNotWarm
	}
	return nil
}

// Run refreshes immediately, then every interval until ctx is cancelled. A
// failed refresh waits for the next tick.
func (r *Refresher) Run(ctx context.Context) error {
	r.logger.Info("refresher started", "interval", r.interval)
	r.setRunning(true)
	defer r.setRunning(false)

	for {
		r.refreshOnce(ctx)
		if !r.sleep(ctx, r.interval) {
			break
		}
	}
	r.logger.Info("refresher stopping", "reason", ctx.Err())
	return nil
}

func (r *Refresher) refreshOnce(ctx context.Context) {
	start := r.clock.Now()
	n, err := r.loader.Refresh(ctx)
	elapsed := r.clock.Since(start)
	if err != nil {
		if ctx.Err() == nil {
			r.logger.Warn("country refresh failed", "error", err)
			r.observe("error", elapsed)
		}
		return
	}

	r.observe("success", elapsed)
	if !r.ready.Swap(true) {
		r.logger.Info("country list warmed", "count", n)
	} else {
		r.logger.Debug("country list refreshed", "count", n)
	}
}

func (r *Refresher) sleep(ctx context.Context, d time.Duration) bool {
	timer := r.clock.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.Chan():
		return true
	}
}

func (r *Refresher) observe(outcome string, elapsed time.Duration) {
	if r.observer != nil {
		r.observer.ObserveRefresh(outcome, elapsed)
	}
}

func (r *Refresher) setRunning(running bool) {
	if r.observer != nil {
		r.observer.SetRefresherRunning(running)
	}
}
