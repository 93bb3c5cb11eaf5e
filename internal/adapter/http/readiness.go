package http

import (
	"context"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
)

// Readiness reports ready only when every dependency does, such as the
// country refresher and a redis cache.
type Readiness struct {
	deps []sharedobs.ReadinessChecker
}

// NewReadiness creates a readiness gate over deps.
func NewReadiness(deps ...sharedobs.ReadinessChecker) *Readiness {
	return &Readiness{deps: deps}
}

// CheckReadiness implements sharedobs.ReadinessChecker.
func (r *Readiness) CheckReadiness(ctx context.Context) error {
	for _, d := range r.deps {
		if err := d.CheckReadiness(ctx); err != nil {
			return err
		}
	}
	return nil
}
