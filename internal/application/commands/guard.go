package commands

import (
	"golang.org/x/sync/semaphore"

	"nuttxconf/internal/domain"
)

// RunGuard allows at most one in-flight configure run per pipeline
type RunGuard struct {
	standard *semaphore.Weighted
	custom   *semaphore.Weighted
}

// NewRunGuard creates a new RunGuard
func NewRunGuard() *RunGuard {
	return &RunGuard{
		standard: semaphore.NewWeighted(1),
		custom:   semaphore.NewWeighted(1),
	}
}

// TryAcquire claims the pipeline without waiting.
// ok is false when a run of the same pipeline is already in progress.
func (g *RunGuard) TryAcquire(p domain.Pipeline) (release func(), ok bool) {
	sem := g.standard
	if p == domain.PipelineCustom {
		sem = g.custom
	}
	if !sem.TryAcquire(1) {
		return nil, false
	}
	return func() { sem.Release(1) }, true
}
