package ports

import (
	"context"

	"nuttxconf/internal/domain"
)

// HistoryStore persists completed configure runs for a workspace
type HistoryStore interface {
	// Lifecycle
	Open(workspaceRoot string) error
	Close() error

	Record(ctx context.Context, entry *domain.HistoryEntry) error
	Recent(ctx context.Context, limit int) ([]domain.HistoryEntry, error)

	// LastUsed returns, per candidate chosen in pipeline, the unix millisecond
	// timestamp of its latest run
	LastUsed(ctx context.Context, pipeline domain.Pipeline) (map[domain.Candidate]int64, error)
}
