package sqlite

import (
	"context"
	"database/sql"

	"nuttxconf/internal/domain"
)

// historyTx groups the writes of a single Record call
type historyTx struct {
	tx *sql.Tx
}

func (h *History) beginTx(ctx context.Context) (*historyTx, error) {
	tx, err := h.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &historyTx{tx: tx}, nil
}

// Insert adds an entry and returns its id
func (t *historyTx) Insert(ctx context.Context, e *domain.HistoryEntry) (int64, error) {
	res, err := t.tx.ExecContext(ctx, `
		INSERT INTO history (run_id, pipeline, candidate, result, path, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, e.RunID, e.Pipeline.String(), string(e.Candidate), e.Result, e.Path, e.CreatedAt.UnixMilli())
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// Prune deletes everything but the newest keep entries
func (t *historyTx) Prune(ctx context.Context, keep int) error {
	_, err := t.tx.ExecContext(ctx, `
		DELETE FROM history
		WHERE id NOT IN (
			SELECT id FROM history ORDER BY created_at DESC, id DESC LIMIT ?
		)
	`, keep)
	return err
}

// Commit commits the transaction
func (t *historyTx) Commit() error {
	return t.tx.Commit()
}

// Rollback aborts the transaction
func (t *historyTx) Rollback() error {
	return t.tx.Rollback()
}
