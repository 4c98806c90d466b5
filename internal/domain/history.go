package domain

import "time"

// HistoryEntry records a completed configure run
type HistoryEntry struct {
	ID        int64
	RunID     string    // Correlates with log lines of the run
	Pipeline  Pipeline  // Standard or custom
	Candidate Candidate // The "board:conf" pair chosen
	Result    string    // Value returned to the caller
	Path      string    // Resolved defconfig path
	CreatedAt time.Time
}

// Board returns the board half of the recorded candidate
func (h HistoryEntry) Board() string {
	board, _, _ := h.Candidate.Split()
	return board
}
