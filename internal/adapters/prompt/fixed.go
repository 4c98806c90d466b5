package prompt

import (
	"context"
	"strings"
)

// Fixed implements ports.Prompter with a choice made up front, for
// non-interactive callers. Choose reports no selection when the choice is
// not among the offered items.
type Fixed struct {
	choice string
}

// NewFixed creates a prompter that always picks choice
func NewFixed(choice string) *Fixed {
	return &Fixed{choice: strings.TrimSpace(choice)}
}

// Choose returns the preset choice if it was offered
func (f *Fixed) Choose(ctx context.Context, _ string, items []string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	for _, item := range items {
		if item == f.choice {
			return item, true, nil
		}
	}
	return "", false, nil
}
