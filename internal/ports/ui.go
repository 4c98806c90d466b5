package ports

import "context"

// Prompter asks the user to pick exactly one of items.
// ok is false when the prompt was dismissed without a choice.
type Prompter interface {
	Choose(ctx context.Context, title string, items []string) (choice string, ok bool, err error)
}

// StatusReporter shows progress of a configure run
type StatusReporter interface {
	ShowLoading(message string)
	// HideLoading ends the loading step; err is its outcome, nil on success
	HideLoading(err error)
	// Writeln emits a human-readable status line
	Writeln(line string)
}
