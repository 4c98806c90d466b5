package commands

import (
	"context"
	"fmt"

	"nuttxconf/internal/application"
	"nuttxconf/internal/domain"
	"nuttxconf/internal/ports"
)

// SelectTitle is the prompt title shown for the configuration list
const SelectTitle = "Choose configuration"

// SelectResult contains the chosen configuration
type SelectResult struct {
	Candidate domain.Candidate
	Offered   []domain.Candidate
}

// SelectConfigurationCommand offers the listed configurations for a single choice
type SelectConfigurationCommand struct {
	prompter       ports.Prompter
	Raw            string
	KeepBlankLines bool
}

// NewSelectConfigurationCommand creates a new SelectConfigurationCommand
func NewSelectConfigurationCommand(prompter ports.Prompter, raw string) *SelectConfigurationCommand {
	return &SelectConfigurationCommand{
		prompter: prompter,
		Raw:      raw,
	}
}

// Candidates returns the candidates that will be offered, in listing order
func (c *SelectConfigurationCommand) Candidates() []domain.Candidate {
	if c.KeepBlankLines {
		return domain.ParseListingRaw(c.Raw)
	}
	return domain.ParseListing(c.Raw)
}

// Execute runs the select configuration command
func (c *SelectConfigurationCommand) Execute(ctx context.Context) (*SelectResult, error) {
	candidates := c.Candidates()

	choice, ok, err := c.prompter.Choose(ctx, SelectTitle, domain.CandidateStrings(candidates))
	if err != nil {
		return nil, fmt.Errorf("prompt failed: %w", err)
	}
	if !ok {
		return nil, application.ErrSelectionCancelled
	}

	return &SelectResult{
		Candidate: domain.Candidate(choice),
		Offered:   candidates,
	}, nil
}
