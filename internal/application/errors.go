package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"nuttxconf/internal/domain"
)

// Sentinel errors for common conditions
var (
	ErrNoWorkspace        = errors.New("no workspace open")
	ErrListingUnavailable = errors.New("configurations list unavailable")
	ErrSelectionCancelled = errors.New("No configuration selected.")
	ErrPathAmbiguous      = errors.New("configuration path not uniquely resolved")
	ErrInvalidCandidate   = errors.New("invalid configuration")
	ErrBusy               = errors.New("a configure run is already in progress")
)

// ListingUnavailableError reports a listing script that could not produce a list
type ListingUnavailableError struct {
	Script string
	Flag   string
	Stderr string
	Cause  error
}

func (e *ListingUnavailableError) Error() string {
	var b strings.Builder
	b.WriteString("could not get NuttX configurations list: ")
	switch {
	case errors.Is(e.Cause, context.DeadlineExceeded):
		b.WriteString("the listing script timed out")
	case errors.Is(e.Cause, context.Canceled):
		b.WriteString("listing interrupted")
	default:
		b.WriteString("is the workspace opened on the NuttX root?")
	}
	fmt.Fprintf(&b, " (%s %s", e.Script, e.Flag)
	if e.Cause != nil {
		fmt.Fprintf(&b, ": %v", e.Cause)
	}
	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		fmt.Fprintf(&b, ": %s", stderr)
	}
	b.WriteString(")")
	return b.String()
}

func (e *ListingUnavailableError) Is(target error) bool {
	return target == ErrListingUnavailable
}

func (e *ListingUnavailableError) Unwrap() error {
	return e.Cause
}

// PathResolutionAmbiguousError reports a directory search with zero or several matches
type PathResolutionAmbiguousError struct {
	Pattern string
	Matches []string
}

func (e *PathResolutionAmbiguousError) Error() string {
	if len(e.Matches) == 0 {
		return fmt.Sprintf("no configuration directory matches %s", e.Pattern)
	}
	return fmt.Sprintf("%d configuration directories match %s: %s",
		len(e.Matches), e.Pattern, strings.Join(e.Matches, ", "))
}

func (e *PathResolutionAmbiguousError) Is(target error) bool {
	return target == ErrPathAmbiguous
}

// InvalidCandidateError reports a selection that is not a "board:conf" pair
type InvalidCandidateError struct {
	Candidate string
}

func (e *InvalidCandidateError) Error() string {
	return fmt.Sprintf("invalid configuration %q: expected board:conf", e.Candidate)
}

func (e *InvalidCandidateError) Is(target error) bool {
	return target == ErrInvalidCandidate
}

// StageError records the stage a configure run failed in
type StageError struct {
	Pipeline domain.Pipeline
	Stage    domain.Stage
	Err      error
}

func (e *StageError) Error() string {
	return e.Err.Error()
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// FailedStage returns the stage recorded in err, or StageIdle if none
func FailedStage(err error) domain.Stage {
	var stageErr *StageError
	if errors.As(err, &stageErr) {
		return stageErr.Stage
	}
	return domain.StageIdle
}
