package domain

import (
	"fmt"
	"strings"
)

// Pipeline identifies which configure listing flow is running
type Pipeline int

const (
	PipelineStandard Pipeline = iota // <script> -L, returns "board:conf"
	PipelineCustom                   // <script> -l, returns "BOARDCONFIG=board:conf"
)

// ResultPrefix is prepended to the custom pipeline's result
const ResultPrefix = "BOARDCONFIG="

func (p Pipeline) String() string {
	switch p {
	case PipelineStandard:
		return "standard"
	case PipelineCustom:
		return "custom"
	default:
		return "unknown"
	}
}

// ListFlag returns the flag passed to the listing script
func (p Pipeline) ListFlag() string {
	if p == PipelineCustom {
		return "-l"
	}
	return "-L"
}

// LoadingMessage is shown while the listing script runs
func (p Pipeline) LoadingMessage() string {
	if p == PipelineCustom {
		return "Listing custom configurations..."
	}
	return "Listing configurations..."
}

// FormatResult builds the value handed back to the caller for a chosen candidate
func (p Pipeline) FormatResult(c Candidate) string {
	if p == PipelineCustom {
		return ResultPrefix + string(c)
	}
	return string(c)
}

// ParsePipeline converts a pipeline name back to a Pipeline
func ParsePipeline(s string) (Pipeline, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "standard", "std":
		return PipelineStandard, nil
	case "custom":
		return PipelineCustom, nil
	default:
		return PipelineStandard, fmt.Errorf("unknown pipeline: %s (expected standard or custom)", s)
	}
}

// Stage is a step of a configure run. Runs only move forward.
type Stage int

const (
	StageIdle Stage = iota
	StageResolving
	StageListing
	StageSelecting
	StagePathResolving
	StageDone
)

func (s Stage) String() string {
	switch s {
	case StageIdle:
		return "idle"
	case StageResolving:
		return "resolving"
	case StageListing:
		return "listing"
	case StageSelecting:
		return "selecting"
	case StagePathResolving:
		return "path-resolving"
	case StageDone:
		return "done"
	default:
		return "unknown"
	}
}
