package application

import "nuttxconf/internal/domain"

// Re-export domain types for use by adapters
type (
	Pipeline     = domain.Pipeline
	Stage        = domain.Stage
	Candidate    = domain.Candidate
	HistoryEntry = domain.HistoryEntry
)

const (
	PipelineStandard = domain.PipelineStandard
	PipelineCustom   = domain.PipelineCustom
)

// ParsePipeline converts a pipeline name to a Pipeline
func ParsePipeline(name string) (Pipeline, error) {
	return domain.ParsePipeline(name)
}
