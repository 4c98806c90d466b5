package mcp

import (
	"nuttxconf/internal/application/commands"
)

// Service carries what the tools need to run configure pipelines
type Service struct {
	Deps  commands.Deps
	Guard *commands.RunGuard

	// Options returns the run options; it is called per request so settings
	// reloads take effect without restarting the server
	Options func() commands.Options
}

func (s *Service) options() commands.Options {
	if s.Options == nil {
		return commands.Options{}
	}
	return s.Options()
}
