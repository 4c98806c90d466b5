package commands

import (
	"context"
	"strings"

	"nuttxconf/internal/application"
	"nuttxconf/internal/domain"
	"nuttxconf/internal/ports"
)

// ResolveScriptResult contains the anchored listing script for a run
type ResolveScriptResult struct {
	Root    string
	Script  string // template with the root substituted verbatim
	Command string // template with the root substituted as a quoted shell word
}

// ResolveScriptCommand expands the configured listing script template
// against the active workspace root
type ResolveScriptCommand struct {
	settings  ports.SettingsSource
	workspace ports.WorkspaceProvider
	Pipeline  domain.Pipeline
}

// NewResolveScriptCommand creates a new ResolveScriptCommand
func NewResolveScriptCommand(settings ports.SettingsSource, workspace ports.WorkspaceProvider, pipeline domain.Pipeline) *ResolveScriptCommand {
	return &ResolveScriptCommand{
		settings:  settings,
		workspace: workspace,
		Pipeline:  pipeline,
	}
}

func (c *ResolveScriptCommand) template() string {
	if c.Pipeline == domain.PipelineCustom {
		return c.settings.CustomConfigureScriptPath()
	}
	return c.settings.ConfigureScriptPath()
}

// Execute runs the resolve script command
func (c *ResolveScriptCommand) Execute(ctx context.Context) (*ResolveScriptResult, error) {
	root := ""
	if c.workspace != nil {
		root = strings.TrimSpace(c.workspace.Root())
	}
	if root == "" {
		return nil, application.ErrNoWorkspace
	}

	tmpl := c.template()
	if err := application.ValidateRequired("scriptPath", tmpl); err != nil {
		return nil, err
	}

	return &ResolveScriptResult{
		Root:    root,
		Script:  domain.ExpandScriptPath(tmpl, root),
		Command: domain.ExpandScriptCommand(tmpl, root),
	}, nil
}
