package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"nuttxconf/internal/adapters/prompt"
	"nuttxconf/internal/application/commands"
	"nuttxconf/internal/domain"
)

// RegisterWriteTools adds the tools that run a full configure pipeline
func RegisterWriteTools(s *server.MCPServer, svc *Service) {
	s.AddTool(resolveTool(), resolveHandler(svc))
}

// --- resolve_configuration ---

func resolveTool() mcp.Tool {
	return mcp.NewTool("resolve_configuration",
		mcp.WithDescription("Run the configure pipeline non-interactively for one configuration and return its defconfig path. The configuration must be one the listing script reports."),
		mcp.WithString("configuration",
			mcp.Description("Configuration in board:conf form (e.g. nucleo-f4x1re:nsh)"),
			mcp.Required(),
		),
		pipelineOption(),
	)
}

func resolveHandler(svc *Service) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		configuration := req.GetString("configuration", "")
		if configuration == "" {
			return toolError(fmt.Errorf("configuration is required"))
		}
		pipeline, err := domain.ParsePipeline(req.GetString("pipeline", ""))
		if err != nil {
			return toolError(err)
		}

		deps := svc.Deps
		deps.Prompter = prompt.NewFixed(configuration)
		// Nobody is at a terminal to look at the file
		deps.Opener = nil
		deps.Status = nil

		opts := svc.options()
		opts.LoadingDelay = 0
		opts.AwaitOpen = false

		res, err := commands.NewConfigureCommand(deps, svc.Guard, pipeline, opts).Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		return mcp.NewToolResultText(fmt.Sprintf("%s\nConfiguring for %s\n", res.Result, res.Path)), nil
	}
}
