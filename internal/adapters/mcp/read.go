package mcp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"nuttxconf/internal/application/commands"
	"nuttxconf/internal/domain"
)

// RegisterReadTools adds the tools that do not touch the workspace
func RegisterReadTools(s *server.MCPServer, svc *Service) {
	s.AddTool(listTool(), listHandler(svc))
	s.AddTool(historyTool(), historyHandler(svc))
}

func pipelineOption() mcp.ToolOption {
	return mcp.WithString("pipeline",
		mcp.Description("Which listing to use: standard (configure.sh -L) or custom (custom script -l). Defaults to standard."),
		mcp.Enum("standard", "custom"),
	)
}

// --- list_configurations ---

func listTool() mcp.Tool {
	return mcp.NewTool("list_configurations",
		mcp.WithDescription("List the board:conf configurations reported by the workspace's configure script."),
		pipelineOption(),
	)
}

func listHandler(svc *Service) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		pipeline, err := domain.ParsePipeline(req.GetString("pipeline", ""))
		if err != nil {
			return toolError(err)
		}

		opts := svc.options()
		cmd := commands.NewListCandidatesCommand(svc.Deps, pipeline)
		cmd.Timeout = opts.ListTimeout
		cmd.KeepBlankLines = opts.KeepBlankLines

		candidates, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return formatEntities(candidates, func(c domain.Candidate) string { return string(c) })
	}
}

// --- recent_configurations ---

func historyTool() mcp.Tool {
	return mcp.NewTool("recent_configurations",
		mcp.WithDescription("Show the most recently chosen configurations for this workspace, newest first."),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of entries (default 10)"),
		),
	)
}

func historyHandler(svc *Service) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if svc.Deps.History == nil {
			return toolError(fmt.Errorf("history is not available"))
		}

		limit := req.GetInt("limit", 10)
		entries, err := svc.Deps.History.Recent(ctx, limit)
		if err != nil {
			return toolError(err)
		}
		return formatEntities(entries, formatHistoryEntry)
	}
}

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

func formatEntities[T any](entities []T, format func(T) string) (*mcp.CallToolResult, error) {
	if len(entities) == 0 {
		return mcp.NewToolResultText("No results."), nil
	}
	var sb strings.Builder
	for _, e := range entities {
		sb.WriteString(format(e))
		sb.WriteByte('\n')
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func formatHistoryEntry(e domain.HistoryEntry) string {
	return fmt.Sprintf("%s  %-8s  %s  %s",
		e.CreatedAt.Format(time.DateTime), e.Pipeline, e.Result, e.Path)
}
