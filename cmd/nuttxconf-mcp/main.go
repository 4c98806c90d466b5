package main

import (
	"context"
	"flag"
	"log"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	mcpadapter "nuttxconf/internal/adapters/mcp"
	"nuttxconf/internal/bootstrap"
)

func main() {
	var opts bootstrap.Options
	flag.StringVar(&opts.Workspace, "workspace", "", "NuttX source root")
	flag.StringVar(&opts.ConfigPath, "config", "", "settings file")
	flag.BoolVar(&opts.Verbose, "verbose", false, "debug logging")
	flag.Parse()

	// stdout carries the protocol; zap logs to stderr
	env, err := bootstrap.Load(opts)
	if err != nil {
		log.Fatalf("nuttxconf-mcp: %v", err)
	}
	defer env.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	env.WatchSettings(ctx)

	mcpServer := server.NewMCPServer(
		"nuttxconf-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check, returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	svc := &mcpadapter.Service{
		Deps:    env.Deps(),
		Guard:   env.Guard,
		Options: env.RunOptions,
	}
	mcpadapter.RegisterReadTools(mcpServer, svc)
	mcpadapter.RegisterWriteTools(mcpServer, svc)

	if err := server.ServeStdio(mcpServer); err != nil {
		log.Printf("nuttxconf-mcp: %v", err)
	}
}
