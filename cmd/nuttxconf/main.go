package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"nuttxconf/internal/adapters/editor"
	"nuttxconf/internal/adapters/tui"
	"nuttxconf/internal/bootstrap"
	"nuttxconf/internal/config"
	"nuttxconf/internal/domain"
)

// loadingDelay keeps the spinner on screen long enough to be seen
const loadingDelay = 200 * time.Millisecond

func parseOptions(args []string) (bootstrap.Options, domain.Pipeline, error) {
	opts := bootstrap.Options{DefaultLoadingDelay: loadingDelay}

	fs := flag.NewFlagSet("nuttxconf", flag.ContinueOnError)
	custom := fs.Bool("custom", false, "start with the custom listing script (-l)")
	fs.StringVar(&opts.Workspace, "workspace", "", "NuttX source root")
	fs.StringVar(&opts.ConfigPath, "config", "", "settings file")
	fs.BoolVar(&opts.Verbose, "verbose", false, "debug logging")
	if err := fs.Parse(args); err != nil {
		return opts, domain.PipelineStandard, err
	}

	// The full-screen UI owns the terminal, so logs go to a file
	opts.LogFile = config.StateLogPath()

	if *custom {
		return opts, domain.PipelineCustom, nil
	}
	return opts, domain.PipelineStandard, nil
}

func main() {
	opts, pipeline, err := parseOptions(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		os.Exit(2)
	}

	env, err := bootstrap.Load(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	env.WatchSettings(ctx)

	result, err := tui.Run(tui.Config{
		Deps:     env.Deps(),
		Guard:    env.Guard,
		Pipeline: pipeline,
		Options:  env.RunOptions,
		Editor: editor.NewOpener(editor.WithEditorFunc(func() string {
			return env.Settings.Current().Editor
		})),
	})
	cancel()
	env.Close()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if result != "" {
		fmt.Println(result)
	}
}
