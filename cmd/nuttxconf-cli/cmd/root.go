package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"nuttxconf/internal/bootstrap"
	"nuttxconf/internal/config"
)

var (
	opts bootstrap.Options
	env  *bootstrap.Env
)

var rootCmd = &cobra.Command{
	Use:   "nuttxconf-cli",
	Short: "Pick a NuttX board configuration",
	Long: `nuttxconf-cli lists the board configurations of a NuttX tree, lets you
choose one and opens its defconfig.

The standard pipeline runs tools/configure.sh -L and prints board:conf.
The custom pipeline runs the custom listing script with -l and prints
BOARDCONFIG=board:conf.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		var err error
		env, err = bootstrap.Load(opts)
		return err
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if env == nil {
			return nil
		}
		return env.Close()
	},
}

// Execute runs the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if env != nil {
			env.Close()
		}
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&opts.Workspace, "workspace", "w", "", "NuttX source root (default: $NUTTXCONF_WORKSPACE or discovered from the current directory)")
	rootCmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "settings file (default: $NUTTXCONF_CONFIG or <workspace>/"+config.DefaultSettingsFile+")")
	rootCmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().BoolVar(&opts.NoHistory, "no-history", false, "do not read or record history")
}

// GetEnv returns the initialized environment
func GetEnv() *bootstrap.Env {
	return env
}
