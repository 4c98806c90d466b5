package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"nuttxconf/internal/adapters/console"
	"nuttxconf/internal/adapters/prompt"
	"nuttxconf/internal/application/commands"
)

var resolveFlags runFlags

var resolveCmd = &cobra.Command{
	Use:   "resolve <board:conf>",
	Short: "Resolve a configuration without prompting",
	Long: `Run the pipeline with a preset choice. The configuration must be one the
listing script reports. The defconfig is not opened unless --editor or
--desktop is given.

Examples:
  nuttxconf-cli resolve sim:nsh
  nuttxconf-cli resolve nucleo-f4x1re:nsh --custom --copy`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e := GetEnv()
		pipeline := pipelineFor(resolveFlags.custom)

		deps := e.Deps()
		deps.Prompter = prompt.NewFixed(args[0])
		deps.Status = console.NewReporter(os.Stderr)
		if resolveFlags.desktop || resolveFlags.editor != "" {
			deps.Opener = openerFor(resolveFlags, "")
		}

		opts := e.RunOptions()
		opts.LoadingDelay = 0
		opts.AwaitOpen = true

		res, err := commands.NewConfigureCommand(deps, e.Guard, pipeline, opts).Execute(cmd.Context())
		if err != nil {
			return err
		}
		return printResult(res.Result, resolveFlags.copy)
	},
}

func init() {
	addRunFlags(resolveCmd, &resolveFlags, true)
	rootCmd.AddCommand(resolveCmd)
}
