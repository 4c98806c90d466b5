package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"nuttxconf/internal/adapters/console"
	"nuttxconf/internal/application/commands"
)

var listCustom bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the configurations reported by the listing script",
	Long: `Run the listing script and print one configuration per line.

Examples:
  nuttxconf-cli list
  nuttxconf-cli list --custom`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e := GetEnv()
		deps := e.Deps()
		deps.Status = console.NewReporter(os.Stderr)

		opts := e.RunOptions()
		listCmd := commands.NewListCandidatesCommand(deps, pipelineFor(listCustom))
		listCmd.Timeout = opts.ListTimeout
		listCmd.KeepBlankLines = opts.KeepBlankLines

		candidates, err := listCmd.Execute(cmd.Context())
		if err != nil {
			return err
		}

		for _, c := range candidates {
			fmt.Println(c)
		}
		return nil
	},
}

func init() {
	listCmd.Flags().BoolVar(&listCustom, "custom", false, "use the custom listing script (-l)")
	rootCmd.AddCommand(listCmd)
}
