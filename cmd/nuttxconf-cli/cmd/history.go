package cmd

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recently chosen configurations",
	Long: `Show the configurations chosen in this workspace, newest first.

Example:
  nuttxconf-cli history --limit 5`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e := GetEnv()
		if e.History == nil {
			return errors.New("history is not available for this workspace")
		}

		entries, err := e.History.Recent(cmd.Context(), historyLimit)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Fprintln(os.Stderr, "No history yet.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		for _, h := range entries {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				h.CreatedAt.Local().Format(time.DateTime), h.Pipeline, h.Result, h.Path)
		}
		return w.Flush()
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "maximum number of entries (0 for all)")
	rootCmd.AddCommand(historyCmd)
}
