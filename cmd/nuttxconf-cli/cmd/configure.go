package cmd

import (
	"fmt"
	"os"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"nuttxconf/internal/adapters/console"
	"nuttxconf/internal/adapters/desktop"
	"nuttxconf/internal/adapters/editor"
	"nuttxconf/internal/adapters/tui"
	"nuttxconf/internal/application/commands"
	"nuttxconf/internal/domain"
	"nuttxconf/internal/ports"
)

type runFlags struct {
	custom  bool
	copy    bool
	noOpen  bool
	desktop bool
	editor  string
}

var configureFlags runFlags

var configureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Choose a configuration and open its defconfig",
	Long: `Run the listing script, pick a configuration interactively and open
the matching defconfig.

Examples:
  nuttxconf-cli configure
  nuttxconf-cli configure --custom --copy
  nuttxconf-cli configure --desktop`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigure(cmd, pipelineFor(configureFlags.custom), configureFlags)
	},
}

var customFlags runFlags

var customCmd = &cobra.Command{
	Use:   "custom",
	Short: "Choose a custom configuration (BOARDCONFIG=board:conf)",
	Long: `Same as configure --custom: runs the custom listing script with -l and
prints BOARDCONFIG=board:conf.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigure(cmd, domain.PipelineCustom, customFlags)
	},
}

func pipelineFor(custom bool) domain.Pipeline {
	if custom {
		return domain.PipelineCustom
	}
	return domain.PipelineStandard
}

func runConfigure(cmd *cobra.Command, pipeline domain.Pipeline, flags runFlags) error {
	e := GetEnv()

	deps := e.Deps()
	deps.Prompter = tui.NewPicker(
		tui.WithIO(os.Stdin, os.Stderr),
		tui.WithHistory(deps.History, pipeline),
	)
	deps.Status = console.NewReporter(os.Stderr)
	deps.Opener = openerFor(flags, e.Settings.Current().Editor)

	opts := e.RunOptions()
	// The process exits right after the run, so wait for the opener
	opts.AwaitOpen = true

	res, err := commands.NewConfigureCommand(deps, e.Guard, pipeline, opts).Execute(cmd.Context())
	if err != nil {
		return err
	}
	return printResult(res.Result, flags.copy)
}

func openerFor(flags runFlags, configured string) ports.DocumentOpener {
	switch {
	case flags.noOpen:
		return nil
	case flags.desktop:
		return desktop.NewOpener()
	case flags.editor != "":
		return editor.NewOpener(editor.WithEditor(flags.editor))
	default:
		return editor.NewOpener(editor.WithEditor(configured))
	}
}

func printResult(result string, copyIt bool) error {
	fmt.Println(result)
	if copyIt {
		if err := clipboard.WriteAll(result); err != nil {
			return fmt.Errorf("failed to copy result: %w", err)
		}
		fmt.Fprintln(os.Stderr, "Copied to clipboard")
	}
	return nil
}

func addRunFlags(c *cobra.Command, f *runFlags, withCustom bool) {
	if withCustom {
		c.Flags().BoolVar(&f.custom, "custom", false, "use the custom listing script (-l)")
	}
	c.Flags().BoolVar(&f.copy, "copy", false, "copy the result to the clipboard")
	c.Flags().BoolVar(&f.noOpen, "no-open", false, "do not open the defconfig")
	c.Flags().BoolVar(&f.desktop, "desktop", false, "open the defconfig with the desktop's default application")
	c.Flags().StringVar(&f.editor, "editor", "", "editor command (overrides settings, $EDITOR and $VISUAL)")
	c.MarkFlagsMutuallyExclusive("no-open", "desktop", "editor")
}

func init() {
	addRunFlags(configureCmd, &configureFlags, true)
	addRunFlags(customCmd, &customFlags, false)
	rootCmd.AddCommand(configureCmd)
	rootCmd.AddCommand(customCmd)
}
