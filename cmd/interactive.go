package cmd

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"webpconv/internal/processor"
	"webpconv/internal/tui"
)

var interactiveFlags batchFlags

var interactiveCmd = &cobra.Command{
	Use:     "interactive [flags] [file|dir]...",
	Aliases: []string{"ui"},
	Short:   "Browse, preview and convert images in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := interactiveFlags.options()
		if err != nil {
			return err
		}
		paths, err := processor.CollectInputs(args, interactiveFlags.output)
		if err != nil {
			return err
		}

		log, err := newLogger(true)
		if err != nil {
			return err
		}
		defer log.Close()

		app := tui.NewApp(context.Background(), paths, interactiveFlags.output, opts, log)
		if _, err := tea.NewProgram(app, tea.WithAltScreen()).Run(); err != nil {
			return err
		}

		if run := app.State().LastRun; run != nil {
			fmt.Fprintf(os.Stdout, "Last batch %s: %d converted, %d failed\n", run.ID, run.Succeeded(), run.Failed())
			fmt.Fprintln(os.Stdout, tui.RenderResultLines(run.Summary(processor.SummaryLimit)))
		}
		return nil
	},
}

func init() {
	interactiveFlags.register(interactiveCmd)

	rootCmd.AddCommand(interactiveCmd)
}
