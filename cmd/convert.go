package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"webpconv/internal/logging"
	"webpconv/internal/processor"
	"webpconv/internal/tui"
)

var (
	convertFlags batchFlags
	convertNoTUI bool
)

var convertCmd = &cobra.Command{
	Use:   "convert [flags] <file|dir>...",
	Short: "Convert images to WebP",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := convertFlags.options()
		if err != nil {
			return err
		}

		paths, err := processor.CollectInputs(args, convertFlags.output)
		if err != nil {
			return err
		}
		outputDir := convertFlags.output
		if outputDir == "" {
			outputDir = processor.DefaultOutputDir(paths)
		}
		if err := processor.Validate(paths, outputDir, opts); err != nil {
			return err
		}

		useTUI := !convertNoTUI
		log, err := newLogger(useTUI)
		if err != nil {
			return err
		}
		defer log.Close()

		log.Debug("starting batch", "files", len(paths), "output", outputDir, "rename", opts.RenameMode, "frame", opts.Frame.Border())
		for _, c := range processor.Collisions(processor.NewJobs(paths, outputDir, opts)) {
			log.Warn("output name shared by several inputs; last one wins", "name", c.OutputName, "inputs", c.Inputs)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		// The progress view reads ctrl+c as a key press, not a signal.
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		updates := make(chan processor.ProgressUpdate, 64)
		uiDone := make(chan struct{})
		if useTUI {
			program := tea.NewProgram(tui.NewModel(updates, len(paths), cancel))
			go func() {
				_, _ = program.Run()
				close(uiDone)
			}()
		} else {
			go func() {
				logProgress(log, updates)
				close(uiDone)
			}()
		}

		run, err := processor.Run(ctx, paths, outputDir, opts, updates)
		close(updates)
		<-uiDone
		if err != nil {
			return err
		}
		log.Info("batch finished", "id", run.ID, "ok", run.Succeeded(), "failed", run.Failed(), "elapsed", run.Elapsed())

		outPath := outputDir
		if abs, absErr := filepath.Abs(outputDir); absErr == nil {
			outPath = abs
		}
		rows := []tui.SummaryRow{
			{Label: "Batch", Value: run.ID},
			{Label: "Files", Value: fmt.Sprintf("%d", run.Total)},
			{Label: "Converted", Value: fmt.Sprintf("%d", run.Succeeded())},
			{Label: "Failed", Value: fmt.Sprintf("%d", run.Failed())},
			{Label: "Elapsed", Value: run.Elapsed().String()},
			{Label: "Output folder", Value: outPath},
		}
		fmt.Fprintln(os.Stdout, tui.RenderSummary(rows))
		fmt.Fprintln(os.Stdout, tui.RenderResultLines(run.Summary(processor.SummaryLimit)))

		return batchError(run)
	},
}

// batchError turns per-file failures into the command's non-zero exit.
func batchError(run processor.BatchRun) error {
	if n := run.Failed(); n > 0 {
		return fmt.Errorf("%d of %d files failed", n, run.Total)
	}
	return nil
}

func logProgress(log *logging.Logger, updates <-chan processor.ProgressUpdate) {
	for u := range updates {
		if u.Result.OK() {
			log.Debug("converted", "done", fmt.Sprintf("%d/%d", u.Completed, u.Total), "output", u.Result.OutputPath)
			continue
		}
		log.Error("failed", "done", fmt.Sprintf("%d/%d", u.Completed, u.Total), "input", u.Result.InputPath, "err", u.Result.Err)
	}
}

var errorStyle = lipgloss.NewStyle().Bold(true).Foreground(tui.ColorError)

func init() {
	convertFlags.register(convertCmd)
	convertCmd.Flags().BoolVar(&convertNoTUI, "no-tui", false, "log progress instead of drawing a progress bar")

	rootCmd.AddCommand(convertCmd)
}
