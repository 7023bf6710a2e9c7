package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"webpconv/internal/logging"
)

var (
	verbose bool
	logFile string
)

var rootCmd = &cobra.Command{
	Use:   "webpconv",
	Short: "webpconv - frame and batch-convert images to WebP",
	Long:  "webpconv converts JPEG, PNG, BMP and TIFF images to WebP in parallel, optionally adding a solid-color frame and renaming the outputs.",

	SilenceErrors: true,
	SilenceUsage:  true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("error:"), err)
		os.Exit(1)
	}
}

// newLogger builds the command logger. busy is true while a bubbletea
// program owns the terminal.
func newLogger(busy bool) (*logging.Logger, error) {
	return logging.New(logging.Config{
		Verbose:      verbose,
		File:         logFile,
		TerminalBusy: busy,
	})
}

func init() {
	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log every file as it completes")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "also write logs to this file")
}
