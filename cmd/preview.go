package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/spf13/cobra"

	"webpconv/internal/preview"
	"webpconv/internal/processor"
)

var (
	previewFlags  frameFlags
	previewOutput string
	previewWidth  int
	previewHeight int
)

var previewCmd = &cobra.Command{
	Use:   "preview [flags] <file>",
	Short: "Render the framed preview of one image to a PNG",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		input := args[0]
		opts := processor.DefaultOptions()
		if err := previewFlags.apply(&opts); err != nil {
			return err
		}
		if err := processor.ValidateOptions(opts); err != nil {
			return err
		}

		log, err := newLogger(false)
		if err != nil {
			return err
		}
		defer log.Close()

		out := previewOutput
		if out == "" {
			stem := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
			out = stem + "_preview.png"
		}

		renderer := preview.NewRenderer(-1)
		renderer.AutoOrient = opts.AutoOrient
		img, err := renderer.Render(input, opts.Frame, previewWidth, previewHeight)
		if err != nil {
			return err
		}
		if err := imaging.Save(img, out); err != nil {
			return fmt.Errorf("write preview: %w", err)
		}
		log.Debug("preview written", "input", input, "box", fmt.Sprintf("%dx%d", previewWidth, previewHeight), "frame", opts.Frame.Border())

		fmt.Fprintf(os.Stdout, "Preview written to: %s\n", out)
		return nil
	},
}

func init() {
	previewFlags.register(previewCmd)
	previewCmd.Flags().StringVarP(&previewOutput, "output", "o", "", "PNG file to write (default: <name>_preview.png)")
	previewCmd.Flags().IntVar(&previewWidth, "width", preview.DefaultBox, "preview box width in pixels")
	previewCmd.Flags().IntVar(&previewHeight, "height", preview.DefaultBox, "preview box height in pixels")

	rootCmd.AddCommand(previewCmd)
}
