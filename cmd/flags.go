package cmd

import (
	"github.com/spf13/cobra"

	"webpconv/internal/processor"
)

type frameFlags struct {
	enabled    bool
	color      string
	thickness  string
	autoOrient bool
}

func (f *frameFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.enabled, "frame", false, "add a solid-color border around each image")
	cmd.Flags().StringVar(&f.color, "frame-color", processor.DefaultFrameColor, "frame color as #rrggbb")
	cmd.Flags().StringVar(&f.thickness, "frame-thickness", "20", "frame width in pixels")
	cmd.Flags().BoolVar(&f.autoOrient, "auto-orient", false, "rotate images according to their EXIF orientation")
}

func (f *frameFlags) apply(opts *processor.Options) error {
	thickness, err := processor.FrameThickness(f.thickness, f.enabled)
	if err != nil {
		return err
	}
	opts.Frame = processor.Frame{Enabled: f.enabled, Color: f.color, Thickness: thickness}
	opts.AutoOrient = f.autoOrient
	return nil
}

type batchFlags struct {
	frameFlags
	output  string
	rename  string
	prefix  string
	workers int
}

func (f *batchFlags) register(cmd *cobra.Command) {
	f.frameFlags.register(cmd)
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "destination folder (default: folder of the first input)")
	cmd.Flags().StringVar(&f.rename, "rename", "original", "output naming: original or prefix")
	cmd.Flags().StringVar(&f.prefix, "prefix", processor.DefaultPrefix, "name prefix used with --rename prefix")
	cmd.Flags().IntVar(&f.workers, "workers", 0, "number of parallel workers (default: number of CPUs)")
}

// options turns the flag values into batch options. Values are parsed here
// and validated by the processor before any job runs.
func (f *batchFlags) options() (processor.Options, error) {
	opts := processor.DefaultOptions()
	mode, err := processor.ParseRenameMode(f.rename)
	if err != nil {
		return opts, err
	}
	opts.RenameMode = mode
	opts.Prefix = f.prefix
	opts.Workers = f.workers
	if err := f.apply(&opts); err != nil {
		return opts, err
	}
	return opts, nil
}
