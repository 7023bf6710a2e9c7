package processor

import (
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"

	"github.com/kolesa-team/go-webp/encoder"
	"github.com/kolesa-team/go-webp/webp"
)

// Transform converts a single job. It never panics and never returns a bare
// error: every failure is folded into the returned Result.
func Transform(job Job) (res Result) {
	res = Result{InputPath: job.InputPath, Index: job.Index}
	defer func() {
		if r := recover(); r != nil {
			res.OutputPath = ""
			res.Err = fmt.Errorf("unexpected error: %v", r)
		}
	}()

	img, err := Compose(job.InputPath, job.Options.Frame, job.Options.AutoOrient)
	if err != nil {
		res.Err = err
		return res
	}

	destPath := filepath.Join(job.OutputDir, OutputName(job))
	if err := writeWebP(img, destPath); err != nil {
		res.Err = err
		return res
	}

	res.OutputPath = destPath
	return res
}

func encodeWebP(w io.Writer, img image.Image) error {
	opts, err := encoder.NewLossyEncoderOptions(encoder.PresetDefault, DefaultQuality)
	if err != nil {
		return err
	}
	if err := webp.Encode(w, img, opts); err != nil {
		return fmt.Errorf("encode webp: %w", err)
	}
	return nil
}

// writeWebP encodes into a temp file next to destPath and renames it into
// place, so a failed encode never leaves a truncated output behind.
func writeWebP(img image.Image, destPath string) error {
	destDir := filepath.Dir(destPath)
	tmpFile, err := os.CreateTemp(destDir, ".webpconv-*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmpFile.Name())

	if err := encodeWebP(tmpFile, img); err != nil {
		_ = tmpFile.Close()
		return err
	}
	if err := tmpFile.Chmod(0o644); err != nil {
		_ = tmpFile.Close()
		return err
	}
	if err := tmpFile.Sync(); err != nil {
		_ = tmpFile.Close()
		return err
	}
	if err := tmpFile.Close(); err != nil {
		return err
	}

	return replaceFile(tmpFile.Name(), destPath)
}

func replaceFile(tmpPath, destPath string) error {
	if err := os.Rename(tmpPath, destPath); err == nil {
		return nil
	}
	if err := os.Remove(destPath); err != nil && !os.IsNotExist(err) {
		return err
	}
	return os.Rename(tmpPath, destPath)
}
