package processor

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ParseThickness parses a frame thickness as typed by the user. A value that
// is not an integer is an invalid_input precondition error; negative values
// parse and are rejected later by Validate.
func ParseThickness(raw string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, invalidInput(fmt.Errorf("frame thickness must be a non-negative integer, got %q", raw))
	}
	return v, nil
}

// FrameThickness resolves the thickness text for a frame that may be off.
// Text that is not an integer only matters when the frame is enabled;
// otherwise it reads as 0. A negative integer is returned either way so
// Validate can reject it.
func FrameThickness(raw string, enabled bool) (int, error) {
	v, err := ParseThickness(raw)
	if err != nil && !enabled {
		return 0, nil
	}
	return v, err
}

// ParseColor accepts "#rrggbb" or "#rgb".
func ParseColor(hex string) (color.NRGBA, error) {
	c, err := colorful.Hex(strings.TrimSpace(hex))
	if err != nil {
		return color.NRGBA{}, invalidInput(fmt.Errorf("frame color %q is not a hex RGB color", hex))
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}, nil
}

// ValidateOptions checks option invariants that do not depend on the file system.
func ValidateOptions(opts Options) error {
	if opts.Frame.Thickness < 0 {
		return invalidInput(fmt.Errorf("frame thickness must be a non-negative integer, got %d", opts.Frame.Thickness))
	}
	if opts.Frame.Enabled {
		if _, err := ParseColor(opts.Frame.Color); err != nil {
			return err
		}
	}
	if opts.RenameMode == PrefixIndex && strings.TrimSpace(opts.Prefix) == "" {
		return invalidInput(errors.New("prefix is required when renaming with prefix and index"))
	}
	if opts.Workers < 0 {
		return invalidInput(fmt.Errorf("workers must not be negative, got %d", opts.Workers))
	}
	return nil
}

// Validate runs every pre-flight check of a batch. It writes nothing except a
// short-lived probe file used to prove outputDir is writable.
func Validate(paths []string, outputDir string, opts Options) error {
	if len(paths) == 0 {
		return &PreconditionError{Code: ErrCodeNoFiles}
	}
	if err := checkOutputDir(outputDir); err != nil {
		return err
	}
	return ValidateOptions(opts)
}

func checkOutputDir(dir string) error {
	if strings.TrimSpace(dir) == "" {
		return &PreconditionError{Code: ErrCodeNoOutputDir}
	}
	info, err := os.Stat(dir)
	if err != nil {
		return &PreconditionError{Code: ErrCodeNoOutputDir, Err: err}
	}
	if !info.IsDir() {
		return &PreconditionError{Code: ErrCodeNoOutputDir, Err: fmt.Errorf("%s is not a directory", dir)}
	}

	probe, err := os.CreateTemp(dir, ".webpconv-probe-*")
	if err != nil {
		return &PreconditionError{Code: ErrCodeNoOutputDir, Err: fmt.Errorf("%s is not writable: %w", dir, err)}
	}
	name := probe.Name()
	_ = probe.Close()
	_ = os.Remove(name)
	return nil
}
