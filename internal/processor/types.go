package processor

import (
	"fmt"
	"time"
)

type RenameMode int

const (
	KeepOriginal RenameMode = iota
	PrefixIndex
)

func (m RenameMode) String() string {
	switch m {
	case PrefixIndex:
		return "prefix"
	default:
		return "original"
	}
}

// ParseRenameMode accepts the flag spellings "original" and "prefix".
func ParseRenameMode(s string) (RenameMode, error) {
	switch s {
	case "", "original":
		return KeepOriginal, nil
	case "prefix", "custom":
		return PrefixIndex, nil
	default:
		return KeepOriginal, invalidInput(fmt.Errorf("unknown rename mode %q (want original or prefix)", s))
	}
}

const (
	DefaultPrefix         = "image"
	DefaultFrameColor     = "#000000"
	DefaultFrameThickness = 20
	DefaultQuality        = 80

	// TargetExtension is the extension of every file Transform writes.
	TargetExtension = ".webp"
)

type Frame struct {
	Enabled   bool
	Color     string
	Thickness int
}

// Border returns the effective border width in pixels.
func (f Frame) Border() int {
	if !f.Enabled || f.Thickness < 0 {
		return 0
	}
	return f.Thickness
}

type Options struct {
	RenameMode RenameMode
	Prefix     string
	Frame      Frame
	AutoOrient bool
	// Workers caps the pool size; zero means runtime.NumCPU().
	Workers int
}

func DefaultOptions() Options {
	return Options{
		RenameMode: KeepOriginal,
		Prefix:     DefaultPrefix,
		Frame: Frame{
			Color:     DefaultFrameColor,
			Thickness: DefaultFrameThickness,
		},
	}
}

type Job struct {
	InputPath string
	OutputDir string
	Index     int
	Options   Options
}

type Result struct {
	InputPath  string
	OutputPath string
	Index      int
	Err        error
}

func (r Result) OK() bool { return r.Err == nil }

// Message is the one-line human form used in summaries.
func (r Result) Message() string {
	if r.Err != nil {
		return fmt.Sprintf("Failed: %s - %v", r.InputPath, r.Err)
	}
	return fmt.Sprintf("Done: %s", r.OutputPath)
}

type ProgressUpdate struct {
	Completed int
	Total     int
	Result    Result
}

func (u ProgressUpdate) Percent() float64 {
	if u.Total <= 0 {
		return 0
	}
	return float64(u.Completed) / float64(u.Total) * 100
}

type BatchRun struct {
	ID        string
	OutputDir string
	Total     int
	Completed int
	Results   []Result
	Started   time.Time
	Finished  time.Time
}

func (b BatchRun) Succeeded() int {
	n := 0
	for _, r := range b.Results {
		if r.OK() {
			n++
		}
	}
	return n
}

func (b BatchRun) Failed() int {
	return len(b.Results) - b.Succeeded()
}

func (b BatchRun) Elapsed() time.Duration {
	if b.Finished.IsZero() {
		return 0
	}
	return b.Finished.Sub(b.Started)
}
