// Package controller holds the interactive session state and the pure
// transition function that maps UI events to a new state plus the side
// effects the front end has to perform.
package controller

import (
	"strconv"

	"webpconv/internal/processor"
)

type Selection struct {
	Paths     []string
	Current   int
	OutputDir string
}

// CurrentPath returns the path shown in the preview, or "" when nothing is selected.
func (s Selection) CurrentPath() string {
	if s.Current < 0 || s.Current >= len(s.Paths) {
		return ""
	}
	return s.Paths[s.Current]
}

type Box struct {
	Width  int
	Height int
}

type State struct {
	Selection Selection
	Options   processor.Options
	// ThicknessInput is the thickness exactly as typed; Options.Frame.Thickness
	// only follows it while it parses.
	ThicknessInput string
	Box            Box

	Converting bool
	Completed  int
	Total      int
	LastRun    *processor.BatchRun
	Status     Notify

	resizeSeq int
}

func NewState(opts processor.Options) State {
	return State{
		Options:        opts,
		ThicknessInput: strconv.Itoa(opts.Frame.Thickness),
	}
}

// Percent is the batch progress in [0, 100].
func (s State) Percent() float64 {
	if s.Total <= 0 {
		return 0
	}
	return float64(s.Completed) / float64(s.Total) * 100
}
