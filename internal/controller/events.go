package controller

import (
	"time"

	"webpconv/internal/processor"
)

// Event is something the user or the pipeline did.
type Event interface{ isEvent() }

type FilesSelected struct{ Paths []string }
type OutputDirSelected struct{ Dir string }
type NextFile struct{}
type PrevFile struct{}
type FrameToggled struct{}
type FrameColorSelected struct{ Hex string }
type FrameThicknessEdited struct{ Raw string }
type RenameModeToggled struct{}
type PrefixEdited struct{ Prefix string }
type Resized struct{ Width, Height int }
type ResizeSettled struct{ Seq int }
type ConvertRequested struct{}
type BatchProgressed struct{ Update processor.ProgressUpdate }
type BatchFinished struct{ Run processor.BatchRun }
type BatchRejected struct{ Err error }
type PreviewFailed struct {
	Path string
	Err  error
}

func (FilesSelected) isEvent()        {}
func (OutputDirSelected) isEvent()    {}
func (NextFile) isEvent()             {}
func (PrevFile) isEvent()             {}
func (FrameToggled) isEvent()         {}
func (FrameColorSelected) isEvent()   {}
func (FrameThicknessEdited) isEvent() {}
func (RenameModeToggled) isEvent()    {}
func (PrefixEdited) isEvent()         {}
func (Resized) isEvent()              {}
func (ResizeSettled) isEvent()        {}
func (ConvertRequested) isEvent()     {}
func (BatchProgressed) isEvent()      {}
func (BatchFinished) isEvent()        {}
func (BatchRejected) isEvent()        {}
func (PreviewFailed) isEvent()        {}

// Effect is work the front end performs on behalf of Reduce.
type Effect interface{ isEffect() }

type RenderPreview struct {
	Path   string
	Frame  processor.Frame
	Width  int
	Height int
}

// ScheduleSettle asks for a ResizeSettled{Seq} event after the delay.
type ScheduleSettle struct {
	Seq   int
	After time.Duration
}

type StartBatch struct {
	Paths     []string
	OutputDir string
	Options   processor.Options
}

type Level int

const (
	LevelInfo Level = iota
	LevelWarn
	LevelError
)

type Notify struct {
	Level Level
	Text  string
}

func (RenderPreview) isEffect()  {}
func (ScheduleSettle) isEffect() {}
func (StartBatch) isEffect()     {}
func (Notify) isEffect()         {}
