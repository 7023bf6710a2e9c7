package controller

import (
	"fmt"
	"time"

	"webpconv/internal/processor"
)

// SettleDelay is how long the box must stay unchanged before a resize
// triggers a new preview.
const SettleDelay = 50 * time.Millisecond

// Reduce applies ev to s. It performs no I/O; everything with a side effect
// is returned as an Effect for the caller to run.
func Reduce(s State, ev Event) (State, []Effect) {
	var fx []Effect

	switch ev := ev.(type) {
	case FilesSelected:
		if len(ev.Paths) == 0 {
			return s, nil
		}
		s.Selection.Paths = append([]string(nil), ev.Paths...)
		s.Selection.Current = 0
		s.Selection.OutputDir = processor.DefaultOutputDir(ev.Paths)
		fx = notify(&s, fx, LevelInfo, fmt.Sprintf("%d files selected. Output folder: %s", len(ev.Paths), s.Selection.OutputDir))
		fx = appendPreview(s, fx)

	case OutputDirSelected:
		if ev.Dir == "" {
			return s, nil
		}
		s.Selection.OutputDir = ev.Dir
		fx = notify(&s, fx, LevelInfo, "Output folder: "+ev.Dir)

	case NextFile:
		if n := len(s.Selection.Paths); n > 1 {
			s.Selection.Current = (s.Selection.Current + 1) % n
			fx = appendPreview(s, fx)
		}

	case PrevFile:
		if n := len(s.Selection.Paths); n > 1 {
			s.Selection.Current = (s.Selection.Current - 1 + n) % n
			fx = appendPreview(s, fx)
		}

	case FrameToggled:
		s.Options.Frame.Enabled = !s.Options.Frame.Enabled
		fx = appendPreview(s, fx)

	case FrameColorSelected:
		if ev.Hex == "" {
			return s, nil
		}
		if _, err := processor.ParseColor(ev.Hex); err != nil {
			fx = notify(&s, fx, LevelError, err.Error())
			return s, fx
		}
		s.Options.Frame.Color = ev.Hex
		if s.Options.Frame.Enabled {
			fx = appendPreview(s, fx)
		}

	case FrameThicknessEdited:
		s.ThicknessInput = ev.Raw
		v, err := processor.ParseThickness(ev.Raw)
		if err == nil && v < 0 {
			err = fmt.Errorf("frame thickness must be a non-negative integer, got %d", v)
		}
		if err != nil {
			fx = notify(&s, fx, LevelError, err.Error())
			return s, fx
		}
		s.Options.Frame.Thickness = v
		if s.Options.Frame.Enabled {
			fx = appendPreview(s, fx)
		}

	case RenameModeToggled:
		if s.Options.RenameMode == processor.KeepOriginal {
			s.Options.RenameMode = processor.PrefixIndex
		} else {
			s.Options.RenameMode = processor.KeepOriginal
		}

	case PrefixEdited:
		s.Options.Prefix = ev.Prefix

	case Resized:
		if ev.Width == s.Box.Width && ev.Height == s.Box.Height {
			return s, nil
		}
		s.Box = Box{Width: ev.Width, Height: ev.Height}
		s.resizeSeq++
		fx = append(fx, ScheduleSettle{Seq: s.resizeSeq, After: SettleDelay})

	case ResizeSettled:
		if ev.Seq == s.resizeSeq {
			fx = appendPreview(s, fx)
		}

	case ConvertRequested:
		if s.Converting {
			fx = notify(&s, fx, LevelWarn, "A conversion is already running.")
			return s, fx
		}
		opts := s.Options
		v, err := processor.FrameThickness(s.ThicknessInput, opts.Frame.Enabled)
		if err != nil {
			fx = notify(&s, fx, LevelError, err.Error())
			return s, fx
		}
		opts.Frame.Thickness = v

		s.Converting = true
		s.Completed = 0
		s.Total = len(s.Selection.Paths)
		fx = append(fx, StartBatch{
			Paths:     append([]string(nil), s.Selection.Paths...),
			OutputDir: s.Selection.OutputDir,
			Options:   opts,
		})

	case BatchProgressed:
		if ev.Update.Completed > s.Completed {
			s.Completed = ev.Update.Completed
		}
		s.Total = ev.Update.Total

	case BatchFinished:
		run := ev.Run
		s.Converting = false
		s.LastRun = &run
		s.Total = run.Total
		s.Completed = run.Total
		level := LevelInfo
		if run.Failed() > 0 {
			level = LevelWarn
		}
		fx = notify(&s, fx, level, fmt.Sprintf("Conversion finished: %d succeeded, %d failed.\n%s", run.Succeeded(), run.Failed(), run.SummaryText()))

	case BatchRejected:
		s.Converting = false
		s.Completed = 0
		s.Total = 0
		fx = notify(&s, fx, LevelError, ev.Err.Error())

	case PreviewFailed:
		fx = notify(&s, fx, LevelError, fmt.Sprintf("Preview of %s failed: %v", ev.Path, ev.Err))
	}

	return s, fx
}

func appendPreview(s State, fx []Effect) []Effect {
	if s.Box.Width <= 0 || s.Box.Height <= 0 {
		return fx
	}
	return append(fx, RenderPreview{
		Path:   s.Selection.CurrentPath(),
		Frame:  s.Options.Frame,
		Width:  s.Box.Width,
		Height: s.Box.Height,
	})
}

func notify(s *State, fx []Effect, level Level, text string) []Effect {
	n := Notify{Level: level, Text: text}
	s.Status = n
	return append(fx, n)
}
