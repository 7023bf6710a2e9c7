package processor

import (
	"errors"
	"fmt"
)

const (
	// ErrCodeNoFiles means the batch was started with an empty selection.
	ErrCodeNoFiles = "no_files_selected"
	// ErrCodeNoOutputDir means the output directory is unset or unusable.
	ErrCodeNoOutputDir = "no_output_directory"
	// ErrCodeInvalidInput covers bad option values (thickness, color, prefix, mode).
	ErrCodeInvalidInput = "invalid_input"
)

// PreconditionError is returned by Validate and Run before any job starts.
type PreconditionError struct {
	Code string
	Err  error
}

func (e *PreconditionError) Error() string {
	switch e.Code {
	case ErrCodeNoFiles:
		return "no files selected"
	case ErrCodeNoOutputDir:
		if e.Err != nil {
			return fmt.Sprintf("no output directory: %v", e.Err)
		}
		return "no output directory"
	default:
		if e.Err != nil {
			return fmt.Sprintf("invalid input: %v", e.Err)
		}
		return "invalid input"
	}
}

func (e *PreconditionError) Unwrap() error { return e.Err }

// Code extracts the precondition code from err, or "" if err is not one.
func Code(err error) string {
	var e *PreconditionError
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

func invalidInput(err error) error {
	return &PreconditionError{Code: ErrCodeInvalidInput, Err: err}
}
