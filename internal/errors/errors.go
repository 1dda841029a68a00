package errors

import (
	stderrors "errors"
	"fmt"
)

// Code classifies a pipeline failure for top-level reporting.
type Code string

const (
	CodeInputNotFound   Code = "INPUT_NOT_FOUND"
	CodeParse           Code = "PARSE_ERROR"
	CodeEmptyDataset    Code = "EMPTY_DATASET"
	CodeWritePermission Code = "WRITE_PERMISSION"
	CodeTransform       Code = "TRANSFORM_ERROR"
	CodeConfig          Code = "CONFIG_ERROR"
)

// PipelineError is the error type surfaced by every stage of the
// preprocessing run. Stage names the failing stage so the process exit
// message can identify it without unwrapping.
type PipelineError struct {
	Code    Code
	Stage   string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *PipelineError) Error() string {
	if e == nil {
		return "unknown pipeline error"
	}
	if e.Stage != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Code, e.Stage, e.Message)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause, if any.
func (e *PipelineError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// New creates a PipelineError without an underlying cause.
func New(code Code, stage, message string) *PipelineError {
	return &PipelineError{Code: code, Stage: stage, Message: message}
}

// Newf creates a PipelineError with a formatted message.
func Newf(code Code, stage, format string, args ...interface{}) *PipelineError {
	return &PipelineError{Code: code, Stage: stage, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates a PipelineError that wraps cause.
func Wrap(code Code, stage, message string, cause error) *PipelineError {
	return &PipelineError{Code: code, Stage: stage, Message: message, Cause: cause}
}

// CodeOf extracts the pipeline error code from err, walking the wrap
// chain. Returns the empty code for non-pipeline errors.
func CodeOf(err error) Code {
	var pe *PipelineError
	if stderrors.As(err, &pe) {
		return pe.Code
	}
	return ""
}

// StageOf extracts the failing stage name from err, walking the wrap
// chain. Returns "" for non-pipeline errors.
func StageOf(err error) string {
	var pe *PipelineError
	if stderrors.As(err, &pe) {
		return pe.Stage
	}
	return ""
}

// IsCode reports whether err carries the given pipeline error code.
func IsCode(err error, code Code) bool {
	return CodeOf(err) == code
}
