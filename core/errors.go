package core

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is the class of all caller errors: non-positive k or
	// minPts, dimensionality mismatches, malformed parameters.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrDataFormat is the class of errors raised while parsing external data.
	ErrDataFormat = errors.New("data format error")

	// ErrUnsupported is returned when a component lacks a required capability,
	// e.g. a distance function without a box bound used with the spatial index.
	ErrUnsupported = errors.New("unsupported")
)

// ArgumentError reports an invalid parameter value.
type ArgumentError struct {
	Name   string
	Value  any
	Reason string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("invalid argument %s=%v: %s", e.Name, e.Value, e.Reason)
}

// Is makes ArgumentError match ErrInvalidArgument.
func (e *ArgumentError) Is(target error) bool { return target == ErrInvalidArgument }

// NewArgumentError returns an ArgumentError for the named parameter.
func NewArgumentError(name string, value any, reason string) error {
	return &ArgumentError{Name: name, Value: value, Reason: reason}
}

// DimensionMismatchError indicates operands or queries of different dimensionality.
type DimensionMismatchError struct {
	Expected int // Expected dimensions
	Actual   int // Actual dimensions
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
}

// Is makes DimensionMismatchError match ErrInvalidArgument.
func (e *DimensionMismatchError) Is(target error) bool { return target == ErrInvalidArgument }

// DataFormatError reports a malformed line of an external input.
// Line is 1-based; zero means the error is not tied to a single line.
type DataFormatError struct {
	Line   int
	Reason string
	cause  error
}

// NewDataFormatError returns a DataFormatError for the given line.
func NewDataFormatError(line int, reason string, cause error) error {
	return &DataFormatError{Line: line, Reason: reason, cause: cause}
}

func (e *DataFormatError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("data format error in line %d: %s", e.Line, e.Reason)
	}
	return fmt.Sprintf("data format error: %s", e.Reason)
}

// Is makes DataFormatError match ErrDataFormat.
func (e *DataFormatError) Is(target error) bool { return target == ErrDataFormat }

func (e *DataFormatError) Unwrap() error { return e.cause }
