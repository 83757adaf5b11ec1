package vecscan

import (
	"errors"

	"github.com/hupe1980/vecscan/core"
)

var (
	// ErrInvalidArgument is the class of all caller errors.
	ErrInvalidArgument = core.ErrInvalidArgument

	// ErrDataFormat is returned for malformed distance files.
	ErrDataFormat = core.ErrDataFormat

	// ErrUnsupported is returned when the chosen engine cannot serve the
	// relation or the distance function.
	ErrUnsupported = core.ErrUnsupported

	// ErrInvalidEngine is returned for an unknown Engine value.
	ErrInvalidEngine = errors.New("invalid engine")
)

type (
	// ArgumentError reports an invalid parameter value.
	ArgumentError = core.ArgumentError

	// DimensionMismatchError indicates a query of the wrong dimensionality.
	DimensionMismatchError = core.DimensionMismatchError

	// DataFormatError reports a malformed line of a distance file.
	DataFormatError = core.DataFormatError
)
