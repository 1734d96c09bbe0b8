package backprop

import (
	"fmt"

	"github.com/pkg/errors"
)

// Error is a wrapper for specific types of errors for which there is no additional information
// necessary. These errors are defined as global variables.
type Error struct{ string }

func (err Error) Error() string {
	return err.string
}

// These are the global errors that may be returned or panicked.
var (
	ErrNoLayers    = Error{"Network has no layers"}
	ErrEmptyData   = Error{"PatternSource has no patterns"}
	ErrRunning     = Error{"Trainer is already executing"}
	ErrBadRate     = Error{"Learning rate must be positive and finite"}
	ErrBadDecrease = Error{"Decrease factor must be in (0, 1]"}
)

// NilArgError documents errors resulting from certain arguments provided to a function being nil.
type NilArgError struct{ string }

func (err NilArgError) Error() string {
	return err.string + " is nil"
}

// SizeMismatchError is returned whenever a vector given to the Network does not have the length
// the Network expects. What names the vector: "inputs", "errors" or "weights".
type SizeMismatchError struct {
	Expected, Got int
	What          string
}

func (err SizeMismatchError) Error() string {
	return fmt.Sprintf("Size mismatch for %s: expected %d, got %d", err.What, err.Expected, err.Got)
}

// OutOfRangeError is returned when a layer is requested by an index outside of [0, Len).
type OutOfRangeError struct {
	Index, Len int
}

func (err OutOfRangeError) Error() string {
	return fmt.Sprintf("Layer index %d out of range [0, %d)", err.Index, err.Len)
}

// TopologyError is returned when a layer cannot be added to the Network in the requested way.
type TopologyError struct{ string }

func (err TopologyError) Error() string {
	return "Invalid topology: " + err.string
}

// IsSizeMismatch reports whether the cause of err is a SizeMismatchError.
func IsSizeMismatch(err error) bool {
	_, ok := errors.Cause(err).(SizeMismatchError)
	return ok
}

// IsOutOfRange reports whether the cause of err is an OutOfRangeError.
func IsOutOfRange(err error) bool {
	_, ok := errors.Cause(err).(OutOfRangeError)
	return ok
}

// IsInvalidTopology reports whether the cause of err is a TopologyError.
func IsInvalidTopology(err error) bool {
	_, ok := errors.Cause(err).(TopologyError)
	return ok
}
