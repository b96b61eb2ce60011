package engine

import (
	"errors"
	"fmt"
)

// Sentinel errors for category checks with errors.Is.
var (
	// ErrNotFound reports a lookup by name or id that matched nothing
	// (layer ids, registered operation names, style names).
	ErrNotFound = errors.New("not found")

	// ErrIndexOutOfRange reports a snapshot, operation, or layer index
	// outside the valid range.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrExecuting reports a pipeline mutation attempted while an execution
	// is in flight (for example from inside a transform).
	ErrExecuting = errors.New("pipeline is executing")
)

// ParameterError reports an invalid or out-of-range parameter handed to a
// transform. Op is the operation name when known.
type ParameterError struct {
	Op     string
	Key    string
	Value  any
	Reason string
}

func (e *ParameterError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("%s: invalid parameter %q=%v: %s", e.Op, e.Key, e.Value, e.Reason)
	}
	return fmt.Sprintf("invalid parameter %q=%v: %s", e.Key, e.Value, e.Reason)
}

// OperationError wraps a transform failure with the failing step's index and
// name so a caller can tell which step of a pipeline went wrong.
type OperationError struct {
	Index int
	Name  string
	Err   error
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("operation %d (%s): %v", e.Index, e.Name, e.Err)
}

func (e *OperationError) Unwrap() error { return e.Err }

// DimensionMismatchError reports a visible layer whose size differs from the
// stack's base image during flatten. The compositor never resizes; that
// decision belongs to the caller.
type DimensionMismatchError struct {
	LayerID        string
	BaseW, BaseH   int
	LayerW, LayerH int
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("layer %s is %dx%d, base is %dx%d", e.LayerID, e.LayerW, e.LayerH, e.BaseW, e.BaseH)
}
