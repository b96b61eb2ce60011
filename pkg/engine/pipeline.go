package engine

import (
	"errors"
	"fmt"
)

// State tracks where a Pipeline is in its lifecycle.
type State uint8

const (
	StateEmpty State = iota
	StateConfigured
	StateExecuting
	StateExecuted
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateConfigured:
		return "configured"
	case StateExecuting:
		return "executing"
	case StateExecuted:
		return "executed"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// Pipeline is an ordered, replayable sequence of operations over an immutable
// input image. Operations run strictly in insertion order; there is no
// reordering or deduplication. A Pipeline instance is not safe for concurrent
// use; independent instances share nothing and need no locking between them.
type Pipeline struct {
	name      string
	ops       []Operation
	snapshots []Image
	captured  bool
	state     State
}

// NewPipeline returns an empty pipeline with the given display name.
func NewPipeline(name string) *Pipeline {
	return &Pipeline{name: name}
}

func (p *Pipeline) Name() string { return p.name }

func (p *Pipeline) State() State { return p.state }

// Len returns the number of operations.
func (p *Pipeline) Len() int { return len(p.ops) }

// AddOperation appends a named operation. The params map is copied, so later
// mutation of the caller's map does not affect the stored operation. Adding
// after an execution returns the pipeline to the configured state (previous
// results are stale once the operation list changes).
func (p *Pipeline) AddOperation(name string, fn TransformFunc, params Params) error {
	return p.InsertOperation(len(p.ops), name, fn, params)
}

// InsertOperation inserts an operation at index, shifting later operations
// up. index may equal Len (append).
func (p *Pipeline) InsertOperation(index int, name string, fn TransformFunc, params Params) error {
	if p.state == StateExecuting {
		return ErrExecuting
	}
	if index < 0 || index > len(p.ops) {
		return fmt.Errorf("insert at %d with %d operations: %w", index, len(p.ops), ErrIndexOutOfRange)
	}
	if fn == nil {
		return fmt.Errorf("operation %q has no transform function", name)
	}
	cp, err := copyParams(params)
	if err != nil {
		var perr *ParameterError
		if errors.As(err, &perr) {
			perr.Op = name
		}
		return err
	}
	op := Operation{name: name, fn: fn, params: cp}
	p.ops = append(p.ops, Operation{})
	copy(p.ops[index+1:], p.ops[index:])
	p.ops[index] = op
	p.state = StateConfigured
	return nil
}

// RemoveOperation removes the operation at index.
func (p *Pipeline) RemoveOperation(index int) error {
	if p.state == StateExecuting {
		return ErrExecuting
	}
	if index < 0 || index >= len(p.ops) {
		return fmt.Errorf("remove at %d with %d operations: %w", index, len(p.ops), ErrIndexOutOfRange)
	}
	p.ops = append(p.ops[:index], p.ops[index+1:]...)
	if len(p.ops) == 0 {
		p.state = StateEmpty
	} else {
		p.state = StateConfigured
	}
	return nil
}

// Clear removes every operation and captured snapshot, returning the
// pipeline to its initial empty state.
func (p *Pipeline) Clear() error {
	if p.state == StateExecuting {
		return ErrExecuting
	}
	p.ops = nil
	p.snapshots = nil
	p.captured = false
	p.state = StateEmpty
	return nil
}

// Operations returns the (name, params) view of the operation list, in
// execution order. The returned slice and maps are copies.
func (p *Pipeline) Operations() []OperationInfo {
	out := make([]OperationInfo, len(p.ops))
	for i, op := range p.ops {
		out[i] = OperationInfo{Name: op.name, Params: op.Params()}
	}
	return out
}

// Execute applies every operation in order, starting from input. When
// captureSnapshots is true, the result of operation i is kept as snapshot i
// (0-based, aligned with the operation list). Any snapshots from a previous
// run are discarded when a new run starts.
//
// On a transform failure Execute returns an *OperationError carrying the
// failing step's index and name; snapshots captured before that step remain
// valid and retrievable, and no snapshot exists for the failing step or any
// step after it. An empty pipeline returns the input unchanged.
func (p *Pipeline) Execute(input Image, captureSnapshots bool) (Image, error) {
	if p.state == StateExecuting {
		return Image{}, ErrExecuting
	}
	p.snapshots = nil
	p.captured = captureSnapshots
	if len(p.ops) == 0 {
		return input, nil
	}
	if input.Empty() {
		return Image{}, fmt.Errorf("pipeline %q: empty input image", p.name)
	}

	p.state = StateExecuting
	cur := input.nrgba
	for i, op := range p.ops {
		next, err := op.fn(cur, op.params)
		if err != nil {
			p.state = StateFailed
			return Image{}, &OperationError{Index: i, Name: op.name, Err: err}
		}
		if next == nil {
			p.state = StateFailed
			return Image{}, &OperationError{Index: i, Name: op.name, Err: errors.New("transform returned no image")}
		}
		cur = next
		if captureSnapshots {
			p.snapshots = append(p.snapshots, own(cur))
		}
	}
	p.state = StateExecuted
	return own(cur), nil
}

// ExecuteRange applies ops[start:end) to input without touching the
// pipeline's state or snapshots. It exists for previews: applying a prefix
// or a middle slice of the pipeline cheaply.
func (p *Pipeline) ExecuteRange(input Image, start, end int) (Image, error) {
	if start < 0 || end > len(p.ops) || start > end {
		return Image{}, fmt.Errorf("range [%d:%d) with %d operations: %w", start, end, len(p.ops), ErrIndexOutOfRange)
	}
	if start == end {
		return input, nil
	}
	if input.Empty() {
		return Image{}, fmt.Errorf("pipeline %q: empty input image", p.name)
	}
	cur := input.nrgba
	for i := start; i < end; i++ {
		op := p.ops[i]
		next, err := op.fn(cur, op.params)
		if err != nil {
			return Image{}, &OperationError{Index: i, Name: op.name, Err: err}
		}
		if next == nil {
			return Image{}, &OperationError{Index: i, Name: op.name, Err: errors.New("transform returned no image")}
		}
		cur = next
	}
	return own(cur), nil
}

// Snapshot returns the image captured after operation index during the most
// recent capturing Execute. It fails with ErrIndexOutOfRange when the index
// is outside [0, SnapshotCount()) or when no capturing execution happened.
func (p *Pipeline) Snapshot(index int) (Image, error) {
	if !p.captured {
		return Image{}, fmt.Errorf("no snapshots captured: %w", ErrIndexOutOfRange)
	}
	if index < 0 || index >= len(p.snapshots) {
		return Image{}, fmt.Errorf("snapshot %d with %d captured: %w", index, len(p.snapshots), ErrIndexOutOfRange)
	}
	return p.snapshots[index], nil
}

// SnapshotCount returns the number of snapshots held from the most recent
// capturing Execute. After a failed run this is the number of steps that
// completed before the failure.
func (p *Pipeline) SnapshotCount() int { return len(p.snapshots) }
