package mapedit

import (
	"errors"
	"fmt"
)

// ErrGPUUnavailable is returned by render paths when no GPU context is bound
// or a shader program could not be built. The frame is skipped.
var ErrGPUUnavailable = errors.New("mapedit: gpu context unavailable")

// ValidationError reports user input that was rejected before any state
// changed, such as a non-numeric map width.
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("mapedit: invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

// IOError reports a failed read, write or rename of a map file.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("mapedit: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// NotFoundError reports an index or name that does not refer to anything,
// such as removing a layer that does not exist.
type NotFoundError struct {
	Kind  string
	Index int
	Name  string
}

func (e *NotFoundError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("mapedit: %s %q not found", e.Kind, e.Name)
	}
	return fmt.Sprintf("mapedit: %s index %d out of range", e.Kind, e.Index)
}
