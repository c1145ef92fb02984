package scaffold

import (
	"errors"
	"fmt"
)

var (
	ErrRootUnwritable = errors.New("scaffold root is not writable")
	ErrPathConflict   = errors.New("path occupied by a file")
	ErrNameInvalid    = errors.New("invalid category name")
)

// Error describes a per-path scaffold failure.
type Error struct {
	Op   string // "mkdir", "stat", "preflight"
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("scaffold %s [%s]: %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("scaffold %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newScaffoldError(op, path string, err error) *Error {
	return &Error{Op: op, Path: path, Err: err}
}
