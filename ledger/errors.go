package ledger

import (
	"errors"
	"fmt"
)

var ErrNotOpen = errors.New("ledger not open")

// Error describes a ledger operation failure.
type Error struct {
	Op     string // "open", "seen", "record", "prune"
	Source string
	Err    error
}

func (e *Error) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("ledger %s [%s]: %v", e.Op, e.Source, e.Err)
	}
	return fmt.Sprintf("ledger %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newLedgerError(op, source string, err error) *Error {
	return &Error{Op: op, Source: source, Err: err}
}
