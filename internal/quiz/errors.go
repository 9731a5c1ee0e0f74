package quiz

import (
	"errors"
	"fmt"
)

// ErrUnknownItem means an enabled setting references an id the dataset does
// not contain. The settings store is inconsistent and no session is started.
var ErrUnknownItem = errors.New("enabled setting references unknown item")

// UnknownItemError carries the offending id.
type UnknownItemError struct {
	ID string
}

func (e *UnknownItemError) Error() string {
	return fmt.Sprintf("%v: %q", ErrUnknownItem, e.ID)
}

func (e *UnknownItemError) Unwrap() error { return ErrUnknownItem }
