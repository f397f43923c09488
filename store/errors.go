package store

import (
	"errors"
	"fmt"
)

// ErrorKind labels the failure classes surfaced by the catalog engine.
type ErrorKind string

const (
	InvalidArgument ErrorKind = "INVALID_ARGUMENT"
	NullInput       ErrorKind = "NULL_INPUT"
	NotInStock      ErrorKind = "NOT_IN_STOCK"
	Duplicate       ErrorKind = "DUPLICATE"
	OutOfStock      ErrorKind = "OUT_OF_STOCK"
	Unsupported     ErrorKind = "UNSUPPORTED"
)

// BookStoreError is the result value returned by every failing operation.
// Validation errors are raised before any state change; OutOfStock is the
// only kind with a side effect (sale-miss accounting).
type BookStoreError struct {
	Kind    ErrorKind
	Message string
}

func (e *BookStoreError) Error() string {
	return string(e.Kind) + ": " + e.Message
}

func Errorf(kind ErrorKind, format string, a ...interface{}) *BookStoreError {
	return &BookStoreError{Kind: kind, Message: fmt.Sprintf(format, a...)}
}

// KindOf extracts the error kind, or "" for a nil or foreign error.
func KindOf(err error) ErrorKind {
	var e *BookStoreError
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
