package engine

import (
	"errors"
	"fmt"
)

// Sentinel errors for errors.Is classification.
var (
	ErrUnknownQuery = errors.New("unknown query")
	ErrNoShop       = errors.New("no shop loaded")
	ErrInvalidSpec  = errors.New("invalid query spec")
)

// QueryError wraps a failure with the operation and query that caused it.
type QueryError struct {
	Op    string
	Query string
	Err   error
}

func (e *QueryError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Query != "" {
		return fmt.Sprintf("%s [%s]: %v", e.Op, e.Query, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *QueryError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func newQueryError(op, query string, err error) *QueryError {
	return &QueryError{Op: op, Query: query, Err: err}
}
