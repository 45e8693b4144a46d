package kv

import "fmt"

// StoreError is returned when a store operation still fails after all retries.
// It wraps the error of the last attempt.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
