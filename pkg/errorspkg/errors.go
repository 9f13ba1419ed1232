// Package errorspkg provides common app errors.
package errorspkg

import "errors"

// ErrInternal indicates an unexpected storage or I/O failure. The enclosing
// unit of work is rolled back in full before it is returned.
var ErrInternal = errors.New("internal")

// ErrBusy indicates that a row lock could not be acquired within the bounded
// wait. Callers may retry with backoff.
var ErrBusy = errors.New("account busy, retry later")
