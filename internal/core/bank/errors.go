package bank

import "errors"

// ErrNotFound is returned when an operation names a question ID the bank
// does not hold.
var ErrNotFound = errors.New("question not found")
