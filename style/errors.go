package style

import "errors"

// ErrNotFound is returned when an operation needs an entry that does not exist.
var ErrNotFound = errors.New("not found")
