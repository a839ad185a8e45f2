package domain

import "errors"

// ErrNotFound is returned when a required record (vessel, port, route) does not exist.
var ErrNotFound = errors.New("not found")
