package repository

import "errors"

// ErrNotFound is returned when no row matches the given key.
var ErrNotFound = errors.New("record not found")
