package booking

import "errors"

var (
	ErrNotFound   = errors.New("booking not found")
	ErrValidation = errors.New("validation error")
)
