package item

import "errors"

var (
	ErrNotFound   = errors.New("item not found")
	ErrValidation = errors.New("validation error")
)
