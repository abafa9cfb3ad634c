package series

import "errors"

var (
	ErrInvalidParams   = errors.New("invalid reconstruction parameters")
	ErrIndexOutOfRange = errors.New("index out of range")
)
