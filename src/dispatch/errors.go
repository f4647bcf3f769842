package dispatch

import "errors"

var (
	ErrInvalidFloor   = errors.New("invalid floor")
	ErrTerminated     = errors.New("dispatch engine terminated")
	ErrAlreadyRunning = errors.New("dispatch engine already running")
)
