package harvest

import "errors"

var (
	// ErrAlreadyRunning means another process holds the instance lock.
	ErrAlreadyRunning = errors.New("another harvest is already running")
	// ErrNoItems means the listing walk finished without collecting anything.
	ErrNoItems = errors.New("no rated items collected")
)
