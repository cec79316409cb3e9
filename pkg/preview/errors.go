package preview

import "errors"

var (
	// ErrSinkRequired is returned when a renderer is built without a sink.
	ErrSinkRequired = errors.New("preview: sink is required")
	// ErrStopped is returned by operations on a stopped renderer.
	ErrStopped = errors.New("preview: renderer stopped")
)
