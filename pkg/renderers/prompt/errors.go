package prompt

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("prompt: aborted")
	// ErrNoFields is returned for forms without any field to ask for.
	ErrNoFields = errors.New("prompt: form has no fields")
)
