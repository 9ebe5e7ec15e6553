package prompt

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("prompt: aborted")
	// ErrNoSchema is returned when Capture has nothing to ask for.
	ErrNoSchema = errors.New("prompt: schema is nil or declares no properties")
)
