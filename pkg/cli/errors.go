package cli

import "errors"

// Common CLI errors
var (
	ErrNothingSelected = errors.New("no handlers registered - nothing to toggle")
)
