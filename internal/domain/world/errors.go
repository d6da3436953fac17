package world

import "errors"

// The non-fatal error taxonomy surfaced by world operations. The command
// processor reports these and returns to the prompt; none end the game.
var (
	ErrPermissionDenied = errors.New("permission denied")
	ErrNotFound         = errors.New("not found")
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrCapacityExceeded = errors.New("capacity exceeded")
	ErrAuthentication   = errors.New("authentication failed")
)
