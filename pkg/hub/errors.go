package hub

import "errors"

// ErrStopped is returned when registering with a hub whose loop has exited.
var ErrStopped = errors.New("hub: stopped")
