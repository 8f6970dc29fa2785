package session

import "errors"

// ErrFrameSkipped marks a tick whose frame could not be presented. The
// session stays usable; the next tick retries.
var ErrFrameSkipped = errors.New("session: frame skipped")
