package lens

import "errors"

// ErrBufferUnavailable means the offscreen buffer could not be allocated for
// the current viewport. The frame must be skipped; allocation is retried on
// the next pass.
var ErrBufferUnavailable = errors.New("lens: offscreen buffer unavailable")
