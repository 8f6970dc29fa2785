package config

import "errors"

// ErrInvalid reports a config that cannot drive a session.
var ErrInvalid = errors.New("config: invalid")
