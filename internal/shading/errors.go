package shading

import (
	"errors"
	"fmt"
)

// ErrCompile reports disk parameters that cannot form a working shader.
var ErrCompile = errors.New("shading: compile failed")

// ParamError names the offending parameter.
type ParamError struct {
	Field  string
	Reason string
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ParamError) Unwrap() error { return ErrCompile }
