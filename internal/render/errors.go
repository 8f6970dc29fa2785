package render

import "errors"

// MaxDimension bounds either side of a raster. Larger targets are treated the
// way a graphics driver treats an unsupported render-target size.
const MaxDimension = 8192

// ErrInvalidSize indicates a raster was requested with a non-positive or
// unsupported width or height.
var ErrInvalidSize = errors.New("render: invalid raster size")
