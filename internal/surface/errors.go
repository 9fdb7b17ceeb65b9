package surface

import "errors"

var (
	// ErrSurfaceUnusable is reported when the window system can no longer
	// answer geometry queries for the surface's window. The surface geometry
	// is zeroed rather than left stale; the condition is recoverable.
	ErrSurfaceUnusable = errors.New("surface unusable")

	// ErrWindowClosed is returned by operations on a closed surface.
	ErrWindowClosed = errors.New("window closed")
)
