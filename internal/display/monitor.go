package display

import (
	"github.com/pixelplane/renderwin/internal/geometry"
)

// Handle identifies a monitor within the window system. Opaque to callers.
type Handle uint64

// MonitorInfo is an immutable snapshot of a single display. It is re-queried
// on demand and never cached across calls, since the user may move the window
// between monitors at any time.
type MonitorInfo struct {
	Handle Handle

	// Work is the usable rectangle excluding OS-reserved chrome such as
	// taskbars and docks.
	Work geometry.Rect

	// Full is the complete monitor rectangle.
	Full geometry.Rect

	// RefreshRate is the display frequency in Hz, or 0 if unknown.
	RefreshRate int

	Primary bool
}

// PointLocator answers which monitor contains a desktop point. Lookup is
// total: implementations fall back to the primary monitor when no monitor
// contains the point.
type PointLocator interface {
	MonitorFromPoint(p geometry.Point) MonitorInfo
}

// AdapterEnumerator exposes the graphics adapters known to the device layer
// and their associated monitors, in a stable enumeration order.
type AdapterEnumerator interface {
	AdapterCount() int
	AdapterMonitor(index int) (MonitorInfo, bool)
}

// Locator resolves target monitors for window placement. Pure query, no
// mutable state.
type Locator struct {
	points   PointLocator
	adapters AdapterEnumerator
}

// NewLocator builds a Locator. adapters may be nil, in which case
// LocateByAdapter always reports not-found and callers use anchor lookup.
func NewLocator(points PointLocator, adapters AdapterEnumerator) *Locator {
	return &Locator{points: points, adapters: adapters}
}

// Locate returns the monitor containing the anchor point, falling back to the
// primary monitor. Always succeeds.
func (l *Locator) Locate(anchor geometry.Point) MonitorInfo {
	return l.points.MonitorFromPoint(anchor)
}

// LocateByAdapter returns the monitor associated with the given adapter
// index, or false if the index is out of range. Callers fall back to Locate
// in that case; an out-of-range index is not an error.
func (l *Locator) LocateByAdapter(index int) (MonitorInfo, bool) {
	if l.adapters == nil || index < 0 || index >= l.adapters.AdapterCount() {
		return MonitorInfo{}, false
	}
	return l.adapters.AdapterMonitor(index)
}
