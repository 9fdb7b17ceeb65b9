package geometry

// OuterSize converts a requested client-area size into an outer window size by
// adding decoration insets, then clamps the result to the monitor's work-area
// extents. The client area may end up smaller than requested when the monitor
// cannot fit it.
func OuterSize(clientWidth, clientHeight int, insets Insets, work Rect) (width, height int) {
	width = clientWidth + insets.Horizontal()
	height = clientHeight + insets.Vertical()

	if width > work.Width {
		width = work.Width
	}
	if height > work.Height {
		height = work.Height
	}
	return width, height
}

// Place computes the outer rectangle for a new window on the given monitor.
//
// A nil left/top centers the window on that axis within the work area, using
// the clamped outer dimensions so an oversized window still lands at the work
// area origin instead of a negative offset. Explicit coordinates are treated
// as monitor-relative when adapterRelative is set (the caller chose the
// monitor by adapter index) and are translated by the work-area origin.
func Place(clientWidth, clientHeight int, insets Insets, work Rect, left, top *int, adapterRelative bool) Rect {
	width, height := OuterSize(clientWidth, clientHeight, insets, work)

	outLeft := work.Left + (work.Width-width)/2
	if left != nil {
		outLeft = *left
		if adapterRelative {
			outLeft += work.Left
		}
	}

	outTop := work.Top + (work.Height-height)/2
	if top != nil {
		outTop = *top
		if adapterRelative {
			outTop += work.Top
		}
	}

	return Rect{Left: outLeft, Top: outTop, Width: width, Height: height}
}

// ClampToWork pulls a window rectangle back inside the monitor's work area.
// Position is corrected before size so a window that fits is never shrunk.
func ClampToWork(r Rect, work Rect) Rect {
	if r.Left < work.Left {
		r.Left = work.Left
	}
	if r.Top < work.Top {
		r.Top = work.Top
	}
	if r.Width > work.Right()-r.Left {
		r.Width = work.Right() - r.Left
	}
	if r.Height > work.Bottom()-r.Top {
		r.Height = work.Bottom() - r.Top
	}
	return r
}

// Center returns the position that centers a window of the given outer size
// within the work area. The offset is clamped to the work-area origin when the
// window is larger than the available space.
func Center(width, height int, work Rect) Point {
	left := work.Left
	if work.Width > width {
		left += (work.Width - width) / 2
	}
	top := work.Top
	if work.Height > height {
		top += (work.Height - height) / 2
	}
	return Point{X: left, Y: top}
}
