package geometry

// Point is a position in absolute desktop coordinates.
type Point struct {
	X int
	Y int
}

// Rect represents a window or monitor rectangle in desktop coordinates.
type Rect struct {
	Left   int
	Top    int
	Width  int
	Height int
}

// Right returns the exclusive right edge.
func (r Rect) Right() int {
	return r.Left + r.Width
}

// Bottom returns the exclusive bottom edge.
func (r Rect) Bottom() int {
	return r.Top + r.Height
}

// Contains reports whether p lies inside the rectangle.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Left && p.X < r.Right() && p.Y >= r.Top && p.Y < r.Bottom()
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Insets describes window decoration sizes around a client area.
type Insets struct {
	Left   int
	Right  int
	Top    int
	Bottom int
}

// Horizontal returns the combined left+right inset.
func (i Insets) Horizontal() int {
	return i.Left + i.Right
}

// Vertical returns the combined top+bottom inset.
func (i Insets) Vertical() int {
	return i.Top + i.Bottom
}
