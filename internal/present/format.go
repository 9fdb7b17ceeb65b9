package present

// BackBufferFormat is the pixel format of the swap chain's color buffers.
type BackBufferFormat int

const (
	// FormatR5G6B5 is the 16-bit color format.
	FormatR5G6B5 BackBufferFormat = iota
	// FormatX8R8G8B8 is the 32-bit color format.
	FormatX8R8G8B8
)

func (f BackBufferFormat) String() string {
	switch f {
	case FormatR5G6B5:
		return "R5G6B5"
	case FormatX8R8G8B8:
		return "X8R8G8B8"
	default:
		return "unknown"
	}
}

// DepthStencilFormat is the format of the automatic depth/stencil surface.
type DepthStencilFormat int

const (
	// DepthD16 is 16-bit depth, software stencil.
	DepthD16 DepthStencilFormat = iota
	// DepthD24S8 is 24-bit depth with 8-bit hardware stencil.
	DepthD24S8
	// DepthD24X8 is the depth-only sibling of D24S8.
	DepthD24X8
	// DepthD32 is 32-bit depth, no stencil.
	DepthD32
)

func (f DepthStencilFormat) String() string {
	switch f {
	case DepthD16:
		return "D16"
	case DepthD24S8:
		return "D24S8"
	case DepthD24X8:
		return "D24X8"
	case DepthD32:
		return "D32"
	default:
		return "unknown"
	}
}

// PresentInterval selects how many vertical sync periods each presented frame
// stays on screen.
type PresentInterval uint32

const (
	// IntervalImmediate presents without waiting for vertical sync.
	IntervalImmediate PresentInterval = 1 << iota
	IntervalOne
	IntervalTwo
	IntervalThree
	IntervalFour
)

func (p PresentInterval) String() string {
	switch p {
	case IntervalImmediate:
		return "immediate"
	case IntervalOne:
		return "one"
	case IntervalTwo:
		return "two"
	case IntervalThree:
		return "three"
	case IntervalFour:
		return "four"
	default:
		return "unknown"
	}
}

// IntervalMask is the set of present intervals an adapter advertises.
type IntervalMask uint32

// Supports reports whether the mask includes the given interval.
func (m IntervalMask) Supports(p PresentInterval) bool {
	return m&IntervalMask(p) != 0
}

// MultisampleType is the negotiated sample count. Zero means no
// multisampling.
type MultisampleType uint32

// colorDepthThreshold separates 16-bit from 32-bit presentation. Color depths
// above it select the 32-bit backbuffer format and the hardware depth/stencil
// fallback chain.
const colorDepthThreshold = 16
