package present

// Parameters is the negotiated set of buffer, format and timing settings a
// device needs to create or reset its swap chain. It is a value object
// rebuilt from scratch on every negotiation and never mutated in place, so
// stale fallback decisions cannot leak across negotiations.
type Parameters struct {
	BackBufferWidth  int
	BackBufferHeight int
	BackBufferFormat BackBufferFormat
	BackBufferCount  int

	DepthBuffer  bool
	DepthStencil DepthStencilFormat

	Multisample        MultisampleType
	MultisampleQuality uint32

	Interval PresentInterval

	Windowed bool

	// RefreshRate is the requested display frequency in Hz. Populated only
	// in fullscreen mode; zero means unspecified/adaptive.
	RefreshRate int

	// TargetWindow is the native identity of the window the swap chain
	// presents into.
	TargetWindow uint64
}

// Request describes the surface state a negotiation starts from.
type Request struct {
	Width  int
	Height int

	Fullscreen bool
	ColorDepth int

	VSync         bool
	VSyncInterval int

	Multisample     uint32
	MultisampleHint string

	DepthBuffer bool

	// RefreshRate is the surface's last-known display frequency.
	RefreshRate int

	TargetWindow uint64
}
