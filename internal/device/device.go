// Package device defines the collaborator contracts toward the graphics
// device layer and the binding that associates a surface with a device
// instance. The device's lifetime is owned by an external device manager; a
// surface never owns the device it is bound to.
package device

import (
	"github.com/pixelplane/renderwin/internal/display"
	"github.com/pixelplane/renderwin/internal/present"
)

// Device is a single graphics device instance bound to one adapter.
// Operations are keyed by the native window identity of the target surface.
type Device interface {
	// AdapterIndex returns the adapter this device was created on.
	AdapterIndex() int

	// Invalidate marks the device's swap chain for the given window as
	// needing a reset. Called on every mode or size change and on external
	// device-loss signals.
	Invalidate(window uint64)

	// Reset recreates the device's swap chain from freshly negotiated
	// parameters. May block on hardware completion.
	Reset(params present.Parameters) error

	// Validate confirms the surface is still usable on this device.
	Validate(window uint64) (bool, error)

	// Present swaps the backbuffer for the given window.
	Present(window uint64) error

	// CopyBackBuffer copies the current backbuffer contents for the given
	// window into dst.
	CopyBackBuffer(window uint64, dst []byte) error
}

// Manager enumerates adapters, creates and resets devices, and exposes
// per-adapter capability probes. The concrete implementation lives with the
// graphics backend; this package only consumes the contract.
type Manager interface {
	display.AdapterEnumerator

	// Probe returns the capability probe for the given adapter.
	Probe(adapter int) present.CapabilityProbe
}
