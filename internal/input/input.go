// Package input defines the collaborator contract toward the input system.
//
// The window system's interactive move/resize gesture runs inside a blocking,
// OS-internal modal loop: no messages are delivered until the gesture ends,
// so the "button released" that terminated it is never observed. The surface
// synthesizes it through this interface once the loop returns, keeping input
// state tracking consistent with reality.
package input

// Button identifies a pointer button.
type Button int

const (
	ButtonLeft Button = iota
	ButtonRight
	ButtonMiddle
)

// Reconciler accepts synthetic input events used to repair state the message
// stream never delivered.
type Reconciler interface {
	SimulateButtonUp(b Button)
}

// Noop discards reconciliation events. Used when no input system is attached.
type Noop struct{}

func (Noop) SimulateButtonUp(Button) {}
