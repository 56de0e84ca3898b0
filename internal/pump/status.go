package pump

import (
	"context"
	"strconv"
)

// Status is the state reported by the pump's status input.
type Status int

const (
	// Unknown means the pin could not be interpreted.
	Unknown Status = -1
	// Off means the pump is idle.
	Off Status = 0
	// On means the pump is running.
	On Status = 1
)

// String renders the status for logs.
func (s Status) String() string {
	switch s {
	case On:
		return "on"
	case Off:
		return "off"
	case Unknown:
		return "unknown"
	default:
		return "status(" + strconv.Itoa(int(s)) + ")"
	}
}

// StatusSource reads the current status of a pin.
// Implementations may fail on hardware errors.
type StatusSource interface {
	Status(ctx context.Context, pin int) (Status, error)
}

// StatusFunc adapts a plain function to the StatusSource interface.
type StatusFunc func(ctx context.Context, pin int) (Status, error)

// Status calls f(ctx, pin).
func (f StatusFunc) Status(ctx context.Context, pin int) (Status, error) {
	return f(ctx, pin)
}
