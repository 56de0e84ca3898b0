package pump

import (
	"context"
	"errors"
	"fmt"

	"github.com/oshokin/sump-watch/internal/domain/event"
	"github.com/oshokin/sump-watch/internal/logger"
)

// ErrNoStatusSource is returned when a monitor has no way to read its pin.
var ErrNoStatusSource = errors.New("status source is not set")

// Monitor fans out the status of one pin to its loggers.
// It implements event.Logger itself, so monitors can be chained.
//
// Monitor is not safe for concurrent use: drive it from one goroutine.
type Monitor struct {
	// pin is the monitored input.
	pin int
	// source reads the pin.
	source StatusSource
	// loggers receive every observed status.
	loggers event.Fanout
}

// NewMonitor creates a monitor for pin reading through source.
func NewMonitor(pin int, source StatusSource) *Monitor {
	return &Monitor{
		pin:    pin,
		source: source,
	}
}

// Pin returns the monitored pin.
func (m *Monitor) Pin() int {
	return m.pin
}

// RegisterLogger appends a logger. Loggers are called in registration order.
func (m *Monitor) RegisterLogger(l event.Logger) {
	m.loggers.Register(l)
}

// HandleSignal reads the current status and sends it to every logger as a
// single-field event. A source failure is returned as is and no logger is
// called. Logger failures do not stop the fan-out; they come back as an
// *event.FanoutError once every logger ran.
func (m *Monitor) HandleSignal(ctx context.Context) error {
	if m.source == nil {
		return ErrNoStatusSource
	}

	status, err := m.source.Status(ctx, m.pin)
	if err != nil {
		return fmt.Errorf("read pin %d: %w", m.pin, err)
	}

	logger.InfoKV(ctx, "Pump status changed", "pin", m.pin, "status", status.String())

	return m.Log(ctx, event.New(float64(status)))
}

// Log forwards e to every registered logger.
func (m *Monitor) Log(ctx context.Context, e event.Event) error {
	return m.loggers.Log(ctx, e)
}
