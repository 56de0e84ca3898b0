package sink

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/oshokin/sump-watch/internal/domain/event"
)

// Console prints every event as "Event: [f1 f2 ...]".
type Console struct {
	// w receives one line per event.
	w io.Writer
	// label styles the "Event:" prefix; plain when w is not a terminal.
	label lipgloss.Style
}

// NewConsole creates a console sink writing to w.
func NewConsole(w io.Writer) *Console {
	renderer := lipgloss.NewRenderer(w)

	return &Console{
		w:     w,
		label: renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
	}
}

// Log writes the event line.
func (c *Console) Log(_ context.Context, e event.Event) error {
	if _, err := fmt.Fprintf(c.w, "%s %s\n", c.label.Render("Event:"), e); err != nil {
		return fmt.Errorf("write console: %w", err)
	}

	return nil
}
