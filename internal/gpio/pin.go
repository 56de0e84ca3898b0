package gpio

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/oshokin/sump-watch/internal/pump"
)

// SysfsValueFormat is the sysfs path of an exported pin's value file.
const SysfsValueFormat = "/sys/class/gpio/gpio%d/value"

// ErrBadValue is returned when a value file holds something other than 0 or 1.
var ErrBadValue = errors.New("unexpected pin value")

// SysfsPin is a pump.StatusSource backed by one value file.
type SysfsPin struct {
	// path is the value file.
	path string
	// activeLow inverts the level, for float switches wired to ground.
	activeLow bool
}

// PinOption configures a SysfsPin.
type PinOption func(*SysfsPin)

// WithActiveLow reports "0" as On and "1" as Off.
func WithActiveLow() PinOption {
	return func(p *SysfsPin) {
		p.activeLow = true
	}
}

// NewSysfsPin creates a status source reading path.
func NewSysfsPin(path string, opts ...PinOption) *SysfsPin {
	p := &SysfsPin{
		path: filepath.Clean(path),
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Path returns the value file location.
func (p *SysfsPin) Path() string {
	return p.path
}

// Status reads the current level. The pin number only labels errors;
// the file decides which pin is read.
func (p *SysfsPin) Status(_ context.Context, pin int) (pump.Status, error) {
	contents, err := os.ReadFile(p.path)
	if err != nil {
		return pump.Unknown, fmt.Errorf("read pin %d value: %w", pin, err)
	}

	var high bool

	switch value := strings.TrimSpace(string(contents)); value {
	case "1":
		high = true
	case "0":
		high = false
	default:
		return pump.Unknown, fmt.Errorf("pin %d: %w %q", pin, ErrBadValue, value)
	}

	if high != p.activeLow {
		return pump.On, nil
	}

	return pump.Off, nil
}
