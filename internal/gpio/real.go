//go:build linux

package gpio

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

// RealPin reads one input line from actual hardware using the Linux GPIO
// character device.
type RealPin struct {
	chip *gpiocdev.Chip
	line *gpiocdev.Line
}

// NewRealPin requests offset on chip as an input with the internal pull-up
// or pull-down bias enabled.
func NewRealPin(chip string, offset int, pullUp bool) (*RealPin, error) {
	c, err := gpiocdev.NewChip(chip)
	if err != nil {
		return nil, fmt.Errorf("open gpio chip %s: %w", chip, err)
	}

	var bias gpiocdev.LineReqOption = gpiocdev.WithPullDown
	if pullUp {
		bias = gpiocdev.WithPullUp
	}

	line, err := c.RequestLine(offset, gpiocdev.AsInput, bias)
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("request pin %d: %w", offset, err)
	}

	return &RealPin{chip: c, line: line}, nil
}

// Level returns the raw line value: true = HIGH.
func (p *RealPin) Level() (bool, error) {
	v, err := p.line.Value()
	if err != nil {
		return false, fmt.Errorf("read pin: %w", err)
	}
	return v != 0, nil
}

// Close releases GPIO resources.
// Reconfigures the line to input with pull-down (matching Pi boot defaults)
// before closing to ensure clean state for system shutdown/reboot.
func (p *RealPin) Close() error {
	var errs []error

	if p.line != nil {
		if err := p.line.Reconfigure(gpiocdev.AsInput, gpiocdev.WithPullDown); err != nil {
			errs = append(errs, fmt.Errorf("reconfigure pin: %w", err))
		}
		if err := p.line.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close pin: %w", err))
		}
	}
	if p.chip != nil {
		if err := p.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}
