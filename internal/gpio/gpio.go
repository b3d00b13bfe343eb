// Package gpio provides digital input pins with hardware abstraction.
// The real implementation uses the Linux GPIO character device.
// The fake implementation allows testing without hardware.
package gpio

import (
	"fmt"
	"strconv"
	"strings"
)

// Pin reads the raw electrical level of one input line.
type Pin interface {
	// Level returns true when the line is HIGH.
	Level() (bool, error)

	// Close releases GPIO resources.
	Close() error
}

// DefaultChip is the gpiochip the Raspberry Pi header lines live on.
const DefaultChip = "gpiochip0"

// DefaultPins is the default button wiring (BCM numbering).
const DefaultPins = "set:17,hour:27,minute:22"

// PinSpec names one input line.
type PinSpec struct {
	Name   string
	Offset int
}

// ParsePins parses a comma separated list of name:offset pairs, keeping the
// given order.
func ParsePins(s string) ([]PinSpec, error) {
	var specs []PinSpec
	seen := make(map[string]bool)
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, off, ok := strings.Cut(part, ":")
		if !ok || name == "" {
			return nil, fmt.Errorf("pin %q: want name:offset", part)
		}
		n, err := strconv.Atoi(off)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("pin %q: bad offset %q", part, off)
		}
		if seen[name] {
			return nil, fmt.Errorf("pin %q: duplicate name %q", part, name)
		}
		seen[name] = true
		specs = append(specs, PinSpec{Name: name, Offset: n})
	}
	if len(specs) == 0 {
		return nil, fmt.Errorf("no pins in %q", s)
	}
	return specs, nil
}
