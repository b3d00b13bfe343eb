// Package bcdtime contains the time-of-day counter driven by the one-second tick.
// It holds hours, minutes and seconds as plain integers and exposes them as
// decimal digits for digit-multiplexed displays.
// This package has NO external dependencies (no GPIO, MQTT, OS, or time.Sleep).
package bcdtime

import (
	"errors"
	"fmt"
	"time"
)

// NumDigits is the number of BCD digits in an HH:MM:SS display.
const NumDigits = 6

// Digit indices, in display order.
const (
	HoursTens = iota
	HoursUnits
	MinutesTens
	MinutesUnits
	SecondsTens
	SecondsUnits
)

var (
	// ErrInvalidDigit is returned by Digit for an index outside 0..5.
	ErrInvalidDigit = errors.New("bcdtime: invalid digit index")

	// ErrOutOfRange is returned by SetTimeStrict for hours outside 0..23 or
	// minutes/seconds outside 0..59.
	ErrOutOfRange = errors.New("bcdtime: time value out of range")
)

// Clock is a time-of-day counter with one-second resolution and no date.
// The zero value is 00:00:00.
//
// The setters do not validate their arguments. Out-of-range values are kept
// as given, and Tick only carries on the seconds overflow path, so a bad
// minute or hour stays bad until it is overwritten.
type Clock struct {
	h int
	m int
	s int
}

// FromTime returns a Clock holding the hour, minute and second of t.
func FromTime(t time.Time) Clock {
	return Clock{h: t.Hour(), m: t.Minute(), s: t.Second()}
}

// SetTime overwrites all three fields.
func (c *Clock) SetTime(h, m, s int) {
	c.h = h
	c.m = m
	c.s = s
}

// SetTimeStrict is SetTime for callers that want validation.
// The clock is left unchanged when any value is out of range.
func (c *Clock) SetTimeStrict(h, m, s int) error {
	if !inRange(h, m, s) {
		return fmt.Errorf("%w: %02d:%02d:%02d", ErrOutOfRange, h, m, s)
	}
	c.SetTime(h, m, s)
	return nil
}

// SetBCD rebuilds each field from its tens and units digit.
func (c *Clock) SetBCD(h10, h1, m10, m1, s10, s1 int) {
	c.h = h10*10 + h1
	c.m = m10*10 + m1
	c.s = s10*10 + s1
}

// SetSeconds overwrites the seconds field. Minutes are not touched.
func (c *Clock) SetSeconds(n int) {
	c.s = n
}

// Digit returns one decimal digit of the time, indexed in display order
// (HoursTens .. SecondsUnits).
func (c *Clock) Digit(i int) (int, error) {
	switch i {
	case HoursTens:
		return c.h / 10, nil
	case HoursUnits:
		return c.h % 10, nil
	case MinutesTens:
		return c.m / 10, nil
	case MinutesUnits:
		return c.m % 10, nil
	case SecondsTens:
		return c.s / 10, nil
	case SecondsUnits:
		return c.s % 10, nil
	}
	return 0, fmt.Errorf("%w: %d", ErrInvalidDigit, i)
}

// Digits returns all six digits in display order.
func (c *Clock) Digits() [NumDigits]int {
	return [NumDigits]int{
		c.h / 10, c.h % 10,
		c.m / 10, c.m % 10,
		c.s / 10, c.s % 10,
	}
}

// Tick advances the clock by one second, carrying into minutes and hours
// and wrapping at midnight.
func (c *Clock) Tick() {
	c.s++
	if c.s > 59 {
		c.s = 0
		c.m++
		if c.m > 59 {
			c.m = 0
			c.h++
			if c.h > 23 {
				c.h = 0
			}
		}
	}
}

// IncrementMinute adds one minute, wrapping to 0 at 60.
// Unlike Tick it never carries into hours.
func (c *Clock) IncrementMinute() {
	c.m++
	if c.m == 60 {
		c.m = 0
	}
}

// IncrementHour adds one hour, wrapping to 0 at 24.
func (c *Clock) IncrementHour() {
	c.h++
	if c.h == 24 {
		c.h = 0
	}
}

// Hours returns the raw hours field.
func (c *Clock) Hours() int { return c.h }

// Minutes returns the raw minutes field.
func (c *Clock) Minutes() int { return c.m }

// Seconds returns the raw seconds field.
func (c *Clock) Seconds() int { return c.s }

// HMS returns the raw hours, minutes and seconds.
func (c *Clock) HMS() (h, m, s int) {
	return c.h, c.m, c.s
}

// SecondOfDay returns h*3600 + m*60 + s.
func (c *Clock) SecondOfDay() int {
	return c.h*3600 + c.m*60 + c.s
}

// Valid reports whether every field is within its range.
func (c *Clock) Valid() bool {
	return inRange(c.h, c.m, c.s)
}

// String formats the clock as HH:MM:SS.
func (c *Clock) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", c.h, c.m, c.s)
}

func inRange(h, m, s int) bool {
	return h >= 0 && h <= 23 && m >= 0 && m <= 59 && s >= 0 && s <= 59
}
