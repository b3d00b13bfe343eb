// Package adjust parses clock adjustment commands and applies them to a
// bcdtime.Clock. Commands are applied by whoever owns the clock; this
// package never holds one.
package adjust

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sweeney/bcd-clock/internal/bcdtime"
)

// Op is an adjustment operation.
type Op string

const (
	OpSet        Op = "set"
	OpSetBCD     Op = "set-bcd"
	OpIncHour    Op = "inc-hour"
	OpIncMinute  Op = "inc-minute"
	OpSetSeconds Op = "set-seconds"
	OpSync       Op = "sync"
)

var (
	// ErrUnknownOp is returned for an op that is not one of the Op constants.
	ErrUnknownOp = errors.New("adjust: unknown op")

	// ErrBadValue is returned when an op's arguments cannot be parsed.
	ErrBadValue = errors.New("adjust: bad value")
)

// Command is one parsed adjustment.
type Command struct {
	Op     Op
	H      int
	M      int
	S      int
	Digits [bcdtime.NumDigits]int
	// Strict rejects out-of-range values for OpSet instead of storing them.
	Strict bool
}

// String describes the command for logs.
func (c Command) String() string {
	switch c.Op {
	case OpSet:
		return fmt.Sprintf("%s %02d:%02d:%02d strict=%v", c.Op, c.H, c.M, c.S, c.Strict)
	case OpSetBCD:
		return fmt.Sprintf("%s %v", c.Op, c.Digits)
	case OpSetSeconds:
		return fmt.Sprintf("%s %d", c.Op, c.S)
	}
	return string(c.Op)
}

// Parse builds a Command from form values:
//
//	op=set&time=HH:MM:SS[&strict=1]
//	op=set-bcd&digits=HHMMSS
//	op=set-seconds&value=N
//	op=inc-hour | op=inc-minute | op=sync
func Parse(v url.Values) (Command, error) {
	cmd := Command{Op: Op(v.Get("op"))}

	switch cmd.Op {
	case OpSet:
		var err error
		cmd.H, cmd.M, cmd.S, err = parseHMS(v.Get("time"))
		if err != nil {
			return Command{}, err
		}
		if s := v.Get("strict"); s != "" {
			cmd.Strict, err = strconv.ParseBool(s)
			if err != nil {
				return Command{}, fmt.Errorf("%w: strict %q", ErrBadValue, s)
			}
		}

	case OpSetBCD:
		d := v.Get("digits")
		if len(d) != bcdtime.NumDigits {
			return Command{}, fmt.Errorf("%w: digits %q: want %d digits", ErrBadValue, d, bcdtime.NumDigits)
		}
		for i := 0; i < bcdtime.NumDigits; i++ {
			if d[i] < '0' || d[i] > '9' {
				return Command{}, fmt.Errorf("%w: digits %q: not a digit at %d", ErrBadValue, d, i)
			}
			cmd.Digits[i] = int(d[i] - '0')
		}

	case OpSetSeconds:
		n, err := strconv.Atoi(v.Get("value"))
		if err != nil {
			return Command{}, fmt.Errorf("%w: value %q", ErrBadValue, v.Get("value"))
		}
		cmd.S = n

	case OpIncHour, OpIncMinute, OpSync:

	default:
		return Command{}, fmt.Errorf("%w: %q", ErrUnknownOp, cmd.Op)
	}

	return cmd, nil
}

// Apply performs cmd on c. now is only used by OpSync.
// Only a strict set can fail once a command has parsed.
func Apply(c *bcdtime.Clock, cmd Command, now time.Time) error {
	switch cmd.Op {
	case OpSet:
		if cmd.Strict {
			return c.SetTimeStrict(cmd.H, cmd.M, cmd.S)
		}
		c.SetTime(cmd.H, cmd.M, cmd.S)
	case OpSetBCD:
		d := cmd.Digits
		c.SetBCD(d[0], d[1], d[2], d[3], d[4], d[5])
	case OpIncHour:
		c.IncrementHour()
	case OpIncMinute:
		c.IncrementMinute()
	case OpSetSeconds:
		c.SetSeconds(cmd.S)
	case OpSync:
		t := bcdtime.FromTime(now)
		c.SetTime(t.HMS())
	default:
		return fmt.Errorf("%w: %q", ErrUnknownOp, cmd.Op)
	}
	return nil
}

// Request carries a Command to the clock owner and the result back.
type Request struct {
	Command Command
	// Reply receives the Apply result. It must be buffered.
	Reply chan error
}

// NewRequest returns a Request with a buffered reply channel.
func NewRequest(cmd Command) Request {
	return Request{Command: cmd, Reply: make(chan error, 1)}
}

// parseHMS accepts exactly three colon-separated integers. Range checks are
// left to the clock.
func parseHMS(s string) (h, m, sec int, err error) {
	fields := strings.Split(s, ":")
	if len(fields) != 3 {
		return 0, 0, 0, fmt.Errorf("%w: time %q: want HH:MM:SS", ErrBadValue, s)
	}
	var v [3]int
	for i, f := range fields {
		v[i], err = strconv.Atoi(f)
		if err != nil {
			return 0, 0, 0, fmt.Errorf("%w: time %q: want HH:MM:SS", ErrBadValue, s)
		}
	}
	return v[0], v[1], v[2], nil
}
