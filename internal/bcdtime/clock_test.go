package bcdtime

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func hms(c *Clock) [3]int {
	h, m, s := c.HMS()
	return [3]int{h, m, s}
}

func TestZeroValue(t *testing.T) {
	var c Clock
	if got := hms(&c); got != [3]int{0, 0, 0} {
		t.Errorf("zero clock: got %v, want [0 0 0]", got)
	}
	if c.String() != "00:00:00" {
		t.Errorf("String: got %q, want 00:00:00", c.String())
	}
}

func TestSetTimeDigits(t *testing.T) {
	tests := []struct {
		h, m, s int
		want    [NumDigits]int
	}{
		{13, 5, 9, [NumDigits]int{1, 3, 0, 5, 0, 9}},
		{0, 0, 0, [NumDigits]int{0, 0, 0, 0, 0, 0}},
		{23, 59, 59, [NumDigits]int{2, 3, 5, 9, 5, 9}},
		{9, 10, 48, [NumDigits]int{0, 9, 1, 0, 4, 8}},
	}

	for _, tt := range tests {
		var c Clock
		c.SetTime(tt.h, tt.m, tt.s)

		var got [NumDigits]int
		for i := 0; i < NumDigits; i++ {
			d, err := c.Digit(i)
			if err != nil {
				t.Fatalf("%s: Digit(%d): unexpected error: %v", c.String(), i, err)
			}
			got[i] = d
		}
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("%02d:%02d:%02d digits mismatch (-want +got):\n%s", tt.h, tt.m, tt.s, diff)
		}
		if diff := cmp.Diff(tt.want, c.Digits()); diff != "" {
			t.Errorf("%02d:%02d:%02d Digits() mismatch (-want +got):\n%s", tt.h, tt.m, tt.s, diff)
		}
	}
}

// Every valid time of day must round-trip through its digits.
func TestDigitsAllValidTimes(t *testing.T) {
	var c Clock
	for h := 0; h < 24; h++ {
		for m := 0; m < 60; m++ {
			for s := 0; s < 60; s++ {
				c.SetTime(h, m, s)
				d := c.Digits()
				if d[0]*10+d[1] != h || d[2]*10+d[3] != m || d[4]*10+d[5] != s {
					t.Fatalf("%02d:%02d:%02d: digits %v do not rebuild the time", h, m, s, d)
				}
			}
		}
	}
}

func TestDigitInvalidIndex(t *testing.T) {
	var c Clock
	c.SetTime(12, 34, 56)

	for _, i := range []int{-1, 6, 7, 100} {
		d, err := c.Digit(i)
		if !errors.Is(err, ErrInvalidDigit) {
			t.Errorf("Digit(%d): expected ErrInvalidDigit, got %v", i, err)
		}
		if d != 0 {
			t.Errorf("Digit(%d): expected 0 alongside error, got %d", i, d)
		}
	}
}

func TestSetBCD(t *testing.T) {
	var c Clock
	c.SetBCD(1, 7, 4, 2, 0, 3)
	if got := hms(&c); got != [3]int{17, 42, 3} {
		t.Errorf("SetBCD: got %v, want [17 42 3]", got)
	}
}

func TestSetBCDNoValidation(t *testing.T) {
	var c Clock
	c.SetBCD(9, 9, 9, 9, 9, 9)
	if got := hms(&c); got != [3]int{99, 99, 99} {
		t.Errorf("SetBCD: got %v, want [99 99 99]", got)
	}
	if c.Valid() {
		t.Error("expected Valid()=false for 99:99:99")
	}
}

func TestTickOneHour(t *testing.T) {
	var c Clock
	c.SetTime(0, 0, 0)
	for i := 0; i < 3600; i++ {
		c.Tick()
	}
	if got := hms(&c); got != [3]int{1, 0, 0} {
		t.Errorf("3600 ticks from midnight: got %v, want [1 0 0]", got)
	}
}

func TestTickFullDay(t *testing.T) {
	var c Clock
	c.SetTime(6, 30, 15)
	for i := 0; i < 24*3600; i++ {
		c.Tick()
		if !c.Valid() {
			t.Fatalf("tick %d: clock left range: %s", i, c.String())
		}
	}
	if got := hms(&c); got != [3]int{6, 30, 15} {
		t.Errorf("one day of ticks: got %v, want [6 30 15]", got)
	}
}

func TestTickCarry(t *testing.T) {
	tests := []struct {
		name string
		from [3]int
		want [3]int
	}{
		{"plain", [3]int{10, 20, 30}, [3]int{10, 20, 31}},
		{"second carry", [3]int{10, 20, 59}, [3]int{10, 21, 0}},
		{"minute carry", [3]int{10, 59, 59}, [3]int{11, 0, 0}},
		{"midnight", [3]int{23, 59, 59}, [3]int{0, 0, 0}},
		{"minute 59 no carry", [3]int{10, 59, 30}, [3]int{10, 59, 31}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Clock
			c.SetTime(tt.from[0], tt.from[1], tt.from[2])
			c.Tick()
			if got := hms(&c); got != tt.want {
				t.Errorf("Tick from %v: got %v, want %v", tt.from, got, tt.want)
			}
		})
	}
}

func TestIncrementMinuteNoCascade(t *testing.T) {
	var c Clock
	c.SetTime(5, 59, 30)
	c.IncrementMinute()
	if got := hms(&c); got != [3]int{5, 0, 30} {
		t.Errorf("IncrementMinute at 05:59:30: got %v, want [5 0 30]", got)
	}

	// Tick at the same minute does cascade.
	c.SetTime(5, 59, 59)
	c.Tick()
	if got := hms(&c); got != [3]int{6, 0, 0} {
		t.Errorf("Tick at 05:59:59: got %v, want [6 0 0]", got)
	}
}

func TestIncrementMinuteSteps(t *testing.T) {
	var c Clock
	c.SetTime(0, 0, 0)
	for i := 1; i <= 60; i++ {
		c.IncrementMinute()
		if c.Minutes() != i%60 {
			t.Fatalf("step %d: minutes=%d, want %d", i, c.Minutes(), i%60)
		}
		if c.Hours() != 0 {
			t.Fatalf("step %d: hours changed to %d", i, c.Hours())
		}
	}
}

func TestIncrementHour(t *testing.T) {
	var c Clock
	c.SetTime(23, 30, 0)
	c.IncrementHour()
	if got := hms(&c); got != [3]int{0, 30, 0} {
		t.Errorf("IncrementHour at 23:30:00: got %v, want [0 30 0]", got)
	}

	c.SetTime(7, 0, 0)
	c.IncrementHour()
	if c.Hours() != 8 {
		t.Errorf("IncrementHour at 07: got %d, want 8", c.Hours())
	}
}

func TestSetSeconds(t *testing.T) {
	var c Clock
	c.SetTime(8, 15, 42)
	c.SetSeconds(0)
	if got := hms(&c); got != [3]int{8, 15, 0} {
		t.Errorf("SetSeconds(0): got %v, want [8 15 0]", got)
	}

	// No carry: 75 stays 75 until the next tick overflows it.
	c.SetSeconds(75)
	if c.Seconds() != 75 || c.Minutes() != 15 {
		t.Errorf("SetSeconds(75): got %s, want seconds 75, minutes 15", c.String())
	}
	c.Tick()
	if got := hms(&c); got != [3]int{8, 16, 0} {
		t.Errorf("Tick after SetSeconds(75): got %v, want [8 16 0]", got)
	}
}

// The setters accept out-of-range values. This documents what Tick then does
// rather than asserting a "correct" outcome.
func TestPermissiveSetTimeThenTick(t *testing.T) {
	var c Clock
	c.SetTime(10, 75, 0)
	if c.Valid() {
		t.Fatal("expected Valid()=false after SetTime(10, 75, 0)")
	}

	c.Tick()
	if got := hms(&c); got != [3]int{10, 75, 1} {
		t.Errorf("Tick: got %v, want [10 75 1] (minutes only checked on seconds overflow)", got)
	}
	if d, _ := c.Digit(MinutesTens); d != 7 {
		t.Errorf("Digit(MinutesTens): got %d, want 7", d)
	}

	// The seconds overflow path does normalise the bad minute.
	c.SetSeconds(59)
	c.Tick()
	if got := hms(&c); got != [3]int{11, 0, 0} {
		t.Errorf("Tick at 10:75:59: got %v, want [11 0 0]", got)
	}

	// Hours beyond 23 are only wrapped when a minute carry reaches them.
	c.SetTime(30, 0, 0)
	c.Tick()
	if c.Hours() != 30 {
		t.Errorf("hours: got %d, want 30", c.Hours())
	}

	// Negative values are kept verbatim too.
	c.SetTime(-1, -1, -1)
	c.Tick()
	if got := hms(&c); got != [3]int{-1, -1, 0} {
		t.Errorf("Tick at -1:-1:-1: got %v, want [-1 -1 0]", got)
	}
}

func TestSetTimeStrict(t *testing.T) {
	var c Clock
	c.SetTime(1, 2, 3)

	if err := c.SetTimeStrict(24, 0, 0); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("SetTimeStrict(24,0,0): expected ErrOutOfRange, got %v", err)
	}
	if err := c.SetTimeStrict(0, 60, 0); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("SetTimeStrict(0,60,0): expected ErrOutOfRange, got %v", err)
	}
	if err := c.SetTimeStrict(0, 0, -1); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("SetTimeStrict(0,0,-1): expected ErrOutOfRange, got %v", err)
	}
	if got := hms(&c); got != [3]int{1, 2, 3} {
		t.Errorf("rejected SetTimeStrict changed the clock: got %v", got)
	}

	if err := c.SetTimeStrict(23, 59, 59); err != nil {
		t.Fatalf("SetTimeStrict(23,59,59): unexpected error: %v", err)
	}
	if got := hms(&c); got != [3]int{23, 59, 59} {
		t.Errorf("SetTimeStrict: got %v, want [23 59 59]", got)
	}
}

func TestFromTime(t *testing.T) {
	c := FromTime(time.Date(2026, 3, 14, 15, 9, 26, 535897932, time.UTC))
	if got := hms(&c); got != [3]int{15, 9, 26} {
		t.Errorf("FromTime: got %v, want [15 9 26]", got)
	}
	if c.SecondOfDay() != 15*3600+9*60+26 {
		t.Errorf("SecondOfDay: got %d", c.SecondOfDay())
	}
}

func TestString(t *testing.T) {
	var c Clock
	c.SetTime(7, 5, 3)
	if c.String() != "07:05:03" {
		t.Errorf("String: got %q, want 07:05:03", c.String())
	}
	c.SetTime(99, 123, 4)
	if c.String() != "99:123:04" {
		t.Errorf("String: got %q, want 99:123:04", c.String())
	}
}
