package gpio

import "errors"

// FakePin is a test double that returns scripted levels.
type FakePin struct {
	// Levels contains scripted raw levels to return.
	// Each call to Level() consumes the next one.
	Levels []bool

	// index tracks current position in Levels
	index int

	// Reads counts calls to Level.
	Reads int

	// Closed tracks if Close was called
	Closed bool

	// ReadError, if set, will be returned by Level()
	ReadError error
}

// NewFakePin creates a FakePin with the given levels.
func NewFakePin(levels ...bool) *FakePin {
	return &FakePin{Levels: levels}
}

// Level returns the next scripted level.
// If levels are exhausted, returns the last level repeatedly.
func (f *FakePin) Level() (bool, error) {
	f.Reads++
	if f.ReadError != nil {
		return false, f.ReadError
	}

	if len(f.Levels) == 0 {
		return false, errors.New("no levels configured")
	}

	level := f.Levels[f.index]
	if f.index < len(f.Levels)-1 {
		f.index++
	}

	return level, nil
}

// Close marks the pin as closed.
func (f *FakePin) Close() error {
	f.Closed = true
	return nil
}

// Reset rewinds to the first level and clears the error.
func (f *FakePin) Reset() {
	f.index = 0
	f.Reads = 0
	f.ReadError = nil
	f.Closed = false
}
