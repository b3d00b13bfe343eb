package mqtt

import "github.com/sweeney/bcd-clock/internal/logger"

// bufferedMsg stores a serialized MQTT message for replay after reconnection.
type bufferedMsg struct {
	topic    string
	payload  []byte
	qos      byte
	retained bool
}

// ringBuffer is a fixed-capacity FIFO that stores messages while disconnected.
// The oldest message is dropped when full.
// Not safe for concurrent use; the caller synchronizes.
type ringBuffer struct {
	buf     []bufferedMsg
	head    int // next write position
	count   int
	dropped int // messages overwritten since last drain
}

func newRingBuffer(capacity int) *ringBuffer {
	if capacity < 1 {
		capacity = 1
	}
	return &ringBuffer{buf: make([]bufferedMsg, capacity)}
}

func (r *ringBuffer) push(msg bufferedMsg) {
	if r.count == len(r.buf) {
		if r.dropped == 0 {
			logger.Warnf("mqtt: buffer full (%d messages), dropping oldest", len(r.buf))
		}
		r.dropped++
	} else {
		r.count++
	}
	r.buf[r.head] = msg
	r.head = (r.head + 1) % len(r.buf)
}

// drainAll returns the buffered messages oldest first and empties the buffer.
func (r *ringBuffer) drainAll() []bufferedMsg {
	if r.count == 0 {
		return nil
	}

	result := make([]bufferedMsg, r.count)
	start := (r.head - r.count + len(r.buf)) % len(r.buf)
	for i := range result {
		result[i] = r.buf[(start+i)%len(r.buf)]
	}

	if r.dropped > 0 {
		logger.Warnf("mqtt: %d buffered messages were dropped while disconnected", r.dropped)
	}
	r.count = 0
	r.head = 0
	r.dropped = 0
	return result
}

func (r *ringBuffer) len() int {
	return r.count
}
