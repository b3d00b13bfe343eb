package mqtt

import (
	"errors"
	"sync"

	"github.com/sweeney/bcd-clock/internal/button"
	"github.com/sweeney/bcd-clock/internal/logger"
)

// DefaultQueueSize is how many events an AsyncPublisher holds before dropping.
const DefaultQueueSize = 64

var (
	// ErrQueueFull is returned when the publish queue has no room.
	ErrQueueFull = errors.New("mqtt: publish queue full")

	// ErrClosed is returned after Close.
	ErrClosed = errors.New("mqtt: publisher closed")
)

// Kinds passed to the AsyncPublisher error callback.
const (
	KindButton = "button"
	KindSystem = "system"
)

type queued struct {
	button *button.Event
	system *SystemEvent
}

// AsyncPublisher hands events to inner from its own goroutine, so callers
// never wait on the broker. Events are delivered in the order they were
// queued.
type AsyncPublisher struct {
	inner   Publisher
	onError func(kind string, err error)
	queue   chan queued
	done    chan struct{}

	mu     sync.Mutex
	closed bool
}

// NewAsyncPublisher starts the delivery goroutine. onError, if non-nil, is
// called from that goroutine for every failed delivery.
func NewAsyncPublisher(inner Publisher, size int, onError func(kind string, err error)) *AsyncPublisher {
	p := &AsyncPublisher{
		inner:   inner,
		onError: onError,
		queue:   make(chan queued, size),
		done:    make(chan struct{}),
	}
	go p.run()
	return p
}

func (p *AsyncPublisher) run() {
	defer close(p.done)
	for q := range p.queue {
		kind, err := KindButton, error(nil)
		if q.system != nil {
			kind, err = KindSystem, p.inner.PublishSystem(*q.system)
		} else {
			err = p.inner.Publish(*q.button)
		}
		if err != nil {
			logger.Warnf("mqtt: %s publish failed: %v", kind, err)
			if p.onError != nil {
				p.onError(kind, err)
			}
		}
	}
}

func (p *AsyncPublisher) enqueue(q queued) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrClosed
	}
	select {
	case p.queue <- q:
		return nil
	default:
		return ErrQueueFull
	}
}

// Publish queues a button event.
func (p *AsyncPublisher) Publish(event button.Event) error {
	return p.enqueue(queued{button: &event})
}

// PublishSystem queues a system event.
func (p *AsyncPublisher) PublishSystem(event SystemEvent) error {
	return p.enqueue(queued{system: &event})
}

// Close delivers everything already queued, then closes inner.
func (p *AsyncPublisher) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.queue)
	p.mu.Unlock()

	<-p.done
	return p.inner.Close()
}
