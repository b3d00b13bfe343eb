package mqtt

import (
	"fmt"
	"sync"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"

	"github.com/sweeney/bcd-clock/internal/button"
	"github.com/sweeney/bcd-clock/internal/logger"
)

// DefaultBufferSize is how many messages are kept while the broker is unreachable.
const DefaultBufferSize = 100

// RealPublisher publishes to an actual MQTT broker.
// Messages published while disconnected are buffered and replayed on reconnect.
type RealPublisher struct {
	client paho.Client

	mu            sync.Mutex
	buf           *ringBuffer
	everConnected bool
}

// ClientID returns a broker client ID unique to this process.
func ClientID() string {
	return "bcd-clock-" + uuid.NewString()[:8]
}

// NewRealPublisher creates a publisher for the given broker. It does not wait
// for the connection: the client keeps retrying in the background and
// messages are buffered until it succeeds.
func NewRealPublisher(broker string) *RealPublisher {
	p := &RealPublisher{buf: newRingBuffer(DefaultBufferSize)}

	opts := paho.NewClientOptions().
		AddBroker(broker).
		SetClientID(ClientID()).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5 * time.Second).
		SetWill(TopicSystem, string(willPayload()), 1, true).
		SetOnConnectHandler(p.onConnect).
		SetConnectionLostHandler(func(_ paho.Client, err error) {
			logger.Warnf("mqtt: connection lost: %v", err)
		})

	p.client = paho.NewClient(opts)
	p.client.Connect()
	return p
}

func (p *RealPublisher) onConnect(c paho.Client) {
	p.mu.Lock()
	pending := p.buf.drainAll()
	reconnect := p.everConnected
	p.everConnected = true
	p.mu.Unlock()

	logger.Infof("mqtt: connected, replaying %d buffered messages", len(pending))
	for _, msg := range pending {
		token := c.Publish(msg.topic, msg.qos, msg.retained, msg.payload)
		if !token.WaitTimeout(5 * time.Second) {
			logger.Warnf("mqtt: replay to %s timed out", msg.topic)
			continue
		}
		if err := token.Error(); err != nil {
			logger.Warnf("mqtt: replay to %s: %v", msg.topic, err)
		}
	}

	if reconnect {
		payload, _ := FormatSystemPayload(SystemEvent{Timestamp: time.Now(), Event: "RECONNECTED"})
		c.Publish(TopicSystem, 1, false, payload)
	}
}

// Publish sends a button event to the MQTT broker.
func (p *RealPublisher) Publish(event button.Event) error {
	payload, err := FormatPayload(event)
	if err != nil {
		return fmt.Errorf("format payload: %w", err)
	}

	// QoS 0 (at-most-once), not retained
	if err := p.publish(Topic, 0, false, payload); err != nil {
		return fmt.Errorf("publish: %w", err)
	}
	return nil
}

// PublishSystem sends a system lifecycle event to the MQTT broker.
func (p *RealPublisher) PublishSystem(event SystemEvent) error {
	payload, err := FormatSystemPayload(event)
	if err != nil {
		return fmt.Errorf("format system payload: %w", err)
	}

	// QoS 1 (at-least-once) for lifecycle events
	if err := p.publish(TopicSystem, 1, event.Retained, payload); err != nil {
		return fmt.Errorf("publish system: %w", err)
	}
	return nil
}

func (p *RealPublisher) publish(topic string, qos byte, retained bool, payload []byte) error {
	p.mu.Lock()
	if !p.client.IsConnectionOpen() {
		p.buf.push(bufferedMsg{topic: topic, payload: payload, qos: qos, retained: retained})
		p.mu.Unlock()
		return nil
	}
	p.mu.Unlock()

	token := p.client.Publish(topic, qos, retained, payload)
	if !token.WaitTimeout(5 * time.Second) {
		return fmt.Errorf("timeout")
	}
	return token.Error()
}

// IsConnected reports whether the broker connection is currently open.
func (p *RealPublisher) IsConnected() bool {
	return p.client.IsConnectionOpen()
}

// Close disconnects from the broker.
func (p *RealPublisher) Close() error {
	p.client.Disconnect(1000) // 1 second timeout
	return nil
}
