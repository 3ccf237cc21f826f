package realtime

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"claresys/pkg/logger"
)

var ErrBridgeClosed = errors.New("realtime bridge is closed")

const subscribeQoS = 1

// Handler receives every decoded envelope published on a subscribed topic.
type Handler func(topic string, env Envelope)

type Config struct {
	BrokerURL         string
	ClientID          string
	TopicPrefix       string
	KeepAlive         time.Duration
	ReconnectInterval time.Duration
}

// Bridge owns the broker connection and the set of live subscriptions.
// Reconnects are handled by the underlying client; subscriptions are
// re-established automatically because the session resumes on the same
// client instance.
type Bridge struct {
	client mqtt.Client
	prefix string
	log    *logger.Logger

	mu     sync.Mutex
	closed bool
}

func New(cfg Config, log *logger.Logger) *Bridge {
	opts := mqtt.NewClientOptions().
		AddBroker(cfg.BrokerURL).
		SetClientID(cfg.ClientID).
		SetKeepAlive(cfg.KeepAlive).
		SetCleanSession(true).
		SetAutoReconnect(true).
		SetMaxReconnectInterval(cfg.ReconnectInterval).
		SetConnectRetry(true).
		SetConnectRetryInterval(cfg.ReconnectInterval)

	opts.OnConnect = func(mqtt.Client) {
		log.Info("Connected to realtime broker", "broker", cfg.BrokerURL)
	}
	opts.OnConnectionLost = func(_ mqtt.Client, err error) {
		log.Warn("Realtime broker connection lost", "error", err)
	}

	return &Bridge{
		client: mqtt.NewClient(opts),
		prefix: cfg.TopicPrefix,
		log:    log,
	}
}

// newBridge wires an existing client, used by tests.
func newBridge(client mqtt.Client, prefix string, log *logger.Logger) *Bridge {
	return &Bridge{client: client, prefix: prefix, log: log}
}

func (b *Bridge) Prefix() string {
	return b.prefix
}

// Connect blocks until the broker accepts the connection or ctx expires.
func (b *Bridge) Connect(ctx context.Context) error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return ErrBridgeClosed
	}
	b.mu.Unlock()

	token := b.client.Connect()
	select {
	case <-token.Done():
		if err := token.Error(); err != nil {
			return fmt.Errorf("failed to connect to broker: %w", err)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Subscribe attaches a handler to one topic and returns its lifecycle
// handle. Malformed payloads are logged and dropped before they reach the
// handler.
func (b *Bridge) Subscribe(topic string, handler Handler) (*Subscription, error) {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil, ErrBridgeClosed
	}
	b.mu.Unlock()

	callback := func(_ mqtt.Client, msg mqtt.Message) {
		env, err := DecodeEnvelope(msg.Payload())
		if err != nil {
			b.log.Warn("Dropping unreadable realtime message",
				"topic", msg.Topic(),
				"error", err,
			)
			return
		}
		handler(msg.Topic(), env)
	}

	token := b.client.Subscribe(topic, subscribeQoS, callback)
	token.Wait()
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("failed to subscribe to %s: %w", topic, err)
	}

	b.log.Debug("Subscribed", "topic", topic)
	return &Subscription{bridge: b, topic: topic}, nil
}

// Close disconnects from the broker. Individual subscriptions do not need
// to be closed first; the broker drops them with the connection.
func (b *Bridge) Close() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true
	b.mu.Unlock()

	b.client.Disconnect(250)
	b.log.Info("Realtime bridge closed")
}

// Subscription is the handle a screen holds while it is visible. Close is
// idempotent and always releases the topic, matching the rule that every
// Subscribe has exactly one Unsubscribe.
type Subscription struct {
	bridge *Bridge
	topic  string
	once   sync.Once
	err    error
}

func (s *Subscription) Topic() string {
	return s.topic
}

func (s *Subscription) Close() error {
	s.once.Do(func() {
		token := s.bridge.client.Unsubscribe(s.topic)
		token.Wait()
		if err := token.Error(); err != nil {
			s.err = fmt.Errorf("failed to unsubscribe from %s: %w", s.topic, err)
			return
		}
		s.bridge.log.Debug("Unsubscribed", "topic", s.topic)
	})
	return s.err
}
