package realtime

import (
	"encoding/json"
	"testing"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"claresys/pkg/logger"
)

type doneToken struct{}

func (doneToken) Wait() bool                     { return true }
func (doneToken) WaitTimeout(time.Duration) bool { return true }
func (doneToken) Done() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}
func (doneToken) Error() error { return nil }

type fakeClient struct {
	subscribed   map[string]mqtt.MessageHandler
	unsubscribed []string
	disconnected bool
}

func newFakeClient() *fakeClient {
	return &fakeClient{subscribed: map[string]mqtt.MessageHandler{}}
}

func (f *fakeClient) Connect() mqtt.Token     { return doneToken{} }
func (f *fakeClient) Disconnect(quiesce uint) { f.disconnected = true }
func (f *fakeClient) Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token {
	return doneToken{}
}
func (f *fakeClient) Subscribe(topic string, qos byte, callback mqtt.MessageHandler) mqtt.Token {
	f.subscribed[topic] = callback
	return doneToken{}
}
func (f *fakeClient) SubscribeMultiple(filters map[string]byte, callback mqtt.MessageHandler) mqtt.Token {
	return doneToken{}
}
func (f *fakeClient) Unsubscribe(topics ...string) mqtt.Token {
	f.unsubscribed = append(f.unsubscribed, topics...)
	return doneToken{}
}
func (f *fakeClient) AddRoute(topic string, callback mqtt.MessageHandler) {}
func (f *fakeClient) IsConnected() bool                                   { return true }
func (f *fakeClient) IsConnectionOpen() bool                              { return true }
func (f *fakeClient) OptionsReader() mqtt.ClientOptionsReader             { return mqtt.ClientOptionsReader{} }

type fakeMessage struct {
	topic   string
	payload []byte
}

func (m fakeMessage) Duplicate() bool   { return false }
func (m fakeMessage) Qos() byte         { return 1 }
func (m fakeMessage) Retained() bool    { return false }
func (m fakeMessage) Topic() string     { return m.topic }
func (m fakeMessage) MessageID() uint16 { return 0 }
func (m fakeMessage) Payload() []byte   { return m.payload }
func (m fakeMessage) Ack()              {}

func TestDecodeEnvelope(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		wantErr bool
	}{
		{"valid envelope", `{"v":1,"event":"booking.approved","occurredAt":"2025-10-21T09:00:00","data":{"bookingId":"b-1"}}`, false},
		{"missing event name", `{"v":1,"occurredAt":"2025-10-21T09:00:00"}`, true},
		{"future version", `{"v":2,"event":"booking.approved"}`, true},
		{"zero version", `{"event":"booking.approved"}`, true},
		{"not json", `hello`, true},
		{"empty payload", ``, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env, err := DecodeEnvelope([]byte(tt.payload))
			if (err != nil) != tt.wantErr {
				t.Fatalf("DecodeEnvelope error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && env.Event == "" {
				t.Error("decoded envelope has no event")
			}
		})
	}
}

func TestTopicBuilders(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"classroom bookings", ClassroomBookingsTopic("claresys", "c-101"), "claresys/classrooms/c-101/bookings"},
		{"booking status", BookingStatusTopic("claresys", "b-1"), "claresys/bookings/b-1/status"},
		{"user notifications", UserNotificationsTopic("claresys", "u-1"), "claresys/users/u-1/notifications"},
		{"events", EventsTopic("stage", "maintenance"), "stage/events/maintenance"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("topic = %q, want %q", tt.got, tt.want)
			}
		})
	}
}

func TestSubscribeDeliversDecodedEnvelopes(t *testing.T) {
	client := newFakeClient()
	bridge := newBridge(client, "claresys", logger.Nop())

	var received []Envelope
	sub, err := bridge.Subscribe(ClassroomBookingsTopic("claresys", "c-101"), func(topic string, env Envelope) {
		received = append(received, env)
	})
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}

	callback := client.subscribed[sub.Topic()]
	if callback == nil {
		t.Fatal("no callback registered with the client")
	}

	payload, _ := json.Marshal(Envelope{V: 1, Event: "booking.created", OccurredAt: "2025-10-21T09:00:00"})
	callback(client, fakeMessage{topic: sub.Topic(), payload: payload})
	callback(client, fakeMessage{topic: sub.Topic(), payload: []byte("not json")})

	if len(received) != 1 {
		t.Fatalf("handler received %d envelopes, want 1 (malformed dropped)", len(received))
	}
	if received[0].Event != "booking.created" {
		t.Errorf("event = %q", received[0].Event)
	}
}

func TestSubscriptionCloseIsIdempotent(t *testing.T) {
	client := newFakeClient()
	bridge := newBridge(client, "claresys", logger.Nop())

	sub, err := bridge.Subscribe(BookingStatusTopic("claresys", "b-1"), func(string, Envelope) {})
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}

	if err := sub.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := sub.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}

	if len(client.unsubscribed) != 1 {
		t.Errorf("Unsubscribe called %d times, want exactly 1", len(client.unsubscribed))
	}
	if client.unsubscribed[0] != "claresys/bookings/b-1/status" {
		t.Errorf("unsubscribed topic = %q", client.unsubscribed[0])
	}
}

func TestClosedBridgeRefusesSubscriptions(t *testing.T) {
	client := newFakeClient()
	bridge := newBridge(client, "claresys", logger.Nop())

	bridge.Close()
	if !client.disconnected {
		t.Error("Close should disconnect the client")
	}

	if _, err := bridge.Subscribe("claresys/events/system", func(string, Envelope) {}); err != ErrBridgeClosed {
		t.Errorf("Subscribe after Close = %v, want ErrBridgeClosed", err)
	}
}
