package realtime

import (
	"encoding/json"
	"fmt"
)

// EnvelopeVersion is the only payload version this client understands.
const EnvelopeVersion = 1

// Envelope is the wire frame every broker message is wrapped in. Data is
// kept raw; each subscriber decodes it into its own event type.
type Envelope struct {
	V          int             `json:"v"`
	Event      string          `json:"event"`
	OccurredAt string          `json:"occurredAt"`
	Data       json.RawMessage `json:"data"`
}

// DecodeEnvelope parses a broker payload. Messages that are not valid JSON,
// carry an unknown version, or lack an event name are rejected so one
// malformed publish cannot take a subscriber down.
func DecodeEnvelope(payload []byte) (Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return Envelope{}, fmt.Errorf("malformed envelope: %w", err)
	}
	if env.V != EnvelopeVersion {
		return Envelope{}, fmt.Errorf("unsupported envelope version %d", env.V)
	}
	if env.Event == "" {
		return Envelope{}, fmt.Errorf("envelope has no event name")
	}
	return env, nil
}
