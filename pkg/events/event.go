package events

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event is the broker envelope. Consumers match on Event+Version, so payload
// changes that break compatibility must bump the version, never mutate v1.
type Event struct {
	Event         string      `json:"event"`
	Version       string      `json:"version"`
	Timestamp     time.Time   `json:"timestamp"`
	Payload       interface{} `json:"payload"`
	TraceID       string      `json:"traceId"`
	CorrelationID string      `json:"correlationId"`
}

// Headers carries the tracing context from the request into the envelope.
type Headers struct {
	TraceID       string
	CorrelationID string
	Service       string
}

func NewEvent(eventName, version string, payload interface{}, headers Headers) *Event {
	return &Event{
		Event:         eventName,
		Version:       version,
		Timestamp:     time.Now().UTC(),
		Payload:       payload,
		TraceID:       headers.TraceID,
		CorrelationID: headers.CorrelationID,
	}
}

func (e *Event) Marshal() ([]byte, error) {
	return json.Marshal(e)
}

// RoutingKey is "<event>.<version>", which is what queue bindings match on.
func (e *Event) RoutingKey() string {
	return e.Event + "." + e.Version
}

func NewTraceID() string {
	return uuid.New().String()
}

func NewCorrelationID() string {
	return uuid.New().String()
}
