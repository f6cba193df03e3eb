// Package analytics defines the pluggable event sink behind trackEvent.
// Sinks never return errors to callers: tracking is best-effort and a
// failing sink must not affect the page.
package analytics

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/kalambet/persona/internal/storage"
)

// Sink receives named tracking events with optional structured data.
type Sink interface {
	Track(name string, data map[string]any)
}

// NopSink discards all events.
type NopSink struct{}

func (NopSink) Track(string, map[string]any) {}

// LogSink writes events to a structured logger.
type LogSink struct {
	Logger *slog.Logger
}

func (s LogSink) Track(name string, data map[string]any) {
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("event tracked", "event", name, "data", data)
}

// EventStore is the subset of storage.Store the StoreSink needs.
type EventStore interface {
	SaveEvent(e storage.Event) error
}

// StoreSink persists events to the local database. Write failures are
// logged and dropped.
type StoreSink struct {
	Store EventStore
	Clock func() time.Time // defaults to time.Now
}

func (s StoreSink) Track(name string, data map[string]any) {
	now := time.Now()
	if s.Clock != nil {
		now = s.Clock()
	}

	var dataJSON string
	if len(data) > 0 {
		b, err := json.Marshal(data)
		if err != nil {
			slog.Warn("serializing event data failed", "event", name, "error", err)
		} else {
			dataJSON = string(b)
		}
	}

	err := s.Store.SaveEvent(storage.Event{
		ID:        uuid.New().String(),
		CreatedAt: now,
		Name:      name,
		DataJSON:  dataJSON,
	})
	if err != nil {
		slog.Warn("persisting event failed", "event", name, "error", err)
	}
}

// ConsentGate wraps a sink and drops events while consent is withheld.
func ConsentGate(sink Sink, allowed func() bool) Sink {
	return consentGate{sink: sink, allowed: allowed}
}

type consentGate struct {
	sink    Sink
	allowed func() bool
}

func (g consentGate) Track(name string, data map[string]any) {
	if !g.allowed() {
		return
	}
	g.sink.Track(name, data)
}
