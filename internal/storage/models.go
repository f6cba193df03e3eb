package storage

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a requested key or record does not exist.
var ErrNotFound = errors.New("not found")

// Well-known keys in the kv table. The profile value is a JSON-serialized
// snapshot of the visitor profile; consent is "true"/"false".
const (
	KeyUserProfile = "user_profile"
	KeyConsent     = "consent"
)

// Event is a single tracked analytics event, persisted by the store-backed
// analytics sink.
type Event struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	Name      string    `json:"name"`
	DataJSON  string    `json:"data,omitempty"` // JSON object stored as text; may be empty
}
