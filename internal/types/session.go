package types

import (
	"time"

	"github.com/google/uuid"
)

// Session binds an opaque identifier to one generated itinerary for a
// limited time. The identifier is generated server-side and never derived
// from user input. Only ExpiresAt ever changes after creation.
type Session struct {
	ID        uuid.UUID `json:"session_id"`
	Itinerary Itinerary `json:"itinerary"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the session should be treated as absent.
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

// ItineraryResponse is the wire shape shared by the generate and lookup
// endpoints: the itinerary fields inlined next to the session id.
type ItineraryResponse struct {
	SessionID uuid.UUID `json:"session_id"`
	Itinerary
}
