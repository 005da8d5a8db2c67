package types

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// User is a first-party account record.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name,omitempty"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Claims are the JWT claims issued for first-party access tokens.
type Claims struct {
	UserID string `json:"sub_id"`
	jwt.RegisteredClaims
}

// SavedTrip is an itinerary persisted permanently for an authenticated
// user, converted from an ephemeral session.
type SavedTrip struct {
	ID        uuid.UUID `json:"trip_id"`
	UserID    uuid.UUID `json:"user_id"`
	Itinerary Itinerary `json:"itinerary"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}
