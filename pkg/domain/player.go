package domain

import (
	"time"

	"github.com/google/uuid"
)

// Player is a roster entry under a license.
type Player struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Position string    `json:"position"`
	Number   int       `json:"number"`
	JoinedAt time.Time `json:"joined_at"`
}
