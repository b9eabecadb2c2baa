package domain

import (
	"time"

	"github.com/google/uuid"
)

// Match is a fixture or result under a license.
type Match struct {
	ID           uuid.UUID `json:"id"`
	Opponent     string    `json:"opponent"`
	KickoffAt    time.Time `json:"kickoff_at"`
	Home         bool      `json:"home"`
	Played       bool      `json:"played"`
	GoalsFor     int       `json:"goals_for"`
	GoalsAgainst int       `json:"goals_against"`
}

// TeamSummary is the dashboard aggregate for a license.
type TeamSummary struct {
	PlayerCount  int    `json:"player_count"`
	MatchesWon   int    `json:"matches_won"`
	MatchesDrawn int    `json:"matches_drawn"`
	MatchesLost  int    `json:"matches_lost"`
	NextMatch    *Match `json:"next_match,omitempty"`
}
