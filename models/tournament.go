package models

import (
	"time"
)

// Tournament types
const (
	TournamentLeague   = "league"
	TournamentKnockout = "knockout"
)

// Tournament status values. Transitions are one-directional:
// draft → active → completed.
const (
	TournamentDraft     = "draft"
	TournamentActive    = "active"
	TournamentCompleted = "completed"
)

// ByeTeam is the placeholder opponent for a walkover. A fixture with a BYE
// side resolves immediately with the other side as winner, no match required.
const ByeTeam = "BYE"

// Fixture is one scheduled pairing inside a tournament. For knockout
// tournaments the fixtures slice is the flat bracket array, first round
// first; later-round fixtures start out with empty teams and are filled by
// winner propagation.
type Fixture struct {
	Team1 []string `json:"team1"`
	Team2 []string `json:"team2"`
}

// Tournament represents a league or single-elimination knockout
type Tournament struct {
	ID        string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	Slug      string `gorm:"uniqueIndex;not null" json:"slug"`
	Name      string `gorm:"not null" json:"name"`
	Type      string `gorm:"type:varchar(16);not null" json:"type"` // league | knockout
	Status    string `gorm:"type:varchar(16);default:'draft'" json:"status"`
	CreatedBy string `gorm:"index;not null" json:"created_by"`

	// Snapshot of player ids taken at creation; immutable afterward.
	Participants []string `gorm:"serializer:json;not null" json:"participants"`

	// nil = no draw performed yet. Once set, fixtures are the single source
	// of truth for which matches belong to the tournament and in what order.
	Fixtures []Fixture `gorm:"serializer:json" json:"fixtures,omitempty"`

	Winner      *string    `json:"winner,omitempty"` // frozen on completion
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	Timestamps
}
