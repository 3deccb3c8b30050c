package models

import (
	"time"
)

// Match types describe team-size shape, independent of score.
const (
	MatchType1v1    = "1v1"
	MatchType2v2    = "2v2"
	MatchType3v1    = "3v1"
	MatchTypeCustom = "custom"
)

// EndedBy values determine how the winner is derived.
const (
	EndedByRegular   = "regular"
	EndedByPenalties = "penalties"
	EndedByForfeit   = "forfeit"
)

// Match records one played game between two disjoint teams
type Match struct {
	ID       string    `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	PlayedAt time.Time `gorm:"index;not null" json:"played_at"`
	Type     string    `gorm:"type:varchar(16);not null" json:"type"` // 1v1/2v2/3v1/custom

	Team1 []string `gorm:"serializer:json;not null" json:"team1"`
	Team2 []string `gorm:"serializer:json;not null" json:"team2"`

	ScoreTeam1 int `gorm:"not null" json:"score_team1"`
	ScoreTeam2 int `gorm:"not null" json:"score_team2"`

	EndedBy       string `gorm:"type:varchar(16);default:'regular'" json:"ended_by"`
	PenaltyWinner *int   `json:"penalty_winner,omitempty"` // 1 or 2, required when ended_by=penalties
	ForfeitLoser  *int   `json:"forfeit_loser,omitempty"`  // 1 or 2, required when ended_by=forfeit

	// Optional tournament linkage
	TournamentID *string `gorm:"index" json:"tournament_id,omitempty"`
	FixtureSlot  *int    `json:"fixture_slot,omitempty"` // index into the tournament's fixtures array

	// Append-only audit trail, populated by the edit flow
	Edits []MatchEdit `gorm:"foreignKey:MatchID" json:"edits,omitempty"`

	Timestamps
}

// MatchEdit is one audit entry describing a prior-state change. Rows are only
// ever appended, never rewritten.
type MatchEdit struct {
	ID       string    `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	MatchID  string    `gorm:"index;not null" json:"match_id"`
	EditedBy string    `json:"edited_by"`
	EditedAt time.Time `gorm:"autoCreateTime" json:"edited_at"`
	Change   string    `gorm:"type:text" json:"change"` // human-readable prior-state description
}

// Participants returns the union of both teams, in team order.
func (m *Match) Participants() []string {
	out := make([]string, 0, len(m.Team1)+len(m.Team2))
	out = append(out, m.Team1...)
	out = append(out, m.Team2...)
	return out
}

// Score returns the match score for the given team number (1 or 2).
func (m *Match) Score(team int) int {
	if team == 1 {
		return m.ScoreTeam1
	}
	return m.ScoreTeam2
}
