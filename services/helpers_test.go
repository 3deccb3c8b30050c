package services

import (
	"time"

	"fifa-tracker/models"
)

var testKickoff = time.Date(2025, 6, 1, 18, 0, 0, 0, time.UTC)

type matchOpt func(*models.Match)

func at(t time.Time) matchOpt {
	return func(m *models.Match) { m.PlayedAt = t }
}

func onPenalties(winner int) matchOpt {
	return func(m *models.Match) {
		m.EndedBy = models.EndedByPenalties
		m.PenaltyWinner = &winner
	}
}

func onForfeit(loser int) matchOpt {
	return func(m *models.Match) {
		m.EndedBy = models.EndedByForfeit
		m.ForfeitLoser = &loser
	}
}

func inTournament(id string, slot int) matchOpt {
	return func(m *models.Match) {
		m.TournamentID = &id
		m.FixtureSlot = &slot
	}
}

// newMatch builds a regular-ending test match. The first variadic options
// run against a match played at testKickoff.
func newMatch(id string, team1 []string, team2 []string, s1, s2 int, opts ...matchOpt) models.Match {
	m := models.Match{
		ID:         id,
		PlayedAt:   testKickoff,
		Type:       models.MatchTypeCustom,
		Team1:      team1,
		Team2:      team2,
		ScoreTeam1: s1,
		ScoreTeam2: s2,
		EndedBy:    models.EndedByRegular,
	}
	if len(team1) == 1 && len(team2) == 1 {
		m.Type = models.MatchType1v1
	}
	if len(team1) == 2 && len(team2) == 2 {
		m.Type = models.MatchType2v2
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

func solo(id string) []string { return []string{id} }
