package services

import (
	"testing"

	"fifa-tracker/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyMatchBasicWin(t *testing.T) {
	m := newMatch("m1", solo("A"), solo("B"), 3, 1)

	statsA, err := ApplyMatch(models.PlayerStats{}, &m, "A", +1)
	require.NoError(t, err)
	assert.Equal(t, models.PlayerStats{
		MatchesPlayed: 1, Wins: 1, GoalsScored: 3, GoalsConceded: 1,
	}, statsA)

	statsB, err := ApplyMatch(models.PlayerStats{}, &m, "B", +1)
	require.NoError(t, err)
	assert.Equal(t, models.PlayerStats{
		MatchesPlayed: 1, Losses: 1, GoalsScored: 1, GoalsConceded: 3,
	}, statsB)
}

func TestApplyMatchReversibility(t *testing.T) {
	matches := []models.Match{
		newMatch("m1", solo("A"), solo("B"), 3, 1),
		newMatch("m2", solo("A"), solo("B"), 1, 1),
		newMatch("m3", solo("A"), solo("B"), 2, 2, onPenalties(2)),
		newMatch("m4", []string{"A", "C"}, []string{"B", "D"}, 0, 4, onForfeit(1)),
	}
	start := models.PlayerStats{
		MatchesPlayed: 10, Wins: 4, Draws: 3, Losses: 3,
		GoalsScored: 17, GoalsConceded: 12,
	}

	for _, m := range matches {
		for _, p := range m.Participants() {
			forward, err := ApplyMatch(start, &m, p, +1)
			require.NoError(t, err)
			back, err := ApplyMatch(forward, &m, p, -1)
			require.NoError(t, err)
			assert.Equal(t, start, back, "match %s player %s", m.ID, p)
		}
	}
}

func TestApplyMatchRejectsBadSign(t *testing.T) {
	m := newMatch("m1", solo("A"), solo("B"), 1, 0)
	_, err := ApplyMatch(models.PlayerStats{}, &m, "A", 2)
	assert.Error(t, err)
}

func TestApplyMatchClampsAtZero(t *testing.T) {
	// Reversing against an already-empty record clamps instead of going
	// negative; the recompute path repairs the resulting drift.
	m := newMatch("m1", solo("A"), solo("B"), 3, 1)
	stats, err := ApplyMatch(models.PlayerStats{}, &m, "A", -1)
	require.NoError(t, err)
	assert.Equal(t, models.PlayerStats{}, stats)
}

func TestDeriveStatsIsOrderIndependent(t *testing.T) {
	matches := []models.Match{
		newMatch("m1", solo("A"), solo("B"), 3, 1),
		newMatch("m2", solo("B"), solo("A"), 2, 2),
		newMatch("m3", []string{"A", "B"}, []string{"C", "D"}, 1, 0),
		newMatch("m4", solo("C"), solo("A"), 2, 0),
	}
	reversed := []models.Match{matches[3], matches[2], matches[1], matches[0]}

	forward, err := DeriveStats("A", matches)
	require.NoError(t, err)
	backward, err := DeriveStats("A", reversed)
	require.NoError(t, err)
	assert.Equal(t, forward, backward)

	assert.Equal(t, models.PlayerStats{
		MatchesPlayed: 4, Wins: 2, Draws: 1, Losses: 1,
		GoalsScored: 6, GoalsConceded: 5,
	}, forward)
}

func TestDeriveStatsIdempotent(t *testing.T) {
	matches := []models.Match{
		newMatch("m1", solo("A"), solo("B"), 3, 1),
		newMatch("m2", solo("A"), solo("B"), 0, 2),
	}
	first, err := DeriveStats("A", matches)
	require.NoError(t, err)
	second, err := DeriveStats("A", matches)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestDeriveStatsSkipsOtherPlayersMatches(t *testing.T) {
	matches := []models.Match{
		newMatch("m1", solo("C"), solo("D"), 9, 0),
	}
	stats, err := DeriveStats("A", matches)
	require.NoError(t, err)
	assert.Equal(t, models.PlayerStats{}, stats)
}

func TestEditReversalScenario(t *testing.T) {
	// A 2-0 win edited into a 1-1 draw: reverse old, apply new.
	old := newMatch("m1", solo("A"), solo("B"), 2, 0)
	edited := newMatch("m1", solo("A"), solo("B"), 1, 1)

	stats, err := ApplyMatch(models.PlayerStats{}, &old, "A", +1)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Wins)

	stats, err = ApplyMatch(stats, &old, "A", -1)
	require.NoError(t, err)
	stats, err = ApplyMatch(stats, &edited, "A", +1)
	require.NoError(t, err)

	assert.Equal(t, models.PlayerStats{
		MatchesPlayed: 1, Draws: 1, GoalsScored: 1, GoalsConceded: 1,
	}, stats)
}
