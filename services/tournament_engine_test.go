package services

import (
	"math/rand"
	"testing"
	"time"

	"fifa-tracker/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func knockoutTournament(id string, participants ...string) *models.Tournament {
	return &models.Tournament{
		ID:           id,
		Type:         models.TournamentKnockout,
		Status:       models.TournamentActive,
		Participants: participants,
	}
}

func TestLeagueStandingsPointsAndTieBreak(t *testing.T) {
	tournament := &models.Tournament{
		ID:           "t1",
		Type:         models.TournamentLeague,
		Status:       models.TournamentActive,
		Participants: []string{"A", "B", "C"},
	}
	day := 24 * time.Hour
	matches := []models.Match{
		newMatch("m1", solo("A"), solo("B"), 3, 0, inTournament("t1", 0), at(testKickoff)),
		newMatch("m2", solo("B"), solo("C"), 1, 1, inTournament("t1", 1), at(testKickoff.Add(day))),
		newMatch("m3", solo("A"), solo("C"), 0, 1, inTournament("t1", 2), at(testKickoff.Add(2*day))),
		// Matches outside the tournament never count.
		newMatch("m4", solo("C"), solo("A"), 9, 0, at(testKickoff.Add(3*day))),
	}

	table, err := LeagueStandings(tournament, matches)
	require.NoError(t, err)
	require.Len(t, table, 3)

	// C: W1 D1 = 4 points. A: W1 L1 = 3 points. B: D1 L1 = 1 point.
	assert.Equal(t, "C", table[0].PlayerID)
	assert.Equal(t, 4, table[0].Points)
	assert.Equal(t, 1, table[0].GoalDiff)
	assert.Equal(t, 1, table[0].Position)

	assert.Equal(t, "A", table[1].PlayerID)
	assert.Equal(t, 3, table[1].Points)
	assert.Equal(t, 2, table[1].GoalDiff)

	assert.Equal(t, "B", table[2].PlayerID)
	assert.Equal(t, 1, table[2].Points)
}

func TestLeagueStandingsSortsByPointsFirst(t *testing.T) {
	tournament := &models.Tournament{
		ID:           "t1",
		Type:         models.TournamentLeague,
		Participants: []string{"A", "B"},
	}
	matches := []models.Match{
		newMatch("m1", solo("A"), solo("B"), 1, 0, inTournament("t1", 0)),
		newMatch("m2", solo("A"), solo("B"), 2, 0, inTournament("t1", 1)),
	}
	table, err := LeagueStandings(tournament, matches)
	require.NoError(t, err)
	assert.Equal(t, "A", table[0].PlayerID)
	assert.Equal(t, 6, table[0].Points)
	assert.Equal(t, 0, table[1].Points)
}

func TestWinnerTeam(t *testing.T) {
	regular := newMatch("m1", solo("A"), solo("B"), 1, 3)
	assert.Equal(t, 2, WinnerTeam(&regular))

	drawn := newMatch("m2", solo("A"), solo("B"), 2, 2)
	assert.Equal(t, 0, WinnerTeam(&drawn))

	penalties := newMatch("m3", solo("A"), solo("B"), 1, 1, onPenalties(1))
	assert.Equal(t, 1, WinnerTeam(&penalties))

	forfeit := newMatch("m4", solo("A"), solo("B"), 0, 0, onForfeit(2))
	assert.Equal(t, 1, WinnerTeam(&forfeit))
}

func TestBuildBracketByeAutoResolves(t *testing.T) {
	tournament := knockoutTournament("t1", "P1", "P2", "P3")
	tournament.Fixtures = []models.Fixture{
		{Team1: []string{"P1"}, Team2: []string{"P2"}},
		{Team1: []string{"P3"}, Team2: []string{models.ByeTeam}},
		{},
	}

	slots, err := BuildBracket(tournament, nil)
	require.NoError(t, err)
	require.Len(t, slots, 3)

	// The BYE slot completes without any match record, P3 advancing.
	assert.Equal(t, SlotCompleted, slots[1].Status)
	assert.Equal(t, []string{"P3"}, slots[1].Winner)
	assert.Equal(t, []string{"P3"}, slots[2].Team2)

	// Slot 0 has both teams but no result yet.
	assert.Equal(t, SlotReady, slots[0].Status)
	// The final still waits for slot 0.
	assert.Equal(t, SlotPending, slots[2].Status)
}

func TestBuildBracketWinnerPropagation(t *testing.T) {
	tournament := knockoutTournament("t1", "P1", "P2", "P3", "P4")
	tournament.Fixtures = []models.Fixture{
		{Team1: []string{"P1"}, Team2: []string{"P2"}},
		{Team1: []string{"P3"}, Team2: []string{"P4"}},
		{},
	}
	matches := []models.Match{
		newMatch("m1", solo("P1"), solo("P2"), 2, 0, inTournament("t1", 0)),
		newMatch("m2", solo("P3"), solo("P4"), 0, 1, inTournament("t1", 1)),
	}

	slots, err := BuildBracket(tournament, matches)
	require.NoError(t, err)
	require.Len(t, slots, 3)

	assert.Equal(t, SlotCompleted, slots[0].Status)
	assert.Equal(t, SlotCompleted, slots[1].Status)

	// Winners flow into the final automatically: slot 0 into team1, slot 1
	// into team2.
	assert.Equal(t, []string{"P1"}, slots[2].Team1)
	assert.Equal(t, []string{"P4"}, slots[2].Team2)
	assert.Equal(t, SlotReady, slots[2].Status)
	assert.Equal(t, 1, slots[2].Round)

	assert.Nil(t, BracketWinner(slots))

	// Record the final and the bracket produces a champion.
	final := newMatch("m3", solo("P1"), solo("P4"), 3, 1, inTournament("t1", 2))
	slots, err = BuildBracket(tournament, append(matches, final))
	require.NoError(t, err)
	assert.Equal(t, []string{"P1"}, BracketWinner(slots))
}

func TestBuildBracketDrawnRecordDoesNotComplete(t *testing.T) {
	tournament := knockoutTournament("t1", "P1", "P2")
	tournament.Fixtures = []models.Fixture{
		{Team1: []string{"P1"}, Team2: []string{"P2"}},
	}
	drawn := newMatch("m1", solo("P1"), solo("P2"), 1, 1, inTournament("t1", 0))

	slots, err := BuildBracket(tournament, []models.Match{drawn})
	require.NoError(t, err)
	assert.Equal(t, SlotReady, slots[0].Status)
	assert.Nil(t, BracketWinner(slots))
}

func TestBuildBracketNoFixtures(t *testing.T) {
	tournament := knockoutTournament("t1", "P1", "P2")
	slots, err := BuildBracket(tournament, nil)
	require.NoError(t, err)
	assert.Nil(t, slots)
}

func TestGenerateKnockoutFixturesPadsToPowerOfTwo(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	participants := []string{"P1", "P2", "P3", "P4", "P5", "P6"}

	fixtures := GenerateKnockoutFixtures(participants, rng)
	// Bracket of 8: 4 first-round fixtures + 2 semis + 1 final.
	require.Len(t, fixtures, 7)

	byes := 0
	seen := map[string]int{}
	for _, f := range fixtures[:4] {
		require.Len(t, f.Team1, 1)
		require.Len(t, f.Team2, 1)
		for _, id := range []string{f.Team1[0], f.Team2[0]} {
			if id == models.ByeTeam {
				byes++
			} else {
				seen[id]++
			}
		}
	}
	assert.Equal(t, 2, byes)
	assert.Len(t, seen, 6)
	for id, n := range seen {
		assert.Equal(t, 1, n, id)
	}

	// Later rounds start empty and get filled by propagation.
	for _, f := range fixtures[4:] {
		assert.Empty(t, f.Team1)
		assert.Empty(t, f.Team2)
	}
}

func TestGenerateLeagueFixturesAllPairs(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	participants := []string{"A", "B", "C", "D"}

	fixtures := GenerateLeagueFixtures(participants, rng)
	// n*(n-1)/2 pairings, each player in exactly n-1 of them.
	require.Len(t, fixtures, 6)

	appearances := map[string]int{}
	for _, f := range fixtures {
		require.Len(t, f.Team1, 1)
		require.Len(t, f.Team2, 1)
		require.NotEqual(t, f.Team1[0], f.Team2[0])
		appearances[f.Team1[0]]++
		appearances[f.Team2[0]]++
	}
	for _, id := range participants {
		assert.Equal(t, 3, appearances[id], id)
	}
}

func TestGeneratedKnockoutBracketResolvesEndToEnd(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	participants := []string{"P1", "P2", "P3", "P4", "P5"}
	tournament := knockoutTournament("t1", participants...)
	tournament.Fixtures = GenerateKnockoutFixtures(participants, rng)

	// Three of the four first-round slots are BYEs (bracket of 8, 5 real
	// players), so they complete immediately.
	slots, err := BuildBracket(tournament, nil)
	require.NoError(t, err)

	completed := 0
	for _, s := range slots[:4] {
		if s.Status == SlotCompleted {
			completed++
			require.Len(t, s.Winner, 1)
			assert.NotEqual(t, models.ByeTeam, s.Winner[0])
		}
	}
	assert.Equal(t, 3, completed)
}
