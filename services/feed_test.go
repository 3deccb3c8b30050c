package services

import (
	"testing"
	"time"

	"fifa-tracker/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClusterSessionsGapBoundary(t *testing.T) {
	tests := []struct {
		name string
		gap  time.Duration
		want int // session count
	}{
		{"1h59m clusters", time.Hour + 59*time.Minute, 1},
		{"exactly 2h splits", 2 * time.Hour, 2},
		{"2h + 1ms splits", 2*time.Hour + time.Millisecond, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matches := []models.Match{
				newMatch("m1", solo("A"), solo("B"), 1, 0, at(testKickoff)),
				newMatch("m2", solo("A"), solo("B"), 0, 2, at(testKickoff.Add(tt.gap))),
			}
			sessions := ClusterSessions(matches)
			assert.Len(t, sessions, tt.want)
		})
	}
}

func TestClusterSessionsParticipantSetMustMatch(t *testing.T) {
	matches := []models.Match{
		newMatch("m1", solo("A"), solo("B"), 1, 0, at(testKickoff)),
		// Same players reshuffled across teams: same participant set, clusters.
		newMatch("m2", solo("B"), solo("A"), 2, 0, at(testKickoff.Add(10*time.Minute))),
		// C shows up: new session despite the short gap.
		newMatch("m3", solo("A"), solo("C"), 1, 1, at(testKickoff.Add(20*time.Minute))),
	}
	sessions := ClusterSessions(matches)
	require.Len(t, sessions, 2)

	// Most recent session first.
	assert.Equal(t, []string{"A", "C"}, sessions[0].Participants)
	assert.Len(t, sessions[1].Matches, 2)
	assert.Equal(t, []string{"A", "B"}, sessions[1].Participants)
}

func TestClusterSessionsEmpty(t *testing.T) {
	assert.Nil(t, ClusterSessions(nil))
}

func TestFeedSingleMatchTags(t *testing.T) {
	tests := []struct {
		name  string
		match models.Match
		tags  []string
	}{
		{
			name:  "blowout",
			match: newMatch("m1", solo("A"), solo("B"), 5, 0),
			tags:  []string{TagGoleada},
		},
		{
			name:  "penalties drama",
			match: newMatch("m2", solo("A"), solo("B"), 2, 2, onPenalties(1)),
			tags:  []string{TagDrama},
		},
		{
			name:  "unremarkable",
			match: newMatch("m3", solo("A"), solo("B"), 2, 1),
			tags:  nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sessions := ClusterSessions([]models.Match{tt.match})
			items := BuildFeed(sessions, nil, "")
			require.Len(t, items, 1)
			assert.Equal(t, NewsSingleMatch, items[0].Type)
			assert.Equal(t, tt.tags, items[0].Tags)
		})
	}
}

func TestFeedDuelSession(t *testing.T) {
	var matches []models.Match
	for i := 0; i < 5; i++ {
		s1, s2 := 1, 0
		if i >= 3 {
			s1, s2 = 0, 1 // B takes the last two
		}
		matches = append(matches, newMatch(
			"m", solo("A"), solo("B"), s1, s2,
			at(testKickoff.Add(time.Duration(i)*15*time.Minute)),
		))
	}

	sessions := ClusterSessions(matches)
	require.Len(t, sessions, 1)
	items := BuildFeed(sessions, nil, "")
	require.Len(t, items, 1)

	item := items[0]
	assert.Equal(t, NewsDuel, item.Type)
	assert.Equal(t, 3, item.Counts["A"])
	assert.Equal(t, 2, item.Counts["B"])
	// 5 matches in one sitting is a Maratón, and a 3-2 split a Clásico.
	assert.Contains(t, item.Tags, TagMaraton)
	assert.Contains(t, item.Tags, TagClasico)
}

func TestFeedGroupSession(t *testing.T) {
	matches := []models.Match{
		newMatch("m1", []string{"A", "B"}, []string{"C", "D"}, 1, 0, at(testKickoff)),
		newMatch("m2", []string{"A", "C"}, []string{"B", "D"}, 2, 2, at(testKickoff.Add(30*time.Minute))),
	}
	// Same four participants throughout, so one session with 4 players.
	sessions := ClusterSessions(matches)
	require.Len(t, sessions, 1)

	items := BuildFeed(sessions, nil, "")
	require.Len(t, items, 1)
	assert.Equal(t, NewsGroupSession, items[0].Type)
}

func TestFeedRankingItems(t *testing.T) {
	players := testPlayers("A", "B")
	matches := []models.Match{newMatch("m1", solo("A"), solo("B"), 4, 1)}
	ranking, err := Rank(players, matches, ModeGlobal, PeriodAllTime, testKickoff.Add(time.Hour))
	require.NoError(t, err)

	items := BuildFeed(nil, ranking, "A")
	require.Len(t, items, 2)
	assert.Equal(t, NewsTopRanked, items[0].Type)
	assert.Equal(t, 1, items[0].Value)
	assert.Equal(t, NewsLeadingScorer, items[1].Type)
	assert.Equal(t, "A", items[1].PlayerID)
	assert.Equal(t, 4, items[1].Value)
}

func TestFeedNoScorerItemWithoutGoals(t *testing.T) {
	players := testPlayers("A", "B")
	matches := []models.Match{newMatch("m1", solo("A"), solo("B"), 0, 0)}
	ranking, err := Rank(players, matches, ModeGlobal, PeriodAllTime, testKickoff.Add(time.Hour))
	require.NoError(t, err)

	// Viewer outside the top 3 of a two-player table cannot happen, so use
	// an unknown viewer; with zero goals no scorer item is emitted either.
	items := BuildFeed(nil, ranking, "nobody")
	assert.Empty(t, items)
}
