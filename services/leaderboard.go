package services

import (
	"sort"
	"time"

	"fifa-tracker/models"
)

// Leaderboard modes filter matches by exact team-size shape.
const (
	ModeGlobal = "global"
	Mode1v1    = "1v1"
	Mode2v2    = "2v2"
)

// Leaderboard periods
const (
	PeriodAllTime = "all-time"
	PeriodRecent  = "recent"
)

// RecentWindow is the fixed look-back for period=recent.
const RecentWindow = 30 * 24 * time.Hour

// LeaderboardEntry is one ranked row: a player with stats derived from the
// filtered match set and the resulting composite score.
type LeaderboardEntry struct {
	Player models.Player      `json:"player"`
	Stats  models.PlayerStats `json:"stats"`
	Score  ScoreBreakdown     `json:"score"`
	Rank   int                `json:"rank"`
}

// Rank builds the leaderboard for the given mode and period. Stats are
// derived forward-only from zero over the filtered matches, then scored and
// sorted descending. Tie-break is deterministic: total score, then goal
// difference, then goals scored, then player id ascending.
func Rank(players []models.Player, matches []models.Match, mode, period string, now time.Time) ([]LeaderboardEntry, error) {
	filtered := filterMatches(matches, mode, period, now)

	entries := make([]LeaderboardEntry, 0, len(players))
	for i := range players {
		stats, err := DeriveStats(players[i].ID, filtered)
		if err != nil {
			return nil, err
		}
		entries = append(entries, LeaderboardEntry{
			Player: players[i],
			Stats:  stats,
			Score:  Score(stats),
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Score.Total != b.Score.Total {
			return a.Score.Total > b.Score.Total
		}
		if a.Score.GoalDiff != b.Score.GoalDiff {
			return a.Score.GoalDiff > b.Score.GoalDiff
		}
		if a.Stats.GoalsScored != b.Stats.GoalsScored {
			return a.Stats.GoalsScored > b.Stats.GoalsScored
		}
		return a.Player.ID < b.Player.ID
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries, nil
}

// RankOf returns the 1-based position of a player, or 0 if absent.
func RankOf(entries []LeaderboardEntry, playerID string) int {
	for _, e := range entries {
		if e.Player.ID == playerID {
			return e.Rank
		}
	}
	return 0
}

func filterMatches(matches []models.Match, mode, period string, now time.Time) []models.Match {
	out := make([]models.Match, 0, len(matches))
	cutoff := now.Add(-RecentWindow)
	for _, m := range matches {
		if period == PeriodRecent && m.PlayedAt.Before(cutoff) {
			continue
		}
		switch mode {
		case Mode1v1:
			if len(m.Team1) != 1 || len(m.Team2) != 1 {
				continue
			}
		case Mode2v2:
			if len(m.Team1) != 2 || len(m.Team2) != 2 {
				continue
			}
		}
		out = append(out, m)
	}
	return out
}
