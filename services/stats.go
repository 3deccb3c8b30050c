package services

import (
	"fmt"
	"log"

	"fifa-tracker/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ApplyMatch folds one match into a player's cumulative stats. sign is +1 to
// apply and -1 to reverse (edit/delete). Every counter is clamped at zero
// after applying, so a reversal ordering anomaly degrades into drift that the
// recompute path can repair instead of negative counts.
func ApplyMatch(stats models.PlayerStats, m *models.Match, playerID string, sign int) (models.PlayerStats, error) {
	if sign != 1 && sign != -1 {
		return stats, fmt.Errorf("sign must be +1 or -1, got %d", sign)
	}

	team, err := TeamOf(m, playerID)
	if err != nil {
		return stats, err
	}
	outcome, err := Classify(m, playerID)
	if err != nil {
		return stats, err
	}

	stats.MatchesPlayed += sign
	switch outcome {
	case OutcomeWin:
		stats.Wins += sign
	case OutcomeDraw:
		stats.Draws += sign
	case OutcomeLoss:
		stats.Losses += sign
	}
	stats.GoalsScored += sign * m.Score(team)
	stats.GoalsConceded += sign * m.Score(3-team)

	return clampStats(stats), nil
}

// DeriveStats folds a match list into fresh stats for one player, counting
// only matches the player took part in. Aggregation is commutative, so the
// order of the input does not matter.
func DeriveStats(playerID string, matches []models.Match) (models.PlayerStats, error) {
	var stats models.PlayerStats
	for i := range matches {
		m := &matches[i]
		if !containsID(m.Team1, playerID) && !containsID(m.Team2, playerID) {
			continue
		}
		var err error
		stats, err = ApplyMatch(stats, m, playerID, +1)
		if err != nil {
			return stats, err
		}
	}
	return stats, nil
}

func clampStats(s models.PlayerStats) models.PlayerStats {
	s.MatchesPlayed = max(s.MatchesPlayed, 0)
	s.Wins = max(s.Wins, 0)
	s.Draws = max(s.Draws, 0)
	s.Losses = max(s.Losses, 0)
	s.GoalsScored = max(s.GoalsScored, 0)
	s.GoalsConceded = max(s.GoalsConceded, 0)
	return s
}

// StatsService owns the persisted player-stats cache.
type StatsService struct {
	DB *gorm.DB
}

func NewStatsService(db *gorm.DB) *StatsService {
	return &StatsService{DB: db}
}

// ApplyMatchTx applies (or reverses, sign -1) a match to every participant's
// persisted stats inside the given transaction. Rows are locked so concurrent
// readers never observe a half-applied edit.
func (s *StatsService) ApplyMatchTx(tx *gorm.DB, m *models.Match, sign int) error {
	for _, playerID := range m.Participants() {
		var player models.Player
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&player, "id = ?", playerID).Error
		if err == gorm.ErrRecordNotFound {
			// Deleted player still referenced by an old match; nothing to adjust.
			continue
		}
		if err != nil {
			return err
		}

		updated, err := ApplyMatch(player.Stats, m, playerID, sign)
		if err != nil {
			return err
		}
		if err := tx.Model(&player).Select(
			"stats_matches_played", "stats_wins", "stats_draws",
			"stats_losses", "stats_goals_scored", "stats_goals_conceded",
		).Updates(models.Player{Stats: updated}).Error; err != nil {
			return err
		}
	}
	return nil
}

// RecomputeAll resets every player's persisted stats and re-applies the full
// match log. This is the authoritative recovery path when incremental
// updates have drifted from ground truth.
func (s *StatsService) RecomputeAll() error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var players []models.Player
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Find(&players).Error; err != nil {
			return err
		}
		var matches []models.Match
		if err := tx.Find(&matches).Error; err != nil {
			return err
		}

		for i := range players {
			derived, err := DeriveStats(players[i].ID, matches)
			if err != nil {
				return err
			}
			if err := tx.Model(&players[i]).Select(
				"stats_matches_played", "stats_wins", "stats_draws",
				"stats_losses", "stats_goals_scored", "stats_goals_conceded",
			).Updates(models.Player{Stats: derived}).Error; err != nil {
				return err
			}
		}
		log.Printf("♻️  Recomputed stats for %d players over %d matches", len(players), len(matches))
		return nil
	})
}
