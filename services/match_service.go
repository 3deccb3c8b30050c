package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"fifa-tracker/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MatchService struct {
	DB    *gorm.DB
	Stats *StatsService
}

func NewMatchService(db *gorm.DB, stats *StatsService) *MatchService {
	return &MatchService{DB: db, Stats: stats}
}

// MatchInput is the write DTO for creating and editing matches.
type MatchInput struct {
	PlayedAt      *time.Time `json:"played_at,omitempty"`
	Type          string     `json:"type"`
	Team1         []string   `json:"team1"`
	Team2         []string   `json:"team2"`
	ScoreTeam1    int        `json:"score_team1"`
	ScoreTeam2    int        `json:"score_team2"`
	EndedBy       string     `json:"ended_by"`
	PenaltyWinner *int       `json:"penalty_winner,omitempty"`
	ForfeitLoser  *int       `json:"forfeit_loser,omitempty"`
	TournamentID  *string    `json:"tournament_id,omitempty"`
	FixtureSlot   *int       `json:"fixture_slot,omitempty"`
}

// validateMatchInput rejects caller mistakes before any write is attempted.
func validateMatchInput(in *MatchInput) error {
	switch in.Type {
	case models.MatchType1v1, models.MatchType2v2, models.MatchType3v1, models.MatchTypeCustom:
	case "":
		in.Type = models.MatchTypeCustom
	default:
		return fmt.Errorf("unknown match type %q", in.Type)
	}
	if len(in.Team1) == 0 || len(in.Team2) == 0 {
		return errors.New("both teams must have at least one player")
	}
	seen := map[string]bool{}
	for _, id := range in.Team1 {
		if seen[id] {
			return fmt.Errorf("player %s listed twice", id)
		}
		seen[id] = true
	}
	for _, id := range in.Team2 {
		if seen[id] {
			return fmt.Errorf("player %s cannot be on both teams", id)
		}
		seen[id] = true
	}
	if in.ScoreTeam1 < 0 || in.ScoreTeam2 < 0 {
		return errors.New("scores must be non-negative")
	}

	switch in.EndedBy {
	case "", models.EndedByRegular:
		in.EndedBy = models.EndedByRegular
		if in.PenaltyWinner != nil || in.ForfeitLoser != nil {
			return errors.New("penalty_winner/forfeit_loser only apply to penalties/forfeit endings")
		}
	case models.EndedByPenalties:
		if in.PenaltyWinner == nil || (*in.PenaltyWinner != 1 && *in.PenaltyWinner != 2) {
			return errors.New("penalties ending requires penalty_winner of 1 or 2")
		}
		if in.ScoreTeam1 != in.ScoreTeam2 {
			return errors.New("penalties ending requires a drawn regulation score")
		}
	case models.EndedByForfeit:
		if in.ForfeitLoser == nil || (*in.ForfeitLoser != 1 && *in.ForfeitLoser != 2) {
			return errors.New("forfeit ending requires forfeit_loser of 1 or 2")
		}
	default:
		return fmt.Errorf("unknown ended_by %q", in.EndedBy)
	}
	return nil
}

func (in *MatchInput) toMatch(id string) *models.Match {
	playedAt := time.Now()
	if in.PlayedAt != nil {
		playedAt = *in.PlayedAt
	}
	return &models.Match{
		ID:            id,
		PlayedAt:      playedAt,
		Type:          in.Type,
		Team1:         in.Team1,
		Team2:         in.Team2,
		ScoreTeam1:    in.ScoreTeam1,
		ScoreTeam2:    in.ScoreTeam2,
		EndedBy:       in.EndedBy,
		PenaltyWinner: in.PenaltyWinner,
		ForfeitLoser:  in.ForfeitLoser,
		TournamentID:  in.TournamentID,
		FixtureSlot:   in.FixtureSlot,
	}
}

// RecordMatch validates, persists the match and applies its stat deltas to
// every participant inside one transaction.
func (s *MatchService) RecordMatch(c *fiber.Ctx) error {
	var in MatchInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON", "details": err.Error()})
	}
	if err := validateMatchInput(&in); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	match := in.toMatch(uuid.NewString())
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(match).Error; err != nil {
			return err
		}
		return s.Stats.ApplyMatchTx(tx, match, +1)
	})
	if err != nil {
		log.Printf("DB Error recording match: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "failed to record match"})
	}
	return c.Status(201).JSON(match)
}

func (s *MatchService) GetAllMatches(c *fiber.Ctx) error {
	var matches []models.Match
	if err := s.DB.Preload("Edits").Order("played_at DESC").Find(&matches).Error; err != nil {
		log.Printf("ERROR fetching matches: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "failed to fetch matches"})
	}
	return c.JSON(matches)
}

func (s *MatchService) GetMatchByID(c *fiber.Ctx) error {
	var match models.Match
	err := s.DB.Preload("Edits", func(db *gorm.DB) *gorm.DB {
		return db.Order("edited_at ASC")
	}).First(&match, "id = ?", c.Params("id")).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "match not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "database error"})
	}
	return c.JSON(match)
}

// UpdateMatch edits a match: the old version's stat effect is reversed for
// all its participants, the new values applied for all (possibly different)
// participants, and an audit entry appended — all in one transaction, so
// concurrent readers never observe the half-reversed state.
func (s *MatchService) UpdateMatch(c *fiber.Ctx) error {
	matchID := c.Params("id")
	editorID, _ := c.Locals("player_id").(string)

	var in MatchInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON", "details": err.Error()})
	}
	if err := validateMatchInput(&in); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	var updated models.Match
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var old models.Match
		if err := tx.First(&old, "id = ?", matchID).Error; err != nil {
			return err
		}

		if err := s.Stats.ApplyMatchTx(tx, &old, -1); err != nil {
			return err
		}

		next := in.toMatch(matchID)
		next.CreatedAt = old.CreatedAt
		if in.PlayedAt == nil {
			next.PlayedAt = old.PlayedAt
		}
		if err := tx.Omit("Edits").Save(next).Error; err != nil {
			return err
		}

		edit := models.MatchEdit{
			ID:       uuid.NewString(),
			MatchID:  matchID,
			EditedBy: editorID,
			Change: fmt.Sprintf("was %s %v %d-%d %v (%s)",
				old.Type, old.Team1, old.ScoreTeam1, old.ScoreTeam2, old.Team2, old.EndedBy),
		}
		if err := tx.Create(&edit).Error; err != nil {
			return err
		}

		if err := s.Stats.ApplyMatchTx(tx, next, +1); err != nil {
			return err
		}
		updated = *next
		return nil
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(404).JSON(fiber.Map{"error": "match not found"})
	}
	if err != nil {
		log.Printf("DB Error updating match %s: %v", matchID, err)
		return c.Status(500).JSON(fiber.Map{"error": "failed to update match"})
	}

	s.DB.Preload("Edits").First(&updated, "id = ?", matchID)
	return c.JSON(updated)
}

// DeleteMatch reverses the match's stat effect and removes the record,
// atomically.
func (s *MatchService) DeleteMatch(c *fiber.Ctx) error {
	matchID := c.Params("id")

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var match models.Match
		if err := tx.First(&match, "id = ?", matchID).Error; err != nil {
			return err
		}
		if err := s.Stats.ApplyMatchTx(tx, &match, -1); err != nil {
			return err
		}
		if err := tx.Where("match_id = ?", matchID).Delete(&models.MatchEdit{}).Error; err != nil {
			return err
		}
		return tx.Delete(&match).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(404).JSON(fiber.Map{"error": "match not found"})
	}
	if err != nil {
		log.Printf("DB Error deleting match %s: %v", matchID, err)
		return c.Status(500).JSON(fiber.Map{"error": "failed to delete match"})
	}
	return c.JSON(fiber.Map{"message": "match deleted"})
}

// RecomputeStats is the admin-only recovery endpoint: rebuilds every
// player's persisted stats from the full match log.
func (s *MatchService) RecomputeStats(c *fiber.Ctx) error {
	if err := s.Stats.RecomputeAll(); err != nil {
		log.Printf("ERROR recomputing stats: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "failed to recompute stats"})
	}
	return c.JSON(fiber.Map{"message": "stats recomputed from match log"})
}
