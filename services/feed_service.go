package services

import (
	"errors"
	"log"
	"time"

	"fifa-tracker/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// FeedService serves every read derived from the match log: leaderboard,
// per-player deep stats, achievements and the social feed. All derivations
// run over an immutable snapshot loaded per request; nothing here mutates
// shared state.
type FeedService struct {
	DB *gorm.DB
}

func NewFeedService(db *gorm.DB) *FeedService {
	return &FeedService{DB: db}
}

func (s *FeedService) snapshot() ([]models.Player, []models.Match, error) {
	var players []models.Player
	if err := s.DB.Find(&players).Error; err != nil {
		return nil, nil, err
	}
	var matches []models.Match
	if err := s.DB.Find(&matches).Error; err != nil {
		return nil, nil, err
	}
	return players, matches, nil
}

// GetLeaderboard ranks all players for ?mode= (1v1, 2v2, global) and
// ?period= (all-time, recent).
func (s *FeedService) GetLeaderboard(c *fiber.Ctx) error {
	mode := c.Query("mode", ModeGlobal)
	period := c.Query("period", PeriodAllTime)
	if mode != ModeGlobal && mode != Mode1v1 && mode != Mode2v2 {
		return c.Status(400).JSON(fiber.Map{"error": "mode must be global, 1v1 or 2v2"})
	}
	if period != PeriodAllTime && period != PeriodRecent {
		return c.Status(400).JSON(fiber.Map{"error": "period must be all-time or recent"})
	}

	players, matches, err := s.snapshot()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to load data"})
	}
	entries, err := Rank(players, matches, mode, period, time.Now())
	if err != nil {
		log.Printf("ERROR ranking players: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "failed to build leaderboard"})
	}
	return c.JSON(entries)
}

// GetAdvancedStats returns the per-player deep dive.
func (s *FeedService) GetAdvancedStats(c *fiber.Ctx) error {
	playerID := c.Params("id")
	var player models.Player
	if err := s.DB.First(&player, "id = ?", playerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "player not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "database error"})
	}

	var matches []models.Match
	if err := s.DB.Find(&matches).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to load matches"})
	}
	stats, err := ComputeAdvancedStats(playerID, matches)
	if err != nil {
		log.Printf("ERROR computing advanced stats for %s: %v", playerID, err)
		return c.Status(500).JSON(fiber.Map{"error": "failed to compute stats"})
	}
	return c.JSON(stats)
}

// GetAchievements re-scans the player's history for unlocks.
func (s *FeedService) GetAchievements(c *fiber.Ctx) error {
	playerID := c.Params("id")
	var player models.Player
	if err := s.DB.First(&player, "id = ?", playerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "player not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "database error"})
	}

	var matches []models.Match
	if err := s.DB.Find(&matches).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to load matches"})
	}
	var tournaments []models.Tournament
	if err := s.DB.Where("status = ?", models.TournamentCompleted).Find(&tournaments).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to load tournaments"})
	}

	ids := Unlocked(&player, matches, tournaments)
	unlocked := make([]models.Achievement, 0, len(ids))
	for _, id := range ids {
		if a := models.AchievementByID(id); a != nil {
			unlocked = append(unlocked, *a)
		}
	}
	return c.JSON(fiber.Map{
		"unlocked": unlocked,
		"catalog":  models.Achievements,
	})
}

// GetFeed clusters the match log into sessions and renders the social feed
// for ?viewer=.
func (s *FeedService) GetFeed(c *fiber.Ctx) error {
	viewerID := c.Query("viewer")

	players, matches, err := s.snapshot()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to load data"})
	}
	ranking, err := Rank(players, matches, ModeGlobal, PeriodAllTime, time.Now())
	if err != nil {
		log.Printf("ERROR ranking players for feed: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "failed to build feed"})
	}

	sessions := ClusterSessions(matches)
	items := BuildFeed(sessions, ranking, viewerID)
	return c.JSON(items)
}
