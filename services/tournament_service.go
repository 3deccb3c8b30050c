package services

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"fifa-tracker/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

type TournamentService struct {
	DB *gorm.DB
}

func NewTournamentService(db *gorm.DB) *TournamentService {
	return &TournamentService{DB: db}
}

// CreateTournament creates a draft tournament with a fixed participant
// snapshot. Fixtures stay unset until the draw.
func (s *TournamentService) CreateTournament(c *fiber.Ctx) error {
	type Request struct {
		Name         string   `json:"name"`
		Type         string   `json:"type"`
		Participants []string `json:"participants"`
	}
	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON", "details": err.Error()})
	}
	if req.Name == "" {
		return c.Status(400).JSON(fiber.Map{"error": "name is required"})
	}
	if req.Type != models.TournamentLeague && req.Type != models.TournamentKnockout {
		return c.Status(400).JSON(fiber.Map{"error": "type must be league or knockout"})
	}
	if len(req.Participants) < 2 {
		return c.Status(400).JSON(fiber.Map{"error": "at least 2 participants required"})
	}
	seen := map[string]bool{}
	for _, id := range req.Participants {
		if seen[id] {
			return c.Status(400).JSON(fiber.Map{"error": fmt.Sprintf("duplicate participant %s", id)})
		}
		seen[id] = true
	}

	creatorID, _ := c.Locals("player_id").(string)
	tournament := &models.Tournament{
		ID:           uuid.NewString(),
		Slug:         slug.Make(req.Name) + "-" + uuid.NewString()[:8],
		Name:         req.Name,
		Type:         req.Type,
		Status:       models.TournamentDraft,
		CreatedBy:    creatorID,
		Participants: req.Participants,
	}
	if err := s.DB.Create(tournament).Error; err != nil {
		log.Printf("DB Error creating tournament: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "DB insert failed"})
	}
	return c.Status(201).JSON(tournament)
}

func (s *TournamentService) GetAllTournaments(c *fiber.Ctx) error {
	var tournaments []models.Tournament
	query := s.DB.Order("created_at DESC")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Find(&tournaments).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to fetch tournaments"})
	}
	return c.JSON(tournaments)
}

func (s *TournamentService) GetTournamentByID(c *fiber.Ctx) error {
	tournament, err := s.find(c.Params("id"))
	if err != nil {
		return s.notFoundOr500(c, err)
	}
	return c.JSON(tournament)
}

// Draw generates fixtures and activates the tournament. League gets
// all-pairs round robin over a shuffled order; knockout gets adjacent
// pairings padded with BYE to a power of two plus the empty later rounds.
func (s *TournamentService) Draw(c *fiber.Ctx) error {
	tournament, err := s.find(c.Params("id"))
	if err != nil {
		return s.notFoundOr500(c, err)
	}
	if tournament.Status != models.TournamentDraft {
		return c.Status(409).JSON(fiber.Map{"error": "draw is only possible in draft status"})
	}
	if tournament.Fixtures != nil {
		return c.Status(409).JSON(fiber.Map{"error": "fixtures already drawn"})
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	var fixtures []models.Fixture
	if tournament.Type == models.TournamentLeague {
		fixtures = GenerateLeagueFixtures(tournament.Participants, rng)
	} else {
		fixtures = GenerateKnockoutFixtures(tournament.Participants, rng)
	}

	tournament.Fixtures = fixtures
	tournament.Status = models.TournamentActive
	if err := s.DB.Model(tournament).Select("fixtures", "status").Updates(tournament).Error; err != nil {
		log.Printf("DB Error drawing tournament %s: %v", tournament.ID, err)
		return c.Status(500).JSON(fiber.Map{"error": "failed to save draw"})
	}
	return c.JSON(tournament)
}

// GetBracket returns the resolved knockout bracket with BYEs auto-resolved
// and winners propagated.
func (s *TournamentService) GetBracket(c *fiber.Ctx) error {
	tournament, err := s.find(c.Params("id"))
	if err != nil {
		return s.notFoundOr500(c, err)
	}
	if tournament.Type != models.TournamentKnockout {
		return c.Status(400).JSON(fiber.Map{"error": "tournament is not a knockout"})
	}
	matches, err := s.tournamentMatches(tournament.ID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to fetch matches"})
	}
	slots, err := BuildBracket(tournament, matches)
	if err != nil {
		log.Printf("ERROR building bracket for %s: %v", tournament.ID, err)
		return c.Status(500).JSON(fiber.Map{"error": "failed to build bracket"})
	}
	return c.JSON(fiber.Map{"tournament": tournament, "slots": slots})
}

// GetStandings returns the league table.
func (s *TournamentService) GetStandings(c *fiber.Ctx) error {
	tournament, err := s.find(c.Params("id"))
	if err != nil {
		return s.notFoundOr500(c, err)
	}
	if tournament.Type != models.TournamentLeague {
		return c.Status(400).JSON(fiber.Map{"error": "tournament is not a league"})
	}
	matches, err := s.tournamentMatches(tournament.ID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to fetch matches"})
	}
	table, err := LeagueStandings(tournament, matches)
	if err != nil {
		log.Printf("ERROR building standings for %s: %v", tournament.ID, err)
		return c.Status(500).JSON(fiber.Map{"error": "failed to build standings"})
	}
	return c.JSON(fiber.Map{"tournament": tournament, "standings": table})
}

// Complete finalizes an active tournament: the winner is computed from the
// bracket or the table, or force-set by the caller when undeterminable,
// then frozen. Only the creator or an admin may complete.
func (s *TournamentService) Complete(c *fiber.Ctx) error {
	tournament, err := s.find(c.Params("id"))
	if err != nil {
		return s.notFoundOr500(c, err)
	}

	callerID, _ := c.Locals("player_id").(string)
	callerRole, _ := c.Locals("player_role").(string)
	if callerID != tournament.CreatedBy && callerRole != models.RoleAdmin {
		return c.Status(403).JSON(fiber.Map{"error": "only the creator or an admin can complete a tournament"})
	}
	if tournament.Status != models.TournamentActive {
		return c.Status(409).JSON(fiber.Map{"error": "only active tournaments can be completed"})
	}

	type Request struct {
		ForceWinner string `json:"force_winner,omitempty"`
	}
	var req Request
	_ = c.BodyParser(&req)

	matches, err := s.tournamentMatches(tournament.ID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to fetch matches"})
	}

	winner := ""
	if tournament.Type == models.TournamentKnockout {
		slots, err := BuildBracket(tournament, matches)
		if err == nil {
			if champions := BracketWinner(slots); len(champions) > 0 {
				winner = champions[0]
			}
		}
	} else {
		table, err := LeagueStandings(tournament, matches)
		if err == nil && len(table) > 0 && table[0].Played > 0 {
			winner = table[0].PlayerID
		}
	}
	if winner == "" {
		if req.ForceWinner == "" {
			return c.Status(409).JSON(fiber.Map{"error": "winner undeterminable, supply force_winner"})
		}
		if !containsID(tournament.Participants, req.ForceWinner) {
			return c.Status(400).JSON(fiber.Map{"error": "force_winner is not a participant"})
		}
		winner = req.ForceWinner
	}

	now := time.Now()
	tournament.Status = models.TournamentCompleted
	tournament.Winner = &winner
	tournament.CompletedAt = &now
	if err := s.DB.Model(tournament).Select("status", "winner", "completed_at").Updates(tournament).Error; err != nil {
		log.Printf("DB Error completing tournament %s: %v", tournament.ID, err)
		return c.Status(500).JSON(fiber.Map{"error": "failed to complete tournament"})
	}
	return c.JSON(tournament)
}

func (s *TournamentService) find(id string) (*models.Tournament, error) {
	var tournament models.Tournament
	if err := s.DB.First(&tournament, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &tournament, nil
}

func (s *TournamentService) tournamentMatches(id string) ([]models.Match, error) {
	var matches []models.Match
	err := s.DB.Where("tournament_id = ?", id).Order("played_at ASC").Find(&matches).Error
	return matches, err
}

func (s *TournamentService) notFoundOr500(c *fiber.Ctx, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(404).JSON(fiber.Map{"error": "tournament not found"})
	}
	log.Printf("DB Error fetching tournament: %v", err)
	return c.Status(500).JSON(fiber.Map{"error": "database error"})
}
