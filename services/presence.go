package services

import (
	"sync"

	"github.com/gofiber/fiber/v2"
)

// PresenceService tracks "who is physically present right now" on this
// device. In-memory only: presence is not a historical record and is never
// written to the shared store.
type PresenceService struct {
	mu      sync.Mutex
	present map[string]bool
}

func NewPresenceService() *PresenceService {
	return &PresenceService{present: map[string]bool{}}
}

// SetPresent replaces the current presence set.
func (s *PresenceService) SetPresent(c *fiber.Ctx) error {
	type Request struct {
		PlayerIDs []string `json:"player_ids"`
	}
	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON"})
	}

	s.mu.Lock()
	s.present = map[string]bool{}
	for _, id := range req.PlayerIDs {
		s.present[id] = true
	}
	s.mu.Unlock()

	return c.JSON(fiber.Map{"present": req.PlayerIDs})
}

// GetPresent lists the players currently marked present.
func (s *PresenceService) GetPresent(c *fiber.Ctx) error {
	s.mu.Lock()
	ids := make([]string, 0, len(s.present))
	for id := range s.present {
		ids = append(ids, id)
	}
	s.mu.Unlock()
	return c.JSON(fiber.Map{"present": ids})
}

// ClearPresence ends the live session.
func (s *PresenceService) ClearPresence(c *fiber.Ctx) error {
	s.mu.Lock()
	s.present = map[string]bool{}
	s.mu.Unlock()
	return c.JSON(fiber.Map{"message": "presence cleared"})
}
