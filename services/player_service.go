package services

import (
	"errors"
	"log"
	"mime/multipart"
	"path/filepath"
	"strings"
	"unicode"

	"fifa-tracker/models"
	"fifa-tracker/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PlayerService struct {
	DB *gorm.DB
}

func NewPlayerService(db *gorm.DB) *PlayerService {
	return &PlayerService{DB: db}
}

// savePhoto stores a profile photo in R2, or under ./uploads when object
// storage is not configured, and returns the public URL either way.
func savePhoto(photo *multipart.FileHeader) (string, error) {
	ext := filepath.Ext(photo.Filename)
	if ext == "" {
		ext = ".jpg"
	}
	name := uuid.NewString() + ext
	if utils.R2Enabled() {
		return utils.UploadFileToR2(photo, "players/photos/"+name)
	}
	dest := utils.GetUploadPath(filepath.Join("photos", name))
	if err := utils.SaveFile(photo, dest); err != nil {
		return "", err
	}
	return "/" + filepath.ToSlash(dest), nil
}

// validPIN requires at least 4 digits, nothing else.
func validPIN(pin string) bool {
	if len(pin) < 4 {
		return false
	}
	for _, r := range pin {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// Register creates a player profile from name + avatar + PIN, with an
// optional profile photo uploaded to R2.
func (s *PlayerService) Register(c *fiber.Ctx) error {
	name := strings.TrimSpace(c.FormValue("name"))
	avatar := c.FormValue("avatar")
	pin := c.FormValue("pin")
	visibility := c.FormValue("visibility")

	if name == "" {
		return c.Status(400).JSON(fiber.Map{"error": "name is required"})
	}
	if !validPIN(pin) {
		return c.Status(400).JSON(fiber.Map{"error": "pin must be at least 4 digits"})
	}
	if visibility != models.VisibilityPrivate {
		visibility = models.VisibilityPublic
	}
	if avatar == "" {
		avatar = "⚽"
	}

	player := &models.Player{
		ID:         uuid.NewString(),
		Name:       name,
		Avatar:     avatar,
		PIN:        pin,
		Visibility: visibility,
		Role:       models.RolePlayer,
	}

	if photo, err := c.FormFile("photo"); err == nil && photo.Size > 0 {
		url, err := savePhoto(photo)
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "failed to upload photo"})
		}
		player.PhotoURL = &url
	}

	if err := s.DB.Create(player).Error; err != nil {
		log.Printf("DB Error creating player: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "DB insert failed"})
	}
	return c.Status(201).JSON(player)
}

// Login re-authenticates an existing identity with its PIN.
func (s *PlayerService) Login(c *fiber.Ctx) error {
	type LoginRequest struct {
		PlayerID string `json:"player_id"`
		PIN      string `json:"pin"`
	}
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON", "details": err.Error()})
	}

	var player models.Player
	if err := s.DB.First(&player, "id = ?", req.PlayerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "player not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "database error"})
	}

	if player.PIN == "" {
		// Legacy profile created before PINs were required; force setup.
		return c.Status(409).JSON(fiber.Map{"error": "pin setup required", "setup_required": true})
	}
	if player.PIN != req.PIN {
		return c.Status(401).JSON(fiber.Map{"error": "invalid pin"})
	}
	return c.JSON(player)
}

// SetupPIN is the one-time flow for profiles that predate mandatory PINs.
func (s *PlayerService) SetupPIN(c *fiber.Ctx) error {
	playerID := c.Params("id")
	type SetupRequest struct {
		PIN string `json:"pin"`
	}
	var req SetupRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON"})
	}
	if !validPIN(req.PIN) {
		return c.Status(400).JSON(fiber.Map{"error": "pin must be at least 4 digits"})
	}

	var player models.Player
	if err := s.DB.First(&player, "id = ?", playerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "player not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "database error"})
	}
	if player.PIN != "" {
		return c.Status(409).JSON(fiber.Map{"error": "pin already set"})
	}
	if err := s.DB.Model(&player).Update("pin", req.PIN).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to set pin"})
	}
	return c.JSON(fiber.Map{"message": "pin set"})
}

func (s *PlayerService) GetAllPlayers(c *fiber.Ctx) error {
	var players []models.Player
	if err := s.DB.Order("name ASC").Find(&players).Error; err != nil {
		log.Printf("ERROR fetching players: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "failed to fetch players"})
	}
	return c.JSON(players)
}

func (s *PlayerService) GetPlayerByID(c *fiber.Ctx) error {
	var player models.Player
	if err := s.DB.First(&player, "id = ?", c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "player not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "database error"})
	}

	// Attach relation-table friend data.
	var friendIDs []string
	s.DB.Model(&models.Friendship{}).Where("player_id = ?", player.ID).Pluck("friend_id", &friendIDs)
	var incoming []models.FriendRequest
	s.DB.Where("to_id = ?", player.ID).Find(&incoming)
	var outgoing []models.FriendRequest
	s.DB.Where("from_id = ?", player.ID).Find(&outgoing)

	return c.JSON(fiber.Map{
		"player":          player,
		"friends":         friendIDs,
		"friend_requests": incoming,
		"sent_requests":   outgoing,
	})
}

// SearchPlayers finds public profiles by name prefix. Private profiles stay
// discoverable only through direct links or QR exchange, never search.
func (s *PlayerService) SearchPlayers(c *fiber.Ctx) error {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		return c.Status(400).JSON(fiber.Map{"error": "q is required"})
	}
	var players []models.Player
	err := s.DB.Where("visibility = ? AND name ILIKE ?", models.VisibilityPublic, q+"%").
		Order("name ASC").Limit(25).Find(&players).Error
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to search players"})
	}
	return c.JSON(players)
}

// UpdatePlayer edits profile fields. Stats are never writable here; they
// belong to the stats aggregator exclusively.
func (s *PlayerService) UpdatePlayer(c *fiber.Ctx) error {
	playerID := c.Params("id")

	var player models.Player
	if err := s.DB.First(&player, "id = ?", playerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "player not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "database error"})
	}

	updates := map[string]interface{}{}
	if name := strings.TrimSpace(c.FormValue("name")); name != "" {
		updates["name"] = name
	}
	if avatar := c.FormValue("avatar"); avatar != "" {
		updates["avatar"] = avatar
	}
	if visibility := c.FormValue("visibility"); visibility == models.VisibilityPublic || visibility == models.VisibilityPrivate {
		updates["visibility"] = visibility
	}
	if pin := c.FormValue("pin"); pin != "" {
		if !validPIN(pin) {
			return c.Status(400).JSON(fiber.Map{"error": "pin must be at least 4 digits"})
		}
		updates["pin"] = pin
	}

	if photo, err := c.FormFile("photo"); err == nil && photo.Size > 0 {
		url, err := savePhoto(photo)
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "failed to upload photo"})
		}
		updates["photo_url"] = url
	}

	if len(updates) == 0 {
		return c.JSON(player)
	}
	if err := s.DB.Model(&player).Updates(updates).Error; err != nil {
		log.Printf("DB Error updating player %s: %v", playerID, err)
		return c.Status(500).JSON(fiber.Map{"error": "failed to update player"})
	}
	return c.JSON(player)
}

// UploadPhoto replaces the player's profile photo.
func (s *PlayerService) UploadPhoto(c *fiber.Ctx) error {
	playerID := c.Params("id")

	var player models.Player
	if err := s.DB.First(&player, "id = ?", playerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "player not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "database error"})
	}

	photo, err := c.FormFile("photo")
	if err != nil || photo.Size == 0 {
		return c.Status(400).JSON(fiber.Map{"error": "photo file is required"})
	}
	url, err := savePhoto(photo)
	if err != nil {
		log.Printf("ERROR uploading photo for %s: %v", playerID, err)
		return c.Status(500).JSON(fiber.Map{"error": "failed to upload photo"})
	}
	if err := s.DB.Model(&player).Update("photo_url", url).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to save photo url"})
	}
	return c.JSON(fiber.Map{"photo_url": url})
}

// DeletePlayer removes the record and its friendship rows. Match history is
// left alone: old matches keep referencing the id and clients render those
// as an unknown player.
func (s *PlayerService) DeletePlayer(c *fiber.Ctx) error {
	playerID := c.Params("id")

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Player{}, "id = ?", playerID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		if err := tx.Where("player_id = ? OR friend_id = ?", playerID, playerID).
			Delete(&models.Friendship{}).Error; err != nil {
			return err
		}
		return tx.Where("from_id = ? OR to_id = ?", playerID, playerID).
			Delete(&models.FriendRequest{}).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(404).JSON(fiber.Map{"error": "player not found"})
	}
	if err != nil {
		log.Printf("DB Error deleting player %s: %v", playerID, err)
		return c.Status(500).JSON(fiber.Map{"error": "failed to delete player"})
	}
	return c.JSON(fiber.Map{"message": "player deleted"})
}

// SendFriendRequest creates a pending directional request.
func (s *PlayerService) SendFriendRequest(c *fiber.Ctx) error {
	fromID := c.Params("id")
	type Request struct {
		ToID string `json:"to_id"`
	}
	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON"})
	}
	if req.ToID == "" || req.ToID == fromID {
		return c.Status(400).JSON(fiber.Map{"error": "to_id must be another player"})
	}

	var count int64
	s.DB.Model(&models.Friendship{}).
		Where("player_id = ? AND friend_id = ?", fromID, req.ToID).Count(&count)
	if count > 0 {
		return c.Status(409).JSON(fiber.Map{"error": "already friends"})
	}
	s.DB.Model(&models.FriendRequest{}).
		Where("from_id = ? AND to_id = ?", fromID, req.ToID).Count(&count)
	if count > 0 {
		return c.Status(409).JSON(fiber.Map{"error": "request already pending"})
	}

	request := models.FriendRequest{ID: uuid.NewString(), FromID: fromID, ToID: req.ToID}
	if err := s.DB.Create(&request).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to send request"})
	}
	return c.Status(201).JSON(request)
}

// AcceptFriendRequest atomically removes the pending request and writes both
// directions of the friendship edge, keeping the symmetric invariant.
func (s *PlayerService) AcceptFriendRequest(c *fiber.Ctx) error {
	toID := c.Params("id")
	fromID := c.Params("from_id")

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("from_id = ? AND to_id = ?", fromID, toID).
			Delete(&models.FriendRequest{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		// Drop any reciprocal pending request too.
		if err := tx.Where("from_id = ? AND to_id = ?", toID, fromID).
			Delete(&models.FriendRequest{}).Error; err != nil {
			return err
		}
		edges := []models.Friendship{
			{ID: uuid.NewString(), PlayerID: toID, FriendID: fromID},
			{ID: uuid.NewString(), PlayerID: fromID, FriendID: toID},
		}
		return tx.Create(&edges).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(404).JSON(fiber.Map{"error": "no pending request"})
	}
	if err != nil {
		log.Printf("DB Error accepting friend request %s->%s: %v", fromID, toID, err)
		return c.Status(500).JSON(fiber.Map{"error": "failed to accept request"})
	}
	return c.JSON(fiber.Map{"message": "friend request accepted"})
}

func (s *PlayerService) DeclineFriendRequest(c *fiber.Ctx) error {
	toID := c.Params("id")
	fromID := c.Params("from_id")

	res := s.DB.Where("from_id = ? AND to_id = ?", fromID, toID).
		Delete(&models.FriendRequest{})
	if res.Error != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to decline request"})
	}
	if res.RowsAffected == 0 {
		return c.Status(404).JSON(fiber.Map{"error": "no pending request"})
	}
	return c.JSON(fiber.Map{"message": "friend request declined"})
}

// RemoveFriend deletes both directions of the edge in one transaction.
func (s *PlayerService) RemoveFriend(c *fiber.Ctx) error {
	playerID := c.Params("id")
	friendID := c.Params("friend_id")

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Where(
			"(player_id = ? AND friend_id = ?) OR (player_id = ? AND friend_id = ?)",
			playerID, friendID, friendID, playerID,
		).Delete(&models.Friendship{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(404).JSON(fiber.Map{"error": "not friends"})
	}
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to remove friend"})
	}
	return c.JSON(fiber.Map{"message": "friend removed"})
}
