package handlers

import (
	"fifa-tracker/middleware"
	"fifa-tracker/services"

	"github.com/gofiber/fiber/v2"
)

func SetupFeedRoutes(app *fiber.App, feedService *services.FeedService, presence *services.PresenceService) {
	secured := app.Group("/", middleware.PlayerContextMiddleware())

	secured.Get("/leaderboard", feedService.GetLeaderboard)
	secured.Get("/players/:id/stats/advanced", feedService.GetAdvancedStats)
	secured.Get("/players/:id/achievements", feedService.GetAchievements)
	secured.Get("/feed", feedService.GetFeed)

	// Device-local presence session
	secured.Put("/presence/players", presence.SetPresent)
	secured.Get("/presence/players", presence.GetPresent)
	secured.Delete("/presence", presence.ClearPresence)
}
