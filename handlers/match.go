package handlers

import (
	"fifa-tracker/middleware"
	"fifa-tracker/services"

	"github.com/gofiber/fiber/v2"
)

func SetupMatchRoutes(app *fiber.App, matchService *services.MatchService) {
	secured := app.Group("/", middleware.PlayerContextMiddleware())

	secured.Post("/matches", matchService.RecordMatch)
	secured.Get("/matches", matchService.GetAllMatches)
	secured.Get("/matches/:id", matchService.GetMatchByID)
	secured.Put("/matches/:id", matchService.UpdateMatch)
	secured.Delete("/matches/:id", matchService.DeleteMatch)

	// 🔒 Admin-only recovery path
	admin := secured.Group("/admin", middleware.RequireAdmin())
	admin.Post("/stats/recompute", matchService.RecomputeStats)
}
