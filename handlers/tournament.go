package handlers

import (
	"fifa-tracker/middleware"
	"fifa-tracker/services"

	"github.com/gofiber/fiber/v2"
)

func SetupTournamentRoutes(app *fiber.App, tournamentService *services.TournamentService) {
	secured := app.Group("/", middleware.PlayerContextMiddleware())

	secured.Post("/tournaments", tournamentService.CreateTournament)
	secured.Get("/tournaments", tournamentService.GetAllTournaments)
	secured.Get("/tournaments/:id", tournamentService.GetTournamentByID)

	secured.Post("/tournaments/:id/draw", tournamentService.Draw)
	secured.Get("/tournaments/:id/bracket", tournamentService.GetBracket)
	secured.Get("/tournaments/:id/standings", tournamentService.GetStandings)
	secured.Post("/tournaments/:id/complete", tournamentService.Complete)
}
