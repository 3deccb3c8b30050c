package handlers

import (
	"fifa-tracker/middleware"
	"fifa-tracker/services"

	"github.com/gofiber/fiber/v2"
)

func SetupPlayerRoutes(app *fiber.App, playerService *services.PlayerService) {
	// 🔓 Public: registration, login and discovery
	app.Post("/players", playerService.Register)
	app.Post("/players/login", playerService.Login)
	app.Post("/players/:id/pin", playerService.SetupPIN)
	app.Get("/players/search", playerService.SearchPlayers)

	// 🔐 Authenticated
	secured := app.Group("/", middleware.PlayerContextMiddleware())
	secured.Get("/players", playerService.GetAllPlayers)
	secured.Get("/players/:id", playerService.GetPlayerByID)
	secured.Put("/players/:id", playerService.UpdatePlayer)
	secured.Post("/players/:id/photo", playerService.UploadPhoto)
	secured.Delete("/players/:id", playerService.DeletePlayer)

	// Friend operations
	secured.Post("/players/:id/friend-requests", playerService.SendFriendRequest)
	secured.Post("/players/:id/friend-requests/:from_id/accept", playerService.AcceptFriendRequest)
	secured.Post("/players/:id/friend-requests/:from_id/decline", playerService.DeclineFriendRequest)
	secured.Delete("/players/:id/friends/:friend_id", playerService.RemoveFriend)
}
