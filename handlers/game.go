// handlers/game_routes.go
package handlers

import (
	"strconv"

	"game-economy-system/middleware"
	"game-economy-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupGameRoutes(app *fiber.App, gameService *services.GameService) {
	// 🔓 Public reads
	app.Get("/players/:id/history", func(c *fiber.Ctx) error {
		ids, err := gameService.GetPlayerGameHistory(c.Params("id"))
		if err != nil {
			return jsonError(c, err)
		}
		return c.JSON(fiber.Map{"session_ids": ids})
	})

	app.Get("/sessions/:id", func(c *fiber.Ctx) error {
		sessionID, err := strconv.ParseUint(c.Params("id"), 10, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid session id"})
		}
		session, err := gameService.GetSession(sessionID)
		if err != nil {
			return jsonError(c, err)
		}
		return c.JSON(session)
	})

	// 🔐 Secured routes
	secured := app.Group("/", middleware.UserContextMiddleware())

	secured.Post("/games/play", func(c *fiber.Ctx) error {
		var body struct {
			DurationSec int64 `json:"duration_sec"`
			Score       int64 `json:"score"`
			IsWin       bool  `json:"is_win"`
		}
		if err := c.BodyParser(&body); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}
		earned, err := gameService.PlayGame(callerID(c), body.DurationSec, body.Score, body.IsWin)
		if err != nil {
			return jsonError(c, err)
		}
		return c.JSON(fiber.Map{"tokens_earned": earned})
	})
}
