// handlers/player_routes.go
package handlers

import (
	"game-economy-system/middleware"
	"game-economy-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupPlayerRoutes(app *fiber.App, playerService *services.PlayerService, tokenService *services.TokenService) {
	// 🔓 Public reads — still behind Gateway auth, no user context needed
	app.Get("/players/:id/stats", func(c *fiber.Ctx) error {
		stats, err := playerService.GetPlayerStats(c.Params("id"))
		if err != nil {
			return jsonError(c, err)
		}
		return c.JSON(stats)
	})

	app.Get("/players/:id/transactions", func(c *fiber.Ctx) error {
		limit := c.QueryInt("limit", 50)
		txns, err := tokenService.GetPlayerTransactions(c.Params("id"), limit)
		if err != nil {
			return jsonError(c, err)
		}
		return c.JSON(fiber.Map{"transactions": txns})
	})

	// 🔐 Secured routes — identity comes from the Gateway headers
	secured := app.Group("/", middleware.UserContextMiddleware())

	secured.Post("/players/register", func(c *fiber.Ctx) error {
		var body struct {
			Username string `json:"username"`
		}
		if err := c.BodyParser(&body); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}
		if err := playerService.Register(callerID(c), body.Username); err != nil {
			return jsonError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message":  "player registered",
			"username": body.Username,
		})
	})

	secured.Post("/tokens/spend", func(c *fiber.Ctx) error {
		var body struct {
			Amount   uint64 `json:"amount"`
			ItemName string `json:"item_name"`
		}
		if err := c.BodyParser(&body); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}
		if err := tokenService.SpendTokens(callerID(c), body.Amount, body.ItemName); err != nil {
			return jsonError(c, err)
		}
		return c.JSON(fiber.Map{"message": "tokens spent", "amount": body.Amount})
	})
}
