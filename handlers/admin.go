// handlers/admin_routes.go
package handlers

import (
	"game-economy-system/middleware"
	"game-economy-system/services"

	"github.com/gofiber/fiber/v2"
)

// Admin routes delegate authorization to the services: each operation
// checks the caller against the platform owner, so no role middleware
// is needed here.
func SetupAdminRoutes(app *fiber.App, platformService *services.PlatformService, playerService *services.PlayerService) {
	// 🔓 Public platform stats
	app.Get("/platform/stats", func(c *fiber.Ctx) error {
		stats, err := platformService.GetPlatformStats()
		if err != nil {
			return jsonError(c, err)
		}
		return c.JSON(stats)
	})

	// 🔐 Owner-gated (checked in the service layer)
	secured := app.Group("/", middleware.UserContextMiddleware())

	secured.Post("/platform/toggle", func(c *fiber.Ctx) error {
		active, err := platformService.TogglePlatformStatus(callerID(c))
		if err != nil {
			return jsonError(c, err)
		}
		return c.JSON(fiber.Map{"platform_active": active})
	})

	secured.Patch("/platform/parameters", func(c *fiber.Ctx) error {
		var body struct {
			BaseRewardPerWin      uint64 `json:"base_reward_per_win"`
			StreakBonusMultiplier uint64 `json:"streak_bonus_multiplier"`
			DailyPlayLimit        uint64 `json:"daily_play_limit"`
		}
		if err := c.BodyParser(&body); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}
		err := platformService.UpdateGameParameters(callerID(c),
			body.BaseRewardPerWin, body.StreakBonusMultiplier, body.DailyPlayLimit)
		if err != nil {
			return jsonError(c, err)
		}
		return c.JSON(fiber.Map{"message": "game parameters updated"})
	})

	secured.Patch("/platform/minimum-duration", func(c *fiber.Ctx) error {
		var body struct {
			Seconds int64 `json:"seconds"`
		}
		if err := c.BodyParser(&body); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}
		if err := platformService.SetMinimumGameDuration(callerID(c), body.Seconds); err != nil {
			return jsonError(c, err)
		}
		return c.JSON(fiber.Map{"message": "minimum game duration updated"})
	})

	secured.Patch("/players/:id/pause", func(c *fiber.Ctx) error {
		if err := playerService.SetActive(callerID(c), c.Params("id"), false); err != nil {
			return jsonError(c, err)
		}
		return c.JSON(fiber.Map{"message": "player paused"})
	})

	secured.Patch("/players/:id/resume", func(c *fiber.Ctx) error {
		if err := playerService.SetActive(callerID(c), c.Params("id"), true); err != nil {
			return jsonError(c, err)
		}
		return c.JSON(fiber.Map{"message": "player resumed"})
	})
}
