// handlers/tournament_routes.go
package handlers

import (
	"path/filepath"
	"strconv"

	"game-economy-system/middleware"
	"game-economy-system/services"
	"game-economy-system/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func SetupTournamentRoutes(app *fiber.App, tournamentService *services.TournamentService) {
	// 🔓 Public reads
	app.Get("/tournaments", func(c *fiber.Ctx) error {
		tournaments, err := tournamentService.GetAllTournaments()
		if err != nil {
			return jsonError(c, err)
		}
		return c.JSON(fiber.Map{"tournaments": tournaments})
	})

	app.Get("/tournaments/:id", func(c *fiber.Ctx) error {
		id, err := parseTournamentID(c)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid tournament id"})
		}
		tournament, err := tournamentService.GetTournamentByID(id)
		if err != nil {
			return jsonError(c, err)
		}
		return c.JSON(tournament)
	})

	// 🔐 Secured routes
	secured := app.Group("/", middleware.UserContextMiddleware())

	// Multipart form: name, entry_fee, duration_sec + optional banner file.
	// The banner goes to R2 first so the DB transaction never waits on I/O.
	secured.Post("/tournaments", func(c *fiber.Ctx) error {
		name := c.FormValue("name")
		entryFee, _ := strconv.ParseUint(c.FormValue("entry_fee", "0"), 10, 64)
		durationSec, _ := strconv.ParseInt(c.FormValue("duration_sec", "0"), 10, 64)

		bannerURL := ""
		if fileHeader, err := c.FormFile("banner"); err == nil {
			key := "banners/" + uuid.NewString() + filepath.Ext(fileHeader.Filename)
			url, err := utils.UploadFileToR2(fileHeader, key)
			if err != nil {
				return jsonError(c, err)
			}
			bannerURL = url
		}

		id, err := tournamentService.CreateTournament(callerID(c), name, entryFee, durationSec, bannerURL)
		if err != nil {
			return jsonError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"tournament_id": id,
			"banner_url":    bannerURL,
		})
	})

	secured.Post("/tournaments/:id/join", func(c *fiber.Ctx) error {
		id, err := parseTournamentID(c)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid tournament id"})
		}
		if err := tournamentService.JoinTournament(callerID(c), id); err != nil {
			return jsonError(c, err)
		}
		return c.JSON(fiber.Map{"message": "joined tournament", "tournament_id": id})
	})

	secured.Post("/tournaments/:id/complete", func(c *fiber.Ctx) error {
		id, err := parseTournamentID(c)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid tournament id"})
		}
		var body struct {
			WinnerID string `json:"winner_id"`
		}
		if err := c.BodyParser(&body); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}
		if err := tournamentService.CompleteTournament(callerID(c), id, body.WinnerID); err != nil {
			return jsonError(c, err)
		}
		return c.JSON(fiber.Map{"message": "tournament completed", "winner_id": body.WinnerID})
	})
}

func parseTournamentID(c *fiber.Ctx) (uint64, error) {
	return strconv.ParseUint(c.Params("id"), 10, 64)
}
