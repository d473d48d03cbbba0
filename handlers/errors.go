package handlers

import (
	"errors"
	"log"

	"game-economy-system/models"

	"github.com/gofiber/fiber/v2"
)

// errorStatus maps service sentinels to HTTP status codes. Anything
// unmapped is a real failure and logs as 500.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, models.ErrInvalidInput),
		errors.Is(err, models.ErrInvalidIdentity),
		errors.Is(err, models.ErrNotAParticipant):
		return fiber.StatusBadRequest
	case errors.Is(err, models.ErrInsufficientBalance):
		return fiber.StatusPaymentRequired
	case errors.Is(err, models.ErrNotOwner),
		errors.Is(err, models.ErrPlayerInactive),
		errors.Is(err, models.ErrPlatformInactive),
		errors.Is(err, models.ErrTournamentNotActive),
		errors.Is(err, models.ErrRegistrationClosed):
		return fiber.StatusForbidden
	case errors.Is(err, models.ErrNotRegistered),
		errors.Is(err, models.ErrTournamentNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, models.ErrAlreadyRegistered),
		errors.Is(err, models.ErrAlreadyJoined),
		errors.Is(err, models.ErrTournamentCompleted):
		return fiber.StatusConflict
	case errors.Is(err, models.ErrDailyLimitReached):
		return fiber.StatusTooManyRequests
	default:
		return fiber.StatusInternalServerError
	}
}

func jsonError(c *fiber.Ctx, err error) error {
	status := errorStatus(err)
	if status == fiber.StatusInternalServerError {
		log.Printf("❌ [%s %s] %v", c.Method(), c.Path(), err)
		return c.Status(status).JSON(fiber.Map{"error": "internal server error"})
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

func callerID(c *fiber.Ctx) string {
	id, _ := c.Locals("user_id").(string)
	return id
}
