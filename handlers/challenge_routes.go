// handlers/challenge_routes.go
package handlers

import (
	"errors"

	"noor-companion-service/middleware"
	"noor-companion-service/models"
	"noor-companion-service/services"

	"github.com/gofiber/fiber/v2"
)

func SetupChallengeRoutes(app *fiber.App, challengeService *services.ChallengeService) {
	secured := app.Group("/user/challenges", middleware.UserContextMiddleware())

	secured.Get("/", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		snap, err := challengeService.Snapshot(userID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to load challenges",
				"cause": err.Error(),
			})
		}
		return c.JSON(snap)
	})

	secured.Post("/increment", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		var req struct {
			Type   models.ChallengeType `json:"type"`
			Amount int64                `json:"amount"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid JSON",
				"cause": err.Error(),
			})
		}
		if req.Amount == 0 {
			req.Amount = 1
		}

		rec, err := challengeService.IncrementChallenge(userID, req.Type, req.Amount)
		if err != nil {
			if errors.Is(err, services.ErrInvalidAmount) {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to increment challenge",
				"cause": err.Error(),
			})
		}
		return c.JSON(rec)
	})

	// Admin endpoints
	admin := app.Group("/s/admin", middleware.UserContextMiddleware(), middleware.RequireRole("admin"))

	admin.Post("/points/grant", func(c *fiber.Ctx) error {
		var req struct {
			UserID string `json:"user_id"`
			Points int64  `json:"points"`
			Reason string `json:"reason"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid JSON",
				"cause": err.Error(),
			})
		}
		if req.UserID == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "user_id is required"})
		}

		rec, err := challengeService.GrantPoints(req.UserID, req.Points, req.Reason)
		if err != nil {
			if errors.Is(err, services.ErrInvalidAmount) {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "point grant failed",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{
			"message": "points granted successfully",
			"user_id": req.UserID,
			"points":  req.Points,
			"total":   rec.TotalPointsEarned,
		})
	})
}
