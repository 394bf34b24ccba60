// handlers/stats_routes.go
package handlers

import (
	"errors"

	"noor-companion-service/middleware"
	"noor-companion-service/models"
	"noor-companion-service/services"

	"github.com/gofiber/fiber/v2"
)

func SetupStatsRoutes(app *fiber.App, statsService *services.StatsService) {
	secured := app.Group("/user/stats", middleware.UserContextMiddleware())

	secured.Get("/", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		rec, err := statsService.EnsureRecord(userID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to load stats",
				"cause": err.Error(),
			})
		}
		today, err := statsService.TodayStats(userID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to load today's stats",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{
			"stats": rec,
			"today": today,
		})
	})

	secured.Get("/weekly", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		week, err := statsService.WeeklyStats(userID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to load weekly stats",
				"cause": err.Error(),
			})
		}
		return c.JSON(week)
	})

	secured.Post("/increment", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		var req struct {
			Kind   models.StatKind `json:"kind"`
			Amount int64           `json:"amount"`
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

		rec, err := statsService.IncrementStat(userID, req.Kind, req.Amount)
		if err != nil {
			if errors.Is(err, services.ErrInvalidAmount) || errors.Is(err, services.ErrInvalidStatKind) {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to increment stat",
				"cause": err.Error(),
			})
		}
		return c.JSON(rec)
	})

	secured.Post("/reset", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		rec, err := statsService.Reset(userID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to reset stats",
				"cause": err.Error(),
			})
		}
		return c.JSON(rec)
	})
}
