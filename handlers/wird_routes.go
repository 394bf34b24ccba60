// handlers/wird_routes.go
package handlers

import (
	"errors"

	"noor-companion-service/middleware"
	"noor-companion-service/services"

	"github.com/gofiber/fiber/v2"
)

func SetupWirdRoutes(app *fiber.App, wirdService *services.WirdService) {
	secured := app.Group("/user/wird", middleware.UserContextMiddleware())

	secured.Get("/", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		cfg, err := wirdService.EnsureConfig(userID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to load wird config",
				"cause": err.Error(),
			})
		}
		prog, err := wirdService.EnsureProgress(userID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to load wird progress",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{
			"config":   cfg,
			"progress": prog,
		})
	})

	secured.Put("/config", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		var req services.WirdConfigUpdate
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid JSON",
				"cause": err.Error(),
			})
		}

		cfg, err := wirdService.UpdateConfig(userID, req)
		if err != nil {
			if errors.Is(err, services.ErrInvalidReminderTime) {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to update wird config",
				"cause": err.Error(),
			})
		}
		return c.JSON(cfg)
	})

	secured.Post("/complete", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		prog, err := wirdService.MarkTodayComplete(userID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to mark wird complete",
				"cause": err.Error(),
			})
		}
		return c.JSON(prog)
	})

	secured.Put("/position", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		var req struct {
			Surah int `json:"surah"`
			Ayah  int `json:"ayah"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid JSON",
				"cause": err.Error(),
			})
		}

		prog, err := wirdService.UpdatePosition(userID, req.Surah, req.Ayah)
		if err != nil {
			if errors.Is(err, services.ErrInvalidAmount) {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "surah and ayah must be positive"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to update position",
				"cause": err.Error(),
			})
		}
		return c.JSON(prog)
	})

	secured.Post("/reset", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		prog, err := wirdService.ResetProgress(userID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to reset wird progress",
				"cause": err.Error(),
			})
		}
		return c.JSON(prog)
	})
}
