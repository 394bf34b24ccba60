// handlers/khatma_routes.go
package handlers

import (
	"errors"

	"noor-companion-service/middleware"
	"noor-companion-service/services"

	"github.com/gofiber/fiber/v2"
)

func SetupKhatmaRoutes(app *fiber.App, khatmaService *services.KhatmaService) {
	secured := app.Group("/user/khatma", middleware.UserContextMiddleware())

	secured.Get("/", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		snap, err := khatmaService.Snapshot(userID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to load khatma",
				"cause": err.Error(),
			})
		}
		return c.JSON(snap)
	})

	secured.Post("/pages", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		var req struct {
			Pages int `json:"pages"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid JSON",
				"cause": err.Error(),
			})
		}

		rec, err := khatmaService.AddPages(userID, req.Pages)
		if err != nil {
			if errors.Is(err, services.ErrInvalidPages) {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to add pages",
				"cause": err.Error(),
			})
		}
		return c.JSON(rec)
	})

	secured.Post("/reset", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		rec, err := khatmaService.ResetCurrent(userID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to reset khatma",
				"cause": err.Error(),
			})
		}
		return c.JSON(rec)
	})

	secured.Put("/target", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		var req struct {
			Months int `json:"months"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid JSON",
				"cause": err.Error(),
			})
		}

		rec, err := khatmaService.SetTarget(userID, req.Months)
		if err != nil {
			if errors.Is(err, services.ErrInvalidTarget) {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to set target",
				"cause": err.Error(),
			})
		}
		return c.JSON(rec)
	})
}
