// handlers/leaderboard_routes.go
package handlers

import (
	"errors"
	"strconv"

	"noor-companion-service/middleware"
	"noor-companion-service/services"

	"github.com/gofiber/fiber/v2"
)

func SetupLeaderboardRoutes(app *fiber.App, leaderboard *services.LeaderboardService) {
	app.Get("/leaderboard", func(c *fiber.Ctx) error {
		sortBy := c.Query("sort", "total_points")
		limit, _ := strconv.Atoi(c.Query("limit", "50"))

		leaders, err := leaderboard.Top(sortBy, limit)
		if err != nil {
			if errors.Is(err, services.ErrInvalidSortKey) {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to load leaderboard",
				"cause": err.Error(),
			})
		}
		return c.JSON(leaders)
	})

	secured := app.Group("/user/leaderboard", middleware.UserContextMiddleware())

	secured.Get("/rank", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		sortBy := c.Query("sort", "total_points")

		rank, err := leaderboard.Rank(userID, sortBy)
		if err != nil {
			if errors.Is(err, services.ErrInvalidSortKey) {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to compute rank",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{"sort": sortBy, "rank": rank})
	})
}
