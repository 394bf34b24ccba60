// handlers/prayer_routes.go
package handlers

import (
	"strconv"
	"time"

	"noor-companion-service/services"

	"github.com/gofiber/fiber/v2"
)

func SetupPrayerRoutes(app *fiber.App, prayer *services.PrayerClient) {
	app.Get("/prayer/timings", func(c *fiber.Ctx) error {
		// Missing or unparsable coordinates fall back to Mecca inside the client
		latitude, _ := strconv.ParseFloat(c.Query("latitude", "0"), 64)
		longitude, _ := strconv.ParseFloat(c.Query("longitude", "0"), 64)

		times, err := prayer.GetTimings(c.Context(), latitude, longitude)
		if err != nil {
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
				"error": "failed to load prayer times",
				"cause": err.Error(),
			})
		}

		return c.JSON(fiber.Map{
			"timings":     times,
			"next_prayer": services.ComputeNextPrayer(times, time.Now()),
		})
	})
}
