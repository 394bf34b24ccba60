// handlers/quran_routes.go
package handlers

import (
	"context"
	"hash/fnv"
	"log"
	"time"

	"noor-companion-service/middleware"
	"noor-companion-service/services"
	"noor-companion-service/utils"

	"github.com/gofiber/fiber/v2"
)

func SetupQuranRoutes(app *fiber.App, quran *services.QuranClient, cache *services.ContentCacheService, bookmarks *services.BookmarkService) {
	group := app.Group("/quran")

	group.Get("/surahs", func(c *fiber.Ctx) error {
		surahs, err := quran.ListSurahs(c.Context())
		if err != nil {
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
				"error": "failed to load surah list",
				"cause": err.Error(),
			})
		}
		return c.JSON(surahs)
	})

	group.Get("/surahs/search", func(c *fiber.Ctx) error {
		query := c.Query("q", "")
		if query == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "q is required"})
		}

		surahs, err := quran.ListSurahs(c.Context())
		if err != nil {
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
				"error": "failed to load surah list",
				"cause": err.Error(),
			})
		}

		matches := make([]services.Surah, 0)
		for _, s := range surahs {
			if utils.MatchesArabic(s.Name, query) || utils.MatchesArabic(s.EnglishName, query) {
				matches = append(matches, s)
			}
		}
		return c.JSON(matches)
	})

	group.Get("/surahs/:number", func(c *fiber.Ctx) error {
		number, err := c.ParamsInt("number")
		if err != nil || number < 1 || number > 114 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "surah number must be 1..114"})
		}
		reciter := c.Query("reciter", services.DefaultReciter)

		detail, err := quran.GetSurah(c.Context(), number, reciter)
		if err != nil {
			// Upstream down — serve the offline copy when we have one
			if cached, cacheErr := cache.CachedSurahDetail(number); cacheErr == nil {
				log.Printf("⚠️ [QURAN] serving surah %d from offline cache: %v", number, err)
				return c.JSON(fiber.Map{"surah": cached, "from_cache": true})
			}
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
				"error": "failed to load surah",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{"surah": detail, "from_cache": false})
	})

	group.Get("/surahs/:number/tafsir", func(c *fiber.Ctx) error {
		number, err := c.ParamsInt("number")
		if err != nil || number < 1 || number > 114 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "surah number must be 1..114"})
		}
		edition := c.Query("edition", services.DefaultTafsirEdition)

		detail, err := quran.GetTafsir(c.Context(), number, edition)
		if err != nil {
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
				"error": "failed to load tafsir",
				"cause": err.Error(),
			})
		}
		return c.JSON(detail)
	})

	// Same ayah for everyone all day, different ayah every day.
	group.Get("/daily-ayah", func(c *fiber.Ctx) error {
		h := fnv.New32a()
		h.Write([]byte(time.Now().Format("2006-01-02")))
		number := int(h.Sum32()%services.QuranAyahCount) + 1

		ayah, err := quran.GetAyah(c.Context(), number, "")
		if err != nil {
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
				"error": "failed to load daily ayah",
				"cause": err.Error(),
			})
		}
		return c.JSON(ayah)
	})

	group.Get("/cache", func(c *fiber.Ctx) error {
		meta, err := cache.Meta()
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to load cache meta",
				"cause": err.Error(),
			})
		}
		return c.JSON(meta)
	})

	// Reading bookmark
	secured := app.Group("/user/bookmark", middleware.UserContextMiddleware())

	secured.Get("/", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		bm, err := bookmarks.Get(userID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to load bookmark",
				"cause": err.Error(),
			})
		}
		if bm == nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "no bookmark saved"})
		}
		return c.JSON(fiber.Map{
			"bookmark": bm,
			"time_ago": services.TimeAgo(bm.UpdatedAt, time.Now()),
		})
	})

	secured.Put("/", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		var req struct {
			Surah   int    `json:"surah"`
			Ayah    int    `json:"ayah"`
			Reciter string `json:"reciter"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid JSON",
				"cause": err.Error(),
			})
		}

		bm, err := bookmarks.Save(userID, req.Surah, req.Ayah, req.Reciter)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "failed to save bookmark",
				"cause": err.Error(),
			})
		}
		return c.JSON(bm)
	})

	secured.Delete("/", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		if err := bookmarks.Clear(userID); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to clear bookmark",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{"message": "bookmark cleared"})
	})

	// Admin: warm the offline cache in the background
	admin := app.Group("/s/admin", middleware.UserContextMiddleware(), middleware.RequireRole("admin"))

	admin.Post("/cache/surahs", func(c *fiber.Ctx) error {
		// fiber ctx dies with the request; the warm-up outlives it
		go cache.CacheAll(context.Background())
		return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"message": "caching started"})
	})

	admin.Delete("/cache/surahs", func(c *fiber.Ctx) error {
		if err := cache.Clear(); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to clear cache",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{"message": "cache cleared"})
	})
}
