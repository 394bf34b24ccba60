package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"noor-companion-service/handlers"
	"noor-companion-service/middleware"
	"noor-companion-service/models"
	"noor-companion-service/services"
	"noor-companion-service/utils"
	"noor-companion-service/workers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, reading environment variables directly")
	}

	app := fiber.New(fiber.Config{
		BodyLimit: 4 * 1024 * 1024, // 4MB — JSON only, no uploads
	})

	// 🔐 GLOBAL: Only Gateway requests allowed — no exceptions
	app.Use(middleware.GatewayAuthMiddleware())

	allowedOriginsEnv := os.Getenv("ALLOWED_ORIGINS")
	if allowedOriginsEnv == "" {
		log.Println("⚠️  ALLOWED_ORIGINS environment variable not set, using default: http://localhost:3000")
		allowedOriginsEnv = "http://localhost:3000"
	}
	allowedOriginsList := strings.Split(allowedOriginsEnv, ",")
	for i, origin := range allowedOriginsList {
		allowedOriginsList[i] = strings.TrimSpace(origin)
	}
	allowedOriginsString := strings.Join(allowedOriginsList, ",")

	app.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOriginsString,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH,HEAD",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With, X-Request-ID, User-Agent, Cache-Control, X-User-ID, X-User-Roles, X-Service-Token",
		ExposeHeaders:    "Content-Length, Content-Type, Authorization, X-Request-ID",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable not set")
	}

	if err := utils.InitR2(); err != nil {
		log.Fatal("failed to initialize R2 client:", err)
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	if err := db.AutoMigrate(
		&models.ChallengeRecord{},
		&models.KhatmaRecord{},
		&models.Khatma{},
		&models.UsageStatsRecord{},
		&models.WirdConfig{},
		&models.WirdProgress{},
		&models.ReadingBookmark{},
		&models.CachedSurah{},
		&models.ProfileMirror{},
	); err != nil {
		log.Fatal("failed to migrate database:", err)
	}

	if err := utils.EnsureCacheDir(); err != nil {
		log.Fatal("failed to ensure cache dir:", err)
	}

	profileServiceURL := os.Getenv("PROFILE_SERVICE_URL")
	if profileServiceURL == "" {
		log.Fatal("PROFILE_SERVICE_URL environment variable not set")
	}
	serviceToken := os.Getenv("COMPANION_SERVICE_TOKEN")
	if serviceToken == "" {
		log.Fatal("COMPANION_SERVICE_TOKEN environment variable not set")
	}
	notificationServiceURL := os.Getenv("NOTIFICATION_SERVICE_URL")
	if notificationServiceURL == "" {
		log.Fatal("NOTIFICATION_SERVICE_URL environment variable not set")
	}

	pointsSync := services.NewPointsSyncClient(profileServiceURL, serviceToken)
	notifier := services.NewNotificationClient(notificationServiceURL, serviceToken)

	challengeService := services.NewChallengeService(db)
	challengeService.Sync = pointsSync
	khatmaService := services.NewKhatmaService(db)
	khatmaService.Sync = pointsSync
	statsService := services.NewStatsService(db)
	statsService.Sync = pointsSync
	wirdService := services.NewWirdService(db)
	bookmarkService := services.NewBookmarkService(db)
	leaderboardService := services.NewLeaderboardService(db)
	quranClient := services.NewQuranClient()
	prayerClient := services.NewPrayerClient()
	cacheService := services.NewContentCacheService(db, quranClient)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	syncWorker := workers.NewProfileSyncWorker(db, profileServiceURL, "/api/v1/public/profiles", serviceToken)
	syncWorker.Start(ctx)

	wirdService.StartReminderScheduler(notifier)

	handlers.SetupChallengeRoutes(app, challengeService)
	handlers.SetupKhatmaRoutes(app, khatmaService)
	handlers.SetupStatsRoutes(app, statsService)
	handlers.SetupWirdRoutes(app, wirdService)
	handlers.SetupQuranRoutes(app, quranClient, cacheService, bookmarkService)
	handlers.SetupPrayerRoutes(app, prayerClient)
	handlers.SetupLeaderboardRoutes(app, leaderboardService)

	go func() {
		if err := app.Listen(":5300"); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Println("✅ Server running on http://localhost:5300")
	log.Println("✅ Profile Sync Worker running")
	log.Println("✅ Wird reminder scheduler running (every 1m)")
	log.Println("✅ GatewayAuthMiddleware enforced globally — all requests must come from Gateway")
	log.Printf("✅ CORS configured for origins: %s", allowedOriginsString)

	<-ctx.Done()
	log.Println("Shutting down server...")
}
