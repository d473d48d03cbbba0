package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"game-economy-system/handlers"
	"game-economy-system/middleware"
	"game-economy-system/models"
	"game-economy-system/services"
	"game-economy-system/utils"
	"game-economy-system/workers"

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
		BodyLimit: 20 * 1024 * 1024, // 20MB — enough for banner uploads
	})

	// 🔐❗ GLOBAL: Only Gateway requests allowed — no exceptions
	app.Use(middleware.GatewayAuthMiddleware())

	// Load allowed origins from environment variable
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
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With, X-Request-ID, User-Agent, Cache-Control, X-User-ID",
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
		&models.PlatformState{},
		&models.Player{},
		&models.GameSession{},
		&models.Tournament{},
		&models.TournamentEntry{},
		&models.TokenTransaction{},
		&models.PlatformEvent{},
	); err != nil {
		log.Fatal("failed to migrate database:", err)
	}

	bus := services.NewEventBus()
	platformService := services.NewPlatformService(db, bus)

	// The platform owner is fixed at first boot and controls the admin
	// operations from then on.
	if _, err := platformService.EnsurePlatformState(os.Getenv("PLATFORM_OWNER_ID")); err != nil {
		log.Fatal("failed to initialize platform state:", err)
	}

	playerService := services.NewPlayerService(db, platformService)
	tokenService := services.NewTokenService(db, platformService)
	gameService := services.NewGameService(db, platformService)
	tournamentService := services.NewTournamentService(db, platformService)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go workers.RunEventWorker(ctx, db, bus)

	tournamentService.StartStatusScheduler()

	// ✅ Setup routes — enforced Gateway auth everywhere
	handlers.SetupPlayerRoutes(app, playerService, tokenService)
	handlers.SetupGameRoutes(app, gameService)
	handlers.SetupTournamentRoutes(app, tournamentService)
	handlers.SetupAdminRoutes(app, platformService, playerService)
	handlers.SetupEventRoutes(app, db)

	go func() {
		if err := app.Listen(":5300"); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Println("✅ Server running on http://localhost:5300")
	log.Println("✅ Event worker running")
	log.Println("✅ Tournament status scheduler running (every 1m)")
	log.Println("✅ GatewayAuthMiddleware enforced globally — all requests must come from Gateway")
	log.Printf("✅ CORS configured for origins: %s", allowedOriginsString)

	<-ctx.Done()
	log.Println("Shutting down server...")
}
