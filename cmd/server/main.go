package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	config "github.com/vidreacher/vidreacher-api/configs"
	"github.com/vidreacher/vidreacher-api/internal/ai"
	"github.com/vidreacher/vidreacher-api/internal/api/handlers"
	job "github.com/vidreacher/vidreacher-api/internal/jobs"
	"github.com/vidreacher/vidreacher-api/internal/platform"
	"github.com/vidreacher/vidreacher-api/internal/repository"
	"github.com/vidreacher/vidreacher-api/internal/scheduler"
	"github.com/vidreacher/vidreacher-api/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Failed to load environment variables", err)
	}

	cfg := config.LoadConfig()

	db, err := sql.Open("postgres", cfg.PostgresURI)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer closeDB(db)

	if err := db.Ping(); err != nil {
		log.Fatalf("Database is unreachable: %v", err)
	}

	app := fiber.New(fiber.Config{
		ReadTimeout:  2 * time.Minute,
		WriteTimeout: 2 * time.Minute,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})

	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.FrontendBase,
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		MaxAge:       3600,
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "VidReacher backend is running"})
	})

	socialAccountRepo := repository.NewSocialAccountRepository(db)
	scheduledPostRepo := repository.NewScheduledPostRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)

	metaClient := platform.NewMetaClient(*cfg)
	googleClient := platform.NewGoogleClient(*cfg)

	metaService := service.NewMetaService(*cfg, metaClient, socialAccountRepo)
	youtubeService := service.NewYoutubeService(*cfg, googleClient, socialAccountRepo)
	platformService := service.NewPlatformService(metaClient, googleClient, socialAccountRepo)
	postService := service.NewPostService(scheduledPostRepo)
	analyticsService := service.NewAnalyticsService(*cfg, metaClient, googleClient, socialAccountRepo, analyticsRepo)

	var engine *ai.Engine
	if cfg.OpenAIAPIKey != "" {
		engine = ai.NewEngine(ai.NewProvider(cfg.OpenAIAPIKey))
	} else {
		engine = ai.NewEngine(nil)
	}

	oauth := handlers.NewOAuthHandler(*cfg, platformService, metaService, youtubeService)
	app.Get("/oauth/:platform/start", oauth.Start)
	app.Get("/oauth/meta/callback", oauth.MetaCallback)
	app.Get("/oauth/google/callback", oauth.GoogleCallback)
	app.Get("/oauth/accounts", oauth.Accounts)
	app.Delete("/oauth/disconnect/:id", oauth.Disconnect)
	app.Get("/oauth/refresh/:id", oauth.Refresh)

	sched := handlers.NewSchedulerHandler(postService)
	app.Post("/scheduler/create", sched.Create)
	app.Get("/scheduler/list", sched.List)
	app.Delete("/scheduler/delete/:id", sched.Delete)

	analytics := handlers.NewAnalyticsHandler(analyticsService)
	app.Get("/analytics/overview", analytics.Overview)
	app.Post("/analytics/collect", analytics.Collect)
	app.Get("/analytics/:platform/latest", analytics.Latest)
	app.Get("/analytics/:platform/history", analytics.History)

	aiTools := handlers.NewAIHandler(engine)
	app.Post("/ai/caption", aiTools.Caption)
	app.Post("/ai/tags", aiTools.Tags)
	app.Post("/ai/summary", aiTools.Summary)

	postChecker := job.NewPostCheckerJob(scheduledPostRepo)
	analyticsJob := job.NewAnalyticsJob(analyticsService)

	sch := scheduler.New()
	if err := sch.Register("post_checker", "@every 1m", postChecker.Run); err != nil {
		log.Fatalf("Failed to register post checker: %v", err)
	}
	if err := sch.Register("daily_analytics", "0 2 * * *", analyticsJob.Run); err != nil {
		log.Fatalf("Failed to register analytics job: %v", err)
	}
	sch.Start()

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()
	log.Printf("Server is running on http://localhost:%s", cfg.Port)

	gracefulShutdown(app, sch, db)
}

func closeDB(db *sql.DB) {
	fmt.Fprint(os.Stdout, "Closing database connection... ")
	if err := db.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to close database: %v", err)
		return
	}
	fmt.Fprintln(os.Stdout, "Done")
}

func gracefulShutdown(app *fiber.App, sch *scheduler.Scheduler, db *sql.DB) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	log.Println("Shutting down server...")

	sch.Stop()

	if err := app.Shutdown(); err != nil {
		log.Fatalf("Failed to shut down server: %v", err)
	}

	closeDB(db)
	log.Println("Server shutdown complete.")
}
