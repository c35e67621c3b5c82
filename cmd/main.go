package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"devconnector/internal/config"
	"devconnector/internal/database/mongo"
	"devconnector/internal/database/redis"
	"devconnector/internal/events"
	"devconnector/internal/handlers"
	"devconnector/internal/repository"
	"devconnector/internal/service"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
)

func main() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	cfg := config.ServiceConfig

	if cfg.JWT.Secret == "" {
		log.Fatal("JWT_SECRET must be set")
	}

	if err := mongo.Connect(cfg.MongoDB); err != nil {
		log.Fatalf("Fatal error connecting to MongoDB: %s", err)
	}
	redis.Connect(cfg.Redis)

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"*"},
	}))

	// Repositories
	userRepo := repository.NewUserRepository(mongo.Mongo_Database)
	profileRepo := repository.NewProfileRepository(mongo.Mongo_Database)
	redisRepo := repository.NewRedisRepo(redis.Redis_Client)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := userRepo.CreateIndexes(ctx); err != nil {
		log.Printf("Warning: Failed to create user indexes: %v", err)
	}
	if err := profileRepo.CreateIndexes(ctx); err != nil {
		log.Printf("Warning: Failed to create profile indexes: %v", err)
	}
	cancel()

	eventPublisher, err := events.NewEventPublisher(cfg.RabbitMQ.URI)
	if err != nil {
		log.Printf("Warning: Failed to initialize event publisher: %v", err)
		eventPublisher = &events.EventPublisher{}
	}

	// Services
	jwtService := service.NewJWTService(cfg.JWT)
	authService := service.NewAuthService(userRepo, jwtService, eventPublisher)
	profileService := service.NewProfileService(profileRepo, userRepo, eventPublisher)
	githubService := service.NewGithubService(cfg.Github, redisRepo)

	// Handlers
	handlers.NewAuthHandler(authService, jwtService).RegisterRoutes(app)
	handlers.NewProfileHandler(profileService, githubService, jwtService).RegisterRoutes(app)

	shutdownChan := make(chan os.Signal, 1)
	doneChan := make(chan bool, 1)

	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := app.Listen(fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)); err != nil {
			log.Fatalf("Error starting server: %v", err)
		}
		doneChan <- true
	}()

	<-shutdownChan
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("Error shutting down HTTP server: %v", err)
	}

	if eventPublisher != nil {
		if err := eventPublisher.Close(); err != nil {
			log.Printf("Error closing event publisher: %v", err)
		}
	}

	redis.Disconnect()
	mongo.DisconnectMongo()

	<-doneChan
	log.Println("Server shutdown complete")
}
