package main

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"

	"adwizard/internal/config"
	"adwizard/internal/core/identify"
	"adwizard/internal/core/listing"
	"adwizard/internal/core/price"
	"adwizard/internal/core/upload"
	"adwizard/internal/logger"
	"adwizard/internal/platform/kleinanzeigen"
	"adwizard/internal/platform/llm"
	"adwizard/internal/platform/mongodb"
	"adwizard/internal/server"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	log.Printf("[adwizard] starting at %s (env=%s)\n", cfg.HTTPAddr, cfg.AppEnv)

	logr := logger.New("main")

	ctx := context.Background()

	// Mongo client
	mongoSvc, err := mongodb.New(ctx, mongodb.Options{
		URI:      cfg.MongoURI,
		Database: cfg.MongoDB,
	})
	if err != nil {
		log.Fatal(err)
	}

	// LLM service initialized from environment variables
	llmSvc, err := llm.NewService(llm.Config{
		Provider:    cfg.LLMProvider,
		APIKey:      cfg.GeminiAPIKey,
		Model:       cfg.DefaultLLMModel,
		VisionModel: cfg.VisionLLMModel,
	})
	if err != nil {
		log.Fatalf("failed to initialize LLM service: %v", err)
	}

	// Marketplace search client
	adsClient := kleinanzeigen.NewClient(kleinanzeigen.ClientOpts{
		BaseURL: cfg.AdsAPIURL,
		APIKey:  cfg.AdsAPIKey,
	})

	// Core services
	store := mongodb.NewProcessStore(mongoSvc.Database())
	identifySvc := identify.NewService(store, llmSvc, identify.NewHTTPFetcher())
	priceSvc := price.NewService(store, adsClient, llmSvc)
	listingSvc := listing.NewService(store, llmSvc)
	uploadSvc, err := upload.New(cfg)
	if err != nil {
		log.Fatal(err)
	}

	// HTTP server
	app := fiber.New(fiber.Config{
		AppName: "Kleinanzeigen Ad Wizard",
		JSONEncoder: func(v interface{}) ([]byte, error) {
			var buf bytes.Buffer
			encoder := json.NewEncoder(&buf)
			encoder.SetEscapeHTML(false)
			if err := encoder.Encode(v); err != nil {
				return nil, err
			}
			return buf.Bytes(), nil
		},
	})
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept",
	}))
	// Serve uploaded images
	app.Static("/uploads", cfg.UploadDir)

	deps := server.Dependencies{
		Identify: identifySvc,
		Price:    priceSvc,
		Listing:  listingSvc,
		Upload:   uploadSvc,
		Mongo:    mongoSvc,
	}
	healthHandler := server.RegisterRoutes(app, deps)

	// Mark application as ready after all services are initialized
	go func() {
		time.Sleep(2 * time.Second)
		healthHandler.SetReady()
	}()

	// Graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-shutdown
		logr.LogInfo("Shutting down...")
		_ = app.ShutdownWithTimeout(5 * time.Second)
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = mongoSvc.Close(disconnectCtx)
	}()

	if err := app.Listen(cfg.HTTPAddr); err != nil {
		log.Fatalf("server listen: %v", err)
	}
}
