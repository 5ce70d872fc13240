package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mealdex/internal/app"
	"mealdex/internal/catalog"
	"mealdex/internal/config"
	"mealdex/internal/database"
	"mealdex/internal/favorites"
	"mealdex/internal/llm"
	"mealdex/internal/mealplan"
	"mealdex/internal/metrics"
	"mealdex/internal/planner"
	"mealdex/internal/storage"
	"mealdex/internal/telegram"
)

func main() {
	// 1. Load Configuration
	cfg := config.NewFromEnv()
	if err := cfg.RequireTelegram(); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()

	// 2. Initialize Persistence
	var snaps storage.Snapshots
	var metricsStore *metrics.Store
	if cfg.DBPath != "" {
		db, err := database.NewDB(cfg.DBPath)
		if err != nil {
			log.Fatalf("Failed to initialize database: %v", err)
		}
		defer db.Close()
		snaps = storage.NewDBStore(db.SQL)
		metricsStore = metrics.NewStore(db.SQL)
	} else {
		fileStore, err := storage.NewFileStore(cfg.DataDir)
		if err != nil {
			log.Fatalf("Failed to initialize file storage: %v", err)
		}
		snaps = fileStore
	}

	// 3. Initialize the Catalog Client
	var recorder catalog.RequestRecorder
	if metricsStore != nil {
		recorder = metricsStore
	}
	catalogClient := catalog.NewClient(cfg.CatalogBaseURL, recorder)

	// 4. Initialize Stores
	favStore, err := favorites.NewStore(snaps)
	if err != nil {
		log.Fatalf("Failed to initialize favorites store: %v", err)
	}
	planStore, err := mealplan.NewStore(snaps)
	if err != nil {
		log.Fatalf("Failed to initialize meal plan store: %v", err)
	}

	// 5. Initialize Plan Suggestions (optional)
	var suggester *planner.Suggester
	if cfg.GeminiAPIKey != "" {
		geminiClient, err := llm.NewGeminiClient(ctx, cfg.GeminiAPIKey)
		if err != nil {
			log.Fatalf("Failed to create Gemini client: %v", err)
		}
		if closer, ok := geminiClient.(llm.Closer); ok {
			defer closer.Close()
		}
		suggester = planner.NewSuggester(geminiClient)
	} else {
		log.Println("GEMINI_API_KEY not set, /suggest is disabled")
	}

	application := app.NewApp(catalogClient, favStore, planStore, suggester)

	// 6. Initialize Telegram Bot
	bot, err := telegram.NewBot(cfg, application)
	if err != nil {
		log.Fatalf("Failed to initialize Telegram Bot: %v", err)
	}

	// 7. Start Server with Graceful Shutdown
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	bot.RegisterHandlers()

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: nil,
	}

	go func() {
		log.Printf("Telegram Bot Server listening on port %s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}
