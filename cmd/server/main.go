package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/qiuyun/cipai-meter/internal/api/rest"
	"github.com/qiuyun/cipai-meter/internal/cipai"
	"github.com/qiuyun/cipai-meter/internal/config"
	"github.com/qiuyun/cipai-meter/internal/rhyme"
	"github.com/qiuyun/cipai-meter/internal/sourcedata"
	"github.com/qiuyun/cipai-meter/internal/store"
)

func main() {
	// Load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Printf("Warning: failed to load config file: %v, using defaults", err)
		cfg, _ = config.Load("")
	}

	log.Printf("Starting cipai-meter server...")
	log.Printf("Store: %s", cfg.Store.Path)
	log.Printf("Port: %d", cfg.Server.Port)

	// Open store
	db, err := store.Open(cfg.Store.Path, cfg.Store.MaxOpenConns, cfg.Store.MaxIdleConns)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer func() { _ = db.Close() }()

	if err := db.Migrate(); err != nil {
		log.Fatalf("Failed to migrate store: %v", err)
	}

	repo := store.NewRepository(db)

	dict, templates, err := loadOrBuildCache(repo, cfg)
	if err != nil {
		log.Fatalf("Failed to load rhyme dictionary and cipai templates: %v", err)
	}
	log.Printf("Loaded %d rhyme records, %d cipai templates", dict.RecordCount(), len(templates))

	// Setup Gin router
	router := rest.SetupRouter(cfg, db, dict, templates)

	// Create HTTP server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Server listening on port %d", cfg.Server.Port)
		log.Printf("REST API: http://localhost:%d/api/v1", cfg.Server.Port)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

// loadOrBuildCache serves the rhyme dictionary and cipai templates out of
// the sqlite cache when both are already populated, and otherwise parses
// the configured source directories and populates the cache for next time.
func loadOrBuildCache(repo *store.Repository, cfg *config.Config) (*rhyme.Dict, []*cipai.Template, error) {
	dict, err := repo.LoadRhymeDict()
	if err != nil {
		return nil, nil, fmt.Errorf("load cached rhyme dict: %w", err)
	}
	templates, err := repo.LoadTemplates()
	if err != nil {
		return nil, nil, fmt.Errorf("load cached templates: %w", err)
	}
	if dict.RecordCount() > 0 && len(templates) > 0 {
		return dict, templates, nil
	}

	log.Println("Cache empty, parsing source data...")

	dict, err = sourcedata.LoadRhymeDir(cfg.Data.RhymeDir)
	if err != nil {
		return nil, nil, fmt.Errorf("load rhyme sources: %w", err)
	}
	templates, err = sourcedata.LoadCipaiDir(cfg.Data.CipaiDir)
	if err != nil {
		return nil, nil, fmt.Errorf("load cipai sources: %w", err)
	}

	records, chars := dict.Entries()
	if err := repo.SaveRhymeDict(records, chars); err != nil {
		return nil, nil, fmt.Errorf("cache rhyme dict: %w", err)
	}
	if err := repo.SaveTemplates(templates, nil); err != nil {
		return nil, nil, fmt.Errorf("cache templates: %w", err)
	}

	return dict, templates, nil
}
