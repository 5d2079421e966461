package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/hawkinsjon/hometown-heroes/internal/config"
	"github.com/hawkinsjon/hometown-heroes/internal/email"
	"github.com/hawkinsjon/hometown-heroes/internal/metrics"
	"github.com/hawkinsjon/hometown-heroes/internal/pdf"
	"github.com/hawkinsjon/hometown-heroes/internal/server"
	"github.com/hawkinsjon/hometown-heroes/internal/storage"
)

func main() {
	ctx := context.Background()
	cfg := config.Load()

	program, err := config.LoadProgramConfig()
	if err != nil {
		log.Fatalf("Failed to load program config: %v", err)
	}
	log.Printf("Serving the %s program for %s", program.ProgramName, program.TownName)

	metrics.Init()

	var store storage.Store
	if cfg.IsStorageEnabled() {
		spaces, err := storage.NewSpaces(ctx, cfg)
		if err != nil {
			log.Fatalf("Failed to initialize Spaces client: %v", err)
		}
		store = spaces
	} else {
		log.Println("Spaces credentials not set, uploads and submissions disabled")
	}

	if !cfg.HasActionLinkSecret() {
		log.Println("ACTION_LINK_SECRET not set, review links disabled")
	}

	sender := email.NewService(cfg)
	templates := email.NewTemplates(cfg, program)
	contracts := pdf.NewGenerator(program)

	srv := server.New(cfg)
	srv.RegisterRoutes(store, sender, templates, contracts)

	// Graceful shutdown
	go func() {
		if err := srv.Start(); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := srv.Shutdown(); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exited")
}
