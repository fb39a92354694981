package main

import (
	"context"
	"log"

	"github.com/youssefibrahim146/Volt/ai"
	"github.com/youssefibrahim146/Volt/confs"
	"github.com/youssefibrahim146/Volt/db"
	"github.com/youssefibrahim146/Volt/server"
)

func main() {
	cfg, err := confs.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	database, err := db.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer database.Close()

	// Gemini is optional; without a key every AI endpoint serves the
	// deterministic fallback.
	var generator ai.TextGenerator
	if cfg.AI.APIKey != "" {
		client, err := ai.NewGeminiClient(context.Background(), cfg.AI)
		if err != nil {
			log.Printf("Gemini unavailable, using fallback recommendations: %v", err)
		} else {
			defer client.Close()
			generator = client
		}
	} else {
		log.Println("GEMINI_API_KEY not set, using fallback recommendations")
	}

	app := server.NewServer(database, cfg, generator)
	if err := app.Start(); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
