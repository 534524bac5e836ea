package main

import (
	"fmt"
	"log"
	"net/http"

	"word-rush/internal/config"
	"word-rush/internal/db"
	"word-rush/internal/server"
	"word-rush/internal/words"
)

func main() {
	if err := config.LoadDotEnv(".env"); err != nil {
		log.Printf("failed to load .env: %v", err)
	}
	cfg := config.Load()

	bank, err := words.Load(cfg.WordsPath)
	if err != nil {
		log.Fatalf("failed to load word pairs: %v", err)
	}

	conn, err := db.Open(cfg)
	if err != nil {
		// The quiz itself is memory-resident; only accounts and the
		// global leaderboard need the database.
		log.Printf("running without persistence: %v", err)
		conn = nil
	} else if err := db.Migrate(conn); err != nil {
		log.Fatalf("database migration failed: %v", err)
	}

	srv := server.New(conn, bank, cfg)
	addr := fmt.Sprintf(":%d", cfg.Port)
	log.Printf("word-rush server listening on %s", addr)
	if err := http.ListenAndServe(addr, srv.Handler()); err != nil {
		log.Fatal(err)
	}
}
