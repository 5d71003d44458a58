package main

import (
	"context"
	"log"
	"os"
	"time"

	"orderbot/internal/config"
	"orderbot/internal/db"
	"orderbot/internal/migrate"
)

// Brings the bot schema up to date. Run before starting the bot or the seeder.
func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[migrate] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	// The whole schema applies in seconds; a hung run means a held lock.
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect db: %v", err)
	}
	defer pool.Close()

	if err := migrate.Apply(ctx, pool); err != nil {
		logger.Fatalf("apply migrations: %v", err)
	}

	logger.Println("schema is up to date")
}
