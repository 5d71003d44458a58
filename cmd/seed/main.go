package main

import (
	"context"
	"log"
	"os"
	"strconv"

	"orderbot/internal/config"
	"orderbot/internal/db"
	"orderbot/internal/seed"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[seed] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	var adminChatID int64
	if raw := os.Getenv("SEED_ADMIN_CHAT_ID"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			logger.Fatalf("parse SEED_ADMIN_CHAT_ID: %v", err)
		}
		adminChatID = parsed
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect db: %v", err)
	}
	defer pool.Close()

	if err := seed.Apply(ctx, pool, adminChatID); err != nil {
		logger.Fatalf("seed apply: %v", err)
	}

	logger.Println("seed applied")
}
