package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/Tejani8980/job-app-tracker-backend/internal/server"
	"github.com/Tejani8980/job-app-tracker-backend/internal/server/config"
)

func main() {

	// Optional .env for local development; real environments set vars directly.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables from OS")
	}

	ctx := context.Background()
	cfg := config.LoadConfig()

	app, err := server.NewApp(ctx, cfg)
	if err != nil {
		log.Printf("%v", err)
		return
	}

	app.Run(ctx)
}
