package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/vlatan/transcript-relay/internal/app"
	"github.com/vlatan/transcript-relay/internal/config"
)

func main() {

	// A .env file is optional, the environment wins
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment from .env")
	}

	cfg := config.New()

	// Done on the first SIGINT or SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Stop watching for signals once the first one arrives,
	// so a second Ctrl+C kills the process right away
	context.AfterFunc(ctx, stop)

	a, err := app.New(ctx, cfg)
	if err != nil {
		log.Fatalf("couldn't create the app; %v", err)
	}

	if err := a.RegisterRoutes().Run(ctx); err != nil {
		log.Fatalf("http server error: %v", err)
	}
}
