package app

import (
	"context"
	"errors"
	"log"
	"time"
)

// In-flight requests get this long to finish on shutdown
const shutdownTimeout = 5 * time.Second

// shutdown drains the HTTP server and closes the Redis connections
func (a *App) shutdown() error {

	log.Println("Shutting down gracefully, press Ctrl+C again to force...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err := a.server.Shutdown(ctx)
	if err != nil {
		log.Printf("Server forced to shutdown with error: %v", err)
	}

	log.Println("Closing Redis connections...")
	if cErr := a.cleanup(); cErr != nil {
		log.Printf("Error during cleanup: %v", cErr)
		err = errors.Join(err, cErr)
	}

	log.Println("Graceful shutdown complete.")
	return err
}
