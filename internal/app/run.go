package app

import (
	"context"
	"fmt"
	"log"
	"net/http"
)

// Run serves HTTP until ctx is done,
// then shuts the server down gracefully.
func (a *App) Run(ctx context.Context) error {

	log.Printf("Caption languages in order: %v", a.config.Languages)
	if a.videos == nil {
		log.Println("No YouTube API key, video metadata is disabled")
	}

	serverErr := make(chan error, 1)
	go func() {
		fmt.Printf("Transcript server listening at http://%s:%d\n", a.config.Host, a.config.Port)
		serverErr <- a.server.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		// The server never came up, i.e. the port is taken
		if err != nil && err != http.ErrServerClosed {
			if cErr := a.cleanup(); cErr != nil {
				log.Printf("Error during cleanup: %v", cErr)
			}
			return err
		}
	case <-ctx.Done():
	}

	return a.shutdown()
}
