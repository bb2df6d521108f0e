package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/vlatan/transcript-relay/internal/config"
	"github.com/vlatan/transcript-relay/internal/drivers/rdb"
	"github.com/vlatan/transcript-relay/internal/handlers/misc"
	"github.com/vlatan/transcript-relay/internal/handlers/transcripts"
	"github.com/vlatan/transcript-relay/internal/handlers/videos"
	"github.com/vlatan/transcript-relay/internal/integrations/yt"
	"github.com/vlatan/transcript-relay/internal/middlewares"
	transcriptsSvc "github.com/vlatan/transcript-relay/internal/transcripts"
)

type App struct {
	config      *config.Config
	transcripts *transcripts.Service
	videos      *videos.Service // nil without a YouTube API key
	misc        *misc.Service
	mw          *middlewares.Service
	server      *http.Server
	cleanup     func() error
}

// New wires the services of the app together
func New(ctx context.Context, cfg *config.Config) (*App, error) {

	// Create Redis service
	rdb, err := rdb.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("couldn't create Redis service; %w", err)
	}

	// Create the captions scraper
	captions, err := yt.NewCaptions(yt.CaptionsConfig{
		UserAgent:  cfg.UserAgent,
		HTTPClient: &http.Client{Timeout: cfg.HTTPTimeout},
	})
	if err != nil {
		return nil, fmt.Errorf("couldn't create captions service; %w", err)
	}

	a := &App{
		config: cfg,
		transcripts: transcripts.New(
			transcriptsSvc.New(captions, cfg.Languages),
			captions,
			rdb,
		),
		misc:    misc.New(rdb),
		mw:      middlewares.New(cfg),
		cleanup: rdb.Close,
		server: &http.Server{
			Addr:         cfg.Addr(),
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 2*cfg.HTTPTimeout*time.Duration(len(cfg.Languages)) + 10*time.Second,
		},
	}

	// Video metadata needs the Data API
	if cfg.YouTubeAPIKey != "" {
		yt, err := yt.New(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("couldn't create YouTube service; %w", err)
		}
		a.videos = videos.New(cfg, rdb, yt)
	}

	return a, nil
}
