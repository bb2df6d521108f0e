package videos

import (
	"context"

	"github.com/vlatan/transcript-relay/internal/config"
	"github.com/vlatan/transcript-relay/internal/drivers/rdb"
	"github.com/vlatan/transcript-relay/internal/models"
)

const (
	MsgVideoNotFound = "Video not found"
	MsgVideoFailed   = "Failed to fetch video metadata"
)

type videoGetter interface {
	GetVideo(ctx context.Context, videoID string) (*models.VideoInfo, error)
}

type Service struct {
	config *config.Config
	rdb    *rdb.Service // nil disables caching
	yt     videoGetter
}

func New(config *config.Config, rdb *rdb.Service, yt videoGetter) *Service {
	return &Service{
		config: config,
		rdb:    rdb,
		yt:     yt,
	}
}
