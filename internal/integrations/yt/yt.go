package yt

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/vlatan/transcript-relay/internal/config"
	"github.com/vlatan/transcript-relay/internal/models"

	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

var ErrVideoNotFound = errors.New("video not found")

// Service talks to the YouTube Data API
type Service struct {
	config  *config.Config
	youtube *youtube.Service
}

// Create new YouTube service
func New(ctx context.Context, cfg *config.Config, opts ...option.ClientOption) (*Service, error) {

	if cfg == nil {
		return nil, errors.New("unable to create YouTube service with nil config")
	}

	co := append([]option.ClientOption{option.WithAPIKey(cfg.YouTubeAPIKey)}, opts...)
	youtube, err := youtube.NewService(ctx, co...)
	if err != nil {
		return nil, err
	}

	return &Service{
		config:  cfg,
		youtube: youtube,
	}, nil
}

// GetVideo gets the YouTube metadata of a video
func (s *Service) GetVideo(ctx context.Context, videoID string) (*models.VideoInfo, error) {

	part := []string{"snippet", "contentDetails"}
	response, err := s.youtube.Videos.List(part).Id(videoID).Context(ctx).Do()
	if err != nil {
		log.Printf("unable to get a response from YouTube for '%s'; %v", videoID, err)
		return nil, fmt.Errorf("unable to get a response from YouTube; %w", err)
	}

	if len(response.Items) == 0 {
		return nil, ErrVideoNotFound
	}

	video := response.Items[0]
	info := &models.VideoInfo{ID: video.Id}

	if video.Snippet != nil {
		info.Title = video.Snippet.Title
		info.ChannelTitle = video.Snippet.ChannelTitle
		info.DefaultLanguage = video.Snippet.DefaultLanguage
		info.DefaultAudioLanguage = video.Snippet.DefaultAudioLanguage
	}

	if video.ContentDetails != nil {
		info.Duration = video.ContentDetails.Duration
		info.HasCaptions = video.ContentDetails.Caption == "true"
	}

	return info, nil
}
