package transcripts

import (
	"context"

	"github.com/vlatan/transcript-relay/internal/models"
)

// Messages sent to the client. Internal causes are only logged.
const (
	MsgNotFound     = "No subtitles available for this video. Subtitles may be disabled or unavailable."
	MsgTracksFailed = "Failed to fetch caption tracks"
	MsgStatsFailed  = "Stats are unavailable"
)

// Counter keys kept in Redis
const (
	languageKeyPrefix = "stats:transcripts:"
	notFoundKey       = "stats:transcripts:not_found"
)

type transcriptGetter interface {
	GetTranscript(ctx context.Context, videoID string) (*models.Transcript, error)
	Languages() []string
}

type trackLister interface {
	Tracks(ctx context.Context, videoID string) ([]models.CaptionTrack, error)
}

type counterStore interface {
	Incr(ctx context.Context, key string) error
	Counters(ctx context.Context, keys ...string) (map[string]int64, error)
}

type Service struct {
	transcripts transcriptGetter
	tracks      trackLister
	counters    counterStore
}

func New(transcripts transcriptGetter, tracks trackLister, counters counterStore) *Service {
	return &Service{
		transcripts: transcripts,
		tracks:      tracks,
		counters:    counters,
	}
}
