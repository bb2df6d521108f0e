// Package transcripts fetches a video transcript,
// falling back through a fixed list of caption languages.
package transcripts

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/vlatan/transcript-relay/internal/models"
)

var (
	ErrMissingVideoID = errors.New("missing video id")
	ErrNotFound       = errors.New("no captions available in any tried language")
)

// Fetcher retrieves the raw captions of a video in a given language.
// It returns an error or an empty slice if there are none.
type Fetcher interface {
	FetchCaptions(ctx context.Context, videoID, lang string) ([]models.Caption, error)
}

// Attempt records one failed language attempt
type Attempt struct {
	Language string
	Err      error // nil if the upstream returned no captions
}

// NotFoundError is returned when every language was tried without success.
// The attempts are kept for logging only.
type NotFoundError struct {
	VideoID  string
	Attempts []Attempt
}

// Implement error interface
func (e *NotFoundError) Error() string {

	var causes []string
	for _, a := range e.Attempts {
		cause := "empty"
		if a.Err != nil {
			cause = a.Err.Error()
		}
		causes = append(causes, fmt.Sprintf("%s: %s", a.Language, cause))
	}

	return fmt.Sprintf(
		"%s for video '%s' [%s]",
		ErrNotFound, e.VideoID, strings.Join(causes, "; "),
	)
}

// Is makes errors.Is(err, ErrNotFound) true
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

type Service struct {
	fetcher   Fetcher
	languages []string
}

// New creates a transcripts service.
// The languages are copied so the order can't change after startup.
func New(fetcher Fetcher, languages []string) *Service {
	return &Service{
		fetcher:   fetcher,
		languages: append([]string(nil), languages...),
	}
}

// Languages returns a copy of the language priority list
func (s *Service) Languages() []string {
	return append([]string(nil), s.languages...)
}

// GetTranscript tries the languages one by one, in order,
// and returns the normalized captions of the first language that has any.
func (s *Service) GetTranscript(ctx context.Context, videoID string) (*models.Transcript, error) {

	videoID = strings.TrimSpace(videoID)
	if videoID == "" {
		return nil, ErrMissingVideoID
	}

	var attempts []Attempt
	for _, lang := range s.languages {

		// The client is gone, no point in trying further
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		log.Printf("Attempting language '%s' for video '%s'", lang, videoID)
		captions, err := s.fetcher.FetchCaptions(ctx, videoID, lang)

		if err != nil {
			log.Printf("Failed for '%s' on video '%s', trying next language; %v", lang, videoID, err)
			attempts = append(attempts, Attempt{Language: lang, Err: err})
			continue
		}

		if len(captions) == 0 {
			log.Printf("No captions in '%s' for video '%s', trying next language", lang, videoID)
			attempts = append(attempts, Attempt{Language: lang})
			continue
		}

		segments := models.NormalizeCaptions(captions)
		log.Printf(
			"Fetched %d segments in language '%s' for video '%s'",
			len(segments), lang, videoID,
		)

		return &models.Transcript{
			VideoID:  videoID,
			Language: lang,
			Segments: segments,
		}, nil
	}

	return nil, &NotFoundError{VideoID: videoID, Attempts: attempts}
}
