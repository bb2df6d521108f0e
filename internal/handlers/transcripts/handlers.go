package transcripts

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/vlatan/transcript-relay/internal/integrations/yt"
	transcriptsSvc "github.com/vlatan/transcript-relay/internal/transcripts"
	"github.com/vlatan/transcript-relay/internal/utils"
)

// StatsData is the body of the stats response
type StatsData struct {
	Languages map[string]int64 `json:"languages"`
	NotFound  int64            `json:"not_found"`
}

// GetTranscriptHandler serves the normalized transcript of a video
// in the first configured language that has captions
func (s *Service) GetTranscriptHandler(w http.ResponseWriter, r *http.Request) {

	videoID := utils.GetVideoID(r)
	if videoID == "" {
		utils.JSONError(w, r, http.StatusBadRequest, utils.MsgMissingVideoID)
		return
	}

	transcript, err := s.transcripts.GetTranscript(r.Context(), videoID)

	switch {
	case errors.Is(err, transcriptsSvc.ErrMissingVideoID):
		utils.JSONError(w, r, http.StatusBadRequest, utils.MsgMissingVideoID)
		return
	case errors.Is(err, transcriptsSvc.ErrNotFound):
		log.Println(err)
		s.count(r.Context(), notFoundKey)
		utils.JSONError(w, r, http.StatusNotFound, MsgNotFound)
		return
	case err != nil:
		log.Printf("Failed to get transcript for video '%s'; %v", videoID, err)
		utils.JSONError(w, r, http.StatusInternalServerError, "")
		return
	}

	s.count(r.Context(), languageKeyPrefix+transcript.Language)
	utils.WriteJSON(w, r, http.StatusOK, transcript.Segments)
}

// LanguagesHandler lists the caption tracks of a video
func (s *Service) LanguagesHandler(w http.ResponseWriter, r *http.Request) {

	videoID := utils.GetVideoID(r)
	if videoID == "" {
		utils.JSONError(w, r, http.StatusBadRequest, utils.MsgMissingVideoID)
		return
	}

	tracks, err := s.tracks.Tracks(r.Context(), videoID)
	if errors.Is(err, yt.ErrNoCaptions) || (err == nil && len(tracks) == 0) {
		utils.JSONError(w, r, http.StatusNotFound, MsgNotFound)
		return
	}

	if err != nil {
		log.Printf("Failed to list caption tracks for video '%s'; %v", videoID, err)
		utils.JSONError(w, r, http.StatusBadGateway, MsgTracksFailed)
		return
	}

	utils.WriteJSON(w, r, http.StatusOK, tracks)
}

// StatsHandler serves the transcript counters
func (s *Service) StatsHandler(w http.ResponseWriter, r *http.Request) {

	languages := s.transcripts.Languages()
	keys := make([]string, 0, len(languages)+1)
	for _, lang := range languages {
		keys = append(keys, languageKeyPrefix+lang)
	}
	keys = append(keys, notFoundKey)

	counters, err := s.counters.Counters(r.Context(), keys...)
	if err != nil {
		log.Printf("Failed to get the transcript counters; %v", err)
		utils.JSONError(w, r, http.StatusServiceUnavailable, MsgStatsFailed)
		return
	}

	data := StatsData{
		Languages: make(map[string]int64, len(languages)),
		NotFound:  counters[notFoundKey],
	}

	for _, lang := range languages {
		data.Languages[lang] = counters[languageKeyPrefix+lang]
	}

	utils.WriteJSON(w, r, http.StatusOK, data)
}

// Counters are best effort, never fail the request
func (s *Service) count(ctx context.Context, key string) {
	if err := s.counters.Incr(context.WithoutCancel(ctx), key); err != nil {
		log.Printf("Failed to update a counter; %v", err)
	}
}
