package yt

import (
	"bytes"
	"context"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/vlatan/transcript-relay/internal/models"
)

const (
	defaultBaseURL     = "https://www.youtube.com"
	defaultHTTPTimeout = 15 * time.Second

	// Marks the start of the player response JSON in the watch page HTML
	playerResponseMarker = "ytInitialPlayerResponse = "

	maxWatchPageSize = 6 << 20
	maxTimedTextSize = 5 << 20
)

var (
	ErrNoCaptions = errors.New("no caption tracks for this video")
	ErrNoTrack    = errors.New("no caption track for this language")
)

// CaptionsConfig describes the captions client configuration
type CaptionsConfig struct {
	BaseURL    string
	UserAgent  string
	HTTPClient *http.Client
}

// Captions scrapes caption tracks from the YouTube watch page.
// It needs no API key.
type Captions struct {
	baseURL   *url.URL
	userAgent string
	http      *http.Client
}

// NewCaptions creates a captions client from the supplied configuration
func NewCaptions(cfg CaptionsConfig) (*Captions, error) {

	base := strings.TrimSpace(cfg.BaseURL)
	if base == "" {
		base = defaultBaseURL
	}

	baseURL, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("captions: parse base url; %w", err)
	}

	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: defaultHTTPTimeout}
	}

	return &Captions{
		baseURL:   baseURL,
		userAgent: strings.TrimSpace(cfg.UserAgent),
		http:      client,
	}, nil
}

// FetchCaptions fetches the raw captions of a video in the given language
func (c *Captions) FetchCaptions(ctx context.Context, videoID, lang string) ([]models.Caption, error) {

	tracks, err := c.captionTracks(ctx, videoID)
	if err != nil {
		return nil, err
	}

	track, ok := pickTrack(tracks, strings.ToLower(lang))
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoTrack, lang)
	}

	return c.fetchTimedText(ctx, track.BaseURL)
}

// Tracks lists the caption tracks available for a video
func (c *Captions) Tracks(ctx context.Context, videoID string) ([]models.CaptionTrack, error) {

	tracks, err := c.captionTracks(ctx, videoID)
	if err != nil {
		return nil, err
	}

	result := make([]models.CaptionTrack, len(tracks))
	for i, t := range tracks {
		result[i] = models.CaptionTrack{
			LanguageCode: t.LanguageCode,
			Name:         t.Name.String(),
			Kind:         t.Kind,
		}
	}

	return result, nil
}

// captionTracks scrapes the watch page and extracts
// the caption tracks from ytInitialPlayerResponse.
func (c *Captions) captionTracks(ctx context.Context, videoID string) ([]captionTrack, error) {

	watchURL := c.baseURL.JoinPath("watch")
	watchURL.RawQuery = url.Values{"v": {videoID}}.Encode()

	body, err := c.get(ctx, watchURL.String(), maxWatchPageSize)
	if err != nil {
		return nil, fmt.Errorf("watch page; %w", err)
	}

	idx := bytes.Index(body, []byte(playerResponseMarker))
	if idx < 0 {
		return nil, errors.New("ytInitialPlayerResponse not found in watch page")
	}

	jsonData := extractJSON(body[idx+len(playerResponseMarker):])
	if jsonData == nil {
		return nil, errors.New("failed to extract ytInitialPlayerResponse JSON")
	}

	var player playerResponse
	if err := json.Unmarshal(jsonData, &player); err != nil {
		return nil, fmt.Errorf("decode ytInitialPlayerResponse; %w", err)
	}

	if player.Captions == nil {
		if player.PlayabilityStatus != nil && player.PlayabilityStatus.Reason != "" {
			return nil, fmt.Errorf("%w: %s", ErrNoCaptions, player.PlayabilityStatus.Reason)
		}
		return nil, ErrNoCaptions
	}

	tracks := player.Captions.PlayerCaptionsTracklistRenderer.CaptionTracks
	if len(tracks) == 0 {
		return nil, ErrNoCaptions
	}

	return tracks, nil
}

// fetchTimedText fetches and parses a timedtext XML caption track
func (c *Captions) fetchTimedText(ctx context.Context, baseURL string) ([]models.Caption, error) {

	ref, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse caption track url; %w", err)
	}

	// Resolve relative track URLs and drop the format,
	// the default one is the plain <transcript> XML.
	trackURL := c.baseURL.ResolveReference(ref)
	query := trackURL.Query()
	query.Del("fmt")
	trackURL.RawQuery = query.Encode()

	body, err := c.get(ctx, trackURL.String(), maxTimedTextSize)
	if err != nil {
		return nil, fmt.Errorf("timedtext; %w", err)
	}

	var tt timedText
	if err := xml.Unmarshal(body, &tt); err != nil {
		return nil, fmt.Errorf("parse timedtext XML; %w", err)
	}

	captions := make([]models.Caption, 0, len(tt.Lines))
	for _, line := range tt.Lines {
		text := cleanText(line.Text)
		if text == "" {
			continue
		}
		captions = append(captions, models.Caption{
			Text:  text,
			Start: line.Start,
			Dur:   line.Dur,
		})
	}

	return captions, nil
}

// get performs a GET request and returns the body read up to limit bytes
func (c *Captions) get(ctx context.Context, rawURL string, limit int64) ([]byte, error) {

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}

	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	// Skip the EU consent interstitial
	req.AddCookie(&http.Cookie{Name: "CONSENT", Value: "YES+1"})

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, limit))
	if err != nil {
		return nil, fmt.Errorf("read response body; %w", err)
	}

	return body, nil
}
