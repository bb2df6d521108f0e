package models

import (
	"math"
	"strconv"
	"strings"
)

// Caption is a raw timed caption line as served by the upstream provider.
// Start and Dur are seconds encoded as strings.
type Caption struct {
	Text  string `json:"text"`
	Start string `json:"start"`
	Dur   string `json:"dur"`
}

// Segment is a normalized transcript segment
type Segment struct {
	Text     string  `json:"text"`
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
}

type Segments []Segment

// Transcript is the result of a successful lookup
type Transcript struct {
	VideoID  string
	Language string
	Segments Segments
}

// CaptionTrack describes one caption track available for a video
type CaptionTrack struct {
	LanguageCode string `json:"languageCode"`
	Name         string `json:"name"`
	Kind         string `json:"kind"` // "asr" = auto-generated
}

// NormalizeCaption converts a raw caption into a segment
func NormalizeCaption(c Caption) Segment {
	return Segment{
		Text:     c.Text,
		Start:    parseSeconds(c.Start),
		Duration: parseSeconds(c.Dur),
	}
}

// NormalizeCaptions maps raw captions to segments, preserving order
func NormalizeCaptions(captions []Caption) Segments {
	segments := make(Segments, len(captions))
	for i, c := range captions {
		segments[i] = NormalizeCaption(c)
	}
	return segments
}

// parseSeconds parses seconds from a string.
// Empty or malformed values yield zero, JSON has no NaN.
func parseSeconds(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
