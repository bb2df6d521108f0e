package yt

import "strings"

// The player response embedded in the watch page HTML
type playerResponse struct {
	Captions *struct {
		PlayerCaptionsTracklistRenderer struct {
			CaptionTracks []captionTrack `json:"captionTracks"`
		} `json:"playerCaptionsTracklistRenderer"`
	} `json:"captions"`
	PlayabilityStatus *struct {
		Status string `json:"status"`
		Reason string `json:"reason"`
	} `json:"playabilityStatus"`
}

type captionTrack struct {
	BaseURL      string    `json:"baseUrl"`
	Name         trackName `json:"name"`
	VssID        string    `json:"vssId"`
	LanguageCode string    `json:"languageCode"`
	Kind         string    `json:"kind"` // "asr" = auto-generated
}

type trackName struct {
	SimpleText string `json:"simpleText"`
	Runs       []struct {
		Text string `json:"text"`
	} `json:"runs"`
}

// String returns the human readable track name
func (n trackName) String() string {
	if n.SimpleText != "" {
		return n.SimpleText
	}

	var sb strings.Builder
	for _, run := range n.Runs {
		sb.WriteString(run.Text)
	}
	return sb.String()
}

// Timedtext XML, i.e. <transcript><text start="0.5" dur="2.3">Hello</text></transcript>
type timedText struct {
	Lines []timedTextLine `xml:"text"`
}

type timedTextLine struct {
	Start string `xml:"start,attr"`
	Dur   string `xml:"dur,attr"`
	Text  string `xml:",innerxml"`
}

// extractJSON extracts a complete JSON object starting at b[0] == '{'
// by tracking the brace depth outside of string literals.
func extractJSON(b []byte) []byte {
	if len(b) == 0 || b[0] != '{' {
		return nil
	}

	depth := 0
	inStr, escaped := false, false
	for i, c := range b {
		if inStr {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inStr = false
			}
			continue
		}

		switch c {
		case '"':
			inStr = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return b[:i+1]
			}
		}
	}

	return nil
}

// needsPoToken reports whether a caption track URL requires a PoToken.
// Those tracks can only be fetched from a browser.
func needsPoToken(baseURL string) bool {
	return strings.Contains(baseURL, "&exp=xpe")
}

// pickTrack selects the caption track for a language.
// Manual tracks win over auto-generated ones,
// regional variants (en-GB for en) are the last resort.
func pickTrack(tracks []captionTrack, lang string) (captionTrack, bool) {

	usable := make([]captionTrack, 0, len(tracks))
	for _, t := range tracks {
		if !needsPoToken(t.BaseURL) {
			usable = append(usable, t)
		}
	}

	for _, vssID := range []string{"." + lang, "a." + lang} {
		for _, t := range usable {
			if t.VssID == vssID {
				return t, true
			}
		}
	}

	for _, t := range usable {
		code := strings.ToLower(t.LanguageCode)
		if code == lang || strings.HasPrefix(code, lang+"-") {
			return t, true
		}
	}

	return captionTrack{}, false
}
