package yt

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/vlatan/transcript-relay/internal/models"
	"github.com/vlatan/transcript-relay/internal/transcripts"
)

const timedTextXML = `<?xml version="1.0" encoding="utf-8" ?><transcript>` +
	`<text start="0.5" dur="2.3">Hello</text>` +
	`<text start="2.8" dur="1.2">it&amp;#39;s &lt;i&gt;me&lt;/i&gt;</text>` +
	`<text start="4" dur="1">   </text>` +
	`<text start="5.01" dur="0.99">Tom &amp;amp; Jerry
	again</text>` +
	`</transcript>`

// newUpstream creates a fake YouTube serving a watch page
// with the given tracks and a timedtext endpoint.
func newUpstream(t *testing.T, tracksJSON string, status int) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /watch", func(w http.ResponseWriter, r *http.Request) {
		if status != http.StatusOK {
			w.WriteHeader(status)
			return
		}

		if r.URL.Query().Get("v") == "" {
			http.NotFound(w, r)
			return
		}

		fmt.Fprintf(w,
			`<html><script>var ytInitialPlayerResponse = {"playabilityStatus":{"status":"OK"},%s};var meta = {};</script></html>`,
			tracksJSON,
		)
	})

	mux.HandleFunc("GET /api/timedtext", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Has("fmt") {
			http.Error(w, "unexpected fmt", http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "text/xml")
		fmt.Fprint(w, timedTextXML)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func tracks(entries ...string) string {
	return fmt.Sprintf(
		`"captions":{"playerCaptionsTracklistRenderer":{"captionTracks":[%s]}}`,
		strings.Join(entries, ","),
	)
}

func track(lang, vssID, kind, name string) string {
	return fmt.Sprintf(
		`{"baseUrl":"/api/timedtext?v=abc&lang=%s&fmt=srv3","name":{"simpleText":"%s"},"vssId":"%s","languageCode":"%s","kind":"%s"}`,
		lang, name, vssID, lang, kind,
	)
}

func newTestCaptions(t *testing.T, server *httptest.Server) *Captions {
	t.Helper()
	c, err := NewCaptions(CaptionsConfig{
		BaseURL:    server.URL,
		UserAgent:  "test-agent",
		HTTPClient: server.Client(),
	})
	if err != nil {
		t.Fatalf("failed to create captions client; %v", err)
	}
	return c
}

func TestFetchCaptions(t *testing.T) {

	want := []models.Caption{
		{Text: "Hello", Start: "0.5", Dur: "2.3"},
		{Text: "it's me", Start: "2.8", Dur: "1.2"},
		{Text: "Tom & Jerry again", Start: "5.01", Dur: "0.99"},
	}

	tests := []struct {
		name    string
		tracks  string
		status  int
		lang    string
		want    []models.Caption
		wantErr error
	}{
		{"manual track", tracks(track("en", ".en", "", "English")), http.StatusOK, "en", want, nil},
		{"auto generated track", tracks(track("fr", "a.fr", "asr", "French")), http.StatusOK, "fr", want, nil},
		{"regional variant", tracks(track("es-419", ".es-419", "", "Spanish")), http.StatusOK, "es", want, nil},
		{"upper case language", tracks(track("de", ".de", "", "German")), http.StatusOK, "DE", want, nil},
		{"no track for language", tracks(track("fr", ".fr", "", "French")), http.StatusOK, "en", nil, ErrNoTrack},
		{"no caption tracks", tracks(), http.StatusOK, "en", nil, ErrNoCaptions},
		{"captions disabled", `"videoDetails":{}`, http.StatusOK, "en", nil, ErrNoCaptions},
		{"upstream error", "", http.StatusInternalServerError, "en", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := newUpstream(t, tt.tracks, tt.status)
			c := newTestCaptions(t, server)

			got, err := c.FetchCaptions(context.Background(), "abc", tt.lang)

			if tt.want == nil {
				if err == nil {
					t.Fatalf("got nil error, want error")
				}
				if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
					t.Errorf("got error = %v, want %v", err, tt.wantErr)
				}
				return
			}

			if err != nil {
				t.Fatalf("got error = %v, want nil", err)
			}

			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("captions mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFetchCaptionsMalformedPage(t *testing.T) {

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html>consent page</html>")
	}))
	t.Cleanup(server.Close)

	_, err := newTestCaptions(t, server).FetchCaptions(context.Background(), "abc", "en")
	if err == nil {
		t.Error("got nil error, want error")
	}
}

func TestFetchCaptionsSendsHeaders(t *testing.T) {

	var gotAgent, gotConsent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAgent = r.Header.Get("User-Agent")
		if c, err := r.Cookie("CONSENT"); err == nil {
			gotConsent = c.Value
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(server.Close)

	_, _ = newTestCaptions(t, server).FetchCaptions(context.Background(), "abc", "en")

	if gotAgent != "test-agent" {
		t.Errorf("got user agent = %q, want %q", gotAgent, "test-agent")
	}

	if gotConsent != "YES+1" {
		t.Errorf("got consent cookie = %q, want %q", gotConsent, "YES+1")
	}
}

func TestTracks(t *testing.T) {

	server := newUpstream(t, tracks(
		track("en", ".en", "", "English"),
		track("fr", "a.fr", "asr", "French (auto-generated)"),
	), http.StatusOK)

	got, err := newTestCaptions(t, server).Tracks(context.Background(), "abc")
	if err != nil {
		t.Fatalf("got error = %v, want nil", err)
	}

	want := []models.CaptionTrack{
		{LanguageCode: "en", Name: "English"},
		{LanguageCode: "fr", Name: "French (auto-generated)", Kind: "asr"},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("tracks mismatch (-want +got):\n%s", diff)
	}
}

func TestNewCaptions(t *testing.T) {

	c, err := NewCaptions(CaptionsConfig{})
	if err != nil {
		t.Fatalf("got error = %v, want nil", err)
	}

	if c.baseURL.String() != defaultBaseURL {
		t.Errorf("got base url = %s, want %s", c.baseURL, defaultBaseURL)
	}

	if c.http == nil || c.http.Timeout != defaultHTTPTimeout {
		t.Errorf("got http client = %+v, want timeout %v", c.http, defaultHTTPTimeout)
	}

	if _, err := NewCaptions(CaptionsConfig{BaseURL: "://bad"}); err == nil {
		t.Error("got nil error, want error")
	}
}

func TestTranscriptFallbackOverCaptions(t *testing.T) {

	languages := []string{"en", "fr", "es"}

	t.Run("english missing, french served", func(t *testing.T) {
		server := newUpstream(t, tracks(
			track("de", ".de", "", "German"),
			track("fr", "a.fr", "asr", "French (auto-generated)"),
		), http.StatusOK)

		svc := transcripts.New(newTestCaptions(t, server), languages)
		got, err := svc.GetTranscript(context.Background(), "abc")
		if err != nil {
			t.Fatalf("got error = %v, want nil", err)
		}

		want := &models.Transcript{
			VideoID:  "abc",
			Language: "fr",
			Segments: models.Segments{
				{Text: "Hello", Start: 0.5, Duration: 2.3},
				{Text: "it's me", Start: 2.8, Duration: 1.2},
				{Text: "Tom & Jerry again", Start: 5.01, Duration: 0.99},
			},
		}

		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("transcript mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("captions disabled", func(t *testing.T) {
		server := newUpstream(t, tracks(), http.StatusOK)

		svc := transcripts.New(newTestCaptions(t, server), languages)
		_, err := svc.GetTranscript(context.Background(), "abc")

		var notFound *transcripts.NotFoundError
		if !errors.As(err, &notFound) {
			t.Fatalf("got error = %v, want *NotFoundError", err)
		}

		if len(notFound.Attempts) != len(languages) {
			t.Fatalf("got %d attempts, want %d", len(notFound.Attempts), len(languages))
		}

		for _, attempt := range notFound.Attempts {
			if !errors.Is(attempt.Err, ErrNoCaptions) {
				t.Errorf("got %s attempt error = %v, want %v", attempt.Language, attempt.Err, ErrNoCaptions)
			}
		}
	})
}
