package middlewares

import (
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/vlatan/transcript-relay/internal/config"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("OK"))
})

func TestRecoverPanic(t *testing.T) {

	panicking := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})

	mw := New(&config.Config{})
	recorder := httptest.NewRecorder()
	mw.RecoverPanic(panicking).ServeHTTP(recorder, httptest.NewRequest("GET", "/", nil))

	if recorder.Code != http.StatusInternalServerError {
		t.Errorf("got %d, want %d", recorder.Code, http.StatusInternalServerError)
	}

	want := `{"error":"Internal Server Error"}`
	if got := recorder.Body.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestLogging(t *testing.T) {

	mw := New(&config.Config{})
	handler := mw.Logging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	tests := []struct {
		name, requestID string
	}{
		{"generated id", ""},
		{"caller id", "caller-id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			if tt.requestID != "" {
				req.Header.Set("X-Request-ID", tt.requestID)
			}

			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, req)

			if recorder.Code != http.StatusTeapot {
				t.Errorf("got %d, want %d", recorder.Code, http.StatusTeapot)
			}

			got := recorder.Header().Get("X-Request-ID")
			if got == "" {
				t.Error("got empty request id")
			}

			if tt.requestID != "" && got != tt.requestID {
				t.Errorf("got request id %q, want %q", got, tt.requestID)
			}
		})
	}
}

func TestCORS(t *testing.T) {

	tests := []struct {
		name         string
		origin       string
		method       string
		preflight    bool
		expectedCode int
		expectedBody string
	}{
		{"simple get", "*", http.MethodGet, false, http.StatusOK, "OK"},
		{"preflight", "*", http.MethodOptions, true, http.StatusNoContent, ""},
		{"plain options", "*", http.MethodOptions, false, http.StatusOK, "OK"},
		{"restricted origin", "https://example.com", http.MethodGet, false, http.StatusOK, "OK"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mw := New(&config.Config{AllowedOrigin: tt.origin})

			req := httptest.NewRequest(tt.method, "/api/get_transcript", nil)
			req.Header.Set("Origin", "chrome-extension://abc")
			if tt.preflight {
				req.Header.Set("Access-Control-Request-Method", "GET")
			}

			recorder := httptest.NewRecorder()
			mw.CORS(okHandler).ServeHTTP(recorder, req)

			if recorder.Code != tt.expectedCode {
				t.Errorf("got %d, want %d", recorder.Code, tt.expectedCode)
			}

			if got := recorder.Body.String(); got != tt.expectedBody {
				t.Errorf("got %q, want %q", got, tt.expectedBody)
			}

			if got := recorder.Header().Get("Access-Control-Allow-Origin"); got != tt.origin {
				t.Errorf("got origin %q, want %q", got, tt.origin)
			}

			if got := recorder.Header().Get("Access-Control-Allow-Methods"); got != "GET" {
				t.Errorf("got methods %q, want %q", got, "GET")
			}
		})
	}
}

func TestAddHeaders(t *testing.T) {

	recorder := httptest.NewRecorder()
	New(&config.Config{}).AddHeaders(okHandler).ServeHTTP(recorder, httptest.NewRequest("GET", "/", nil))

	if got := recorder.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("got %q, want %q", got, "nosniff")
	}

	if got := recorder.Header().Get("Strict-Transport-Security"); got != "" {
		t.Errorf("got HSTS %q on plain HTTP, want none", got)
	}
}

func TestCompress(t *testing.T) {

	body := strings.Repeat(`{"text":"Hello","start":0.5,"duration":2.3},`, 200)
	handler := New(&config.Config{}).Compress(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))

	tests := []struct {
		name, path, encoding string
		compressed           bool
	}{
		{"gzip accepted", "/api/get_transcript", "gzip", true},
		{"gzip not accepted", "/api/get_transcript", "", false},
		{"healthcheck", "/healthcheck", "gzip", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tt.path, nil)
			if tt.encoding != "" {
				req.Header.Set("Accept-Encoding", tt.encoding)
			}

			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, req)

			gotCompressed := recorder.Header().Get("Content-Encoding") == "gzip"
			if gotCompressed != tt.compressed {
				t.Fatalf("got compressed = %t, want %t", gotCompressed, tt.compressed)
			}

			var reader io.Reader = recorder.Body
			if gotCompressed {
				gz, err := gzip.NewReader(recorder.Body)
				if err != nil {
					t.Fatalf("failed to create gzip reader; %v", err)
				}
				reader = gz
			}

			got, err := io.ReadAll(reader)
			if err != nil {
				t.Fatalf("failed to read the body; %v", err)
			}

			if string(got) != body {
				t.Errorf("got body of %d bytes, want %d", len(got), len(body))
			}
		})
	}
}

func TestApplyToAll(t *testing.T) {

	var order []string
	tag := func(name string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	handler := New(&config.Config{}).ApplyToAll(tag("first"), tag("second"), tag("third"))(okHandler)
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))

	if got := strings.Join(order, ","); got != "first,second,third" {
		t.Errorf("got %q, want %q", got, "first,second,third")
	}
}
