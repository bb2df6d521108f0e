package utils

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/vlatan/transcript-relay/internal/models"
)

// Max length of a video ID taken from the query
const maxVideoIDLength = 64

// MsgMissingVideoID is sent when the videoId query param is absent or unusable
const MsgMissingVideoID = "Missing videoId parameter"

// WriteJSON encodes the data to JSON first and then,
// if successful, writes it to the response with the given status
func WriteJSON(w http.ResponseWriter, r *http.Request, status int, data any) {

	// Encode data to JSON
	jsonData, err := json.Marshal(data)
	if err != nil {
		log.Printf("Failed to encode JSON response on URI '%s': %v", r.RequestURI, err)
		JSONError(w, r, http.StatusInternalServerError, "")
		return
	}

	// Set content type before writing the status
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	if _, err := w.Write(jsonData); err != nil {
		// Too late for recovery here, just log the error
		log.Printf("Failed to write JSON to response on URI '%s': %v", r.RequestURI, err)
	}
}

// JSONError writes {"error": message} to the response.
// An empty message defaults to the status text.
func JSONError(w http.ResponseWriter, r *http.Request, status int, message string) {

	if message == "" {
		message = http.StatusText(status)
	}

	jsonData, err := json.Marshal(models.JSONErrorData{Error: message})
	if err != nil {
		log.Printf("Failed to encode JSON 'error' response on URI '%s': %v", r.RequestURI, err)
		HttpError(w, status)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	if _, err := w.Write(jsonData); err != nil {
		log.Printf("Failed to write JSON 'error' to response on URI '%s': %v", r.RequestURI, err)
	}
}

// HttpError provides shorter handling of http error
func HttpError(w http.ResponseWriter, status int) {
	http.Error(w, http.StatusText(status), status)
}

// GetVideoID gets the trimmed videoId query param.
// Overly long values are rejected, the result is then empty.
func GetVideoID(r *http.Request) string {
	videoID := strings.TrimSpace(r.URL.Query().Get("videoId"))
	if len(videoID) > maxVideoIDLength {
		return ""
	}
	return videoID
}
