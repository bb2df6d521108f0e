package misc

import (
	"log"
	"net/http"

	"github.com/vlatan/transcript-relay/internal/utils"
)

// HealthcheckHandler is a plain liveness probe
func (s *Service) HealthcheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("OK")); err != nil {
		log.Printf("Failed to write response on '%s'; %v", r.URL.Path, err)
	}
}

// Redis health status and server stats
func (s *Service) HealthHandler(w http.ResponseWriter, r *http.Request) {

	data := map[string]any{
		"redis_status":  s.rdb.Health(r.Context()),
		"server_status": getServerStats(),
	}

	utils.WriteJSON(w, r, http.StatusOK, data)
}
