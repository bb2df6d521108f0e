package app

import "net/http"

// RegisterRoutes registers routes and
// assigns custom handler to the HTTP server
func (a *App) RegisterRoutes() *App {
	mux := http.NewServeMux()

	// Transcripts
	mux.HandleFunc("GET /api/get_transcript", a.transcripts.GetTranscriptHandler)
	mux.HandleFunc("GET /api/get_languages", a.transcripts.LanguagesHandler)
	mux.HandleFunc("GET /api/stats", a.transcripts.StatsHandler)

	// Video metadata
	if a.videos != nil {
		mux.HandleFunc("GET /api/get_video", a.videos.GetVideoHandler)
	}

	// Health
	mux.HandleFunc("GET /health/{$}", a.misc.HealthHandler)
	mux.HandleFunc("GET /healthcheck", a.misc.HealthcheckHandler)

	a.server.Handler = a.withMiddlewares(mux)

	return a
}

// withMiddlewares chains the middlewares that apply to all requests.
// The order is important. Logging is outermost so recovered
// panics still get an access log line, CORS runs before routing
// so preflights never hit the mux.
func (a *App) withMiddlewares(h http.Handler) http.Handler {
	return a.mw.ApplyToAll(
		a.mw.Logging,
		a.mw.RecoverPanic,
		a.mw.CORS,
		a.mw.AddHeaders,
		a.mw.Compress,
	)(h)
}
