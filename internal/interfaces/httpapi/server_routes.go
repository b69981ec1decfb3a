package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicStatsRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/scopes/{scopeID}/leaderboard", handler.GetLeaderboard)
	mux.HandleFunc("GET /v1/scopes/{scopeID}/players/{playerName}", handler.GetPlayerSummary)
	mux.HandleFunc("GET /v1/scopes/{scopeID}/events", handler.ListEvents)
	mux.HandleFunc("GET /v1/scopes/{scopeID}/qualified", handler.ListQualified)
}

func registerAuthorizedRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	registerAuthorizedScrapeRoutes(mux, handler, verifier)
	registerAuthorizedQualificationRoutes(mux, handler, verifier)
}

func registerAuthorizedScrapeRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/scopes/{scopeID}/scrapes", RequireAuth(verifier, http.HandlerFunc(handler.RunScrape)))
	mux.Handle("POST /v1/scopes/{scopeID}/scrape-jobs", RequireAuth(verifier, http.HandlerFunc(handler.StartScrapeJob)))
	mux.Handle("GET /v1/scrape-jobs/{jobID}", RequireAuth(verifier, http.HandlerFunc(handler.GetScrapeJob)))
}

func registerAuthorizedQualificationRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("PUT /v1/scopes/{scopeID}/events/{eventName}/winner", RequireAuth(verifier, http.HandlerFunc(handler.SetEventWinner)))
}
