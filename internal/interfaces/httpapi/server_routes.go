package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

// Reads go through OptionalAuth: anonymous callers see public contests,
// a valid bearer token widens visibility per the permission rules.
func registerPublicDomainRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.HandleFunc("GET /v1/contests", handler.ListContests)
	mux.Handle("GET /v1/contests/{contestID}", OptionalAuth(verifier, http.HandlerFunc(handler.GetContest)))
	mux.Handle("GET /v1/contests/{contestID}/submissions", OptionalAuth(verifier, http.HandlerFunc(handler.ListSubmissionsByContest)))
	mux.Handle("GET /v1/contests/{contestID}/leaderboard", OptionalAuth(verifier, http.HandlerFunc(handler.GetLeaderboard)))
	mux.Handle("GET /v1/submissions/{submissionID}", OptionalAuth(verifier, http.HandlerFunc(handler.GetSubmission)))
}

func registerAuthorizedRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/contests", RequireAuth(verifier, http.HandlerFunc(handler.CreateContest)))
	mux.Handle("POST /v1/contests/{contestID}/submissions", RequireAuth(verifier, http.HandlerFunc(handler.CreateSubmission)))
	mux.Handle("POST /v1/submissions/{submissionID}/judge", RequireAuth(verifier, http.HandlerFunc(handler.JudgeSubmission)))
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/jobs/refresh-leaderboards", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunRefreshLeaderboardsJob)))
}
