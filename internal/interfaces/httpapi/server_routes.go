package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

// Page routes answer one composed view per SPA screen; every one honors
// ?refresh=1 as the manual retry affordance.
func registerPageRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/pages/home", handler.GetHomePage)
	mux.HandleFunc("GET /v1/pages/competitions/{code}", handler.GetCompetitionPage)
	mux.HandleFunc("GET /v1/pages/matches/{matchID}", handler.GetMatchPage)
	mux.HandleFunc("GET /v1/pages/teams/{teamID}", handler.GetTeamPage)
}

func registerResourceRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/competitions", handler.ListCompetitions)
	mux.HandleFunc("GET /v1/competitions/{code}/standings", handler.GetStandings)
	mux.HandleFunc("GET /v1/matches", handler.ListMatches)
	mux.HandleFunc("GET /v1/matches/{matchID}", handler.GetMatch)
	mux.HandleFunc("GET /v1/matches/{matchID}/head2head", handler.GetHeadToHead)
	mux.HandleFunc("GET /v1/teams/{teamID}", handler.GetTeam)
}
