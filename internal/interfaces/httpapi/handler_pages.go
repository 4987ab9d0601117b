package httpapi

import (
	"net/http"
	"strings"

	"github.com/matchday-dev/matchday/internal/usecase"
)

// Page endpoints always answer 200 once orchestration ran: per-section
// success and failure travel inside the body, so one broken section never
// hides its healthy siblings.

type homePageQuery struct {
	Date string `validate:"omitempty,datetime=2006-01-02"`
}

func (h *Handler) GetHomePage(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetHomePage")
	defer span.End()

	params := homePageQuery{Date: strings.TrimSpace(r.URL.Query().Get("date"))}
	if err := h.validateQuery(ctx, params); err != nil {
		writeError(ctx, w, err)
		return
	}

	page := h.homePage.Load(ctx, params.Date, pageOptions(r))
	writeSuccess(ctx, w, http.StatusOK, page)
}

func (h *Handler) GetCompetitionPage(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetCompetitionPage")
	defer span.End()

	code := r.PathValue("code")
	season, err := parseOptionalInt(r.URL.Query(), "season")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	page := h.competitionPage.Load(ctx, code, season, pageOptions(r))
	if page.Competition.State == usecase.SectionError {
		h.logger.WarnContext(ctx, "competition page parent failed", "code", code, "error", page.Competition.Err)
	}
	writeSuccess(ctx, w, http.StatusOK, page)
}

func (h *Handler) GetMatchPage(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatchPage")
	defer span.End()

	id, err := parsePathID(r, "matchID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	page := h.matchPage.Load(ctx, id, pageOptions(r))
	if page.Match.State == usecase.SectionError {
		h.logger.WarnContext(ctx, "match page parent failed", "match_id", id, "error", page.Match.Err)
	}
	writeSuccess(ctx, w, http.StatusOK, page)
}

func (h *Handler) GetTeamPage(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeamPage")
	defer span.End()

	id, err := parsePathID(r, "teamID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	page := h.teamPage.Load(ctx, id, pageOptions(r))
	if page.Team.State == usecase.SectionError {
		h.logger.WarnContext(ctx, "team page parent failed", "team_id", id, "error", page.Team.Err)
	}
	writeSuccess(ctx, w, http.StatusOK, page)
}
