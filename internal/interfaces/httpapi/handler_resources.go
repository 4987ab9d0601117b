package httpapi

import (
	"net/http"
	"strings"

	"github.com/matchday-dev/matchday/external/footballdata"
)

// Resource endpoints mirror single upstream calls, cached through the same
// store the pages use. Unlike the page endpoints they map failures onto HTTP
// statuses directly.

func (h *Handler) ListCompetitions(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListCompetitions")
	defer span.End()

	competitions, err := h.resources.Competitions(ctx, pageOptions(r))
	if err != nil {
		h.logger.WarnContext(ctx, "list competitions failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, competitions)
}

type standingsQuery struct {
	Date string `validate:"omitempty,datetime=2006-01-02"`
}

func (h *Handler) GetStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetStandings")
	defer span.End()

	code := r.PathValue("code")
	query := r.URL.Query()

	season, err := parseOptionalInt(query, "season")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	matchday, err := parseOptionalInt(query, "matchday")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	params := standingsQuery{Date: strings.TrimSpace(query.Get("date"))}
	if err := h.validateQuery(ctx, params); err != nil {
		writeError(ctx, w, err)
		return
	}

	standings, err := h.resources.Standings(ctx, code, footballdata.StandingsOptions{
		Season:   season,
		Matchday: matchday,
		Date:     params.Date,
	}, pageOptions(r))
	if err != nil {
		h.logger.WarnContext(ctx, "get standings failed", "code", code, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, standings)
}

type matchListQuery struct {
	Date   string `validate:"omitempty,datetime=2006-01-02"`
	Status string `validate:"omitempty,oneof=SCHEDULED TIMED IN_PLAY PAUSED FINISHED SUSPENDED POSTPONED CANCELLED AWARDED"`
}

func (h *Handler) ListMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatches")
	defer span.End()

	query := r.URL.Query()
	params := matchListQuery{
		Date:   strings.TrimSpace(query.Get("date")),
		Status: strings.ToUpper(strings.TrimSpace(query.Get("status"))),
	}
	if err := h.validateQuery(ctx, params); err != nil {
		writeError(ctx, w, err)
		return
	}

	matches, err := h.resources.Matches(ctx, footballdata.MatchListOptions{
		DateFrom:     params.Date,
		DateTo:       params.Date,
		Status:       footballdata.MatchStatus(params.Status),
		Competitions: splitCSVParam(query.Get("competitions")),
	}, pageOptions(r))
	if err != nil {
		h.logger.WarnContext(ctx, "list matches failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matches)
}

func (h *Handler) GetMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatch")
	defer span.End()

	id, err := parsePathID(r, "matchID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	query := r.URL.Query()
	match, err := h.resources.Match(ctx, id, footballdata.MatchDetailOptions{
		Lineups:       parseBoolFlag(query, "lineups"),
		Goals:         parseBoolFlag(query, "goals"),
		Bookings:      parseBoolFlag(query, "bookings"),
		Substitutions: parseBoolFlag(query, "substitutions"),
	}, pageOptions(r))
	if err != nil {
		h.logger.WarnContext(ctx, "get match failed", "match_id", id, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, match)
}

type headToHeadQuery struct {
	DateFrom string `validate:"omitempty,datetime=2006-01-02"`
	DateTo   string `validate:"omitempty,datetime=2006-01-02"`
}

func (h *Handler) GetHeadToHead(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetHeadToHead")
	defer span.End()

	id, err := parsePathID(r, "matchID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	query := r.URL.Query()
	limit, err := parseOptionalInt(query, "limit")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	params := headToHeadQuery{
		DateFrom: strings.TrimSpace(query.Get("dateFrom")),
		DateTo:   strings.TrimSpace(query.Get("dateTo")),
	}
	if err := h.validateQuery(ctx, params); err != nil {
		writeError(ctx, w, err)
		return
	}

	h2h, err := h.resources.HeadToHead(ctx, id, footballdata.HeadToHeadOptions{
		Limit:    limit,
		DateFrom: params.DateFrom,
		DateTo:   params.DateTo,
	}, pageOptions(r))
	if err != nil {
		h.logger.WarnContext(ctx, "get head to head failed", "match_id", id, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, h2h)
}

func (h *Handler) GetTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeam")
	defer span.End()

	id, err := parsePathID(r, "teamID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	team, err := h.resources.Team(ctx, id, pageOptions(r))
	if err != nil {
		h.logger.WarnContext(ctx, "get team failed", "team_id", id, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, team)
}

func splitCSVParam(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}
	return out
}
