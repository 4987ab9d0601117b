package footballdata

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

type MatchListOptions struct {
	Competitions []string
	IDs          []int64
	Status       MatchStatus
	DateFrom     string
	DateTo       string
}

// Matches lists matches across competitions. Without date filters the
// upstream defaults to the current day.
func (c *Client) Matches(ctx context.Context, opts MatchListOptions) (*MatchesResponse, error) {
	query := url.Values{}
	if codes := joinCompetitionCodes(opts.Competitions); codes != "" {
		query.Set("competitions", codes)
	}
	if len(opts.IDs) > 0 {
		ids := make([]string, 0, len(opts.IDs))
		for _, id := range opts.IDs {
			ids = append(ids, strconv.FormatInt(id, 10))
		}
		query.Set("ids", strings.Join(ids, ","))
	}
	setStringParam(query, "status", string(opts.Status))
	setStringParam(query, "dateFrom", opts.DateFrom)
	setStringParam(query, "dateTo", opts.DateTo)

	var out MatchesResponse
	if err := c.get(ctx, "matches", "/matches", query, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MatchDetailOptions picks the expansions to unfold on a match detail call.
// Each flag costs the upstream extra work, so callers ask only for what the
// view needs.
type MatchDetailOptions struct {
	Lineups       bool
	Goals         bool
	Bookings      bool
	Substitutions bool
}

func (o MatchDetailOptions) headers() http.Header {
	h := http.Header{}
	if o.Lineups {
		h.Set(headerUnfoldLineups, "true")
	}
	if o.Goals {
		h.Set(headerUnfoldGoals, "true")
	}
	if o.Bookings {
		h.Set(headerUnfoldBookings, "true")
	}
	if o.Substitutions {
		h.Set(headerUnfoldSubs, "true")
	}
	if len(h) == 0 {
		return nil
	}
	return h
}

func (c *Client) Match(ctx context.Context, id int64, opts MatchDetailOptions) (*Match, error) {
	if err := validateID("match", "match id", id); err != nil {
		return nil, err
	}

	var out Match
	if err := c.get(ctx, fmt.Sprintf("match %d", id), "/matches/"+strconv.FormatInt(id, 10), nil, opts.headers(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type HeadToHeadOptions struct {
	Limit        int
	DateFrom     string
	DateTo       string
	Competitions []string
}

func (c *Client) HeadToHead(ctx context.Context, matchID int64, opts HeadToHeadOptions) (*HeadToHeadResponse, error) {
	if err := validateID("head to head", "match id", matchID); err != nil {
		return nil, err
	}

	query := url.Values{}
	setIntParam(query, "limit", opts.Limit)
	setStringParam(query, "dateFrom", opts.DateFrom)
	setStringParam(query, "dateTo", opts.DateTo)
	if codes := joinCompetitionCodes(opts.Competitions); codes != "" {
		query.Set("competitions", codes)
	}

	var out HeadToHeadResponse
	if err := c.get(ctx, fmt.Sprintf("head to head %d", matchID), "/matches/"+strconv.FormatInt(matchID, 10)+"/head2head", query, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func joinCompetitionCodes(raw []string) string {
	if len(raw) == 0 {
		return ""
	}
	codes := make([]string, 0, len(raw))
	for _, code := range raw {
		code = strings.ToUpper(strings.TrimSpace(code))
		if code == "" {
			continue
		}
		codes = append(codes, code)
	}
	return strings.Join(codes, ",")
}

func validateID(op, field string, id int64) error {
	if id <= 0 {
		return &Error{Kind: KindClient, Op: op, Detail: field + " must be greater than zero"}
	}
	return nil
}
