package footballdata

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

type CompetitionListOptions struct {
	// Areas narrows the listing to the given area ids.
	Areas []int64
}

func (c *Client) Competitions(ctx context.Context, opts CompetitionListOptions) (*CompetitionsResponse, error) {
	query := url.Values{}
	if len(opts.Areas) > 0 {
		ids := make([]string, 0, len(opts.Areas))
		for _, id := range opts.Areas {
			ids = append(ids, strconv.FormatInt(id, 10))
		}
		query.Set("areas", strings.Join(ids, ","))
	}

	var out CompetitionsResponse
	if err := c.get(ctx, "competitions", "/competitions", query, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Competition(ctx context.Context, code string) (*Competition, error) {
	code, err := normalizeCompetitionCode("competition", code)
	if err != nil {
		return nil, err
	}

	var out Competition
	if err := c.get(ctx, fmt.Sprintf("competition %s", code), "/competitions/"+code, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type StandingsOptions struct {
	Season   int
	Matchday int
	// Date asks for the table as it stood on the given day, YYYY-MM-DD.
	Date string
}

func (c *Client) Standings(ctx context.Context, code string, opts StandingsOptions) (*StandingsResponse, error) {
	code, err := normalizeCompetitionCode("standings", code)
	if err != nil {
		return nil, err
	}

	query := url.Values{}
	setIntParam(query, "season", opts.Season)
	setIntParam(query, "matchday", opts.Matchday)
	setStringParam(query, "date", opts.Date)

	var out StandingsResponse
	if err := c.get(ctx, fmt.Sprintf("standings %s", code), "/competitions/"+code+"/standings", query, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type ScorersOptions struct {
	Season int
	Limit  int
}

func (c *Client) Scorers(ctx context.Context, code string, opts ScorersOptions) (*ScorersResponse, error) {
	code, err := normalizeCompetitionCode("scorers", code)
	if err != nil {
		return nil, err
	}

	query := url.Values{}
	setIntParam(query, "season", opts.Season)
	setIntParam(query, "limit", opts.Limit)

	var out ScorersResponse
	if err := c.get(ctx, fmt.Sprintf("scorers %s", code), "/competitions/"+code+"/scorers", query, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type CompetitionTeamsOptions struct {
	Season int
}

func (c *Client) CompetitionTeams(ctx context.Context, code string, opts CompetitionTeamsOptions) (*CompetitionTeamsResponse, error) {
	code, err := normalizeCompetitionCode("competition teams", code)
	if err != nil {
		return nil, err
	}

	query := url.Values{}
	setIntParam(query, "season", opts.Season)

	var out CompetitionTeamsResponse
	if err := c.get(ctx, fmt.Sprintf("competition teams %s", code), "/competitions/"+code+"/teams", query, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type CompetitionMatchesOptions struct {
	Season   int
	Matchday int
	Status   MatchStatus
	Stage    string
	Group    string
	DateFrom string
	DateTo   string
}

func (c *Client) CompetitionMatches(ctx context.Context, code string, opts CompetitionMatchesOptions) (*MatchesResponse, error) {
	code, err := normalizeCompetitionCode("competition matches", code)
	if err != nil {
		return nil, err
	}

	query := url.Values{}
	setIntParam(query, "season", opts.Season)
	setIntParam(query, "matchday", opts.Matchday)
	setStringParam(query, "status", string(opts.Status))
	setStringParam(query, "stage", opts.Stage)
	setStringParam(query, "group", opts.Group)
	setStringParam(query, "dateFrom", opts.DateFrom)
	setStringParam(query, "dateTo", opts.DateTo)

	var out MatchesResponse
	if err := c.get(ctx, fmt.Sprintf("competition matches %s", code), "/competitions/"+code+"/matches", query, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// normalizeCompetitionCode canonicalizes to the upstream's uppercase codes
// so "pd" and "PD" name the same competition everywhere downstream.
func normalizeCompetitionCode(op, raw string) (string, error) {
	code := strings.ToUpper(strings.TrimSpace(raw))
	if code == "" {
		return "", &Error{Kind: KindClient, Op: op, Detail: "competition code is required"}
	}
	return code, nil
}

func setIntParam(query url.Values, name string, value int) {
	if value <= 0 {
		return
	}
	query.Set(name, strconv.Itoa(value))
}

func setStringParam(query url.Values, name, value string) {
	value = strings.TrimSpace(value)
	if value == "" {
		return
	}
	query.Set(name, value)
}
