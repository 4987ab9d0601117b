package footballdata

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

func (c *Client) Team(ctx context.Context, id int64) (*TeamDetail, error) {
	if err := validateID("team", "team id", id); err != nil {
		return nil, err
	}

	var out TeamDetail
	if err := c.get(ctx, fmt.Sprintf("team %d", id), "/teams/"+strconv.FormatInt(id, 10), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type TeamMatchesOptions struct {
	Season   int
	Status   MatchStatus
	// Venue filters to HOME or AWAY fixtures.
	Venue    string
	DateFrom string
	DateTo   string
	Limit    int
}

func (c *Client) TeamMatches(ctx context.Context, id int64, opts TeamMatchesOptions) (*MatchesResponse, error) {
	if err := validateID("team matches", "team id", id); err != nil {
		return nil, err
	}

	query := url.Values{}
	setIntParam(query, "season", opts.Season)
	setStringParam(query, "status", string(opts.Status))
	setStringParam(query, "venue", opts.Venue)
	setStringParam(query, "dateFrom", opts.DateFrom)
	setStringParam(query, "dateTo", opts.DateTo)
	setIntParam(query, "limit", opts.Limit)

	var out MatchesResponse
	if err := c.get(ctx, fmt.Sprintf("team matches %d", id), "/teams/"+strconv.FormatInt(id, 10)+"/matches", query, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
