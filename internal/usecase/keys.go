package usecase

import (
	"strconv"
	"strings"

	"github.com/matchday-dev/matchday/external/footballdata"
	"github.com/matchday-dev/matchday/internal/query"
)

// Cache key kinds. Invalidation sweeps per kind, so families that move on a
// final whistle (standings, scorers) get their own names.
const (
	kindCompetitions       = "competitions"
	kindCompetition        = "competition"
	kindStandings          = "standings"
	kindScorers            = "scorers"
	kindCompetitionTeams   = "competition-teams"
	kindCompetitionMatches = "competition-matches"
	kindTeam               = "team"
	kindTeamMatches        = "team-matches"
	kindMatches            = "matches"
	kindMatch              = "match"
	kindHeadToHead         = "head2head"
)

func keyCompetitions() query.Key {
	return query.NewKey(kindCompetitions)
}

func keyCompetition(code string) query.Key {
	return query.NewKey(kindCompetition, codeArg(code))
}

func keyStandings(code string, season int) query.Key {
	return query.NewKey(kindStandings, codeArg(code)).WithParam("season", intArg(season))
}

func keyScorers(code string, season int) query.Key {
	return query.NewKey(kindScorers, codeArg(code)).WithParam("season", intArg(season))
}

func keyCompetitionTeams(code string, season int) query.Key {
	return query.NewKey(kindCompetitionTeams, codeArg(code)).WithParam("season", intArg(season))
}

func keyCompetitionMatches(code string, season int) query.Key {
	return query.NewKey(kindCompetitionMatches, codeArg(code)).WithParam("season", intArg(season))
}

func keyTeam(id int64) query.Key {
	return query.NewKey(kindTeam, idArg(id))
}

func keyTeamMatches(id int64, limit int) query.Key {
	return query.NewKey(kindTeamMatches, idArg(id)).WithParam("limit", intArg(limit))
}

func keyMatchesByDate(date string) query.Key {
	return query.NewKey(kindMatches, strings.TrimSpace(date))
}

// keyMatch includes the expansion flags: a detail fetched with lineups and
// one fetched without are different response bodies and cache separately.
func keyMatch(id int64, opts footballdata.MatchDetailOptions) query.Key {
	return query.NewKey(kindMatch, idArg(id)).
		WithParam("lineups", boolArg(opts.Lineups)).
		WithParam("goals", boolArg(opts.Goals)).
		WithParam("bookings", boolArg(opts.Bookings)).
		WithParam("subs", boolArg(opts.Substitutions))
}

func keyHeadToHead(matchID int64, limit int) query.Key {
	return query.NewKey(kindHeadToHead, idArg(matchID)).WithParam("limit", intArg(limit))
}

func allDetailFlags() footballdata.MatchDetailOptions {
	return footballdata.MatchDetailOptions{
		Lineups:       true,
		Goals:         true,
		Bookings:      true,
		Substitutions: true,
	}
}

// codeArg and idArg deliberately render invalid inputs as empty arguments:
// key validation then rejects the query before any cache or network work.
func codeArg(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func idArg(id int64) string {
	if id <= 0 {
		return ""
	}
	return strconv.FormatInt(id, 10)
}

func intArg(value int) string {
	if value <= 0 {
		return ""
	}
	return strconv.Itoa(value)
}

func boolArg(value bool) string {
	if !value {
		return ""
	}
	return "true"
}
