package footballdata

import "time"

// The types below mirror the football-data.org v4 response shapes. They are
// read-only snapshots: nothing in this codebase mutates them after decoding.
// Upstream omits many fields depending on plan, resource and match state, so
// optional fields are pointers or nil-able slices and consumers must branch
// on presence rather than assume a value.

type Area struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Code string `json:"code,omitempty"`
	Flag string `json:"flag,omitempty"`
}

type Season struct {
	ID              int64  `json:"id"`
	StartDate       string `json:"startDate,omitempty"`
	EndDate         string `json:"endDate,omitempty"`
	CurrentMatchday *int   `json:"currentMatchday,omitempty"`
	Winner          *Team  `json:"winner,omitempty"`
}

type CompetitionType string

const (
	CompetitionTypeLeague    CompetitionType = "LEAGUE"
	CompetitionTypeLeagueCup CompetitionType = "LEAGUE_CUP"
	CompetitionTypeCup       CompetitionType = "CUP"
	CompetitionTypePlayoffs  CompetitionType = "PLAYOFFS"
)

type Competition struct {
	ID                       int64           `json:"id"`
	Area                     *Area           `json:"area,omitempty"`
	Name                     string          `json:"name"`
	Code                     string          `json:"code"`
	Type                     CompetitionType `json:"type,omitempty"`
	Emblem                   string          `json:"emblem,omitempty"`
	Plan                     string          `json:"plan,omitempty"`
	CurrentSeason            *Season         `json:"currentSeason,omitempty"`
	NumberOfAvailableSeasons int             `json:"numberOfAvailableSeasons,omitempty"`
	LastUpdated              time.Time       `json:"lastUpdated,omitempty"`
}

type Team struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"shortName,omitempty"`
	TLA       string `json:"tla,omitempty"`
	Crest     string `json:"crest,omitempty"`
}

type Contract struct {
	Start string `json:"start,omitempty"`
	Until string `json:"until,omitempty"`
}

type Person struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	FirstName   string    `json:"firstName,omitempty"`
	LastName    string    `json:"lastName,omitempty"`
	DateOfBirth string    `json:"dateOfBirth,omitempty"`
	Nationality string    `json:"nationality,omitempty"`
	Position    string    `json:"position,omitempty"`
	ShirtNumber *int      `json:"shirtNumber,omitempty"`
	MarketValue *int64    `json:"marketValue,omitempty"`
	Contract    *Contract `json:"contract,omitempty"`
}

type Coach struct {
	ID          *int64    `json:"id,omitempty"`
	Name        string    `json:"name,omitempty"`
	FirstName   string    `json:"firstName,omitempty"`
	LastName    string    `json:"lastName,omitempty"`
	DateOfBirth string    `json:"dateOfBirth,omitempty"`
	Nationality string    `json:"nationality,omitempty"`
	Contract    *Contract `json:"contract,omitempty"`
}

// TeamDetail is the full team resource: the summary identity extended with
// venue data, the squad (contracts and market values included when the plan
// sends them), coaching staff and the competitions currently running.
type TeamDetail struct {
	Team
	Area                *Area         `json:"area,omitempty"`
	Address             string        `json:"address,omitempty"`
	Website             string        `json:"website,omitempty"`
	Founded             *int          `json:"founded,omitempty"`
	ClubColors          string        `json:"clubColors,omitempty"`
	Venue               string        `json:"venue,omitempty"`
	RunningCompetitions []Competition `json:"runningCompetitions,omitempty"`
	Coach               *Coach        `json:"coach,omitempty"`
	Squad               []Person      `json:"squad,omitempty"`
	Staff               []Person      `json:"staff,omitempty"`
	LastUpdated         time.Time     `json:"lastUpdated,omitempty"`
}

// MatchStatus is one of the nine upstream match states.
type MatchStatus string

const (
	StatusScheduled MatchStatus = "SCHEDULED"
	StatusTimed     MatchStatus = "TIMED"
	StatusInPlay    MatchStatus = "IN_PLAY"
	StatusPaused    MatchStatus = "PAUSED"
	StatusFinished  MatchStatus = "FINISHED"
	StatusSuspended MatchStatus = "SUSPENDED"
	StatusPostponed MatchStatus = "POSTPONED"
	StatusCancelled MatchStatus = "CANCELLED"
	StatusAwarded   MatchStatus = "AWARDED"
)

// IsLiveStatus reports whether the ball is, or is about to be, rolling.
func IsLiveStatus(s MatchStatus) bool {
	return s == StatusInPlay || s == StatusPaused
}

// IsFinishedStatus reports terminal states that carry a final score.
func IsFinishedStatus(s MatchStatus) bool {
	return s == StatusFinished || s == StatusAwarded
}

func IsScheduledStatus(s MatchStatus) bool {
	return s == StatusScheduled || s == StatusTimed
}

const (
	WinnerHomeTeam = "HOME_TEAM"
	WinnerAwayTeam = "AWAY_TEAM"
	WinnerDraw     = "DRAW"
)

// ScorePeriod holds one period's goal counts. Both values stay nil until the
// match reaches a state where that period is decided; a consumer must never
// read an intermediate status as a final score.
type ScorePeriod struct {
	Home *int `json:"home"`
	Away *int `json:"away"`
}

type Score struct {
	Winner    string       `json:"winner,omitempty"`
	Duration  string       `json:"duration,omitempty"`
	FullTime  *ScorePeriod `json:"fullTime,omitempty"`
	HalfTime  *ScorePeriod `json:"halfTime,omitempty"`
	ExtraTime *ScorePeriod `json:"extraTime,omitempty"`
	Penalties *ScorePeriod `json:"penalties,omitempty"`
}

// MatchTeam is one side of a match; lineup, bench, formation and statistics
// only appear when the matching detail expansion was requested and the
// upstream has the data.
type MatchTeam struct {
	Team
	Coach      *Coach         `json:"coach,omitempty"`
	LeagueRank *int           `json:"leagueRank,omitempty"`
	Formation  string         `json:"formation,omitempty"`
	Lineup     []Person       `json:"lineup,omitempty"`
	Bench      []Person       `json:"bench,omitempty"`
	Statistics map[string]int `json:"statistics,omitempty"`
}

type GoalType string

const (
	GoalTypeRegular GoalType = "REGULAR"
	GoalTypeOwn     GoalType = "OWN"
	GoalTypePenalty GoalType = "PENALTY"
)

type Goal struct {
	Minute     int          `json:"minute"`
	InjuryTime *int         `json:"injuryTime,omitempty"`
	Type       GoalType     `json:"type,omitempty"`
	Team       Team         `json:"team"`
	Scorer     Person       `json:"scorer"`
	Assist     *Person      `json:"assist,omitempty"`
	Score      *ScorePeriod `json:"score,omitempty"`
}

type CardColor string

const (
	CardYellow    CardColor = "YELLOW"
	CardYellowRed CardColor = "YELLOW_RED"
	CardRed       CardColor = "RED"
)

type Booking struct {
	Minute int       `json:"minute"`
	Team   Team      `json:"team"`
	Player Person    `json:"player"`
	Card   CardColor `json:"card"`
}

type Substitution struct {
	Minute    int    `json:"minute"`
	Team      Team   `json:"team"`
	PlayerOut Person `json:"playerOut"`
	PlayerIn  Person `json:"playerIn"`
}

type Referee struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Type        string `json:"type,omitempty"`
	Nationality string `json:"nationality,omitempty"`
}

type Odds struct {
	Message string   `json:"msg,omitempty"`
	HomeWin *float64 `json:"homeWin,omitempty"`
	Draw    *float64 `json:"draw,omitempty"`
	AwayWin *float64 `json:"awayWin,omitempty"`
}

type Match struct {
	ID            int64          `json:"id"`
	Area          *Area          `json:"area,omitempty"`
	Competition   *Competition   `json:"competition,omitempty"`
	Season        *Season        `json:"season,omitempty"`
	UTCDate       time.Time      `json:"utcDate"`
	Status        MatchStatus    `json:"status"`
	Minute        *int           `json:"minute,omitempty"`
	Matchday      *int           `json:"matchday,omitempty"`
	Stage         string         `json:"stage,omitempty"`
	Group         string         `json:"group,omitempty"`
	LastUpdated   time.Time      `json:"lastUpdated,omitempty"`
	HomeTeam      MatchTeam      `json:"homeTeam"`
	AwayTeam      MatchTeam      `json:"awayTeam"`
	Score         Score          `json:"score"`
	Goals         []Goal         `json:"goals,omitempty"`
	Bookings      []Booking      `json:"bookings,omitempty"`
	Substitutions []Substitution `json:"substitutions,omitempty"`
	Referees      []Referee      `json:"referees,omitempty"`
	Odds          *Odds          `json:"odds,omitempty"`
	Venue         string         `json:"venue,omitempty"`
	Attendance    *int           `json:"attendance,omitempty"`
}

type StandingType string

const (
	StandingTypeTotal StandingType = "TOTAL"
	StandingTypeHome  StandingType = "HOME"
	StandingTypeAway  StandingType = "AWAY"
)

type TableRow struct {
	Position       int    `json:"position"`
	Team           Team   `json:"team"`
	PlayedGames    int    `json:"playedGames"`
	Form           string `json:"form,omitempty"`
	Won            int    `json:"won"`
	Draw           int    `json:"draw"`
	Lost           int    `json:"lost"`
	Points         int    `json:"points"`
	GoalsFor       int    `json:"goalsFor"`
	GoalsAgainst   int    `json:"goalsAgainst"`
	GoalDifference int    `json:"goalDifference"`
}

// Standing is one ranked table for a (stage, type, group) triple; rows are
// unique per team within the triple.
type Standing struct {
	Stage string       `json:"stage"`
	Type  StandingType `json:"type"`
	Group string       `json:"group,omitempty"`
	Table []TableRow   `json:"table"`
}

type Scorer struct {
	Player        Person `json:"player"`
	Team          Team   `json:"team"`
	PlayedMatches int    `json:"playedMatches"`
	Goals         int    `json:"goals"`
	Assists       *int   `json:"assists,omitempty"`
	Penalties     *int   `json:"penalties,omitempty"`
}

// ResultSet summarizes a match collection; Count always equals the number of
// matches in the same response.
type ResultSet struct {
	Count        int    `json:"count"`
	Competitions string `json:"competitions,omitempty"`
	First        string `json:"first,omitempty"`
	Last         string `json:"last,omitempty"`
	Played       *int   `json:"played,omitempty"`
	Wins         *int   `json:"wins,omitempty"`
	Draws        *int   `json:"draws,omitempty"`
	Losses       *int   `json:"losses,omitempty"`
}

type CompetitionsResponse struct {
	Count        int            `json:"count"`
	Filters      map[string]any `json:"filters,omitempty"`
	Competitions []Competition  `json:"competitions"`
}

type StandingsResponse struct {
	Filters     map[string]any `json:"filters,omitempty"`
	Area        *Area          `json:"area,omitempty"`
	Competition *Competition   `json:"competition,omitempty"`
	Season      *Season        `json:"season,omitempty"`
	Standings   []Standing     `json:"standings"`
}

type ScorersResponse struct {
	Count       int            `json:"count"`
	Filters     map[string]any `json:"filters,omitempty"`
	Competition *Competition   `json:"competition,omitempty"`
	Season      *Season        `json:"season,omitempty"`
	Scorers     []Scorer       `json:"scorers"`
}

type CompetitionTeamsResponse struct {
	Count       int            `json:"count"`
	Filters     map[string]any `json:"filters,omitempty"`
	Competition *Competition   `json:"competition,omitempty"`
	Season      *Season        `json:"season,omitempty"`
	Teams       []TeamDetail   `json:"teams"`
}

type MatchesResponse struct {
	Filters     map[string]any `json:"filters,omitempty"`
	ResultSet   *ResultSet     `json:"resultSet,omitempty"`
	Competition *Competition   `json:"competition,omitempty"`
	Matches     []Match        `json:"matches"`
}

type HeadToHeadAggregateSide struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Wins   int    `json:"wins"`
	Draws  int    `json:"draws"`
	Losses int    `json:"losses"`
}

type HeadToHeadAggregates struct {
	NumberOfMatches int                     `json:"numberOfMatches"`
	TotalGoals      int                     `json:"totalGoals"`
	HomeTeam        HeadToHeadAggregateSide `json:"homeTeam"`
	AwayTeam        HeadToHeadAggregateSide `json:"awayTeam"`
}

type HeadToHeadResponse struct {
	Filters    map[string]any        `json:"filters,omitempty"`
	ResultSet  *ResultSet            `json:"resultSet,omitempty"`
	Aggregates *HeadToHeadAggregates `json:"aggregates,omitempty"`
	Matches    []Match               `json:"matches"`
}
