package model

// FormSize bounds each team's recent-form record.
const FormSize = 5

// HistorySize bounds the championship match-history log.
const HistorySize = 50

// Team is one championship participant. Odds are fixed at startup; points and
// form reset every season.
type Team struct {
	Name       string
	Odds       float64
	Points     int
	RecentForm []bool
}

// AddForm appends a win/loss entry, trimming to the last FormSize results.
func (t *Team) AddForm(won bool) {
	t.RecentForm = append(t.RecentForm, won)
	if len(t.RecentForm) > FormSize {
		t.RecentForm = t.RecentForm[len(t.RecentForm)-FormSize:]
	}
}

// ChampionshipBet is a user's advance bet on the season champion. The
// multiplier is captured when the bet is placed and is used unchanged at
// settlement.
type ChampionshipBet struct {
	TeamName   string
	Amount     int64
	Multiplier float64
}

// MatchEvent is one narrated moment of a simulated match.
type MatchEvent struct {
	Minute int
	Text   string
	Goal   bool
	Team   string
}

// MatchOutcome is the full result of one simulated match.
type MatchOutcome struct {
	Team1  string
	Team2  string
	Goals1 int
	Goals2 int
	Events []MatchEvent
}

// MatchResult is the compact record kept in the championship history log.
type MatchResult struct {
	Team1  string
	Team2  string
	Score1 int
	Score2 int
}

// TeamStanding is a read-only standings row for display.
type TeamStanding struct {
	Name          string
	Points        int
	Odds          float64
	Championships int
	RecentForm    []bool
}

// Standings is a read-only snapshot of the championship for display.
type Standings struct {
	Active bool
	Teams  []TeamStanding
	Recent []MatchResult
}
