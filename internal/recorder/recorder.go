package recorder

// JackpotSettlement records one jackpot payout.
type JackpotSettlement struct {
	WinnerID int64
	Total    int64
	Entries  int
}

// MatchRecord records one simulated championship match.
type MatchRecord struct {
	Team1  string
	Team2  string
	Score1 int
	Score2 int
}

// SeasonRecord records one completed championship season.
type SeasonRecord struct {
	Champion string
	Points   int
	Titles   int
	Bets     int
}

// BetSettlement records one settled championship bet.
type BetSettlement struct {
	UserID     int64
	TeamName   string
	Amount     int64
	Multiplier float64
	Won        bool
	Payout     int64
}

// Recorder persists settlement and match history for later analysis.
type Recorder interface {
	RecordJackpot(s *JackpotSettlement) error
	RecordMatch(m *MatchRecord) error
	RecordSeason(s *SeasonRecord) error
	RecordBet(b *BetSettlement) error
	Close() error
}
