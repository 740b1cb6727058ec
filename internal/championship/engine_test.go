package championship

import (
	"context"
	"errors"
	"math/rand"
	"path/filepath"
	"testing"

	"CoinArena/internal/ledger"
	"CoinArena/internal/model"
	"CoinArena/internal/recorder"
)

type silentAnnouncer struct{ msgs []string }

func (s *silentAnnouncer) Announce(text string) { s.msgs = append(s.msgs, text) }

func newTestEngine(t *testing.T) (*Engine, *ledger.Ledger) {
	t.Helper()
	l, err := ledger.New(filepath.Join(t.TempDir(), "accounts.json"))
	if err != nil {
		t.Fatalf("new ledger: %v", err)
	}
	e := New(l, &silentAnnouncer{}, recorder.NewNoopRecorder(), rand.New(rand.NewSource(1)), Config{}, nil)
	return e, l
}

func TestApplyResult_WinnerTakesThree(t *testing.T) {
	e, _ := newTestEngine(t)
	e.startSeason()

	e.applyResult(&model.MatchOutcome{Team1: "Red Dragons", Team2: "Blue Knights", Goals1: 2, Goals2: 0})

	if pts := e.teams["Red Dragons"].Points; pts != 3 {
		t.Errorf("winner points = %d, want 3", pts)
	}
	if pts := e.teams["Blue Knights"].Points; pts != 0 {
		t.Errorf("loser points = %d, want 0", pts)
	}
	if form := e.teams["Red Dragons"].RecentForm; len(form) != 1 || !form[0] {
		t.Errorf("winner form = %v, want [true]", form)
	}
	if form := e.teams["Blue Knights"].RecentForm; len(form) != 1 || form[0] {
		t.Errorf("loser form = %v, want [false]", form)
	}
}

func TestApplyResult_DrawFavorsBoth(t *testing.T) {
	e, _ := newTestEngine(t)
	e.startSeason()

	e.applyResult(&model.MatchOutcome{Team1: "Red Dragons", Team2: "Blue Knights", Goals1: 1, Goals2: 1})

	for _, name := range []string{"Red Dragons", "Blue Knights"} {
		team := e.teams[name]
		if team.Points != 1 {
			t.Errorf("%s points = %d, want 1", name, team.Points)
		}
		if len(team.RecentForm) != 1 || !team.RecentForm[0] {
			t.Errorf("%s form = %v, want [true] on a draw", name, team.RecentForm)
		}
	}
}

func TestApplyResult_PointsLedgerBalances(t *testing.T) {
	e, _ := newTestEngine(t)
	e.startSeason()

	decisive, drawn := 0, 0
	for i := 0; i < 40; i++ {
		out := Simulate(e.rng, "Red Dragons", "Blue Knights")
		if out.Goals1 == out.Goals2 {
			drawn++
		} else {
			decisive++
		}
		e.applyResult(out)
	}

	total := e.teams["Red Dragons"].Points + e.teams["Blue Knights"].Points
	want := 3*decisive + 2*drawn
	if total != want {
		t.Errorf("total points awarded = %d, want %d (%d decisive, %d drawn)", total, want, decisive, drawn)
	}
}

func TestApplyResult_FormAndHistoryCapped(t *testing.T) {
	e, _ := newTestEngine(t)
	e.startSeason()

	for i := 0; i < model.HistorySize+20; i++ {
		e.applyResult(&model.MatchOutcome{Team1: "Red Dragons", Team2: "Blue Knights", Goals1: 1, Goals2: 0})
	}

	if got := len(e.teams["Red Dragons"].RecentForm); got != model.FormSize {
		t.Errorf("form length = %d, want %d", got, model.FormSize)
	}
	if got := len(e.history); got != model.HistorySize {
		t.Errorf("history length = %d, want %d", got, model.HistorySize)
	}
}

func TestPlaceBet_CapturesOddsAtPlacement(t *testing.T) {
	e, l := newTestEngine(t)
	e.startSeason()
	if err := l.Credit(1, 900); err != nil {
		t.Fatal(err)
	}

	if err := e.placeBet(1, "Red Dragons", 200); err != nil {
		t.Fatalf("place bet: %v", err)
	}
	if got := l.Get(1).Balance; got != 800 {
		t.Errorf("stake not debited: wallet = %d, want 800", got)
	}

	bet := e.bets[1]
	want := e.teams["Red Dragons"].Odds
	if bet.Multiplier != want {
		t.Errorf("bet multiplier = %f, want the odds at placement %f", bet.Multiplier, want)
	}

	// A repeated bet replaces the first; the earlier stake stays debited.
	if err := e.placeBet(1, "Blue Knights", 100); err != nil {
		t.Fatalf("replace bet: %v", err)
	}
	if got := len(e.bets); got != 1 {
		t.Errorf("expected one live bet per user, got %d", got)
	}
	if e.bets[1].TeamName != "Blue Knights" {
		t.Errorf("replacement bet kept old team %s", e.bets[1].TeamName)
	}
}

func TestPlaceBet_Rejections(t *testing.T) {
	e, l := newTestEngine(t)

	if err := e.placeBet(1, "Red Dragons", 10); !errors.Is(err, ErrInactive) {
		t.Errorf("expected ErrInactive before season start, got %v", err)
	}

	e.startSeason()
	if err := e.placeBet(1, "No Such Team", 10); !errors.Is(err, ErrUnknownTeam) {
		t.Errorf("expected ErrUnknownTeam, got %v", err)
	}
	if err := e.placeBet(1, "Red Dragons", 100_000); !errors.Is(err, ledger.ErrInsufficientFunds) {
		t.Errorf("expected ErrInsufficientFunds, got %v", err)
	}
	if got := l.Get(1).Balance; got != model.StartingBalance {
		t.Errorf("rejected bets must not touch the wallet: %d", got)
	}
	if len(e.bets) != 0 {
		t.Errorf("rejected bets must not be recorded: %d live", len(e.bets))
	}
}

func TestEndSeason_SettlesBetsExactlyOnce(t *testing.T) {
	e, l := newTestEngine(t)
	e.startSeason()
	if err := l.Credit(1, 900); err != nil {
		t.Fatal(err)
	}
	if err := l.Credit(2, 900); err != nil {
		t.Fatal(err)
	}

	if err := e.placeBet(1, "Red Dragons", 200); err != nil {
		t.Fatal(err)
	}
	if err := e.placeBet(2, "Blue Knights", 200); err != nil {
		t.Fatal(err)
	}
	multiplier := e.bets[1].Multiplier

	// Force the bet-on team to the title.
	e.teams["Red Dragons"].Points = 30
	e.endSeason()

	wantPayout := int64(float64(200) * multiplier)
	if got := l.Get(1).Balance; got != 800+wantPayout {
		t.Errorf("winning bettor wallet = %d, want %d", got, 800+wantPayout)
	}
	if got := l.Get(2).Balance; got != 800 {
		t.Errorf("losing bettor wallet = %d, want 800", got)
	}
	if len(e.bets) != 0 {
		t.Errorf("bets must be cleared after settlement: %d live", len(e.bets))
	}
	if e.active {
		t.Error("engine should be inactive after season end")
	}
	if e.wins["Red Dragons"] != 1 {
		t.Errorf("champion title count = %d, want 1", e.wins["Red Dragons"])
	}

	// A stray second settlement must not pay again.
	before := l.Get(1).Balance
	e.endSeason()
	if got := l.Get(1).Balance; got != before {
		t.Errorf("second settlement paid again: %d -> %d", before, got)
	}
}

func TestStartSeason_ResetsStandingsKeepsTitles(t *testing.T) {
	e, _ := newTestEngine(t)
	e.startSeason()
	e.teams["Red Dragons"].Points = 30
	e.teams["Red Dragons"].AddForm(true)
	e.endSeason()

	e.startSeason()
	if pts := e.teams["Red Dragons"].Points; pts != 0 {
		t.Errorf("points not reset on new season: %d", pts)
	}
	if form := e.teams["Red Dragons"].RecentForm; len(form) != 0 {
		t.Errorf("form not reset on new season: %v", form)
	}
	if e.wins["Red Dragons"] != 1 {
		t.Errorf("title count must survive the reset, got %d", e.wins["Red Dragons"])
	}
	if !e.active {
		t.Error("engine should be active after season start")
	}
}

func TestRequests_AfterShutdownDoNotBlock(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx, cancel := context.WithCancel(context.Background())
	go e.Run(ctx)

	if s := e.Standings(); !s.Active {
		t.Fatal("loop should be serving with an active season")
	}

	cancel()
	<-e.done

	if err := e.PlaceBet(1, "Red Dragons", 10); !errors.Is(err, ErrStopped) {
		t.Errorf("expected ErrStopped after shutdown, got %v", err)
	}
	if s := e.Standings(); s.Active || len(s.Teams) != 0 {
		t.Errorf("expected empty standings after shutdown, got %+v", s)
	}
}

func TestChampion_TiesBreakByRosterOrder(t *testing.T) {
	e, _ := newTestEngine(t)
	e.startSeason()
	for _, name := range e.order {
		e.teams[name].Points = 10
	}
	if got := e.champion().Name; got != e.order[0] {
		t.Errorf("all-tied champion = %s, want roster-first %s", got, e.order[0])
	}
}

func TestStandings_SortedByPoints(t *testing.T) {
	e, _ := newTestEngine(t)
	e.startSeason()
	e.teams["Blue Knights"].Points = 9
	e.teams["Red Dragons"].Points = 6

	s := e.standings()
	if !s.Active {
		t.Error("standings should report the season active")
	}
	if s.Teams[0].Name != "Blue Knights" || s.Teams[1].Name != "Red Dragons" {
		t.Errorf("standings not sorted by points: %s, %s", s.Teams[0].Name, s.Teams[1].Name)
	}
	for i := 1; i < len(s.Teams); i++ {
		if s.Teams[i-1].Points < s.Teams[i].Points {
			t.Errorf("standings out of order at %d: %d < %d", i, s.Teams[i-1].Points, s.Teams[i].Points)
		}
	}
}
