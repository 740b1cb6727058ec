// Package championship drives the recurring round-robin season: scheduled
// match simulation, standings, advance betting, and exactly-once settlement.
//
// All mutable state (teams, bets, history, round pointer) is owned by a
// single run-loop goroutine; external calls are requests over a command
// channel answered by the loop. That serializes every lifecycle transition by
// construction, so no transition can overlap another.
package championship

import (
	"context"
	"errors"
	"log"
	"math/rand"
	"sort"
	"time"

	"CoinArena/internal/ledger"
	"CoinArena/internal/model"
	"CoinArena/internal/notifier"
	"CoinArena/internal/recorder"
)

var (
	// ErrInactive is returned for bets placed between seasons.
	ErrInactive = errors.New("no championship is currently active")
	// ErrUnknownTeam is returned for bets on teams not in the league.
	ErrUnknownTeam = errors.New("unknown team")
	// ErrStopped is returned for requests arriving after Run has returned.
	ErrStopped = errors.New("championship engine stopped")
)

// Config holds the engine's timing. Zero values fall back to defaults.
type Config struct {
	AdvanceInterval   time.Duration // between round-advance ticks
	SeasonLength      time.Duration // from season start to settlement
	RestartDelay      time.Duration // between settlement and the next season
	NarrationInterval time.Duration // pacing between narrated match events
}

func (c Config) withDefaults() Config {
	if c.AdvanceInterval <= 0 {
		c.AdvanceInterval = 30 * time.Second
	}
	if c.SeasonLength <= 0 {
		c.SeasonLength = 5 * time.Minute
	}
	if c.RestartDelay <= 0 {
		c.RestartDelay = 5 * time.Second
	}
	return c
}

// Engine is the championship service. Create with New, then call Run on its
// own goroutine; PlaceBet and Standings are safe from any goroutine while
// Run is live.
type Engine struct {
	ledger   *ledger.Ledger
	announce notifier.Announcer
	rec      recorder.Recorder
	rng      *rand.Rand
	cfg      Config

	// Owned by the run loop.
	teams    map[string]*model.Team
	order    []string
	wins     map[string]int
	bets     map[int64]model.ChampionshipBet
	history  []model.MatchResult
	matchIdx int
	active   bool

	cmds chan func()
	done chan struct{}
}

// New creates an engine over the given roster (DefaultTeams when nil).
func New(l *ledger.Ledger, announce notifier.Announcer, rec recorder.Recorder, rng *rand.Rand, cfg Config, roster []model.Team) *Engine {
	if roster == nil {
		roster = DefaultTeams()
	}
	e := &Engine{
		ledger:   l,
		announce: announce,
		rec:      rec,
		rng:      rng,
		cfg:      cfg.withDefaults(),
		teams:    make(map[string]*model.Team, len(roster)),
		wins:     make(map[string]int),
		bets:     make(map[int64]model.ChampionshipBet),
		cmds:     make(chan func()),
		done:     make(chan struct{}),
	}
	for i := range roster {
		t := roster[i]
		e.teams[t.Name] = &t
		e.order = append(e.order, t.Name)
	}
	return e
}

// Run drives the engine until ctx is cancelled. Seasons restart forever; the
// context is the only external stop.
func (e *Engine) Run(ctx context.Context) {
	defer close(e.done)
	advance := time.NewTicker(e.cfg.AdvanceInterval)
	defer advance.Stop()

	e.startSeason()
	// The season timer alternates between the season length and the restart
	// delay, distinguished by the active flag.
	season := time.NewTimer(e.cfg.SeasonLength)
	defer season.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("[INFO] championship stopped")
			return
		case cmd := <-e.cmds:
			cmd()
		case <-advance.C:
			if e.active {
				e.safely("advance round", e.advanceRound)
			}
		case <-season.C:
			if e.active {
				e.safely("end season", e.endSeason)
				season.Reset(e.cfg.RestartDelay)
			} else {
				e.safely("start season", e.startSeason)
				season.Reset(e.cfg.SeasonLength)
			}
		}
	}
}

// PlaceBet wagers on a team to win the current season. The stake is debited
// immediately and the team's odds are captured with the bet; a repeated bet
// from the same user replaces the previous one. The request waits for the
// run loop, which can be mid-match narration; once Run has returned it fails
// with ErrStopped instead of blocking.
func (e *Engine) PlaceBet(userID int64, teamName string, amount int64) error {
	reply := make(chan error, 1)
	select {
	case e.cmds <- func() { reply <- e.placeBet(userID, teamName, amount) }:
		return <-reply
	case <-e.done:
		return ErrStopped
	}
}

// Standings returns a read-only snapshot ordered by points. After Run has
// returned it reports an empty, inactive table.
func (e *Engine) Standings() model.Standings {
	reply := make(chan model.Standings, 1)
	select {
	case e.cmds <- func() { reply <- e.standings() }:
		return <-reply
	case <-e.done:
		return model.Standings{}
	}
}

// safely runs one transition, keeping the loop alive if it panics.
func (e *Engine) safely(name string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[ERROR] championship %s: %v", name, r)
		}
	}()
	fn()
}

func (e *Engine) startSeason() {
	for _, t := range e.teams {
		t.Points = 0
		t.RecentForm = nil
	}
	e.matchIdx = 0
	e.active = true
	e.announce.Announce("🏆 A new championship has started! Place your bets!")
	log.Println("[INFO] championship season started")
}

// advanceRound plays the next pending match, or emits standings and wraps
// the round pointer when the roster is exhausted.
func (e *Engine) advanceRound() {
	if e.matchIdx >= len(e.order)-1 {
		e.matchIdx = 0
		e.announce.Announce(notifier.FormatStandings(e.standings()))
		return
	}

	team1 := e.order[e.matchIdx]
	team2 := e.order[e.matchIdx+1]
	e.matchIdx += 2

	e.announce.Announce(notifier.FormatMatchStart(team1, team2))
	out := Simulate(e.rng, team1, team2)

	goals1, goals2 := 0, 0
	for _, ev := range out.Events {
		if e.cfg.NarrationInterval > 0 {
			time.Sleep(e.cfg.NarrationInterval)
		}
		if ev.Goal {
			if ev.Team == team1 {
				goals1++
			} else {
				goals2++
			}
		}
		e.announce.Announce(notifier.FormatMatchEvent(out, ev, goals1, goals2))
	}

	e.applyResult(out)
}

// applyResult updates standings, form, and history for a finished match.
func (e *Engine) applyResult(out *model.MatchOutcome) {
	t1 := e.teams[out.Team1]
	t2 := e.teams[out.Team2]
	switch {
	case out.Goals1 > out.Goals2:
		t1.Points += 3
		t1.AddForm(true)
		t2.AddForm(false)
	case out.Goals2 > out.Goals1:
		t2.Points += 3
		t2.AddForm(true)
		t1.AddForm(false)
	default:
		t1.Points++
		t2.Points++
		t1.AddForm(true)
		t2.AddForm(true)
	}

	res := model.MatchResult{Team1: out.Team1, Team2: out.Team2, Score1: out.Goals1, Score2: out.Goals2}
	e.history = append(e.history, res)
	if len(e.history) > model.HistorySize {
		e.history = e.history[len(e.history)-model.HistorySize:]
	}

	e.announce.Announce(notifier.FormatMatchResult(res, t1.Points, t2.Points))
	if err := e.rec.RecordMatch(&recorder.MatchRecord{Team1: res.Team1, Team2: res.Team2, Score1: res.Score1, Score2: res.Score2}); err != nil {
		log.Printf("[ERROR] record match: %v", err)
	}
}

// endSeason crowns the champion, settles every live bet exactly once, and
// leaves the engine inactive until the restart delay elapses.
func (e *Engine) endSeason() {
	e.active = false

	champion := e.champion()
	e.wins[champion.Name]++

	betCount := len(e.bets)
	for userID, bet := range e.bets {
		won := bet.TeamName == champion.Name
		var payout int64
		if won {
			payout = int64(float64(bet.Amount) * bet.Multiplier)
			if err := e.ledger.Credit(userID, payout); err != nil {
				log.Printf("[ERROR] settle bet for %d: %v", userID, err)
			}
			e.announce.Announce(notifier.FormatBetWin(userID, payout))
		}
		if err := e.rec.RecordBet(&recorder.BetSettlement{
			UserID:     userID,
			TeamName:   bet.TeamName,
			Amount:     bet.Amount,
			Multiplier: bet.Multiplier,
			Won:        won,
			Payout:     payout,
		}); err != nil {
			log.Printf("[ERROR] record bet settlement: %v", err)
		}
	}
	e.bets = make(map[int64]model.ChampionshipBet)

	e.announce.Announce(notifier.FormatSeasonEnd(champion.Name, champion.Points, e.wins[champion.Name]))
	if err := e.rec.RecordSeason(&recorder.SeasonRecord{
		Champion: champion.Name,
		Points:   champion.Points,
		Titles:   e.wins[champion.Name],
		Bets:     betCount,
	}); err != nil {
		log.Printf("[ERROR] record season: %v", err)
	}
	log.Printf("[INFO] championship season ended: %s with %d points", champion.Name, champion.Points)
}

// champion returns the team with the most points, ties broken by roster
// order so repeated calls agree.
func (e *Engine) champion() *model.Team {
	best := e.teams[e.order[0]]
	for _, name := range e.order[1:] {
		if t := e.teams[name]; t.Points > best.Points {
			best = t
		}
	}
	return best
}

func (e *Engine) placeBet(userID int64, teamName string, amount int64) error {
	if !e.active {
		return ErrInactive
	}
	team, ok := e.teams[teamName]
	if !ok {
		return ErrUnknownTeam
	}
	if err := e.ledger.Debit(userID, amount); err != nil {
		return err
	}
	e.bets[userID] = model.ChampionshipBet{
		TeamName:   teamName,
		Amount:     amount,
		Multiplier: team.Odds,
	}
	return nil
}

func (e *Engine) standings() model.Standings {
	s := model.Standings{Active: e.active}
	for _, name := range e.order {
		t := e.teams[name]
		form := make([]bool, len(t.RecentForm))
		copy(form, t.RecentForm)
		s.Teams = append(s.Teams, model.TeamStanding{
			Name:          t.Name,
			Points:        t.Points,
			Odds:          t.Odds,
			Championships: e.wins[t.Name],
			RecentForm:    form,
		})
	}
	sort.SliceStable(s.Teams, func(i, j int) bool {
		return s.Teams[i].Points > s.Teams[j].Points
	})
	if n := len(e.history); n > 0 {
		start := n - 5
		if start < 0 {
			start = 0
		}
		s.Recent = append(s.Recent, e.history[start:]...)
	}
	return s
}
