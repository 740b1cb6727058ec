package scheduler

import (
	"context"
	"fmt"
	"log"
	"strings"

	"CoinArena/internal/championship"
	"CoinArena/internal/jackpot"
	"CoinArena/internal/ledger"
	"CoinArena/internal/market"
	"CoinArena/internal/notifier"

	"github.com/robfig/cron/v3"
)

// Scheduler manages the recurring background tasks that sit outside the
// championship's own loop: market price drift, periodic standings posts, and
// the daily economy report.
type Scheduler struct {
	Cron         *cron.Cron
	Ledger       *ledger.Ledger
	Market       *market.Market
	Jackpot      *jackpot.Pool
	Championship *championship.Engine
	Announcer    notifier.Announcer
	Ctx          context.Context
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, l *ledger.Ledger, m *market.Market, jp *jackpot.Pool, ch *championship.Engine, ann notifier.Announcer) *Scheduler {
	return &Scheduler{
		Cron:         cron.New(cron.WithSeconds()),
		Ledger:       l,
		Market:       m,
		Jackpot:      jp,
		Championship: ch,
		Announcer:    ann,
		Ctx:          ctx,
	}
}

// RegisterAll registers the market-drift, standings, and stats tasks.
func (s *Scheduler) RegisterAll(marketCron, standingsCron, statsCron string) error {
	if _, err := s.Cron.AddFunc(marketCron, s.marketTask); err != nil {
		return fmt.Errorf("register market task: %w", err)
	}
	if _, err := s.Cron.AddFunc(standingsCron, s.standingsTask); err != nil {
		return fmt.Errorf("register standings task: %w", err)
	}
	if _, err := s.Cron.AddFunc(statsCron, s.statsTask); err != nil {
		return fmt.Errorf("register stats task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

func (s *Scheduler) marketTask() {
	s.Market.Drift()
	log.Println("[INFO] market prices drifted")
}

func (s *Scheduler) standingsTask() {
	standings := s.Championship.Standings()
	if !standings.Active {
		return
	}
	s.Announcer.Announce(notifier.FormatStandings(standings))
}

func (s *Scheduler) statsTask() {
	accounts, supply := s.Ledger.Stats()
	log.Printf("[INFO] economy stats: %d accounts, %s total supply", accounts, notifier.Money(supply))
}

// HandleCommand serves the read-only display commands received over chat.
func (s *Scheduler) HandleCommand(userID int64, command string) string {
	switch strings.ToLower(command) {
	case "/jackpot":
		return notifier.FormatJackpotStatus(s.Jackpot.View())
	case "/standings", "/championship":
		return notifier.FormatStandings(s.Championship.Standings())
	case "/crypto":
		var b strings.Builder
		b.WriteString("💰 <b>Crypto Prices</b>\n\n")
		for _, q := range s.Market.Quotes() {
			arrow := "📈"
			if q.Change < 0 {
				arrow = "📉"
			}
			b.WriteString(fmt.Sprintf("%s: $%.2f %s %+.2f%%\n", strings.ToUpper(q.Coin), q.Price, arrow, q.Change))
		}
		return b.String()
	case "/balance":
		acct := s.Ledger.Get(userID)
		return fmt.Sprintf("💰 Wallet: %s | Bank: %s (cap %s)",
			notifier.Money(acct.Balance), notifier.Money(acct.BankBalance), notifier.Money(acct.MaxBankBalance()))
	default:
		return "Available commands:\n• /jackpot\n• /standings\n• /crypto\n• /balance"
	}
}
