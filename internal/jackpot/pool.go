// Package jackpot runs the pooled jackpot: contributions accumulate until a
// one-shot settlement timer, armed by the first contribution, pays the whole
// pool to one uniformly chosen participant.
package jackpot

import (
	"log"
	"math/rand"
	"sync"
	"time"

	"CoinArena/internal/ledger"
	"CoinArena/internal/model"
	"CoinArena/internal/notifier"
	"CoinArena/internal/recorder"
)

// Pool is the process-wide jackpot. Contributions are weighted implicitly: a
// user who contributed k times holds k of the N entries.
type Pool struct {
	ledger   *ledger.Ledger
	announce notifier.Announcer
	rec      recorder.Recorder
	rng      *rand.Rand
	delay    time.Duration

	mu           sync.Mutex
	total        int64
	participants []int64
	armed        bool
	timer        *time.Timer
}

// New creates a pool that settles delay after the first contribution of each
// cycle.
func New(l *ledger.Ledger, announce notifier.Announcer, rec recorder.Recorder, rng *rand.Rand, delay time.Duration) *Pool {
	return &Pool{ledger: l, announce: announce, rec: rec, rng: rng, delay: delay}
}

// Contribute debits the user and adds their stake to the pool. The first
// contribution arms the settlement timer; later ones never extend the window.
func (p *Pool) Contribute(userID int64, amount int64) error {
	if err := p.ledger.Debit(userID, amount); err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.total += amount
	p.participants = append(p.participants, userID)
	if !p.armed {
		p.armed = true
		p.timer = time.AfterFunc(p.delay, p.Settle)
	}
	return nil
}

// Settle pays the accumulated pool to one uniformly chosen participant and
// resets. Runs at most once per arming: a fire on a disarmed or empty pool is
// a no-op.
func (p *Pool) Settle() {
	p.mu.Lock()
	if !p.armed || len(p.participants) == 0 {
		p.armed = false
		p.mu.Unlock()
		return
	}
	winnerID := p.participants[p.rng.Intn(len(p.participants))]
	total := p.total
	entries := len(p.participants)
	p.total = 0
	p.participants = nil
	p.armed = false
	p.timer = nil
	p.mu.Unlock()

	if err := p.ledger.Credit(winnerID, total); err != nil {
		log.Printf("[ERROR] jackpot payout to %d: %v", winnerID, err)
	}
	p.announce.Announce(notifier.FormatJackpotWin(winnerID, total))
	if err := p.rec.RecordJackpot(&recorder.JackpotSettlement{WinnerID: winnerID, Total: total, Entries: entries}); err != nil {
		log.Printf("[ERROR] record jackpot settlement: %v", err)
	}
	log.Printf("[INFO] jackpot settled: %d entries, %d paid to %d", entries, total, winnerID)
}

// View returns a read-only snapshot for display.
func (p *Pool) View() model.JackpotView {
	p.mu.Lock()
	defer p.mu.Unlock()
	return model.JackpotView{
		Total:        p.total,
		Participants: len(p.participants),
		Armed:        p.armed,
	}
}

// Stop cancels a pending settlement timer. Used on shutdown only; any
// accumulated pool is intentionally abandoned, matching the no-refund policy.
func (p *Pool) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
	p.armed = false
}
