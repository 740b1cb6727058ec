// Package games implements the stateless betting mini-games. Each game is a
// single random draw against the house: one atomic debit of the stake, one
// credit of any winnings. No game holds state between calls.
package games

import (
	"errors"
	"math/rand"
	"strings"

	"CoinArena/internal/ledger"
)

var (
	ErrMinBet        = errors.New("minimum bet is 1")
	ErrInvalidChoice = errors.New("invalid choice")
)

// ScratchCost is the fixed price of a scratch ticket.
const ScratchCost = 50

var slotReels = []string{"🍎", "🍋", "🍒", "💎", "7️⃣"}

var scratchSymbols = []string{"💎", "🍀", "🎰", "💰", "🎲"}

// Service runs the mini-games against the ledger.
type Service struct {
	ledger *ledger.Ledger
	rng    *rand.Rand
}

// NewService creates the games service with the given random source.
func NewService(l *ledger.Ledger, rng *rand.Rand) *Service {
	return &Service{ledger: l, rng: rng}
}

// SlotsResult is one slot machine spin.
type SlotsResult struct {
	Reels    [3]string
	Winnings int64 // gross payout, 0 on a loss
}

// Slots spins three reels: a triple pays 5x the bet, a pair 2x.
func (s *Service) Slots(userID int64, bet int64) (SlotsResult, error) {
	if bet < 1 {
		return SlotsResult{}, ErrMinBet
	}
	if err := s.ledger.Debit(userID, bet); err != nil {
		return SlotsResult{}, err
	}

	a, b, c := s.rng.Intn(len(slotReels)), s.rng.Intn(len(slotReels)), s.rng.Intn(len(slotReels))
	res := SlotsResult{Reels: [3]string{slotReels[a], slotReels[b], slotReels[c]}}
	switch {
	case a == b && b == c:
		res.Winnings = bet * 5
	case a == b || b == c:
		res.Winnings = bet * 2
	}
	if res.Winnings > 0 {
		if err := s.ledger.Credit(userID, res.Winnings); err != nil {
			return res, err
		}
	}
	return res, nil
}

// CoinflipResult is one coin flip.
type CoinflipResult struct {
	Heads bool
	Won   bool
}

// Coinflip pays even money on a correct heads/tails call.
func (s *Service) Coinflip(userID int64, choice string, bet int64) (CoinflipResult, error) {
	choice = strings.ToLower(choice)
	if choice != "heads" && choice != "tails" {
		return CoinflipResult{}, ErrInvalidChoice
	}
	if bet < 1 {
		return CoinflipResult{}, ErrMinBet
	}
	if err := s.ledger.Debit(userID, bet); err != nil {
		return CoinflipResult{}, err
	}

	heads := s.rng.Intn(2) == 0
	res := CoinflipResult{Heads: heads, Won: heads == (choice == "heads")}
	if res.Won {
		if err := s.ledger.Credit(userID, bet*2); err != nil {
			return res, err
		}
	}
	return res, nil
}

// DiceResult is one dice roll against the house.
type DiceResult struct {
	Roll int
	Won  bool
}

// Dice pays 5x the bet on a correct 1-6 guess.
func (s *Service) Dice(userID int64, guess int, bet int64) (DiceResult, error) {
	if guess < 1 || guess > 6 {
		return DiceResult{}, ErrInvalidChoice
	}
	if bet < 1 {
		return DiceResult{}, ErrMinBet
	}
	if err := s.ledger.Debit(userID, bet); err != nil {
		return DiceResult{}, err
	}

	roll := 1 + s.rng.Intn(6)
	res := DiceResult{Roll: roll, Won: roll == guess}
	if res.Won {
		if err := s.ledger.Credit(userID, bet*5); err != nil {
			return res, err
		}
	}
	return res, nil
}

// RouletteResult is one roulette spin.
type RouletteResult struct {
	Roll  int
	Color string
	Won   bool
	Paid  int64
}

// Roulette spins 0-36: zero is green and pays 14x, otherwise even rolls are
// red and odd rolls are black, both paying 2x.
func (s *Service) Roulette(userID int64, choice string, bet int64) (RouletteResult, error) {
	choice = strings.ToLower(choice)
	if choice != "red" && choice != "black" && choice != "green" {
		return RouletteResult{}, ErrInvalidChoice
	}
	if bet < 1 {
		return RouletteResult{}, ErrMinBet
	}
	if err := s.ledger.Debit(userID, bet); err != nil {
		return RouletteResult{}, err
	}

	roll := s.rng.Intn(37)
	color := "black"
	if roll == 0 {
		color = "green"
	} else if roll%2 == 0 {
		color = "red"
	}
	res := RouletteResult{Roll: roll, Color: color, Won: choice == color}
	if res.Won {
		multiplier := int64(2)
		if color == "green" {
			multiplier = 14
		}
		res.Paid = bet * multiplier
		if err := s.ledger.Credit(userID, res.Paid); err != nil {
			return res, err
		}
	}
	return res, nil
}

// HighLowResult is one high/low draw.
type HighLowResult struct {
	First  int
	Second int
	Won    bool
}

// HighLow draws two numbers in 1-100 and pays even money on a correct
// higher/lower call. Equal draws lose.
func (s *Service) HighLow(userID int64, choice string, bet int64) (HighLowResult, error) {
	choice = strings.ToLower(choice)
	if choice != "high" && choice != "low" {
		return HighLowResult{}, ErrInvalidChoice
	}
	if bet < 1 {
		return HighLowResult{}, ErrMinBet
	}
	if err := s.ledger.Debit(userID, bet); err != nil {
		return HighLowResult{}, err
	}

	first := 1 + s.rng.Intn(100)
	second := 1 + s.rng.Intn(100)
	won := (choice == "high" && second > first) || (choice == "low" && second < first)
	res := HighLowResult{First: first, Second: second, Won: won}
	if won {
		if err := s.ledger.Credit(userID, bet*2); err != nil {
			return res, err
		}
	}
	return res, nil
}

// ScratchResult is one scratch ticket.
type ScratchResult struct {
	Grid  [3][3]string
	Lines int
	Prize int64
}

var scratchPrizes = []int64{0, 100, 250, 500}

// Scratch buys a fixed-price 3x3 ticket and pays by matched lines (rows,
// columns, diagonals): 100/250/500, capped at 1000 for four or more.
func (s *Service) Scratch(userID int64) (ScratchResult, error) {
	if err := s.ledger.Debit(userID, ScratchCost); err != nil {
		return ScratchResult{}, err
	}

	var res ScratchResult
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			res.Grid[i][j] = scratchSymbols[s.rng.Intn(len(scratchSymbols))]
		}
	}
	g := res.Grid
	for i := 0; i < 3; i++ {
		if g[i][0] == g[i][1] && g[i][1] == g[i][2] {
			res.Lines++
		}
		if g[0][i] == g[1][i] && g[1][i] == g[2][i] {
			res.Lines++
		}
	}
	if g[0][0] == g[1][1] && g[1][1] == g[2][2] {
		res.Lines++
	}
	if g[0][2] == g[1][1] && g[1][1] == g[2][0] {
		res.Lines++
	}

	if res.Lines < len(scratchPrizes) {
		res.Prize = scratchPrizes[res.Lines]
	} else {
		res.Prize = 1000
	}
	if res.Prize > 0 {
		if err := s.ledger.Credit(userID, res.Prize); err != nil {
			return res, err
		}
	}
	return res, nil
}
