package games

import (
	"errors"
	"math/rand"
	"path/filepath"
	"testing"

	"CoinArena/internal/ledger"
)

func newTestService(t *testing.T, seed int64) (*Service, *ledger.Ledger) {
	t.Helper()
	l, err := ledger.New(filepath.Join(t.TempDir(), "accounts.json"))
	if err != nil {
		t.Fatalf("new ledger: %v", err)
	}
	return NewService(l, rand.New(rand.NewSource(seed))), l
}

func TestSlots_PayoutMatchesReels(t *testing.T) {
	s, l := newTestService(t, 1)
	if err := l.Credit(1, 100_000); err != nil {
		t.Fatal(err)
	}

	sawTriple, sawPair, sawLoss := false, false, false
	for i := 0; i < 300; i++ {
		before := l.Get(1).Balance
		res, err := s.Slots(1, 10)
		if err != nil {
			t.Fatalf("spin %d: %v", i, err)
		}
		after := l.Get(1).Balance
		if after != before-10+res.Winnings {
			t.Fatalf("spin %d: balance %d -> %d with winnings %d", i, before, after, res.Winnings)
		}
		switch {
		case res.Reels[0] == res.Reels[1] && res.Reels[1] == res.Reels[2]:
			if res.Winnings != 50 {
				t.Errorf("triple paid %d, want 50", res.Winnings)
			}
			sawTriple = true
		case res.Reels[0] == res.Reels[1] || res.Reels[1] == res.Reels[2]:
			if res.Winnings != 20 {
				t.Errorf("pair paid %d, want 20", res.Winnings)
			}
			sawPair = true
		default:
			if res.Winnings != 0 {
				t.Errorf("loss paid %d", res.Winnings)
			}
			sawLoss = true
		}
	}
	if !sawTriple || !sawPair || !sawLoss {
		t.Errorf("300 seeded spins should hit every outcome: triple=%t pair=%t loss=%t",
			sawTriple, sawPair, sawLoss)
	}
}

func TestCoinflip_EvenMoney(t *testing.T) {
	s, l := newTestService(t, 2)
	if err := l.Credit(1, 10_000); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 50; i++ {
		before := l.Get(1).Balance
		res, err := s.Coinflip(1, "heads", 10)
		if err != nil {
			t.Fatalf("flip %d: %v", i, err)
		}
		want := before - 10
		if res.Won {
			want += 20
		}
		if got := l.Get(1).Balance; got != want {
			t.Fatalf("flip %d: balance = %d, want %d", i, got, want)
		}
		if res.Won != res.Heads {
			t.Errorf("flip %d: won=%t but heads=%t with a heads call", i, res.Won, res.Heads)
		}
	}
}

func TestCoinflip_Rejections(t *testing.T) {
	s, _ := newTestService(t, 1)
	if _, err := s.Coinflip(1, "edge", 10); !errors.Is(err, ErrInvalidChoice) {
		t.Errorf("expected ErrInvalidChoice, got %v", err)
	}
	if _, err := s.Coinflip(1, "heads", 0); !errors.Is(err, ErrMinBet) {
		t.Errorf("expected ErrMinBet, got %v", err)
	}
	if _, err := s.Coinflip(1, "heads", 1_000_000); !errors.Is(err, ledger.ErrInsufficientFunds) {
		t.Errorf("expected ErrInsufficientFunds, got %v", err)
	}
}

func TestDice_PaysFiveTimes(t *testing.T) {
	s, l := newTestService(t, 3)
	if err := l.Credit(1, 10_000); err != nil {
		t.Fatal(err)
	}

	if _, err := s.Dice(1, 7, 10); !errors.Is(err, ErrInvalidChoice) {
		t.Fatalf("expected ErrInvalidChoice for guess 7, got %v", err)
	}

	for i := 0; i < 100; i++ {
		before := l.Get(1).Balance
		res, err := s.Dice(1, 3, 10)
		if err != nil {
			t.Fatalf("roll %d: %v", i, err)
		}
		if res.Roll < 1 || res.Roll > 6 {
			t.Fatalf("roll %d out of range: %d", i, res.Roll)
		}
		want := before - 10
		if res.Won {
			want += 50
		}
		if got := l.Get(1).Balance; got != want {
			t.Fatalf("roll %d: balance = %d, want %d", i, got, want)
		}
	}
}

func TestRoulette_ColorsAndPayouts(t *testing.T) {
	s, l := newTestService(t, 4)
	if err := l.Credit(1, 100_000); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 200; i++ {
		before := l.Get(1).Balance
		res, err := s.Roulette(1, "red", 10)
		if err != nil {
			t.Fatalf("spin %d: %v", i, err)
		}
		switch {
		case res.Roll == 0:
			if res.Color != "green" {
				t.Errorf("roll 0 colored %s", res.Color)
			}
		case res.Roll%2 == 0:
			if res.Color != "red" {
				t.Errorf("even roll %d colored %s", res.Roll, res.Color)
			}
		default:
			if res.Color != "black" {
				t.Errorf("odd roll %d colored %s", res.Roll, res.Color)
			}
		}
		want := before - 10
		if res.Won {
			if res.Paid != 20 {
				t.Errorf("red win paid %d, want 20", res.Paid)
			}
			want += res.Paid
		}
		if got := l.Get(1).Balance; got != want {
			t.Fatalf("spin %d: balance = %d, want %d", i, got, want)
		}
	}
}

func TestHighLow_EqualLoses(t *testing.T) {
	s, l := newTestService(t, 5)
	if err := l.Credit(1, 100_000); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 300; i++ {
		res, err := s.HighLow(1, "high", 10)
		if err != nil {
			t.Fatalf("draw %d: %v", i, err)
		}
		if res.First == res.Second && res.Won {
			t.Errorf("draw %d: equal numbers %d must lose", i, res.First)
		}
		if res.Won != (res.Second > res.First) {
			t.Errorf("draw %d: won=%t for %d then %d on a high call", i, res.Won, res.First, res.Second)
		}
	}
}

func TestScratch_PrizeMatchesLines(t *testing.T) {
	s, l := newTestService(t, 6)
	if err := l.Credit(1, 1_000_000); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 500; i++ {
		before := l.Get(1).Balance
		res, err := s.Scratch(1)
		if err != nil {
			t.Fatalf("ticket %d: %v", i, err)
		}
		var want int64
		switch {
		case res.Lines >= 4:
			want = 1000
		default:
			want = scratchPrizes[res.Lines]
		}
		if res.Prize != want {
			t.Errorf("ticket %d: %d lines paid %d, want %d", i, res.Lines, res.Prize, want)
		}
		if got := l.Get(1).Balance; got != before-ScratchCost+res.Prize {
			t.Fatalf("ticket %d: balance = %d, want %d", i, got, before-ScratchCost+res.Prize)
		}
	}
}

func TestFailedDebit_NeverPays(t *testing.T) {
	s, l := newTestService(t, 7)
	acct := l.Get(1)
	acct.Balance = 0
	if err := l.Update(acct); err != nil {
		t.Fatal(err)
	}

	if _, err := s.Slots(1, 10); !errors.Is(err, ledger.ErrInsufficientFunds) {
		t.Errorf("slots: expected ErrInsufficientFunds, got %v", err)
	}
	if _, err := s.Scratch(1); !errors.Is(err, ledger.ErrInsufficientFunds) {
		t.Errorf("scratch: expected ErrInsufficientFunds, got %v", err)
	}
	if got := l.Get(1).Balance; got != 0 {
		t.Errorf("rejected games changed the wallet: %d", got)
	}
}
