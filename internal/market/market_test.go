package market

import (
	"errors"
	"math/rand"
	"path/filepath"
	"testing"

	"CoinArena/internal/ledger"
)

func newTestMarket(t *testing.T) (*Market, *ledger.Ledger) {
	t.Helper()
	l, err := ledger.New(filepath.Join(t.TempDir(), "accounts.json"))
	if err != nil {
		t.Fatalf("new ledger: %v", err)
	}
	return New(l, rand.New(rand.NewSource(1))), l
}

func TestQuotes_SortedAndComplete(t *testing.T) {
	m, _ := newTestMarket(t)
	quotes := m.Quotes()
	if len(quotes) != 3 {
		t.Fatalf("expected 3 coins, got %d", len(quotes))
	}
	for i := 1; i < len(quotes); i++ {
		if quotes[i-1].Coin >= quotes[i].Coin {
			t.Errorf("quotes not sorted: %s before %s", quotes[i-1].Coin, quotes[i].Coin)
		}
	}
}

func TestDrift_BoundedStepWithFloor(t *testing.T) {
	m, _ := newTestMarket(t)
	for i := 0; i < 1000; i++ {
		before := make(map[string]float64)
		for _, q := range m.Quotes() {
			before[q.Coin] = q.Price
		}
		m.Drift()
		for _, q := range m.Quotes() {
			if q.Price < 0.01 {
				t.Fatalf("step %d: %s price %f below floor", i, q.Coin, q.Price)
			}
			prev := before[q.Coin]
			if q.Price > prev*1.0501 || (q.Price < prev*0.9499 && q.Price > 0.01) {
				t.Fatalf("step %d: %s moved %f -> %f, outside 5%%", i, q.Coin, prev, q.Price)
			}
			if q.Change < -5 || q.Change > 5 {
				t.Fatalf("step %d: %s change %f outside band", i, q.Coin, q.Change)
			}
		}
	}
}

func TestPrice_UnknownCoin(t *testing.T) {
	m, _ := newTestMarket(t)
	if _, err := m.Price("shibarena"); !errors.Is(err, ErrUnknownCoin) {
		t.Errorf("expected ErrUnknownCoin, got %v", err)
	}
}

func TestBuySell_Roundtrip(t *testing.T) {
	m, l := newTestMarket(t)
	if err := l.Credit(1, 10_000); err != nil {
		t.Fatal(err)
	}

	cost, err := m.Buy(1, "ETH", 2)
	if err != nil {
		t.Fatalf("buy: %v", err)
	}
	if cost != 5000 {
		t.Errorf("cost = %d, want 5000 at the starting eth price", cost)
	}
	acct := l.Get(1)
	if acct.Balance != 10_100-5000 {
		t.Errorf("wallet = %d, want %d", acct.Balance, 10_100-5000)
	}
	if got := acct.ItemCount("crypto_eth"); got != 2*Micros {
		t.Errorf("holdings = %d, want %d", got, 2*Micros)
	}

	value, err := m.Sell(1, "eth", 2)
	if err != nil {
		t.Fatalf("sell: %v", err)
	}
	if value != 5000 {
		t.Errorf("sale value = %d, want 5000 with an unmoved price", value)
	}
	acct = l.Get(1)
	if acct.Balance != 10_100 {
		t.Errorf("wallet after roundtrip = %d, want 10100", acct.Balance)
	}
	if got := acct.ItemCount("crypto_eth"); got != 0 {
		t.Errorf("holdings after full sale = %d, want 0", got)
	}
}

func TestBuy_Rejections(t *testing.T) {
	m, l := newTestMarket(t)
	if _, err := m.Buy(1, "btc", 1); !errors.Is(err, ledger.ErrInsufficientFunds) {
		t.Errorf("expected ErrInsufficientFunds, got %v", err)
	}
	if _, err := m.Buy(1, "btc", -1); !errors.Is(err, ledger.ErrInvalidAmount) {
		t.Errorf("expected ErrInvalidAmount, got %v", err)
	}
	if _, err := m.Buy(1, "gold", 1); !errors.Is(err, ErrUnknownCoin) {
		t.Errorf("expected ErrUnknownCoin, got %v", err)
	}
	if got := l.Get(1).Balance; got != 100 {
		t.Errorf("rejected buys changed the wallet: %d", got)
	}
}

func TestBuy_SubMicroAmountRejected(t *testing.T) {
	m, l := newTestMarket(t)
	if _, err := m.Buy(1, "btc", 0.0000001); !errors.Is(err, ledger.ErrInvalidAmount) {
		t.Errorf("expected ErrInvalidAmount for a sub-micro amount, got %v", err)
	}
	if got := l.Get(1).Balance; got != 100 {
		t.Errorf("rejected buy charged the wallet: %d", got)
	}
	if got := l.Get(1).ItemCount("crypto_btc"); got != 0 {
		t.Errorf("rejected buy granted holdings: %d", got)
	}
}

func TestSell_RequiresHoldings(t *testing.T) {
	m, _ := newTestMarket(t)
	if _, err := m.Sell(1, "doge", 10); !errors.Is(err, ErrInsufficientHoldings) {
		t.Errorf("expected ErrInsufficientHoldings, got %v", err)
	}
}

func TestBuy_TinyPurchaseCostsAtLeastOne(t *testing.T) {
	m, l := newTestMarket(t)
	cost, err := m.Buy(1, "doge", 1)
	if err != nil {
		t.Fatalf("buy: %v", err)
	}
	if cost != 1 {
		t.Errorf("one doge at 0.1 should cost the 1 minimum, got %d", cost)
	}
	if got := l.Get(1).ItemCount("crypto_doge"); got != Micros {
		t.Errorf("holdings = %d, want %d", got, Micros)
	}
}
