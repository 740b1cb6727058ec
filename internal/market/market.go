// Package market is the crypto paper-trading market: a handful of coins
// whose prices drift on a schedule, bought and sold against the ledger.
// Holdings live in the account inventory as millionths of a coin.
package market

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"sync"
	"time"

	"CoinArena/internal/ledger"
	"CoinArena/internal/model"
)

// Micros is the inventory unit: one millionth of a coin.
const Micros = 1_000_000

// ErrUnknownCoin is returned for coins not on the market.
var ErrUnknownCoin = errors.New("unknown coin")

// ErrInsufficientHoldings is returned when selling more than is held.
var ErrInsufficientHoldings = errors.New("insufficient holdings")

// Market holds the current coin prices.
type Market struct {
	ledger *ledger.Ledger
	rng    *rand.Rand

	mu     sync.Mutex
	quotes map[string]*model.CoinQuote
}

// New creates the market with its starting prices.
func New(l *ledger.Ledger, rng *rand.Rand) *Market {
	quotes := map[string]*model.CoinQuote{
		"btc":  {Coin: "btc", Price: 40000.0},
		"eth":  {Coin: "eth", Price: 2500.0},
		"doge": {Coin: "doge", Price: 0.1},
	}
	return &Market{ledger: l, rng: rng, quotes: quotes}
}

// Drift applies one random walk step of -5%..+5% to every coin, floored at
// 0.01. Called by the scheduler.
func (m *Market) Drift() {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now()
	for _, q := range m.quotes {
		change := m.rng.Float64()*10 - 5
		q.Price *= 1 + change/100
		if q.Price < 0.01 {
			q.Price = 0.01
		}
		q.Change = change
		q.UpdatedAt = now
	}
}

// Quotes returns the current prices, sorted by coin name.
func (m *Market) Quotes() []model.CoinQuote {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.CoinQuote, 0, len(m.quotes))
	for _, q := range m.quotes {
		out = append(out, *q)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Coin < out[j].Coin })
	return out
}

// Price returns the current price of one coin.
func (m *Market) Price(coin string) (float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	q, ok := m.quotes[strings.ToLower(coin)]
	if !ok {
		return 0, ErrUnknownCoin
	}
	return q.Price, nil
}

// Buy purchases amount coins at the current price, debiting the wallet and
// crediting inventory holdings.
func (m *Market) Buy(userID int64, coin string, amount float64) (cost int64, err error) {
	coin = strings.ToLower(coin)
	price, err := m.Price(coin)
	if err != nil {
		return 0, err
	}
	if amount <= 0 {
		return 0, ledger.ErrInvalidAmount
	}
	units := int(amount * Micros)
	if units <= 0 {
		// Below one millionth of a coin the buyer would pay and hold nothing.
		return 0, ledger.ErrInvalidAmount
	}
	cost = int64(amount * price)
	if cost <= 0 {
		cost = 1
	}

	acct := m.ledger.Get(userID)
	if acct.Balance < cost {
		return cost, ledger.ErrInsufficientFunds
	}
	acct.Balance -= cost
	acct.AddItem(holdingKey(coin), units)
	if err := m.ledger.Update(acct); err != nil {
		return cost, err
	}
	return cost, nil
}

// Sell converts amount coins back to cash at the current price.
func (m *Market) Sell(userID int64, coin string, amount float64) (value int64, err error) {
	coin = strings.ToLower(coin)
	price, err := m.Price(coin)
	if err != nil {
		return 0, err
	}
	if amount <= 0 {
		return 0, ledger.ErrInvalidAmount
	}
	units := int(amount * Micros)

	acct := m.ledger.Get(userID)
	if acct.ItemCount(holdingKey(coin)) < units {
		return 0, ErrInsufficientHoldings
	}
	value = int64(amount * price)
	acct.AddItem(holdingKey(coin), -units)
	acct.Balance += value
	if err := m.ledger.Update(acct); err != nil {
		return value, err
	}
	return value, nil
}

func holdingKey(coin string) string {
	return fmt.Sprintf("crypto_%s", coin)
}
