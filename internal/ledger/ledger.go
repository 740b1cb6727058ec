// Package ledger owns the durable per-user account table. Every mutation
// rewrites the whole table to disk; simple, and good enough for a chat
// economy, at the cost of write latency growing with the account count.
package ledger

import (
	"errors"
	"sync"

	"CoinArena/internal/model"
)

// ErrInsufficientFunds is returned when a debit would drive a wallet negative.
var ErrInsufficientFunds = errors.New("insufficient funds")

// ErrInvalidAmount is returned for zero or negative amounts.
var ErrInvalidAmount = errors.New("amount must be positive")

// Ledger is the concurrency-safe account table with whole-table persistence.
type Ledger struct {
	mu       sync.Mutex
	accounts map[int64]*model.Account
	filePath string
}

// New loads (or initializes) the account table from disk.
func New(filePath string) (*Ledger, error) {
	table, err := LoadTable(filePath)
	if err != nil {
		return nil, err
	}
	return &Ledger{accounts: table, filePath: filePath}, nil
}

// Get returns a copy of the user's account, creating a default-valued one if
// absent. It never fails; a newly created account is persisted on its first
// Update, not here.
func (l *Ledger) Get(userID int64) *model.Account {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.locked(userID).Clone()
}

// Update replaces the stored records for the given accounts and persists the
// entire table in one write before returning. Related accounts passed
// together commit atomically: the table never holds one side of a
// two-account mutation. A persistence error is surfaced to the caller; the
// in-memory records still carry the update as last-known state.
func (l *Ledger) Update(accts ...*model.Account) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, acct := range accts {
		l.accounts[acct.UserID] = acct.Clone()
	}
	return l.save()
}

// Debit atomically verifies sufficiency and subtracts amount from the user's
// wallet in one step under the ledger lock.
func (l *Ledger) Debit(userID int64, amount int64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	acct := l.locked(userID)
	if acct.Balance < amount {
		return ErrInsufficientFunds
	}
	acct.Balance -= amount
	return l.save()
}

// Credit adds amount to the user's wallet. It never fails on funds.
func (l *Ledger) Credit(userID int64, amount int64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.locked(userID).Balance += amount
	return l.save()
}

// Transfer atomically moves amount from one wallet to another.
func (l *Ledger) Transfer(fromID, toID int64, amount int64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	from := l.locked(fromID)
	if from.Balance < amount {
		return ErrInsufficientFunds
	}
	from.Balance -= amount
	l.locked(toID).Balance += amount
	return l.save()
}

// Stats returns the account count and the total money supply (wallets plus
// banks) for the periodic economy report.
func (l *Ledger) Stats() (accounts int, supply int64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, a := range l.accounts {
		supply += a.Balance + a.BankBalance
	}
	return len(l.accounts), supply
}

// locked returns the live record for userID, creating it if absent. Callers
// must hold l.mu.
func (l *Ledger) locked(userID int64) *model.Account {
	acct, ok := l.accounts[userID]
	if !ok {
		acct = model.NewAccount(userID)
		l.accounts[userID] = acct
	}
	return acct
}

func (l *Ledger) save() error {
	return SaveTable(l.filePath, l.accounts)
}
