package model

import "time"

// ActionKind identifies a cooldown-gated action.
type ActionKind string

const (
	ActionDaily    ActionKind = "daily"
	ActionWork     ActionKind = "work"
	ActionRob      ActionKind = "rob"
	ActionFish     ActionKind = "fish"
	ActionDeposit  ActionKind = "deposit"
	ActionWithdraw ActionKind = "withdraw"
	ActionStudy    ActionKind = "study"
)

// StartingBalance is granted to every freshly created account.
const StartingBalance = 100

// BankCapacityPerLevel is the bank storage gained per bank level.
const BankCapacityPerLevel = 100000

// Account is one user's complete economy record.
type Account struct {
	UserID          int64                     `json:"user_id"`
	Balance         int64                     `json:"balance"`
	BankBalance     int64                     `json:"bank_balance"`
	BankLevel       int                       `json:"bank_level"`
	Inventory       map[string]int            `json:"inventory"`
	LastActions     map[ActionKind]time.Time  `json:"last_actions"`
	Passive         bool                      `json:"passive"`
	PassiveUntil    time.Time                 `json:"passive_until"`
	LuckCharmExpiry time.Time                 `json:"luck_charm_expiry"`
	XPBoostExpiry   time.Time                 `json:"xp_boost_expiry"`
	CurrentJob      string                    `json:"current_job"`
	Education       string                    `json:"education"`
	StudyProgress   int                       `json:"study_progress"`
}

// NewAccount returns an account with default values for the given user.
func NewAccount(userID int64) *Account {
	return &Account{
		UserID:      userID,
		Balance:     StartingBalance,
		BankLevel:   1,
		Inventory:   make(map[string]int),
		LastActions: make(map[ActionKind]time.Time),
	}
}

// MaxBankBalance is the bank storage cap at the current bank level.
func (a *Account) MaxBankBalance() int64 {
	return int64(a.BankLevel) * BankCapacityPerLevel
}

// LastAction returns the last time the given action was performed; the zero
// time if never.
func (a *Account) LastAction(kind ActionKind) time.Time {
	return a.LastActions[kind]
}

// SetLastAction records when the given action was performed.
func (a *Account) SetLastAction(kind ActionKind, t time.Time) {
	if a.LastActions == nil {
		a.LastActions = make(map[ActionKind]time.Time)
	}
	a.LastActions[kind] = t
}

// ItemCount returns the inventory quantity for an item id.
func (a *Account) ItemCount(item string) int {
	return a.Inventory[item]
}

// AddItem adjusts the inventory quantity for an item id, deleting the entry
// when it reaches zero.
func (a *Account) AddItem(item string, delta int) {
	if a.Inventory == nil {
		a.Inventory = make(map[string]int)
	}
	a.Inventory[item] += delta
	if a.Inventory[item] <= 0 {
		delete(a.Inventory, item)
	}
}

// Clone returns a deep copy so callers can mutate freely before Update.
func (a *Account) Clone() *Account {
	c := *a
	c.Inventory = make(map[string]int, len(a.Inventory))
	for k, v := range a.Inventory {
		c.Inventory[k] = v
	}
	c.LastActions = make(map[ActionKind]time.Time, len(a.LastActions))
	for k, v := range a.LastActions {
		c.LastActions[k] = v
	}
	return &c
}
