// Package cooldown enforces "no more than once per interval" semantics for
// gated actions. The gate itself is stateless: the last-performed timestamp
// lives in the account record, and callers arm it as part of the same update.
package cooldown

import (
	"fmt"
	"time"

	"CoinArena/internal/model"
)

// Intervals maps each gated action kind to its required wait.
var Intervals = map[model.ActionKind]time.Duration{
	model.ActionDaily:    24 * time.Hour,
	model.ActionWork:     time.Hour,
	model.ActionRob:      time.Hour,
	model.ActionFish:     30 * time.Minute,
	model.ActionDeposit:  time.Minute,
	model.ActionWithdraw: time.Minute,
	model.ActionStudy:    time.Hour,
}

// Error reports a rejected attempt and how long the caller must still wait.
type Error struct {
	Kind      model.ActionKind
	Remaining time.Duration
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s on cooldown, %s remaining", e.Kind, e.Remaining)
}

// Check reports whether an action last performed at last may run again at
// now, given the required interval. On rejection the remaining wait is
// rounded up for display and always positive.
func Check(last time.Time, interval time.Duration, now time.Time) (bool, time.Duration) {
	elapsed := now.Sub(last)
	if elapsed >= interval {
		return true, 0
	}
	remaining := (interval - elapsed).Round(time.Second)
	if remaining <= 0 {
		remaining = time.Second
	}
	return false, remaining
}

// Gate checks the account's timestamp for the given kind against its
// configured interval. On success it returns nil; the caller must set the
// timestamp to now in the same account update.
func Gate(acct *model.Account, kind model.ActionKind, now time.Time) error {
	interval, ok := Intervals[kind]
	if !ok {
		return fmt.Errorf("unknown action kind %q", kind)
	}
	if ok, remaining := Check(acct.LastAction(kind), interval, now); !ok {
		return &Error{Kind: kind, Remaining: remaining}
	}
	return nil
}
