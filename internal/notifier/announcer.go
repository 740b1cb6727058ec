package notifier

import "log"

// Announcer is the outcome sink used by the jackpot, the championship, and
// the scheduler. The concrete transport is the caller's concern.
type Announcer interface {
	Announce(text string)
}

// LogAnnouncer writes announcements to the process log. It is the fallback
// when Telegram is not configured, and the default in tests.
type LogAnnouncer struct{}

func NewLogAnnouncer() *LogAnnouncer { return &LogAnnouncer{} }

func (a *LogAnnouncer) Announce(text string) {
	log.Printf("[ANNOUNCE] %s", text)
}
