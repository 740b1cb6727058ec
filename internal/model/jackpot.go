package model

// JackpotView is a read-only snapshot of the jackpot pool for display.
type JackpotView struct {
	Total        int64
	Participants int
	Armed        bool
}
