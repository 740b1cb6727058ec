package model

import "time"

// CoinQuote is the current paper-market price of one coin.
type CoinQuote struct {
	Coin      string
	Price     float64
	Change    float64 // percent change applied by the last drift
	UpdatedAt time.Time
}
