package championship

import "CoinArena/internal/model"

// DefaultTeams is the league roster with its fixed odds. Odds never change
// during a season; bets capture them at placement.
func DefaultTeams() []model.Team {
	return []model.Team{
		{Name: "Red Dragons", Odds: 1.5},
		{Name: "Blue Knights", Odds: 1.8},
		{Name: "Golden Eagles", Odds: 2.0},
		{Name: "Shadow Wolves", Odds: 2.1},
		{Name: "Phoenix Rise", Odds: 2.2},
		{Name: "Thunder Lions", Odds: 2.3},
		{Name: "Silver Hawks", Odds: 2.4},
		{Name: "Crystal Tigers", Odds: 2.7},
		{Name: "Star Raiders", Odds: 3.0},
		{Name: "Storm Giants", Odds: 3.2},
		{Name: "Night Owls", Odds: 3.5},
		{Name: "Fire Foxes", Odds: 3.8},
	}
}
