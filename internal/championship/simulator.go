package championship

import (
	"fmt"
	"math/rand"
	"strings"

	"CoinArena/internal/model"
)

// MatchTicks is the number of simulated "minutes" per match.
const MatchTicks = 5

// matchEvents are the narration templates. Only the first one scores.
var matchEvents = []string{
	"⚽ %s scores a goal!",
	"🏃 Great run by %s!",
	"🔴 Red card shown to %s!",
	"🟡 Yellow card to %s",
	"🎯 Penalty awarded to %s!",
	"🥅 Amazing save by %s's goalkeeper!",
	"📺 VAR check in progress...",
	"🔄 Substitution for %s",
	"🚑 Injury concern for %s",
	"🎯 Free kick in dangerous position for %s",
}

// Simulate plays one match between two teams. Each tick attributes one event
// to a uniformly chosen side; goal events increment that side's tally. The
// function has no side effects: a seeded source reproduces the same outcome.
func Simulate(rng *rand.Rand, team1, team2 string) *model.MatchOutcome {
	out := &model.MatchOutcome{Team1: team1, Team2: team2}
	for tick := 1; tick <= MatchTicks; tick++ {
		team := team1
		if rng.Intn(2) == 1 {
			team = team2
		}
		idx := rng.Intn(len(matchEvents))
		// Some templates are neutral and name no team.
		text := matchEvents[idx]
		if strings.Contains(text, "%s") {
			text = fmt.Sprintf(text, team)
		}
		ev := model.MatchEvent{
			Minute: tick * 18,
			Text:   text,
			Goal:   idx == 0,
			Team:   team,
		}
		if ev.Goal {
			if team == team1 {
				out.Goals1++
			} else {
				out.Goals2++
			}
		}
		out.Events = append(out.Events, ev)
	}
	return out
}
