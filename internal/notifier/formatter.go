package notifier

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"CoinArena/internal/model"
)

// Money renders an integer currency amount with comma grouping.
func Money(amount int64) string {
	return "$" + humanize.Comma(amount)
}

// FormatJackpotStatus formats the jackpot pool for display.
func FormatJackpotStatus(v model.JackpotView) string {
	var b strings.Builder
	b.WriteString("🎰 <b>Current Jackpot</b>\n\n")
	b.WriteString(fmt.Sprintf("Prize pool: %s\n", Money(v.Total)))
	b.WriteString(fmt.Sprintf("Entries: %d\n", v.Participants))
	if v.Armed {
		b.WriteString("Drawing soon!\n")
	} else {
		b.WriteString("Join to start the countdown.\n")
	}
	return b.String()
}

// FormatJackpotWin formats a jackpot settlement announcement.
func FormatJackpotWin(winnerID int64, total int64) string {
	return fmt.Sprintf("🎉 User %d won the jackpot of %s!", winnerID, Money(total))
}

// FormatMatchStart announces a match kickoff.
func FormatMatchStart(team1, team2 string) string {
	return fmt.Sprintf("⚽ <b>Match Starting:</b> %s vs %s", team1, team2)
}

// FormatMatchEvent formats one narrated match moment with a running score.
func FormatMatchEvent(out *model.MatchOutcome, ev model.MatchEvent, goals1, goals2 int) string {
	return fmt.Sprintf("⚽ %s %d - %d %s\n%d' %s", out.Team1, goals1, goals2, out.Team2, ev.Minute, ev.Text)
}

// FormatMatchResult formats a finished match with updated points totals.
func FormatMatchResult(res model.MatchResult, points1, points2 int) string {
	var verdict string
	switch {
	case res.Score1 > res.Score2:
		verdict = res.Team1 + " wins!"
	case res.Score2 > res.Score1:
		verdict = res.Team2 + " wins!"
	default:
		verdict = "It's a draw!"
	}
	var b strings.Builder
	b.WriteString("⚽ <b>Game Ended!</b>\n")
	b.WriteString(fmt.Sprintf("%s %d - %d %s\n%s\n", res.Team1, res.Score1, res.Score2, res.Team2, verdict))
	b.WriteString(fmt.Sprintf("%s: %d pts | %s: %d pts", res.Team1, points1, res.Team2, points2))
	return b.String()
}

// FormatStandings formats the championship table ordered by points.
func FormatStandings(s model.Standings) string {
	if !s.Active {
		return "🏆 No championship is currently active! One will start soon."
	}
	var b strings.Builder
	b.WriteString("📊 <b>Championship Standings</b>\n\n")
	for _, t := range s.Teams {
		b.WriteString(fmt.Sprintf("<b>%s</b> — %d pts | odds %.2f | titles %d | form %s\n",
			t.Name, t.Points, t.Odds, t.Championships, formatForm(t.RecentForm)))
	}
	if len(s.Recent) > 0 {
		b.WriteString("\nRecent results:\n")
		for _, m := range s.Recent {
			b.WriteString(fmt.Sprintf("%s %d-%d %s\n", m.Team1, m.Score1, m.Score2, m.Team2))
		}
	}
	return b.String()
}

// FormatSeasonEnd formats the champion announcement.
func FormatSeasonEnd(champion string, points, titles int) string {
	return fmt.Sprintf("🏆 <b>Championship Ended!</b>\n%s has won with %d points!\nTotal championships: %d",
		champion, points, titles)
}

// FormatBetWin formats a settled winning bet.
func FormatBetWin(userID int64, winnings int64) string {
	return fmt.Sprintf("🎉 User %d won %s from their championship bet!", userID, Money(winnings))
}

func formatForm(form []bool) string {
	if len(form) == 0 {
		return "—"
	}
	var b strings.Builder
	for _, won := range form {
		if won {
			b.WriteString("✅")
		} else {
			b.WriteString("❌")
		}
	}
	return b.String()
}
