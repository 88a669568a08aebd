package digest

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf16"

	"github.com/gfl/fantasy-sync/pkg/questions"
)

var medals = [3]string{"🥇", "🥈", "🥉"}

func medalFor(rank int) string {
	if rank >= 1 && rank <= 3 {
		return medals[rank-1]
	}
	return fmt.Sprintf("%d.", rank)
}

// buildReport renders the digest text. The layout mirrors the message the
// league has always received: festive header, breakdown for the top three
// gainers, monospaced leaderboard, footer link.
func buildReport(date string, players []playerSummary, attributions map[string][]correctPrediction, appURL string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "🏏 *GFL 2026 - Daily Update* 🏏\n📅 %s\n\n", date)

	var gainers []playerSummary
	for _, p := range players {
		if p.PointsGained > 0 {
			gainers = append(gainers, p)
		}
	}
	sort.SliceStable(gainers, func(i, j int) bool {
		return gainers[i].PointsGained > gainers[j].PointsGained
	})

	if len(gainers) > 0 {
		b.WriteString("🔥 *Today's Top Performers:*\n\n")

		top := gainers
		if len(top) > 3 {
			top = top[:3]
		}
		for _, p := range top {
			fmt.Fprintf(&b, "*%s* gained *+%d pts* 🚀\n", p.Username, p.PointsGained)

			for _, pred := range attributions[p.ID] {
				label, emoji := questions.Label(pred.QuestionType)
				fmt.Fprintf(&b, "  %s %s: _%s_ → *+%d pts* ✅\n", emoji, label, pred.Answer, pred.Points)
			}

			b.WriteString("\n")
		}
	}

	b.WriteString("🏆 *Leaderboard:*\n")
	b.WriteString("```\n")
	b.WriteString("Rank  Player                 Pts\n")
	b.WriteString("────  ─────────────────────  ───\n")

	for _, p := range players {
		change := ""
		if p.PointsGained > 0 {
			change = fmt.Sprintf(" (+%d)", p.PointsGained)
		}
		fmt.Fprintf(&b, "%s%s%d%s\n", padEnd(p.Medal, 6), padEnd(p.Username, 23), p.Points, change)
	}

	b.WriteString("```\n")
	fmt.Fprintf(&b, "\n_Play at %s_ ⚡", appURL)

	return b.String()
}

// padEnd pads to a width counted in UTF-16 code units, matching how the
// historical report was padded; a medal emoji therefore occupies two cells.
func padEnd(s string, width int) string {
	length := len(utf16.Encode([]rune(s)))
	if length >= width {
		return s
	}
	return s + strings.Repeat(" ", width-length)
}
