package digest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gfl/fantasy-sync/pkg/questions"
)

func TestMedalFor(t *testing.T) {
	assert.Equal(t, "🥇", medalFor(1))
	assert.Equal(t, "🥈", medalFor(2))
	assert.Equal(t, "🥉", medalFor(3))
	assert.Equal(t, "4.", medalFor(4))
	assert.Equal(t, "11.", medalFor(11))
}

func TestPadEnd(t *testing.T) {
	assert.Equal(t, "bob   ", padEnd("bob", 6))
	// An emoji counts as two cells, like the historical report padded it.
	assert.Equal(t, "🥇    ", padEnd("🥇", 6))
	assert.Equal(t, "4.    ", padEnd("4.", 6))
	assert.Equal(t, "toolongname", padEnd("toolongname", 6))
}

func TestBuildReport(t *testing.T) {
	players := []playerSummary{
		{ID: "u1", Username: "bob", Points: 15, PointsGained: 5, Rank: 1, Medal: "🥇"},
		{ID: "u2", Username: "ali", Points: 5, PointsGained: 0, Rank: 2, Medal: "🥈"},
	}
	attributions := map[string][]correctPrediction{
		"u1": {{QuestionType: questions.TotalScore, Answer: "India — 100-110", Points: 5}},
	}

	got := buildReport("Saturday, 7 February 2026", players, attributions, "gfl2k25.vercel.app")

	want := strings.Join([]string{
		"🏏 *GFL 2026 - Daily Update* 🏏",
		"📅 Saturday, 7 February 2026",
		"",
		"🔥 *Today's Top Performers:*",
		"",
		"*bob* gained *+5 pts* 🚀",
		"  📊 First Innings Score: _India — 100-110_ → *+5 pts* ✅",
		"",
		"🏆 *Leaderboard:*",
		"```",
		"Rank  Player                 Pts",
		"────  ─────────────────────  ───",
		"🥇    bob                    15 (+5)",
		"🥈    ali                    5",
		"```",
		"",
		"_Play at gfl2k25.vercel.app_ ⚡",
	}, "\n")

	assert.Equal(t, want, got)
}

func TestBuildReportSkipsPerformersWhenNobodyGained(t *testing.T) {
	players := []playerSummary{
		{ID: "u1", Username: "bob", Points: 15, Rank: 1, Medal: "🥇"},
	}

	got := buildReport("Sunday, 8 February 2026", players, nil, "gfl2k25.vercel.app")

	assert.NotContains(t, got, "Top Performers")
	assert.Contains(t, got, "🏆 *Leaderboard:*")
}

func TestBuildReportLimitsBreakdownToTopThreeGainers(t *testing.T) {
	players := []playerSummary{
		{ID: "u1", Username: "a", Points: 10, PointsGained: 1, Rank: 1, Medal: "🥇"},
		{ID: "u2", Username: "b", Points: 9, PointsGained: 2, Rank: 2, Medal: "🥈"},
		{ID: "u3", Username: "c", Points: 8, PointsGained: 3, Rank: 3, Medal: "🥉"},
		{ID: "u4", Username: "d", Points: 7, PointsGained: 4, Rank: 4, Medal: "4."},
	}

	got := buildReport("Monday, 9 February 2026", players, nil, "gfl2k25.vercel.app")

	// Gainers are ordered by points gained, and only three get a breakdown.
	assert.Contains(t, got, "*d* gained *+4 pts* 🚀")
	assert.Contains(t, got, "*c* gained *+3 pts* 🚀")
	assert.Contains(t, got, "*b* gained *+2 pts* 🚀")
	assert.NotContains(t, got, "*a* gained")
	// Everyone still shows in the table with their delta annotation.
	assert.Contains(t, got, "(+1)")
}
