package questions

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypeFromID(t *testing.T) {
	assert.Equal(t, Winner, TypeFromID("q1_match1"))
	assert.Equal(t, TopScorer, TypeFromID("q2_match12"))
	assert.Equal(t, TopWicketTaker, TypeFromID("q3_match3"))
	assert.Equal(t, TotalScore, TypeFromID("q4_match1"))
	assert.Equal(t, Unknown, TypeFromID("q5_match1"))
	assert.Equal(t, Unknown, TypeFromID("match1"))
	assert.Equal(t, Unknown, TypeFromID(""))
}

func TestIDRoundTrip(t *testing.T) {
	assert.Equal(t, "q4_match7", ID(4, "match7"))
	assert.Equal(t, TotalScore, TypeFromID(ID(4, "match7")))
}

func TestParseAnswerTotalScore(t *testing.T) {
	a, err := ParseAnswer(TotalScore, "India|100-110")
	assert.Nil(t, err)
	assert.Equal(t, "India", a.Team)
	assert.Equal(t, 100, a.MinScore)
	assert.Equal(t, 110, a.MaxScore)
	assert.Equal(t, "India — 100-110", a.Display())
}

func TestParseAnswerTotalScoreMalformed(t *testing.T) {
	cases := []string{"", "India", "|100-110", "India|100", "India|abc-110", "India|100-xyz"}
	for _, c := range cases {
		_, err := ParseAnswer(TotalScore, c)
		assert.NotNil(t, err, "expected parse error for %q", c)
	}
}

func TestParseAnswerPlain(t *testing.T) {
	a, err := ParseAnswer(Winner, "Pakistan")
	assert.Nil(t, err)
	assert.Equal(t, "Pakistan", a.Text)
	assert.Equal(t, "Pakistan", a.Display())
}

func TestCanonicalPoints(t *testing.T) {
	assert.Equal(t, int64(1), CanonicalPoints(Winner))
	assert.Equal(t, int64(3), CanonicalPoints(TopScorer))
	assert.Equal(t, int64(3), CanonicalPoints(TopWicketTaker))
	assert.Equal(t, int64(5), CanonicalPoints(TotalScore))
	assert.Equal(t, int64(0), CanonicalPoints(Unknown))
}
