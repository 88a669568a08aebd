package questions

import (
	"fmt"
	"strconv"
	"strings"
)

// Type is the closed set of question kinds a match carries.
type Type string

const (
	Winner         Type = "winner"
	TopScorer      Type = "topScorer"
	TopWicketTaker Type = "topWicketTaker"
	TotalScore     Type = "totalScore"
	Unknown        Type = "unknown"
)

// Canonical point values per question type.
const (
	WinnerPoints         = 1
	TopScorerPoints      = 3
	TopWicketTakerPoints = 3
	TotalScorePoints     = 5
)

var typeByNumber = map[string]Type{
	"1": Winner,
	"2": TopScorer,
	"3": TopWicketTaker,
	"4": TotalScore,
}

// TypeFromID resolves the question type from an id of the form
// "q<N>_<matchID>", e.g. "q4_match1".
func TypeFromID(questionID string) Type {
	prefix, _, found := strings.Cut(questionID, "_")
	if !found || !strings.HasPrefix(prefix, "q") {
		return Unknown
	}
	t, ok := typeByNumber[strings.TrimPrefix(prefix, "q")]
	if !ok {
		return Unknown
	}
	return t
}

// ID builds the question id for a match, numbered 1 through 4.
func ID(number int, matchID string) string {
	return fmt.Sprintf("q%d_%s", number, matchID)
}

// CanonicalPoints returns the configured default point value for a type.
func CanonicalPoints(t Type) int64 {
	switch t {
	case Winner:
		return WinnerPoints
	case TopScorer:
		return TopScorerPoints
	case TopWicketTaker:
		return TopWicketTakerPoints
	case TotalScore:
		return TotalScorePoints
	}
	return 0
}

// Label and emoji used in the digest breakdown.
func Label(t Type) (label, emoji string) {
	switch t {
	case Winner:
		return "Match Winner", "🏆"
	case TopScorer:
		return "Top Scorer", "🏏"
	case TopWicketTaker:
		return "Top Wicket Taker", "🎯"
	case TotalScore:
		return "First Innings Score", "📊"
	}
	return "Unknown", "❓"
}

// Answer is the tagged decoding of a prediction's stored answer. For
// totalScore the wire format is "<team>|<min>-<max>"; every other type is a
// plain string in Text.
type Answer struct {
	Type     Type
	Text     string
	Team     string
	MinScore int
	MaxScore int
}

// ParseAnswer decodes a stored answer string for the given question type.
func ParseAnswer(t Type, raw string) (Answer, error) {
	if t != TotalScore {
		return Answer{Type: t, Text: raw}, nil
	}

	team, scoreRange, found := strings.Cut(raw, "|")
	if !found || team == "" {
		return Answer{}, fmt.Errorf("totalScore answer %q is missing the team part", raw)
	}
	low, high, found := strings.Cut(scoreRange, "-")
	if !found {
		return Answer{}, fmt.Errorf("totalScore answer %q is missing the score range", raw)
	}
	min, err := strconv.Atoi(strings.TrimSpace(low))
	if err != nil {
		return Answer{}, fmt.Errorf("totalScore answer %q has a bad lower bound: %w", raw, err)
	}
	max, err := strconv.Atoi(strings.TrimSpace(high))
	if err != nil {
		return Answer{}, fmt.Errorf("totalScore answer %q has a bad upper bound: %w", raw, err)
	}

	return Answer{Type: TotalScore, Text: raw, Team: team, MinScore: min, MaxScore: max}, nil
}

// CombineTotalScore builds the wire format stored for a totalScore answer.
func CombineTotalScore(team, scoreRange string) string {
	return fmt.Sprintf("%s|%s", team, scoreRange)
}

// Display renders an answer for the digest. totalScore answers drop the
// delimiter: "India — 100-110".
func (a Answer) Display() string {
	if a.Type == TotalScore {
		if team, scoreRange, found := strings.Cut(a.Text, "|"); found {
			return fmt.Sprintf("%s — %s", team, scoreRange)
		}
	}
	return a.Text
}
