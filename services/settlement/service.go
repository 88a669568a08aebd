package settlement

import (
	"context"
	"errors"
	"log"
	"strconv"
	"time"

	"github.com/gfl/fantasy-sync/pkg/questions"
	"github.com/gfl/fantasy-sync/repos/store"
)

// ErrMissingFirstInnings rejects a result without the batting-first team
// before anything is written.
var ErrMissingFirstInnings = errors.New("first innings team is required")

type MatchStore interface {
	GetMatch(ctx context.Context, matchID string) (store.Match, error)
	SetMatchStatus(ctx context.Context, matchID, status string) error
	UpsertResult(ctx context.Context, matchID string, result store.MatchResult) error
}

type PredictionStore interface {
	ListMatchPredictions(ctx context.Context, matchID string) ([]store.Prediction, error)
	ApplyVerdict(ctx context.Context, userID, questionID string, isCorrect bool, points int64, now time.Time) error
}

// Service turns an admin-entered match result into graded predictions and
// updated user point totals.
type Service struct {
	matches     MatchStore
	predictions PredictionStore
}

func NewService(matches MatchStore, predictions PredictionStore) *Service {
	return &Service{
		matches:     matches,
		predictions: predictions,
	}
}

// SettleMatch marks the match completed, persists the result and grades
// every prediction recorded for the match. Each row's verdict write and
// point adjustment land together: the store applies the difference between
// the new award and whatever the prediction had earned before, so settling
// the same result twice leaves totals untouched, a corrected result moves
// them up or down, and a failed row is repaired in full on the next run.
func (s *Service) SettleMatch(ctx context.Context, matchID string, result store.MatchResult, adminID string) error {
	if result.FirstInningsTeam == "" {
		return ErrMissingFirstInnings
	}

	match, err := s.matches.GetMatch(ctx, matchID)
	if err != nil {
		log.Printf("Failed to get match %s: %v\n", matchID, err)
		return err
	}

	if err := s.matches.SetMatchStatus(ctx, matchID, store.StatusCompleted); err != nil {
		return err
	}

	now := time.Now()
	result.UpdatedBy = adminID
	result.UpdatedAt = now
	if err := s.matches.UpsertResult(ctx, matchID, result); err != nil {
		return err
	}

	predictions, err := s.predictions.ListMatchPredictions(ctx, matchID)
	if err != nil {
		log.Printf("Failed to list predictions for match %s: %v\n", matchID, err)
		return err
	}

	for _, prediction := range predictions {
		verdict := evaluate(prediction.QuestionID, prediction.Answer, result, pointsFor(match, prediction.QuestionID))

		err := s.predictions.ApplyVerdict(ctx, prediction.UserID, prediction.QuestionID, verdict.IsCorrect, verdict.Points, now)
		if err != nil {
			log.Printf("Failed to settle prediction %s for user %s: %v\n", prediction.QuestionID, prediction.UserID, err)
			continue
		}
	}

	return nil
}

type verdict struct {
	IsCorrect bool
	Points    int64
}

// evaluate grades one stored answer against the result. An ungradeable
// answer (malformed, or the result lacks the needed field) is incorrect.
func evaluate(questionID, answer string, result store.MatchResult, value int64) verdict {
	correct := false

	switch questions.TypeFromID(questionID) {
	case questions.Winner:
		correct = answer != "" && answer == result.Winner
	case questions.TopScorer:
		correct = answer != "" && answer == result.TopScorer
	case questions.TopWicketTaker:
		correct = answer != "" && answer == result.TopWicketTaker
	case questions.TotalScore:
		correct = evaluateTotalScore(answer, result)
	}

	if !correct {
		return verdict{}
	}
	return verdict{IsCorrect: true, Points: value}
}

func evaluateTotalScore(answer string, result store.MatchResult) bool {
	if answer == "" || result.TotalScore == "" || result.FirstInningsTeam == "" {
		return false
	}

	parsed, err := questions.ParseAnswer(questions.TotalScore, answer)
	if err != nil {
		log.Printf("Unparseable totalScore answer %q: %v\n", answer, err)
		return false
	}

	// A wrong batting-team pick loses the question outright, no matter the range.
	if parsed.Team != result.FirstInningsTeam {
		return false
	}

	actual, err := strconv.Atoi(result.TotalScore)
	if err != nil {
		log.Printf("Unparseable total score %q in result: %v\n", result.TotalScore, err)
		return false
	}
	return actual >= parsed.MinScore && actual <= parsed.MaxScore
}

// pointsFor returns the question's configured value, falling back to the
// canonical table when the match document does not carry it.
func pointsFor(match store.Match, questionID string) int64 {
	for _, q := range match.Questions {
		if q.ID == questionID && q.Points > 0 {
			return q.Points
		}
	}
	return questions.CanonicalPoints(questions.TypeFromID(questionID))
}
