package predictions

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/gfl/fantasy-sync/pkg/questions"
	"github.com/gfl/fantasy-sync/repos/store"
)

var (
	ErrPredictionsLocked  = errors.New("predictions are locked once the match has started")
	ErrMissingTeamPick    = errors.New("first innings team pick is required for a score prediction")
	ErrQuestionNotInMatch = errors.New("question does not belong to the match")
)

type MatchStore interface {
	GetMatch(ctx context.Context, matchID string) (store.Match, error)
}

type PredictionStore interface {
	UpsertPrediction(ctx context.Context, p store.Prediction, now time.Time) (store.Prediction, error)
	ListUserPredictions(ctx context.Context, userID string) ([]store.Prediction, error)
}

// Service captures user answers. Later submissions overwrite earlier ones
// until the match leaves the upcoming window, after which answers freeze.
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

func (s *Service) SavePrediction(ctx context.Context, userID string, request SavePredictionRequest) (store.Prediction, error) {
	match, err := s.matches.GetMatch(ctx, request.MatchID)
	if err != nil {
		log.Printf("Failed to get match %s: %v\n", request.MatchID, err)
		return store.Prediction{}, err
	}

	if !questionBelongsTo(match, request.QuestionID) {
		return store.Prediction{}, ErrQuestionNotInMatch
	}

	if match.DerivedStatus(time.Now()) != store.StatusUpcoming {
		return store.Prediction{}, ErrPredictionsLocked
	}

	answer := request.Answer
	if questions.TypeFromID(request.QuestionID) == questions.TotalScore {
		if request.FirstInningsTeam == "" {
			return store.Prediction{}, ErrMissingTeamPick
		}
		answer = questions.CombineTotalScore(request.FirstInningsTeam, request.Answer)
		if _, err := questions.ParseAnswer(questions.TotalScore, answer); err != nil {
			return store.Prediction{}, err
		}
	}

	return s.predictions.UpsertPrediction(ctx, store.Prediction{
		UserID:     userID,
		MatchID:    request.MatchID,
		QuestionID: request.QuestionID,
		Answer:     answer,
	}, time.Now())
}

func (s *Service) GetUserPredictions(ctx context.Context, userID string) ([]store.Prediction, error) {
	return s.predictions.ListUserPredictions(ctx, userID)
}

func questionBelongsTo(match store.Match, questionID string) bool {
	// Older match docs may lack the question config; fall back to the id
	// convention in that case.
	if len(match.Questions) == 0 {
		return questions.TypeFromID(questionID) != questions.Unknown &&
			strings.HasSuffix(questionID, "_"+match.ID)
	}
	for _, q := range match.Questions {
		if q.ID == questionID {
			return true
		}
	}
	return false
}
