package predictions

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/gfl/fantasy-sync/repos/store"
)

type fakeMatches struct {
	match store.Match
	err   error
}

func (f *fakeMatches) GetMatch(context.Context, string) (store.Match, error) {
	return f.match, f.err
}

type fakePredictions struct {
	rows map[string]store.Prediction
}

func (f *fakePredictions) UpsertPrediction(_ context.Context, p store.Prediction, now time.Time) (store.Prediction, error) {
	if f.rows == nil {
		f.rows = map[string]store.Prediction{}
	}
	key := p.UserID + "_" + p.QuestionID
	if existing, ok := f.rows[key]; ok {
		existing.Answer = p.Answer
		existing.UpdatedAt = now
		f.rows[key] = existing
		return existing, nil
	}
	p.CreatedAt = now
	p.UpdatedAt = now
	f.rows[key] = p
	return p, nil
}

func (f *fakePredictions) ListUserPredictions(_ context.Context, userID string) ([]store.Prediction, error) {
	var out []store.Prediction
	for _, p := range f.rows {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func upcomingMatch() store.Match {
	return store.Match{
		ID:            "match1",
		StartTime:     time.Now().Add(2 * time.Hour),
		DurationHours: 4,
		Questions: []store.Question{
			{ID: "q1_match1", Type: "winner", Points: 1},
			{ID: "q4_match1", Type: "totalScore", Points: 5},
		},
	}
}

func TestSavePredictionUpserts(t *testing.T) {
	rows := &fakePredictions{}
	service := NewService(&fakeMatches{match: upcomingMatch()}, rows)

	first, err := service.SavePrediction(context.Background(), "alice", SavePredictionRequest{
		MatchID: "match1", QuestionID: "q1_match1", Answer: "India",
	})
	assert.Nil(t, err)
	assert.Equal(t, "India", first.Answer)

	second, err := service.SavePrediction(context.Background(), "alice", SavePredictionRequest{
		MatchID: "match1", QuestionID: "q1_match1", Answer: "Pakistan",
	})
	assert.Nil(t, err)
	assert.Equal(t, "Pakistan", second.Answer)
	assert.Len(t, rows.rows, 1)
}

func TestSavePredictionCombinesTotalScoreAnswer(t *testing.T) {
	rows := &fakePredictions{}
	service := NewService(&fakeMatches{match: upcomingMatch()}, rows)

	saved, err := service.SavePrediction(context.Background(), "alice", SavePredictionRequest{
		MatchID: "match1", QuestionID: "q4_match1", Answer: "150-160", FirstInningsTeam: "India",
	})
	assert.Nil(t, err)
	assert.Equal(t, "India|150-160", saved.Answer)
}

func TestSavePredictionTotalScoreNeedsTeamPick(t *testing.T) {
	service := NewService(&fakeMatches{match: upcomingMatch()}, &fakePredictions{})

	_, err := service.SavePrediction(context.Background(), "alice", SavePredictionRequest{
		MatchID: "match1", QuestionID: "q4_match1", Answer: "150-160",
	})
	assert.Equal(t, ErrMissingTeamPick, err)
}

func TestSavePredictionRejectsBadRange(t *testing.T) {
	service := NewService(&fakeMatches{match: upcomingMatch()}, &fakePredictions{})

	_, err := service.SavePrediction(context.Background(), "alice", SavePredictionRequest{
		MatchID: "match1", QuestionID: "q4_match1", Answer: "lots", FirstInningsTeam: "India",
	})
	assert.NotNil(t, err)
}

func TestSavePredictionLockedOnceStarted(t *testing.T) {
	match := upcomingMatch()
	match.StartTime = time.Now().Add(-1 * time.Hour)
	service := NewService(&fakeMatches{match: match}, &fakePredictions{})

	_, err := service.SavePrediction(context.Background(), "alice", SavePredictionRequest{
		MatchID: "match1", QuestionID: "q1_match1", Answer: "India",
	})
	assert.Equal(t, ErrPredictionsLocked, err)
}

func TestSavePredictionFallsBackToIDConvention(t *testing.T) {
	match := upcomingMatch()
	match.Questions = nil
	service := NewService(&fakeMatches{match: match}, &fakePredictions{})

	saved, err := service.SavePrediction(context.Background(), "alice", SavePredictionRequest{
		MatchID: "match1", QuestionID: "q1_match1", Answer: "India",
	})
	assert.Nil(t, err)
	assert.Equal(t, "India", saved.Answer)

	_, err = service.SavePrediction(context.Background(), "alice", SavePredictionRequest{
		MatchID: "match1", QuestionID: "q1_match9", Answer: "India",
	})
	assert.Equal(t, ErrQuestionNotInMatch, err)
}

func TestSavePredictionRejectsForeignQuestion(t *testing.T) {
	service := NewService(&fakeMatches{match: upcomingMatch()}, &fakePredictions{})

	_, err := service.SavePrediction(context.Background(), "alice", SavePredictionRequest{
		MatchID: "match1", QuestionID: "q1_match9", Answer: "India",
	})
	assert.Equal(t, ErrQuestionNotInMatch, err)
}
