package digest

import (
	"context"
	"log"
	"time"

	"github.com/gfl/fantasy-sync/pkg/questions"
	timehelper "github.com/gfl/fantasy-sync/pkg/timeHelper"
	"github.com/gfl/fantasy-sync/repos/store"
)

type UserStore interface {
	ListPlayersByPoints(ctx context.Context) ([]store.User, error)
}

type PredictionStore interface {
	ListAwardedPredictions(ctx context.Context) ([]store.Prediction, error)
}

type SnapshotStore interface {
	LatestSnapshotDate(ctx context.Context) (string, error)
	SnapshotPointsByDate(ctx context.Context, date string) (map[string]int64, error)
	SaveSnapshots(ctx context.Context, date string, users []store.User) error
}

type Notifier interface {
	PostMessage(ctx context.Context, text string) error
}

type Mailer interface {
	Enabled() bool
	SendDigest(ctx context.Context, subject, report string) error
}

// Service diffs current point totals against the last snapshot, posts a
// ranked report to the webhook and writes the new baseline.
type Service struct {
	users       UserStore
	predictions PredictionStore
	snapshots   SnapshotStore
	notifier    Notifier
	mailer      Mailer
	location    *time.Location
	appURL      string
}

func NewService(users UserStore, predictions PredictionStore, snapshots SnapshotStore, notifier Notifier, mailer Mailer, location *time.Location, appURL string) *Service {
	return &Service{
		users:       users,
		predictions: predictions,
		snapshots:   snapshots,
		notifier:    notifier,
		mailer:      mailer,
		location:    location,
		appURL:      appURL,
	}
}

type playerSummary struct {
	ID           string
	Username     string
	Points       int64
	PointsGained int64
	Rank         int
	Medal        string
}

type correctPrediction struct {
	QuestionType questions.Type
	Answer       string
	Points       int64
}

// GenerateDailyDigest runs one digest cycle for the given moment. The
// returned string describes the outcome for the trigger's response body.
// The snapshot is written only after a successful dispatch (or when there
// was nothing to dispatch), so a failed run is retried cleanly by the next
// trigger.
func (s *Service) GenerateDailyDigest(ctx context.Context, now time.Time) (string, error) {
	users, err := s.users.ListPlayersByPoints(ctx)
	if err != nil {
		return "", err
	}
	if len(users) == 0 {
		return "No users found", nil
	}

	lastDate, err := s.snapshots.LatestSnapshotDate(ctx)
	if err != nil {
		return "", err
	}

	// Baseline 0 for anyone without a row on the last snapshot date: a
	// first-ever run (or a new user) reports their whole total as gained
	// today. A skipped day widens the comparison window silently.
	previous := map[string]int64{}
	if lastDate != "" {
		previous, err = s.snapshots.SnapshotPointsByDate(ctx, lastDate)
		if err != nil {
			return "", err
		}
	}

	summaries := make([]playerSummary, 0, len(users))
	hasChanges := false
	for i, user := range users {
		gained := user.Points - previous[user.ID]
		if gained != 0 {
			hasChanges = true
		}
		rank := i + 1
		summaries = append(summaries, playerSummary{
			ID:           user.ID,
			Username:     user.Username,
			Points:       user.Points,
			PointsGained: gained,
			Rank:         rank,
			Medal:        medalFor(rank),
		})
	}

	today := timehelper.DateString(now, s.location)

	if !hasChanges {
		if err := s.snapshots.SaveSnapshots(ctx, today, users); err != nil {
			return "", err
		}
		return "No point changes today, skipping webhook post", nil
	}

	attributions := s.collectAttributions(ctx, summaries, lastDate)

	report := buildReport(timehelper.DisplayDate(now, s.location), summaries, attributions, s.appURL)

	if err := s.notifier.PostMessage(ctx, report); err != nil {
		log.Printf("Failed to dispatch daily digest: %v\n", err)
		return "", err
	}

	if err := s.snapshots.SaveSnapshots(ctx, today, users); err != nil {
		return "", err
	}

	if s.mailer != nil && s.mailer.Enabled() {
		if err := s.mailer.SendDigest(ctx, "GFL 2026 - Daily Update", report); err != nil {
			log.Printf("Failed to mail digest copy: %v\n", err)
		}
	}

	return "Daily summary posted", nil
}

// collectAttributions maps each gainer to the correct predictions graded
// since the last snapshot. Attribution is best effort: a read failure only
// costs the breakdown section, not the digest.
func (s *Service) collectAttributions(ctx context.Context, summaries []playerSummary, lastDate string) map[string][]correctPrediction {
	awarded, err := s.predictions.ListAwardedPredictions(ctx)
	if err != nil {
		log.Printf("Failed to list awarded predictions: %v\n", err)
		return nil
	}

	gainedBy := make(map[string]int64, len(summaries))
	for _, p := range summaries {
		gainedBy[p.ID] = p.PointsGained
	}

	var threshold time.Time
	if lastDate != "" {
		threshold, err = timehelper.DayStart(lastDate, s.location)
		if err != nil {
			log.Printf("Bad snapshot date %q: %v\n", lastDate, err)
			return nil
		}
	}

	attributions := map[string][]correctPrediction{}
	for _, pred := range awarded {
		if gainedBy[pred.UserID] <= 0 {
			continue
		}
		if lastDate != "" && !pred.UpdatedAt.After(threshold) {
			continue
		}

		questionType := questions.TypeFromID(pred.QuestionID)
		answer, parseErr := questions.ParseAnswer(questionType, pred.Answer)
		display := pred.Answer
		if parseErr == nil {
			display = answer.Display()
		}

		attributions[pred.UserID] = append(attributions[pred.UserID], correctPrediction{
			QuestionType: questionType,
			Answer:       display,
			Points:       pred.PointsEarned,
		})
	}
	return attributions
}
