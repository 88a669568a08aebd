package matches

import (
	"context"
	"log"
	"time"

	"github.com/xorcare/pointer"

	"github.com/gfl/fantasy-sync/pkg/questions"
	"github.com/gfl/fantasy-sync/repos/store"
)

// Match duration defaults in hours, by format.
const (
	DurationODI = 8
	DurationT20 = 4
)

type MatchStore interface {
	GetMatch(ctx context.Context, matchID string) (store.Match, error)
	ListMatches(ctx context.Context) ([]store.Match, error)
	CreateMatch(ctx context.Context, match store.Match) error
	PatchMatch(ctx context.Context, matchID string, patch store.MatchPatch) error
	GetResult(ctx context.Context, matchID string) (store.MatchResult, error)
}

type UserStore interface {
	ListUsersByPoints(ctx context.Context) ([]store.User, error)
}

// Service serves the match catalogue and the leaderboard, and lets an
// admin seed or adjust the tournament schedule.
type Service struct {
	matches MatchStore
	users   UserStore
}

func NewService(matches MatchStore, users UserStore) *Service {
	return &Service{
		matches: matches,
		users:   users,
	}
}

func (s *Service) ListMatches(ctx context.Context, now time.Time) ([]MatchView, error) {
	matches, err := s.matches.ListMatches(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]MatchView, 0, len(matches))
	for _, m := range matches {
		views = append(views, toView(m, now))
	}
	return views, nil
}

func (s *Service) GetMatch(ctx context.Context, matchID string, now time.Time) (MatchView, error) {
	match, err := s.matches.GetMatch(ctx, matchID)
	if err != nil {
		return MatchView{}, err
	}
	return toView(match, now), nil
}

func (s *Service) GetMatchResult(ctx context.Context, matchID string) (store.MatchResult, error) {
	return s.matches.GetResult(ctx, matchID)
}

func (s *Service) GetLeaderboard(ctx context.Context) ([]LeaderboardEntry, error) {
	users, err := s.users.ListUsersByPoints(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, 0, len(users))
	for _, u := range users {
		entries = append(entries, LeaderboardEntry{
			UserID:   u.ID,
			Username: u.Username,
			IsAdmin:  u.IsAdmin,
			Points:   u.Points,
		})
	}
	return entries, nil
}

// SeedSchedule creates each fixture that does not exist yet and patches the
// ones that do, so re-posting the schedule fixes dates and names without
// touching the questions already predicted against.
func (s *Service) SeedSchedule(ctx context.Context, fixtures []SeedMatchRequest) error {
	for _, fixture := range fixtures {
		_, err := s.matches.GetMatch(ctx, fixture.ID)
		if err == store.ErrNotFound {
			if err := s.matches.CreateMatch(ctx, buildMatch(fixture)); err != nil {
				return err
			}
			log.Printf("Seeded match %s: %s vs %s\n", fixture.ID, fixture.Team1, fixture.Team2)
			continue
		}
		if err != nil {
			return err
		}

		patch := store.MatchPatch{
			Team1:         pointer.String(fixture.Team1),
			Team2:         pointer.String(fixture.Team2),
			Team1Flag:     pointer.String(fixture.Team1Flag),
			Team2Flag:     pointer.String(fixture.Team2Flag),
			StartTime:     pointer.Time(fixture.StartTime),
			DurationHours: pointer.Int(durationFor(fixture)),
			Format:        pointer.String(fixture.Format),
		}
		if err := s.matches.PatchMatch(ctx, fixture.ID, patch); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) PatchMatch(ctx context.Context, matchID string, patch store.MatchPatch) error {
	return s.matches.PatchMatch(ctx, matchID, patch)
}

func buildMatch(fixture SeedMatchRequest) store.Match {
	return store.Match{
		ID:            fixture.ID,
		Team1:         fixture.Team1,
		Team2:         fixture.Team2,
		Team1Flag:     fixture.Team1Flag,
		Team2Flag:     fixture.Team2Flag,
		StartTime:     fixture.StartTime,
		DurationHours: durationFor(fixture),
		Format:        fixture.Format,
		Status:        store.StatusUpcoming,
		Questions:     buildQuestions(fixture.ID),
	}
}

// Every match asks the same four questions.
func buildQuestions(matchID string) []store.Question {
	return []store.Question{
		{ID: questions.ID(1, matchID), Type: string(questions.Winner), Points: questions.WinnerPoints},
		{ID: questions.ID(2, matchID), Type: string(questions.TopScorer), Points: questions.TopScorerPoints},
		{ID: questions.ID(3, matchID), Type: string(questions.TopWicketTaker), Points: questions.TopWicketTakerPoints},
		{ID: questions.ID(4, matchID), Type: string(questions.TotalScore), Points: questions.TotalScorePoints},
	}
}

func durationFor(fixture SeedMatchRequest) int {
	if fixture.DurationHours > 0 {
		return fixture.DurationHours
	}
	if fixture.Format == "ODI" {
		return DurationODI
	}
	return DurationT20
}

func toView(m store.Match, now time.Time) MatchView {
	return MatchView{
		ID:            m.ID,
		Team1:         m.Team1,
		Team2:         m.Team2,
		Team1Flag:     m.Team1Flag,
		Team2Flag:     m.Team2Flag,
		StartTime:     m.StartTime,
		DurationHours: m.DurationHours,
		Format:        m.Format,
		Status:        m.DerivedStatus(now),
		Questions:     m.Questions,
	}
}
