package matches

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/gfl/fantasy-sync/repos/store"
)

func TestDerivedStatusWindow(t *testing.T) {
	start := time.Date(2026, 2, 7, 10, 30, 0, 0, time.UTC)
	match := store.Match{StartTime: start, DurationHours: 4}

	cases := []struct {
		name string
		now  time.Time
		want string
	}{
		{"before start", start.Add(-time.Minute), store.StatusUpcoming},
		{"at start", start, store.StatusInProgress},
		{"mid match", start.Add(2 * time.Hour), store.StatusInProgress},
		{"after window", start.Add(4 * time.Hour), store.StatusCompleted},
	}

	for _, c := range cases {
		if got := match.DerivedStatus(c.now); got != c.want {
			t.Errorf("%s: got %q, want %q", c.name, got, c.want)
		}
	}
}

func TestDerivedStatusSettledWins(t *testing.T) {
	match := store.Match{
		StartTime:     time.Now().Add(time.Hour),
		DurationHours: 4,
		Status:        store.StatusCompleted,
	}
	// A settled match stays completed even if the clock says otherwise.
	assert.Equal(t, store.StatusCompleted, match.DerivedStatus(time.Now()))
}

type fakeMatches struct {
	existing map[string]store.Match
	created  []store.Match
	patched  map[string]store.MatchPatch
}

func (f *fakeMatches) GetMatch(_ context.Context, matchID string) (store.Match, error) {
	if m, ok := f.existing[matchID]; ok {
		return m, nil
	}
	return store.Match{}, store.ErrNotFound
}

func (f *fakeMatches) ListMatches(context.Context) ([]store.Match, error) {
	var out []store.Match
	for _, m := range f.existing {
		out = append(out, m)
	}
	return out, nil
}

func (f *fakeMatches) CreateMatch(_ context.Context, match store.Match) error {
	f.created = append(f.created, match)
	return nil
}

func (f *fakeMatches) PatchMatch(_ context.Context, matchID string, patch store.MatchPatch) error {
	if f.patched == nil {
		f.patched = map[string]store.MatchPatch{}
	}
	f.patched[matchID] = patch
	return nil
}

func (f *fakeMatches) GetResult(context.Context, string) (store.MatchResult, error) {
	return store.MatchResult{}, store.ErrNotFound
}

type fakeUsers struct {
	users []store.User
}

func (f *fakeUsers) ListUsersByPoints(context.Context) ([]store.User, error) {
	return f.users, nil
}

func TestSeedScheduleCreatesWithQuestions(t *testing.T) {
	matchStore := &fakeMatches{}
	service := NewService(matchStore, &fakeUsers{})

	err := service.SeedSchedule(context.Background(), []SeedMatchRequest{
		{ID: "match1", Team1: "India", Team2: "Pakistan", Format: "T20",
			StartTime: time.Date(2026, 2, 7, 10, 30, 0, 0, time.UTC)},
	})

	assert.Nil(t, err)
	assert.Len(t, matchStore.created, 1)

	created := matchStore.created[0]
	assert.Equal(t, DurationT20, created.DurationHours)
	assert.Equal(t, store.StatusUpcoming, created.Status)
	assert.Len(t, created.Questions, 4)
	assert.Equal(t, "q1_match1", created.Questions[0].ID)
	assert.Equal(t, int64(1), created.Questions[0].Points)
	assert.Equal(t, "q4_match1", created.Questions[3].ID)
	assert.Equal(t, int64(5), created.Questions[3].Points)
}

func TestSeedSchedulePatchesExisting(t *testing.T) {
	matchStore := &fakeMatches{existing: map[string]store.Match{
		"match1": {ID: "match1", Team1: "India"},
	}}
	service := NewService(matchStore, &fakeUsers{})

	err := service.SeedSchedule(context.Background(), []SeedMatchRequest{
		{ID: "match1", Team1: "India", Team2: "Namibia", Format: "ODI"},
	})

	assert.Nil(t, err)
	assert.Empty(t, matchStore.created)

	patch := matchStore.patched["match1"]
	assert.Equal(t, "Namibia", *patch.Team2)
	assert.Equal(t, DurationODI, *patch.DurationHours)
}

func TestGetLeaderboardKeepsStoreOrder(t *testing.T) {
	service := NewService(&fakeMatches{}, &fakeUsers{users: []store.User{
		{ID: "a", Username: "alice", Points: 22},
		{ID: "b", Username: "bob", Points: 15},
	}})

	entries, err := service.GetLeaderboard(context.Background())

	assert.Nil(t, err)
	assert.Equal(t, "alice", entries[0].Username)
	assert.Equal(t, int64(22), entries[0].Points)
	assert.Equal(t, "bob", entries[1].Username)
}
