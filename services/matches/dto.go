package matches

import (
	"time"

	"github.com/gfl/fantasy-sync/repos/store"
)

// MatchView is a match with its lifecycle status resolved against the clock.
type MatchView struct {
	ID            string           `json:"id"`
	Team1         string           `json:"team1"`
	Team2         string           `json:"team2"`
	Team1Flag     string           `json:"team1Flag"`
	Team2Flag     string           `json:"team2Flag"`
	StartTime     time.Time        `json:"startTime"`
	DurationHours int              `json:"durationHours"`
	Format        string           `json:"format"`
	Status        string           `json:"status"`
	Questions     []store.Question `json:"questions"`
}

// SeedMatchRequest describes one fixture of the tournament schedule. The
// four questions are attached automatically with their canonical values.
type SeedMatchRequest struct {
	ID            string    `json:"id"`
	Team1         string    `json:"team1"`
	Team2         string    `json:"team2"`
	Team1Flag     string    `json:"team1Flag"`
	Team2Flag     string    `json:"team2Flag"`
	StartTime     time.Time `json:"startTime"`
	DurationHours int       `json:"durationHours"`
	Format        string    `json:"format"`
}

type LeaderboardEntry struct {
	UserID   string `json:"userID"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"isAdmin"`
	Points   int64  `json:"points"`
}
