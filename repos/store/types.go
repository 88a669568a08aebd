package store

import "time"

const (
	StatusUpcoming   = "upcoming"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
)

type User struct {
	ID       string `firestore:"-"`
	Username string `firestore:"Username"`
	IsAdmin  bool   `firestore:"IsAdmin"`
	Points   int64  `firestore:"Points"`
}

type Question struct {
	ID     string `firestore:"ID"`
	Type   string `firestore:"Type"`
	Points int64  `firestore:"Points"`
}

type Match struct {
	ID            string     `firestore:"-"`
	Team1         string     `firestore:"Team1"`
	Team2         string     `firestore:"Team2"`
	Team1Flag     string     `firestore:"Team1Flag"`
	Team2Flag     string     `firestore:"Team2Flag"`
	StartTime     time.Time  `firestore:"StartTime"`
	DurationHours int        `firestore:"DurationHours"`
	Format        string     `firestore:"Format"`
	Status        string     `firestore:"Status"`
	Questions     []Question `firestore:"Questions"`
}

// DerivedStatus maps the scheduled window onto the lifecycle status. A
// stored "completed" (written by settlement) always wins over the clock.
func (m Match) DerivedStatus(now time.Time) string {
	if m.Status == StatusCompleted {
		return StatusCompleted
	}
	if now.Before(m.StartTime) {
		return StatusUpcoming
	}
	if now.Before(m.StartTime.Add(time.Duration(m.DurationHours) * time.Hour)) {
		return StatusInProgress
	}
	return StatusCompleted
}

// MatchPatch carries the optional fields of a partial match update. Only
// non-nil fields are written.
type MatchPatch struct {
	Team1         *string    `json:"team1"`
	Team2         *string    `json:"team2"`
	Team1Flag     *string    `json:"team1Flag"`
	Team2Flag     *string    `json:"team2Flag"`
	StartTime     *time.Time `json:"startTime"`
	DurationHours *int       `json:"durationHours"`
	Format        *string    `json:"format"`
}

type MatchResult struct {
	Winner           string    `firestore:"Winner" json:"winner"`
	TopScorer        string    `firestore:"TopScorer" json:"topScorer"`
	TopWicketTaker   string    `firestore:"TopWicketTaker" json:"topWicketTaker"`
	FirstInningsTeam string    `firestore:"FirstInningsTeam" json:"firstInningsTeam"`
	TotalScore       string    `firestore:"TotalScore" json:"totalScore"`
	UpdatedBy        string    `firestore:"UpdatedBy" json:"-"`
	UpdatedAt        time.Time `firestore:"UpdatedAt" json:"-"`
}

type Prediction struct {
	ID           string    `firestore:"ID"`
	UserID       string    `firestore:"UserID"`
	MatchID      string    `firestore:"MatchID"`
	QuestionID   string    `firestore:"QuestionID"`
	Answer       string    `firestore:"Answer"`
	IsCorrect    *bool     `firestore:"IsCorrect"`
	PointsEarned int64     `firestore:"PointsEarned"`
	CreatedAt    time.Time `firestore:"CreatedAt"`
	UpdatedAt    time.Time `firestore:"UpdatedAt"`
}

type PointSnapshot struct {
	UserID string `firestore:"UserID"`
	Date   string `firestore:"Date"`
	Points int64  `firestore:"Points"`
}
