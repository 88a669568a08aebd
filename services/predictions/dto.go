package predictions

// SavePredictionRequest is the JSON payload for submitting an answer. For
// totalScore questions the answer holds the score range ("100-110") and
// FirstInningsTeam the batting-team pick; the two are combined into the
// stored wire format.
type SavePredictionRequest struct {
	MatchID          string `json:"matchID"`
	QuestionID       string `json:"questionID"`
	Answer           string `json:"answer"`
	FirstInningsTeam string `json:"firstInningsTeam"`
}
