package store

import (
	"context"
	"errors"
	"log"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/samborkent/uuidv7"
	"golang.org/x/xerrors"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var ErrNotFound = errors.New("document not found")

// Service wraps every Firestore collection the app reads or writes.
type Service struct {
	Client *firestore.Client
}

// NewService creates a new empty service.
func NewService(client *firestore.Client) *Service {
	return &Service{
		Client: client,
	}
}

func (s Service) GetUser(ctx context.Context, userID string) (User, error) {
	doc, err := s.Client.Collection("Users").Doc(userID).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return User{}, ErrNotFound
		}
		log.Printf("Failed to get user from Firestore: %v\n", err)
		return User{}, err
	}
	return docToUser(doc)
}

// IsAdmin reports whether a user carries the admin flag.
func (s Service) IsAdmin(ctx context.Context, userID string) (bool, error) {
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return false, err
	}
	return user.IsAdmin, nil
}

// ListPlayersByPoints returns every non-admin user, highest points first.
func (s Service) ListPlayersByPoints(ctx context.Context) ([]User, error) {
	docs, err := s.Client.Collection("Users").
		Where("IsAdmin", "==", false).
		OrderBy("Points", firestore.Desc).
		Documents(ctx).
		GetAll()
	if err != nil {
		log.Printf("Failed to list players from Firestore: %v\n", err)
		return nil, err
	}
	return docsToUsers(docs)
}

// ListUsersByPoints returns every user, highest points first.
func (s Service) ListUsersByPoints(ctx context.Context) ([]User, error) {
	docs, err := s.Client.Collection("Users").
		OrderBy("Points", firestore.Desc).
		Documents(ctx).
		GetAll()
	if err != nil {
		log.Printf("Failed to list users from Firestore: %v\n", err)
		return nil, err
	}
	return docsToUsers(docs)
}

// ApplyVerdict writes one prediction's grading verdict and adjusts the
// user's point total by the award delta in a single transaction. The delta
// is computed against the points recorded inside the transaction, so a
// failed row leaves both documents untouched and the next settlement run
// repairs it with the full delta. The user increment stays a server-side
// atomic add, and the delta may be negative when a correction takes points
// back.
func (s Service) ApplyVerdict(ctx context.Context, userID, questionID string, isCorrect bool, points int64, now time.Time) error {
	predictionRef := s.Client.Collection("Predictions").Doc(predictionDocID(userID, questionID))
	userRef := s.Client.Collection("Users").Doc(userID)

	err := s.Client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(predictionRef)
		if err != nil {
			return err
		}
		existing, err := docToPrediction(doc)
		if err != nil {
			return err
		}

		if err := tx.Update(predictionRef, []firestore.Update{
			{Path: "IsCorrect", Value: isCorrect},
			{Path: "PointsEarned", Value: points},
			{Path: "UpdatedAt", Value: now},
		}); err != nil {
			return err
		}

		if delta := points - existing.PointsEarned; delta != 0 {
			return tx.Update(userRef, []firestore.Update{
				{Path: "Points", Value: firestore.Increment(delta)},
			})
		}
		return nil
	})
	if err != nil {
		log.Printf("Failed to apply verdict for %s: %v\n", predictionDocID(userID, questionID), err)
		return err
	}
	return nil
}

func (s Service) GetMatch(ctx context.Context, matchID string) (Match, error) {
	doc, err := s.Client.Collection("Matches").Doc(matchID).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return Match{}, ErrNotFound
		}
		log.Printf("Failed to get match from Firestore: %v\n", err)
		return Match{}, err
	}
	return docToMatch(doc)
}

func (s Service) ListMatches(ctx context.Context) ([]Match, error) {
	docs, err := s.Client.Collection("Matches").
		OrderBy("StartTime", firestore.Asc).
		Documents(ctx).
		GetAll()
	if err != nil {
		log.Printf("Failed to list matches from Firestore: %v\n", err)
		return nil, err
	}

	var matches []Match
	for _, doc := range docs {
		match, err := docToMatch(doc)
		if err != nil {
			return nil, err
		}
		matches = append(matches, match)
	}
	return matches, nil
}

func (s Service) CreateMatch(ctx context.Context, match Match) error {
	_, err := s.Client.Collection("Matches").Doc(match.ID).Set(ctx, match)
	if err != nil {
		log.Printf("Failed to write match to Firestore: %v\n", err)
		return err
	}
	return nil
}

func (s Service) SetMatchStatus(ctx context.Context, matchID, matchStatus string) error {
	_, err := s.Client.Collection("Matches").Doc(matchID).Update(ctx, []firestore.Update{
		{Path: "Status", Value: matchStatus},
	})
	if err != nil {
		log.Printf("Failed to update match status in Firestore: %v\n", err)
		return err
	}
	return nil
}

// PatchMatch writes only the fields set on the patch.
func (s Service) PatchMatch(ctx context.Context, matchID string, patch MatchPatch) error {
	updates := createMatchUpdates(&patch)
	if len(updates) == 0 {
		return nil
	}
	_, err := s.Client.Collection("Matches").Doc(matchID).Update(ctx, updates)
	if err != nil {
		log.Printf("Failed to patch match in Firestore: %v\n", err)
		return err
	}
	return nil
}

// UpsertResult writes the admin-entered result keyed by match.
func (s Service) UpsertResult(ctx context.Context, matchID string, result MatchResult) error {
	_, err := s.Client.Collection("MatchResults").Doc(matchID).Set(ctx, result)
	if err != nil {
		log.Printf("Failed to write match result to Firestore: %v\n", err)
		return err
	}
	return nil
}

func (s Service) GetResult(ctx context.Context, matchID string) (MatchResult, error) {
	doc, err := s.Client.Collection("MatchResults").Doc(matchID).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return MatchResult{}, ErrNotFound
		}
		log.Printf("Failed to get match result from Firestore: %v\n", err)
		return MatchResult{}, err
	}

	var result MatchResult
	if err := doc.DataTo(&result); err != nil {
		return MatchResult{}, xerrors.Errorf(
			"consistency error. Converting %+v to internal integration struct failed: %w",
			doc,
			err,
		)
	}
	return result, nil
}

// UpsertPrediction creates or overwrites one user's answer to one question.
// The doc id is the (user, question) pair, so repeated submissions land on
// the same row; the question id already carries the match id.
func (s Service) UpsertPrediction(ctx context.Context, p Prediction, now time.Time) (Prediction, error) {
	docRef := s.Client.Collection("Predictions").Doc(predictionDocID(p.UserID, p.QuestionID))

	// A NotFound read still returns a snapshot with Exists false; any other
	// error aborts before a blind overwrite.
	doc, err := docRef.Get(ctx)
	if err != nil && !isNotFound(err) {
		log.Printf("Failed to read prediction from Firestore: %v\n", err)
		return Prediction{}, err
	}

	if doc.Exists() {
		existing, err := docToPrediction(doc)
		if err != nil {
			return Prediction{}, err
		}
		_, err = docRef.Update(ctx, []firestore.Update{
			{Path: "Answer", Value: p.Answer},
			{Path: "UpdatedAt", Value: now},
		})
		if err != nil {
			log.Printf("Failed to update prediction in Firestore: %v\n", err)
			return Prediction{}, err
		}
		existing.Answer = p.Answer
		existing.UpdatedAt = now
		return existing, nil
	}

	p.ID = uuidv7.New().String()
	p.CreatedAt = now
	p.UpdatedAt = now
	if _, err := docRef.Set(ctx, p); err != nil {
		log.Printf("Failed to write prediction to Firestore: %v\n", err)
		return Prediction{}, err
	}
	return p, nil
}

func (s Service) ListMatchPredictions(ctx context.Context, matchID string) ([]Prediction, error) {
	docs, err := s.Client.Collection("Predictions").
		Where("MatchID", "==", matchID).
		Documents(ctx).
		GetAll()
	if err != nil {
		log.Printf("Failed to list match predictions from Firestore: %v\n", err)
		return nil, err
	}
	return docsToPredictions(docs)
}

func (s Service) ListUserPredictions(ctx context.Context, userID string) ([]Prediction, error) {
	docs, err := s.Client.Collection("Predictions").
		Where("UserID", "==", userID).
		Documents(ctx).
		GetAll()
	if err != nil {
		log.Printf("Failed to list user predictions from Firestore: %v\n", err)
		return nil, err
	}
	return docsToPredictions(docs)
}

// ListAwardedPredictions returns every prediction that earned points, most
// recently graded first.
func (s Service) ListAwardedPredictions(ctx context.Context) ([]Prediction, error) {
	docs, err := s.Client.Collection("Predictions").
		Where("PointsEarned", ">", 0).
		OrderBy("PointsEarned", firestore.Asc).
		OrderBy("UpdatedAt", firestore.Desc).
		Documents(ctx).
		GetAll()
	if err != nil {
		log.Printf("Failed to list awarded predictions from Firestore: %v\n", err)
		return nil, err
	}
	return docsToPredictions(docs)
}

// LatestSnapshotDate returns the most recent snapshot date on record, or ""
// when no snapshot has ever been written.
func (s Service) LatestSnapshotDate(ctx context.Context) (string, error) {
	iter := s.Client.Collection("PointSnapshots").
		OrderBy("Date", firestore.Desc).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if err == iterator.Done {
		return "", nil
	}
	if err != nil {
		log.Printf("Failed to get latest snapshot date from Firestore: %v\n", err)
		return "", err
	}

	var snapshot PointSnapshot
	if err := doc.DataTo(&snapshot); err != nil {
		return "", xerrors.Errorf(
			"consistency error. Converting %+v to internal integration struct failed: %w",
			doc,
			err,
		)
	}
	return snapshot.Date, nil
}

// SnapshotPointsByDate returns every user's recorded point total for a date.
func (s Service) SnapshotPointsByDate(ctx context.Context, date string) (map[string]int64, error) {
	docs, err := s.Client.Collection("PointSnapshots").
		Where("Date", "==", date).
		Documents(ctx).
		GetAll()
	if err != nil {
		log.Printf("Failed to list snapshots from Firestore: %v\n", err)
		return nil, err
	}

	points := make(map[string]int64, len(docs))
	for _, doc := range docs {
		var snapshot PointSnapshot
		if err := doc.DataTo(&snapshot); err != nil {
			return nil, xerrors.Errorf(
				"consistency error. Converting %+v to internal integration struct failed: %w",
				doc,
				err,
			)
		}
		points[snapshot.UserID] = snapshot.Points
	}
	return points, nil
}

// SaveSnapshots upserts one snapshot row per user for the given date. Doc
// ids are the (user, date) pair, so a second run on the same day overwrites
// instead of duplicating.
func (s Service) SaveSnapshots(ctx context.Context, date string, users []User) error {
	for _, user := range users {
		snapshot := PointSnapshot{
			UserID: user.ID,
			Date:   date,
			Points: user.Points,
		}
		_, err := s.Client.Collection("PointSnapshots").Doc(user.ID+"_"+date).Set(ctx, snapshot)
		if err != nil {
			log.Printf("Failed to write snapshot for user %s: %v\n", user.ID, err)
			return err
		}
	}
	return nil
}

func predictionDocID(userID, questionID string) string {
	return userID + "_" + questionID
}

func isNotFound(err error) bool {
	return status.Code(err) == codes.NotFound
}

func docToUser(doc *firestore.DocumentSnapshot) (User, error) {
	var user User
	if err := doc.DataTo(&user); err != nil {
		return User{}, xerrors.Errorf(
			"consistency error. Converting %+v to internal integration struct failed: %w",
			doc,
			err,
		)
	}
	user.ID = doc.Ref.ID
	return user, nil
}

func docsToUsers(docs []*firestore.DocumentSnapshot) ([]User, error) {
	var users []User
	for _, doc := range docs {
		user, err := docToUser(doc)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

func docToMatch(doc *firestore.DocumentSnapshot) (Match, error) {
	var match Match
	if err := doc.DataTo(&match); err != nil {
		return Match{}, xerrors.Errorf(
			"consistency error. Converting %+v to internal integration struct failed: %w",
			doc,
			err,
		)
	}
	match.ID = doc.Ref.ID
	return match, nil
}

func docToPrediction(doc *firestore.DocumentSnapshot) (Prediction, error) {
	var prediction Prediction
	if err := doc.DataTo(&prediction); err != nil {
		return Prediction{}, xerrors.Errorf(
			"consistency error. Converting %+v to internal integration struct failed: %w",
			doc,
			err,
		)
	}
	return prediction, nil
}

func docsToPredictions(docs []*firestore.DocumentSnapshot) ([]Prediction, error) {
	var predictions []Prediction
	for _, doc := range docs {
		prediction, err := docToPrediction(doc)
		if err != nil {
			return nil, err
		}
		predictions = append(predictions, prediction)
	}
	return predictions, nil
}

func createMatchUpdates(patch *MatchPatch) []firestore.Update {
	var updates []firestore.Update

	if patch.Team1 != nil {
		updates = append(updates, firestore.Update{Path: "Team1", Value: *patch.Team1})
	}
	if patch.Team2 != nil {
		updates = append(updates, firestore.Update{Path: "Team2", Value: *patch.Team2})
	}
	if patch.Team1Flag != nil {
		updates = append(updates, firestore.Update{Path: "Team1Flag", Value: *patch.Team1Flag})
	}
	if patch.Team2Flag != nil {
		updates = append(updates, firestore.Update{Path: "Team2Flag", Value: *patch.Team2Flag})
	}
	if patch.StartTime != nil {
		updates = append(updates, firestore.Update{Path: "StartTime", Value: *patch.StartTime})
	}
	if patch.DurationHours != nil {
		updates = append(updates, firestore.Update{Path: "DurationHours", Value: *patch.DurationHours})
	}
	if patch.Format != nil {
		updates = append(updates, firestore.Update{Path: "Format", Value: *patch.Format})
	}

	return updates
}
