package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"sportcast/internal/apperrors"
	"sportcast/internal/models"
	"sportcast/internal/scoring"
)

// scriptedGen answers the evaluation prompt with a payload whose five factor
// scores all equal the value scripted for the candidate's game id. With the
// weights summing to one the resulting total equals that value exactly.
type scriptedGen struct {
	byGame map[string]float64
}

func (g *scriptedGen) GenerateContent(ctx context.Context, prompt string) (string, error) {
	for id, v := range g.byGame {
		if strings.Contains(prompt, "Game ID: "+id) {
			return scorePayload(v), nil
		}
	}
	return "", errors.New("no scripted response")
}

func scorePayload(v float64) string {
	return fmt.Sprintf(`{"quality_score": %[1]v, "demand_score": %[1]v, "reputation_score": %[1]v, "novelty_score": %[1]v, "economic_score": %[1]v, "ai_reasoning": "scripted"}`, v)
}

func pendingEvent(id uint64, gameID string) models.PredictionEvent {
	return models.PredictionEvent{
		ID:         id,
		GameID:     gameID,
		Prediction: "home team wins",
		OptionA:    "Yes",
		OptionB:    "No",
		Status:     models.PredictionStatusPending,
	}
}

func newTestService(repo *stubRepo, gen scoring.TextGenerator) *ScoringService {
	return NewScoringService(repo, &scoring.Scorer{Gen: gen}, nil)
}

func TestCalculateOneRequiresAdmin(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(repo, &scriptedGen{})

	if _, err := svc.CalculateOne(context.Background(), nil, 1); !errors.Is(err, apperrors.ErrForbidden) {
		t.Fatalf("nil actor: err = %v, want ErrForbidden", err)
	}
	member := &models.User{ID: 7, IsActive: true}
	if _, err := svc.CalculateOne(context.Background(), member, 1); !errors.Is(err, apperrors.ErrForbidden) {
		t.Fatalf("non-admin actor: err = %v, want ErrForbidden", err)
	}
}

func TestCalculateOneUnknownCandidate(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(repo, &scriptedGen{})

	_, err := svc.CalculateOne(context.Background(), SystemActor(), 42)
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestCalculateOneAlreadyScored(t *testing.T) {
	repo := newStubRepo()
	repo.predictions[1] = pendingEvent(1, "g1")
	repo.scores[1] = models.PredictionScore{PredictionID: 1, TotalScore: 80}
	svc := newTestService(repo, &scriptedGen{byGame: map[string]float64{"g1": 90}})

	_, err := svc.CalculateOne(context.Background(), SystemActor(), 1)
	if !errors.Is(err, apperrors.ErrConflict) {
		t.Fatalf("err = %v, want ErrConflict", err)
	}
	if got := repo.scores[1].TotalScore; got != 80 {
		t.Fatalf("existing score mutated: total = %v", got)
	}
	if len(repo.scores) != 1 {
		t.Fatalf("score rows = %d, want 1", len(repo.scores))
	}
}

func TestCalculateOneDegradesToDefaults(t *testing.T) {
	repo := newStubRepo()
	repo.predictions[3] = pendingEvent(3, "g3")
	svc := newTestService(repo, &scriptedGen{}) // nothing scripted: generation fails

	score, err := svc.CalculateOne(context.Background(), SystemActor(), 3)
	if err != nil {
		t.Fatalf("CalculateOne: %v", err)
	}
	if score.TotalScore != 65.0 {
		t.Fatalf("total = %v, want default 65.0", score.TotalScore)
	}
	if _, ok := repo.scores[3]; !ok {
		t.Fatal("default score not persisted")
	}
}

func TestCalculateBatchSkipsFailedInsert(t *testing.T) {
	repo := newStubRepo()
	repo.predictions[1] = pendingEvent(1, "g1")
	repo.predictions[2] = pendingEvent(2, "g2")
	repo.predictions[3] = pendingEvent(3, "g3")
	repo.failInsert[2] = errInsertRefused
	svc := newTestService(repo, &scriptedGen{byGame: map[string]float64{"g1": 50, "g2": 60, "g3": 70}})

	created, err := svc.CalculateBatch(context.Background(), SystemActor())
	if err != nil {
		t.Fatalf("CalculateBatch: %v", err)
	}
	if len(created) != 2 {
		t.Fatalf("created = %d, want 2", len(created))
	}
	if _, ok := repo.scores[2]; ok {
		t.Fatal("failed candidate has a score row")
	}
	if _, ok := repo.scores[1]; !ok {
		t.Fatal("candidate 1 score missing")
	}
	if _, ok := repo.scores[3]; !ok {
		t.Fatal("candidate 3 score missing")
	}
}

func TestCalculateBatchSecondRunCreatesNothing(t *testing.T) {
	repo := newStubRepo()
	repo.predictions[1] = pendingEvent(1, "g1")
	repo.predictions[2] = pendingEvent(2, "g2")
	svc := newTestService(repo, &scriptedGen{byGame: map[string]float64{"g1": 55, "g2": 66}})

	first, err := svc.CalculateBatch(context.Background(), SystemActor())
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	if len(first) != 2 {
		t.Fatalf("first run created = %d, want 2", len(first))
	}
	second, err := svc.CalculateBatch(context.Background(), SystemActor())
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if len(second) != 0 {
		t.Fatalf("second run created = %d, want 0", len(second))
	}
}

func TestSelectBestTieGoesToFirstEncountered(t *testing.T) {
	repo := newStubRepo()
	repo.predictions[1] = pendingEvent(1, "g1")
	repo.predictions[2] = pendingEvent(2, "g2")
	repo.predictions[3] = pendingEvent(3, "g3")
	repo.predictions[4] = pendingEvent(4, "g4")
	svc := newTestService(repo, &scriptedGen{byGame: map[string]float64{
		"g1": 70.0, "g2": 95.5, "g3": 95.5, "g4": 40.0,
	}})

	result, err := svc.CalculateBatchAndSelectBest(context.Background(), SystemActor())
	if err != nil {
		t.Fatalf("CalculateBatchAndSelectBest: %v", err)
	}
	if result.Winner == nil {
		t.Fatal("no winner selected")
	}
	if result.Winner.PredictionID != 2 {
		t.Fatalf("winner = %d, want 2 (first of the tied maxima)", result.Winner.PredictionID)
	}
	if result.Winner.TotalScore != 95.5 {
		t.Fatalf("winner total = %v, want 95.5", result.Winner.TotalScore)
	}
	if result.DeletedCount != 3 {
		t.Fatalf("deleted = %d, want 3", result.DeletedCount)
	}
	if len(result.Scores) != 4 {
		t.Fatalf("computed scores = %d, want 4", len(result.Scores))
	}

	if result.Event == nil || result.Event.ID != 2 {
		t.Fatalf("result event = %+v, want prediction 2", result.Event)
	}
	if result.Event.Status != models.PredictionStatusApproved {
		t.Fatalf("result event status = %q, want approved", result.Event.Status)
	}

	winner, ok := repo.predictions[2]
	if !ok {
		t.Fatal("winner event deleted")
	}
	if winner.Status != models.PredictionStatusApproved {
		t.Fatalf("winner status = %q, want approved", winner.Status)
	}
	if len(repo.predictions) != 1 {
		t.Fatalf("surviving events = %d, want 1", len(repo.predictions))
	}
	if len(repo.scores) != 1 {
		t.Fatalf("surviving score rows = %d, want 1", len(repo.scores))
	}
	if _, ok := repo.scores[2]; !ok {
		t.Fatal("winner score deleted")
	}
}

func TestSelectBestDeletesScoringFailedCandidates(t *testing.T) {
	repo := newStubRepo()
	repo.predictions[1] = pendingEvent(1, "g1")
	repo.predictions[2] = pendingEvent(2, "g2")
	repo.predictions[3] = pendingEvent(3, "g3")
	repo.failInsert[2] = errInsertRefused
	svc := newTestService(repo, &scriptedGen{byGame: map[string]float64{
		"g1": 60.0, "g2": 99.0, "g3": 88.0,
	}})

	result, err := svc.CalculateBatchAndSelectBest(context.Background(), SystemActor())
	if err != nil {
		t.Fatalf("CalculateBatchAndSelectBest: %v", err)
	}
	if result.Winner == nil || result.Winner.PredictionID != 3 {
		t.Fatalf("winner = %+v, want prediction 3", result.Winner)
	}
	if result.DeletedCount != 2 {
		t.Fatalf("deleted = %d, want 2 (losing candidate plus the unpersisted one)", result.DeletedCount)
	}
	if len(result.Scores) != 2 {
		t.Fatalf("persisted scores = %d, want 2", len(result.Scores))
	}

	if _, ok := repo.predictions[2]; ok {
		t.Fatal("candidate without a persisted score survived the purge")
	}
	if _, ok := repo.predictions[1]; ok {
		t.Fatal("losing candidate survived the purge")
	}
	winner, ok := repo.predictions[3]
	if !ok {
		t.Fatal("winner event deleted")
	}
	if winner.Status != models.PredictionStatusApproved {
		t.Fatalf("winner status = %q, want approved", winner.Status)
	}
	if len(repo.scores) != 1 {
		t.Fatalf("surviving score rows = %d, want 1", len(repo.scores))
	}
}

func TestSelectBestEmptySetIsNoOp(t *testing.T) {
	repo := newStubRepo()
	repo.predictions[9] = models.PredictionEvent{ID: 9, GameID: "g9", Status: models.PredictionStatusApproved}
	svc := newTestService(repo, &scriptedGen{})

	result, err := svc.CalculateBatchAndSelectBest(context.Background(), SystemActor())
	if err != nil {
		t.Fatalf("CalculateBatchAndSelectBest: %v", err)
	}
	if result.Winner != nil || result.DeletedCount != 0 || len(result.Scores) != 0 {
		t.Fatalf("unexpected mutation: %+v", result)
	}
	if len(repo.predictions) != 1 || len(repo.scores) != 0 {
		t.Fatal("storage changed on empty unscored set")
	}
}

func TestSelectBestNothingPersisted(t *testing.T) {
	repo := newStubRepo()
	repo.predictions[1] = pendingEvent(1, "g1")
	repo.predictions[2] = pendingEvent(2, "g2")
	repo.failInsert[1] = errInsertRefused
	repo.failInsert[2] = errInsertRefused
	svc := newTestService(repo, &scriptedGen{byGame: map[string]float64{"g1": 80, "g2": 90}})

	result, err := svc.CalculateBatchAndSelectBest(context.Background(), SystemActor())
	if err != nil {
		t.Fatalf("CalculateBatchAndSelectBest: %v", err)
	}
	if result.Winner != nil {
		t.Fatalf("winner = %+v, want none", result.Winner)
	}
	if result.DeletedCount != 0 {
		t.Fatalf("deleted = %d, want 0", result.DeletedCount)
	}
	if len(repo.predictions) != 2 {
		t.Fatalf("events = %d, want 2 untouched", len(repo.predictions))
	}
}
