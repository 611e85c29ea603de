package scoring

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type fakeGen struct {
	text string
	err  error
}

func (g *fakeGen) GenerateContent(ctx context.Context, prompt string) (string, error) {
	return g.text, g.err
}

func TestScore_TransportFailureFallsBackToDefaults(t *testing.T) {
	s := &Scorer{Gen: &fakeGen{err: errors.New("connection refused")}}
	set, outcome := s.Score(context.Background(), PromptInput{GameID: "epl-102"})
	if !outcome.Degraded {
		t.Fatalf("expected degraded outcome")
	}
	if set.Total != 65.0 || set.Quality != 70 || set.Novelty != 80 {
		t.Fatalf("expected default set, got %+v", set)
	}
}

func TestScore_NonJSONResponseFallsBackToDefaults(t *testing.T) {
	s := &Scorer{Gen: &fakeGen{text: "I could not evaluate this prediction."}}
	set, outcome := s.Score(context.Background(), PromptInput{})
	if !outcome.Degraded {
		t.Fatalf("expected degraded outcome")
	}
	if set.Total != 65.0 {
		t.Fatalf("total=%v want 65.0", set.Total)
	}
}

func TestScore_JSONWrappedInProse(t *testing.T) {
	text := `Sure, here is the evaluation:
{"quality_score": 90, "demand_score": 80, "reputation_score": 70, "novelty_score": 60, "economic_score": 50, "ai_reasoning": "solid"}
Let me know if you need anything else.`
	s := &Scorer{Gen: &fakeGen{text: text}}
	set, outcome := s.Score(context.Background(), PromptInput{})
	if outcome.Degraded {
		t.Fatalf("unexpected degraded outcome: %+v", outcome)
	}
	want := Round2(0.35*90 + 0.25*80 + 0.20*70 + 0.10*60 + 0.10*50)
	if set.Total != want {
		t.Fatalf("total=%v want %v", set.Total, want)
	}
	if set.Reasoning != "solid" {
		t.Fatalf("reasoning=%q", set.Reasoning)
	}
}

func TestScore_PartialPayloadRepaired(t *testing.T) {
	text := `{"quality_score": 85, "demand_score": 900, "reputation_score": "bad"}`
	s := &Scorer{Gen: &fakeGen{text: text}}
	set, outcome := s.Score(context.Background(), PromptInput{})
	if outcome.Degraded {
		t.Fatalf("partial payload should not degrade wholesale")
	}
	if set.Quality != 85 || set.Demand != 100 || set.Reputation != DefaultReputation {
		t.Fatalf("repair mismatch: %+v", set)
	}
}

func TestBuildPrompt_EmbedsCandidate(t *testing.T) {
	p := BuildPrompt(PromptInput{
		GameID:          "kbo-233",
		Prediction:      "Doosan beat LG by 2+ runs",
		OptionA:         "Doosan by 2+",
		OptionB:         "Any other result",
		CreatorUsername: "fan84",
	})
	for _, want := range []string{"kbo-233", "Doosan beat LG by 2+ runs", "Doosan by 2+", "Any other result", "fan84", "quality_score"} {
		if !strings.Contains(p, want) {
			t.Fatalf("prompt missing %q", want)
		}
	}
}
