package scoring

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// TextGenerator is the external generative text service.
type TextGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// PromptInput carries the candidate fields embedded into the evaluation
// prompt.
type PromptInput struct {
	GameID     string
	Prediction string
	OptionA    string
	OptionB    string

	CreatorUsername     string
	CreatorActivityDays int
	// CreatorContribution stays zero until contribution tracking is
	// persisted; the prompt still carries the field so the output schema
	// is stable.
	CreatorContribution float64
}

// Outcome reports whether a score set came from the service or from the
// fallback defaults. Degradation is resolved here and never surfaces as an
// error to callers.
type Outcome struct {
	Degraded bool
	Reason   string
}

// Scorer obtains a normalized factor-score set for one candidate from the
// text-generation service, tolerating that service's unreliability.
type Scorer struct {
	Gen    TextGenerator
	Logger *zap.Logger
}

// Score never fails: any transport error, non-2xx response, or payload
// without a syntactically valid JSON object yields the default set.
func (s *Scorer) Score(ctx context.Context, in PromptInput) (ScoreSet, Outcome) {
	if s == nil || s.Gen == nil {
		return DefaultScoreSet(), Outcome{Degraded: true, Reason: "no generator configured"}
	}

	text, err := s.Gen.GenerateContent(ctx, BuildPrompt(in))
	if err != nil {
		if s.Logger != nil {
			s.Logger.Warn("scoring generation failed, using defaults",
				zap.String("game_id", in.GameID), zap.Error(err))
		}
		return DefaultScoreSet(), Outcome{Degraded: true, Reason: "generation failed"}
	}

	payload, ok := extractJSON(text)
	if !ok {
		if s.Logger != nil {
			s.Logger.Warn("scoring response had no parseable JSON, using defaults",
				zap.String("game_id", in.GameID))
		}
		return DefaultScoreSet(), Outcome{Degraded: true, Reason: "unparseable response"}
	}

	return Normalize(ParseRaw(payload)), Outcome{}
}

// BuildPrompt renders the evaluation prompt with the fixed output schema.
func BuildPrompt(in PromptInput) string {
	return fmt.Sprintf(`You are an evaluation AI for sports prediction events. Score the following prediction on five criteria from 0 to 100 and answer in the exact JSON format below.

[Prediction]
- Game ID: %s
- Prediction: %s
- Option A: %s
- Option B: %s
- Proposer: %s
- Proposer activity days: %d
- Proposer contribution score: %.2f

[Criteria]
1. Quality: clarity, reliability of the settlement basis, a well-defined end time
2. Demand: topic popularity, trend, timeliness
3. Reputation: proposer history, past contribution and success rate
4. Novelty: overlap with existing predictions, first-mover advantage
5. Economics: expected participation, settlement (oracle) cost and risk

[Output format]
{
    "quality_score": 0,
    "demand_score": 0,
    "reputation_score": 0,
    "novelty_score": 0,
    "economic_score": 0,
    "quality_details": {"clarity": 0, "data_source": 0, "timeframe": 0, "compliance": 0},
    "demand_details": {"trend_indicators": 0, "topic_popularity": 0, "timing": 0},
    "reputation_details": {"loyalty": 0, "success_history": 0, "bond_size": 0},
    "novelty_details": {"first_mover": 0, "uniqueness": 0},
    "economic_details": {"liquidity": 0, "volatility": 0, "oracle_cost": 0},
    "ai_reasoning": "Summarize the key basis for the evaluation in one sentence."
}`,
		in.GameID, in.Prediction, in.OptionA, in.OptionB,
		in.CreatorUsername, in.CreatorActivityDays, in.CreatorContribution)
}

// extractJSON takes the substring from the first '{' to the last '}' so a
// response wrapping JSON in prose still parses.
func extractJSON(text string) (map[string]any, bool) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end < start {
		return nil, false
	}
	var payload map[string]any
	if err := json.Unmarshal([]byte(text[start:end+1]), &payload); err != nil {
		return nil, false
	}
	return payload, true
}
