package scoring

import (
	"encoding/json"
	"math"

	"gorm.io/datatypes"

	"sportcast/internal/models"
)

// Factor weights. This partition sums to 1.00 and is the contract that
// ranking and reporting depend on.
const (
	WeightQuality    = 0.35
	WeightDemand     = 0.25
	WeightReputation = 0.20
	WeightNovelty    = 0.10
	WeightEconomic   = 0.10
)

// Fallback factor scores used when the evaluation service misbehaves or a
// field is missing from its output.
const (
	DefaultQuality    = 70.0
	DefaultDemand     = 60.0
	DefaultReputation = 50.0
	DefaultNovelty    = 80.0
	DefaultEconomic   = 65.0
)

const (
	// Rationale when a payload omits its reasoning field.
	AutoReasoning = "automatic evaluation"
	// Rationale on the full fallback set.
	DefaultReasoning = "default scores applied (AI evaluation unavailable)"
)

// RawScores is one decoded evaluation payload. Nil factor pointers mean the
// field was missing or not a finite number.
type RawScores struct {
	Quality    *float64
	Demand     *float64
	Reputation *float64
	Novelty    *float64
	Economic   *float64

	QualityDetails    map[string]float64
	DemandDetails     map[string]float64
	ReputationDetails map[string]float64
	NoveltyDetails    map[string]float64
	EconomicDetails   map[string]float64

	Reasoning string
}

// ScoreSet is a normalized factor-score set: every factor in [0,100] and
// Total derived from the weighting contract.
type ScoreSet struct {
	Quality    float64
	Demand     float64
	Reputation float64
	Novelty    float64
	Economic   float64
	Total      float64

	QualityDetails    map[string]float64
	DemandDetails     map[string]float64
	ReputationDetails map[string]float64
	NoveltyDetails    map[string]float64
	EconomicDetails   map[string]float64

	Reasoning string
}

// Normalize repairs a raw payload field by field: missing or non-finite
// factors fall back to their defaults, everything else is clamped to
// [0,100]. It never fails; bad input degrades instead of erroring so the
// scoring pipeline cannot block on malformed model output.
func Normalize(raw RawScores) ScoreSet {
	out := ScoreSet{
		Quality:           factor(raw.Quality, DefaultQuality),
		Demand:            factor(raw.Demand, DefaultDemand),
		Reputation:        factor(raw.Reputation, DefaultReputation),
		Novelty:           factor(raw.Novelty, DefaultNovelty),
		Economic:          factor(raw.Economic, DefaultEconomic),
		QualityDetails:    detailsOrEmpty(raw.QualityDetails),
		DemandDetails:     detailsOrEmpty(raw.DemandDetails),
		ReputationDetails: detailsOrEmpty(raw.ReputationDetails),
		NoveltyDetails:    detailsOrEmpty(raw.NoveltyDetails),
		EconomicDetails:   detailsOrEmpty(raw.EconomicDetails),
		Reasoning:         raw.Reasoning,
	}
	if out.Reasoning == "" {
		out.Reasoning = AutoReasoning
	}
	out.Total = Round2(WeightQuality*out.Quality +
		WeightDemand*out.Demand +
		WeightReputation*out.Reputation +
		WeightNovelty*out.Novelty +
		WeightEconomic*out.Economic)
	return out
}

// DefaultScoreSet is the full fallback set, detail breakdowns included.
func DefaultScoreSet() ScoreSet {
	return Normalize(RawScores{
		QualityDetails: map[string]float64{
			"clarity": DefaultQuality, "data_source": DefaultQuality,
			"timeframe": DefaultQuality, "compliance": DefaultQuality,
		},
		DemandDetails: map[string]float64{
			"trend_indicators": DefaultDemand, "topic_popularity": DefaultDemand,
			"timing": DefaultDemand,
		},
		ReputationDetails: map[string]float64{
			"loyalty": DefaultReputation, "success_history": DefaultReputation,
			"bond_size": DefaultReputation,
		},
		NoveltyDetails: map[string]float64{
			"first_mover": DefaultNovelty, "uniqueness": DefaultNovelty,
		},
		EconomicDetails: map[string]float64{
			"liquidity": DefaultEconomic, "volatility": DefaultEconomic,
			"oracle_cost": DefaultEconomic,
		},
		Reasoning: DefaultReasoning,
	})
}

// ParseRaw lifts a decoded JSON object into RawScores, coercing numeric
// fields and dropping anything that is not a finite number.
func ParseRaw(payload map[string]any) RawScores {
	return RawScores{
		Quality:           number(payload["quality_score"]),
		Demand:            number(payload["demand_score"]),
		Reputation:        number(payload["reputation_score"]),
		Novelty:           number(payload["novelty_score"]),
		Economic:          number(payload["economic_score"]),
		QualityDetails:    detailMap(payload["quality_details"]),
		DemandDetails:     detailMap(payload["demand_details"]),
		ReputationDetails: detailMap(payload["reputation_details"]),
		NoveltyDetails:    detailMap(payload["novelty_details"]),
		EconomicDetails:   detailMap(payload["economic_details"]),
		Reasoning:         stringValue(payload["ai_reasoning"]),
	}
}

// Model converts the set into its persisted form for one prediction.
func (s ScoreSet) Model(predictionID uint64) models.PredictionScore {
	return models.PredictionScore{
		PredictionID:      predictionID,
		QualityScore:      s.Quality,
		DemandScore:       s.Demand,
		ReputationScore:   s.Reputation,
		NoveltyScore:      s.Novelty,
		EconomicScore:     s.Economic,
		TotalScore:        s.Total,
		QualityDetails:    toJSON(s.QualityDetails),
		DemandDetails:     toJSON(s.DemandDetails),
		ReputationDetails: toJSON(s.ReputationDetails),
		NoveltyDetails:    toJSON(s.NoveltyDetails),
		EconomicDetails:   toJSON(s.EconomicDetails),
		AIReasoning:       s.Reasoning,
	}
}

func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func factor(v *float64, def float64) float64 {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
		return def
	}
	return math.Min(100, math.Max(0, *v))
}

func detailsOrEmpty(m map[string]float64) map[string]float64 {
	if m == nil {
		return map[string]float64{}
	}
	return m
}

func number(v any) *float64 {
	switch n := v.(type) {
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return nil
		}
		return &n
	case int:
		f := float64(n)
		return &f
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return nil
		}
		return &f
	default:
		return nil
	}
}

func detailMap(v any) map[string]float64 {
	raw, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	out := make(map[string]float64, len(raw))
	for k, item := range raw {
		if n := number(item); n != nil {
			out[k] = *n
		}
	}
	return out
}

func stringValue(v any) string {
	s, _ := v.(string)
	return s
}

func toJSON(m map[string]float64) datatypes.JSON {
	if m == nil {
		m = map[string]float64{}
	}
	b, err := json.Marshal(m)
	if err != nil {
		return datatypes.JSON([]byte("{}"))
	}
	return datatypes.JSON(b)
}
