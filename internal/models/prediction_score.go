package models

import (
	"time"

	"gorm.io/datatypes"
)

// PredictionScore is the AI-derived five-factor assessment of one prediction
// event. At most one row per event; the unique index turns a double-scoring
// race into a constraint violation instead of a duplicate row.
type PredictionScore struct {
	ID           uint64 `gorm:"primaryKey;autoIncrement"`
	PredictionID uint64 `gorm:"not null;uniqueIndex"`

	QualityScore    float64 `gorm:"not null"`
	DemandScore     float64 `gorm:"not null"`
	ReputationScore float64 `gorm:"not null"`
	NoveltyScore    float64 `gorm:"not null"`
	EconomicScore   float64 `gorm:"not null"`

	// Weighted sum of the five factors, rounded to 2 decimals. Derived at
	// creation and never mutated afterward.
	TotalScore float64 `gorm:"not null;index"`

	QualityDetails    datatypes.JSON `gorm:"type:jsonb"`
	DemandDetails     datatypes.JSON `gorm:"type:jsonb"`
	ReputationDetails datatypes.JSON `gorm:"type:jsonb"`
	NoveltyDetails    datatypes.JSON `gorm:"type:jsonb"`
	EconomicDetails   datatypes.JSON `gorm:"type:jsonb"`

	AIReasoning string `gorm:"type:text"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime"`
}

func (PredictionScore) TableName() string {
	return "prediction_scores"
}
