package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Prediction event lifecycle statuses. Status is mutated only by the scoring
// orchestrator's winner selection or the explicit admin approval endpoint.
const (
	PredictionStatusPending  = "pending"
	PredictionStatusApproved = "approved"
	PredictionStatusRejected = "rejected"
	PredictionStatusActive   = "active"
	PredictionStatusExpired  = "expired"
)

type PredictionEvent struct {
	ID         uint64 `gorm:"primaryKey;autoIncrement"`
	GameID     string `gorm:"type:varchar(100);not null;index"`
	Prediction string `gorm:"type:text;not null"`

	// Two mutually exclusive outcome labels.
	OptionA string `gorm:"type:varchar(200);not null"`
	OptionB string `gorm:"type:varchar(200);not null"`

	// Betting window in hours.
	Duration int     `gorm:"not null"`
	Deadline *string `gorm:"type:varchar(50)"`

	CreatorID uint64 `gorm:"not null;index"`
	Creator   User

	Status string `gorm:"type:varchar(20);not null;index;default:'pending'"`

	CreatedAt time.Time  `gorm:"type:timestamptz;autoCreateTime;index"`
	ExpiresAt *time.Time `gorm:"type:timestamptz"`

	TotalBets   int             `gorm:"default:0"`
	TotalAmount decimal.Decimal `gorm:"type:numeric(30,10);not null;default:0"`

	UserAddress *string `gorm:"type:varchar(100)"`
	PoolID      *string `gorm:"type:varchar(100)"`
}

func (PredictionEvent) TableName() string {
	return "prediction_events"
}
