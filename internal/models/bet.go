package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Bet struct {
	ID           uint64 `gorm:"primaryKey;autoIncrement"`
	PredictionID uint64 `gorm:"not null;index"`
	UserID       uint64 `gorm:"not null;index"`
	UserAddress  string `gorm:"type:varchar(100);not null"`

	// The chosen outcome label (option_a or option_b of the prediction).
	Option string          `gorm:"type:varchar(200);not null"`
	Amount decimal.Decimal `gorm:"type:numeric(30,10);not null"`

	TransactionHash *string `gorm:"type:varchar(100)"`
	PoolID          *string `gorm:"type:varchar(100)"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime;index"`
}

func (Bet) TableName() string {
	return "bets"
}
