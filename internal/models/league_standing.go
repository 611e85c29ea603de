package models

import (
	"time"

	"gorm.io/datatypes"
)

type LeagueStanding struct {
	ID     uint64 `gorm:"primaryKey;autoIncrement"`
	League string `gorm:"type:varchar(50);not null;index"`
	Rank   int    `gorm:"not null"`
	Team   string `gorm:"type:varchar(100);not null"`

	Played       int `gorm:"default:0"`
	Won          int `gorm:"default:0"`
	Drawn        int `gorm:"default:0"`
	Lost         int `gorm:"default:0"`
	GoalsFor     int `gorm:"default:0"`
	GoalsAgainst int `gorm:"default:0"`
	GoalDiff     int `gorm:"default:0"`
	Points       int `gorm:"default:0"`

	// Recent match results, e.g. ["W","D","L","W","W"].
	Form datatypes.JSON `gorm:"type:jsonb"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime"`
}

func (LeagueStanding) TableName() string {
	return "league_standings"
}
