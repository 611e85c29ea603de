package models

import (
	"time"

	"gorm.io/datatypes"
)

type News struct {
	ID      uint64 `gorm:"primaryKey;autoIncrement"`
	Time    string `gorm:"type:varchar(10);not null"`
	Title   string `gorm:"type:varchar(500);not null"`
	Content string `gorm:"type:text;not null"`
	Source  string `gorm:"type:varchar(100);not null"`
	Team    string `gorm:"type:varchar(100);not null"`
	League  string `gorm:"type:varchar(50);not null;index"`

	Likes    int `gorm:"default:0"`
	Comments int `gorm:"default:0"`
	Shares   int `gorm:"default:0"`

	Date string         `gorm:"type:varchar(20);not null"`
	Tags datatypes.JSON `gorm:"type:jsonb"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime;index"`
}

func (News) TableName() string {
	return "news"
}
