package models

import "time"

type CommunityPost struct {
	ID       uint64 `gorm:"primaryKey;autoIncrement"`
	Category string `gorm:"type:varchar(50);not null;index"`
	Title    string `gorm:"type:varchar(500);not null"`
	Content  string `gorm:"type:text"`
	Author   string `gorm:"type:varchar(100);not null"`
	Time     string `gorm:"type:varchar(50);not null"`

	Replies      int  `gorm:"default:0"`
	Likes        int  `gorm:"default:0"`
	IsHot        bool `gorm:"default:false"`
	IsBookmarked bool `gorm:"default:false"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime;index"`
}

func (CommunityPost) TableName() string {
	return "community_posts"
}
