package models

import "time"

type User struct {
	ID             uint64 `gorm:"primaryKey;autoIncrement"`
	Username       string `gorm:"type:varchar(50);not null;uniqueIndex"`
	Email          string `gorm:"type:varchar(100);not null;uniqueIndex"`
	HashedPassword string `gorm:"type:varchar(255);not null" json:"-"`
	FullName       string `gorm:"type:varchar(100)"`

	IsActive    bool `gorm:"default:true"`
	IsSuperuser bool `gorm:"default:false"`
	IsAdmin     bool `gorm:"default:false"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime"`
	UpdatedAt time.Time `gorm:"type:timestamptz;autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}
