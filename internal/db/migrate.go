package db

import (
	"sportcast/internal/models"
)

func AutoMigrate(db *DB) error {
	if db == nil || db.Gorm == nil || db.SQL == nil {
		return nil
	}

	return db.Gorm.AutoMigrate(
		&models.User{},
		&models.News{},
		&models.CommunityPost{},
		&models.LeagueStanding{},
		&models.PredictionEvent{},
		&models.PredictionScore{},
		&models.Bet{},
	)
}
