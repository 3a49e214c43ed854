package services

import (
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"levelUpBot/models"
)

// RunRewardModeBackfill stamps a reward mode onto guild rows created
// before the column existed. One-shot, tracked in the migrations table.
func RunRewardModeBackfill(db *gorm.DB) error {
	var existingMigration models.Migration
	result := db.Where("name = ?", "reward_mode_backfill").First(&existingMigration)
	if result.Error == nil && existingMigration.ID != 0 {
		log.Println("Reward mode backfill has already been executed. Skipping.")
		return nil
	}

	backfill := db.Model(&models.Guild{}).
		Where("reward_mode = ? OR reward_mode IS NULL", "").
		Update("reward_mode", models.RewardModeNonStacking)
	if backfill.Error != nil {
		return fmt.Errorf("error backfilling reward mode: %v", backfill.Error)
	}
	if backfill.RowsAffected > 0 {
		log.Printf("Backfilled reward mode for %d guilds", backfill.RowsAffected)
	}

	migration := models.Migration{
		Name:       "reward_mode_backfill",
		ExecutedAt: time.Now(),
	}
	if err := db.Create(&migration).Error; err != nil {
		return fmt.Errorf("error marking migration as complete: %v", err)
	}

	return nil
}
