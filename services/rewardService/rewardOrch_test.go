package rewardService

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"levelUpBot/models"
)

func newMockDB() (*gorm.DB, sqlmock.Sqlmock, error) {
	db, mock, err := sqlmock.New()
	if err != nil {
		return nil, nil, err
	}

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})

	return gormDB, mock, err
}

func TestDeleteRewardFreesLevelSlot(t *testing.T) {
	db, mock, err := newMockDB()
	if err != nil {
		t.Fatalf("Failed to create mock DB: %v", err)
	}
	defer func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	}()

	// Removal must issue a real DELETE; a tombstone would keep the
	// (guild_id, level) unique index occupied and block re-adding a
	// reward at the same level.
	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `role_rewards`").
		WithArgs("guild1", 5).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `role_rewards`").
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	removed, err := DeleteReward(db, "guild1", 5)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if removed != 1 {
		t.Errorf("Expected 1 reward removed, got %d", removed)
	}

	reward := models.RoleReward{GuildID: "guild1", Level: 5, RoleID: "roleC"}
	if err := db.Create(&reward).Error; err != nil {
		t.Errorf("Re-adding a reward at the freed level failed: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("Unmet expectations: %v", err)
	}
}

func TestDeleteRewardAbsentLevel(t *testing.T) {
	db, mock, err := newMockDB()
	if err != nil {
		t.Fatalf("Failed to create mock DB: %v", err)
	}
	defer func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	}()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `role_rewards`").
		WithArgs("guild1", 99).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	removed, err := DeleteReward(db, "guild1", 99)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if removed != 0 {
		t.Errorf("Expected no rows removed, got %d", removed)
	}
}
