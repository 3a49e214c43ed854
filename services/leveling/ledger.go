package leveling

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"levelUpBot/models"
)

// Ledger owns persistence of cumulative XP per (user, guild).
type Ledger struct {
	db *gorm.DB
}

func NewLedger(db *gorm.DB) *Ledger {
	return &Ledger{db: db}
}

type GrantResult struct {
	OldXP int64
	NewXP int64
}

// GrantXP atomically adds amount to the user's XP in the guild, creating
// the record with amount as initial XP if absent. The read-modify-write
// happens in a single upsert statement, so it stays correct even when
// callers race. Retried message events are not deduplicated here;
// callers that retry a grant must carry their own idempotency key.
func (l *Ledger) GrantXP(userID, guildID string, amount int64) (GrantResult, error) {
	if amount <= 0 {
		return GrantResult{}, fmt.Errorf("%w: grant amount must be positive, got %d", ErrValidation, amount)
	}

	var res GrantResult
	err := l.db.Transaction(func(tx *gorm.DB) error {
		record := models.LevelRecord{DiscordID: userID, GuildID: guildID, XP: amount}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "discord_id"}, {Name: "guild_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{"xp": gorm.Expr("xp + ?", amount)}),
		}).Create(&record).Error; err != nil {
			return err
		}

		var updated models.LevelRecord
		if err := tx.Where("discord_id = ? AND guild_id = ?", userID, guildID).Take(&updated).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: level record for %s in %s vanished during grant", ErrConflict, userID, guildID)
			}
			return err
		}

		res = GrantResult{OldXP: updated.XP - amount, NewXP: updated.XP}
		return nil
	})
	return res, err
}

// GetXP returns the user's cumulative XP in the guild. The second return
// is false when no record exists.
func (l *Ledger) GetXP(userID, guildID string) (int64, bool, error) {
	var record models.LevelRecord
	err := l.db.Where("discord_id = ? AND guild_id = ?", userID, guildID).Take(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return record.XP, true, nil
}

// SetXP overwrites the user's XP, creating the record if absent.
// Administrative override; the caller should re-run reconciliation
// afterwards since this can lower the level.
func (l *Ledger) SetXP(userID, guildID string, xp int64) error {
	if xp < 0 {
		return fmt.Errorf("%w: XP cannot be negative, got %d", ErrValidation, xp)
	}

	record := models.LevelRecord{DiscordID: userID, GuildID: guildID, XP: xp}
	return l.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "discord_id"}, {Name: "guild_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"xp": xp}),
	}).Create(&record).Error
}

// DeleteRecord removes the user's XP record in the guild. Deleting an
// absent record is not an error.
func (l *Ledger) DeleteRecord(userID, guildID string) error {
	return l.db.Where("discord_id = ? AND guild_id = ?", userID, guildID).Delete(&models.LevelRecord{}).Error
}
