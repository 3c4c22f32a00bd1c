package database

import (
	"fmt"

	"gorm.io/gorm"
)

// AddIndexes adds lookup indexes that AutoMigrate's unique constraints do not
// cover. Safe to run repeatedly.
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		// Invite-code redemption looks up by code + expiry.
		{"organizations", "idx_organizations_invite_code", "invite_code"},

		// Member listings filter by organization; /me queries filter by user.
		{"memberships", "idx_memberships_organization_id", "organization_id"},
		{"memberships", "idx_memberships_user_id", "user_id"},
	}

	for _, idx := range indexes {
		var count int64
		err := db.Raw(`
			SELECT COUNT(*)
			FROM pg_indexes
			WHERE tablename = ? AND indexname = ?
		`, idx.table, idx.name).Count(&count).Error

		if err != nil {
			return fmt.Errorf("failed to check index %s: %w", idx.name, err)
		}

		if count > 0 {
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
	}

	return nil
}
