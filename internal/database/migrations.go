package database

import (
	"fmt"

	"gorm.io/gorm"
)

// AddIndexes adds performance-critical indexes to the database
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		// Chore indexes for list grouping and completion lookups
		{"chores", "idx_chores_family_id", "family_id"},
		{"chores", "idx_chores_assigned_to_id", "assigned_to_id"},
		{"chores", "idx_chores_next_due", "next_due"},

		// Todo indexes for filtering and sorting
		{"todos", "idx_todos_family_id", "family_id"},
		{"todos", "idx_todos_status", "status"},
		{"todos", "idx_todos_due_date", "due_date"},

		// Family member indexes
		{"family_members", "idx_family_members_family_id", "family_id"},
		{"family_members", "idx_family_members_user_id", "user_id"},

		// Rotation roster lookups in position order
		{"chore_rotation_members", "idx_rotation_members_chore_id", "chore_id, position"},

		// Chat history per family in time order
		{"chat_messages", "idx_chat_messages_family_created", "family_id, created_at"},

		// Family invite code and invitation token lookups
		{"families", "idx_families_invite_code", "invite_code"},
		{"family_invitations", "idx_family_invitations_token", "token"},
	}

	for _, idx := range indexes {
		// Check if index already exists
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
			fmt.Printf("Index %s already exists, skipping\n", idx.name)
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		fmt.Printf("Created index %s on %s(%s)\n", idx.name, idx.table, idx.columns)
	}

	return nil
}

// MigrateDatabase runs all database migrations
func MigrateDatabase(db *gorm.DB) error {
	if err := AddIndexes(db); err != nil {
		return fmt.Errorf("failed to add indexes: %w", err)
	}

	return nil
}
