package migrations

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/stagetribe/stagetribe/internal/domain/client"
	"github.com/stagetribe/stagetribe/internal/domain/level"
	"github.com/stagetribe/stagetribe/internal/domain/user"
	"github.com/stagetribe/stagetribe/internal/storage"
)

// RunMigrations runs database migrations for both stores
func RunMigrations(users, levels *gorm.DB) error {
	if err := users.AutoMigrate(&user.User{}, &client.Client{}); err != nil {
		return fmt.Errorf("failed to migrate users database: %w", err)
	}
	if err := levels.AutoMigrate(&level.Level{}, &storage.LevelRecord{}, &storage.DiscordAttachment{}); err != nil {
		return fmt.Errorf("failed to migrate levels database: %w", err)
	}
	return nil
}
