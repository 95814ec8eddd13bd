package database

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/notedeck/notedeck/internal/config"
	"github.com/notedeck/notedeck/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func Connect(cfg *config.Config) error {
	var err error
	DB, err = gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)

	slog.Info("database connected")
	return nil
}

// Migrate runs AutoMigrate for all models, then applies the raw DDL that GORM
// tags cannot express: the case/accent-insensitive unique indexes behind
// username and note-title uniqueness, and the ticket sequence floor.
func Migrate() error {
	if err := DB.AutoMigrate(
		&models.User{},
		&models.Note{},
		&models.RefreshToken{},
		&models.SystemLog{},
	); err != nil {
		return err
	}

	statements := []string{
		`CREATE EXTENSION IF NOT EXISTS unaccent`,
		// unaccent() is only STABLE, so expression indexes need an immutable
		// wrapper bound to the default dictionary.
		`CREATE OR REPLACE FUNCTION immutable_unaccent(text)
			RETURNS text
			LANGUAGE sql IMMUTABLE PARALLEL SAFE STRICT
			AS $$ SELECT public.unaccent('public.unaccent'::regdictionary, $1) $$`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_users_username_ci
			ON users (lower(immutable_unaccent(username)))`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_notes_title_ci
			ON notes (lower(immutable_unaccent(title)))`,
		// Ticket numbers start at 500.
		`DO $$ BEGIN
			IF (SELECT last_value FROM notes_ticket_seq) < 500 THEN
				PERFORM setval('notes_ticket_seq', 500, false);
			END IF;
		END $$`,
	}
	for _, stmt := range statements {
		if err := DB.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration statement failed: %w", err)
		}
	}
	return nil
}

func Ping() error {
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
