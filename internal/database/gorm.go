package database

import (
	"fmt"
	"log"

	"partnerhub/internal/config"
	"partnerhub/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects to the configured database and runs auto-migration.
func Open(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "postgres":
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required for the postgres driver")
		}
		dialector = postgres.Open(cfg.DatabaseURL)
	case "sqlite", "":
		dialector = sqlite.Open(cfg.DBPath)
	default:
		return nil, fmt.Errorf("unknown DB_DRIVER %q", cfg.DBDriver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", cfg.DBDriver, err)
	}
	log.Printf("Connected to %s successfully", dialector.Name())

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates or updates every table.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("auto-migration: %w", err)
	}
	log.Println("Database migration completed")
	return nil
}

// SyncConfig reconciles Meta settings between env config and the database.
// Values already stored win; env values seed an empty table.
func SyncConfig(db *gorm.DB, cfg *config.Config) {
	settings := []struct {
		Key   string
		Value *string
	}{
		{SettingVerifyToken, &cfg.VerifyToken},
		{SettingWhatsAppToken, &cfg.WhatsAppToken},
		{SettingPhoneNumberID, &cfg.PhoneNumberID},
		{SettingWABAID, &cfg.WhatsAppBusinessAccountID},
	}

	for _, s := range settings {
		var setting models.SystemSetting
		if err := db.Where("key = ?", s.Key).First(&setting).Error; err == nil {
			if setting.Value != "" {
				*s.Value = setting.Value
			}
		} else if *s.Value != "" {
			if err := db.Create(&models.SystemSetting{Key: s.Key, Value: *s.Value}).Error; err != nil {
				log.Printf("Error seeding setting %s: %v", s.Key, err)
			}
		}
	}
	log.Println("System settings synchronized from database")
}

const (
	SettingVerifyToken   = "VERIFY_TOKEN"
	SettingWhatsAppToken = "WHATSAPP_TOKEN"
	SettingPhoneNumberID = "PHONE_NUMBER_ID"
	SettingWABAID        = "WABA_ID"
)
