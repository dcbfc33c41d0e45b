package store

import (
	"context"

	"partnerhub/internal/database"
	"partnerhub/internal/models"
	wire "partnerhub/pkg/models"

	"gorm.io/gorm"
)

func (s *Store) Setting(ctx context.Context, key string) (string, error) {
	var setting models.SystemSetting
	err := s.db.WithContext(ctx).Where("key = ?", key).First(&setting).Error
	if err != nil {
		if notFound(err) == ErrNotFound {
			return "", nil
		}
		return "", err
	}
	return setting.Value, nil
}

// MetaConfig assembles the Meta credentials from the settings table.
func (s *Store) MetaConfig(ctx context.Context) (wire.MetaApiConfig, error) {
	var rows []models.SystemSetting
	keys := []string{database.SettingWhatsAppToken, database.SettingPhoneNumberID, database.SettingWABAID}
	if err := s.db.WithContext(ctx).Where("key IN ?", keys).Find(&rows).Error; err != nil {
		return wire.MetaApiConfig{}, err
	}
	var cfg wire.MetaApiConfig
	for _, r := range rows {
		switch r.Key {
		case database.SettingWhatsAppToken:
			cfg.AccessToken = r.Value
		case database.SettingPhoneNumberID:
			cfg.PhoneNumberID = r.Value
		case database.SettingWABAID:
			cfg.WhatsAppBusinessAccountID = r.Value
		}
	}
	return cfg, nil
}

func (s *Store) SaveMetaConfig(ctx context.Context, cfg wire.MetaApiConfig) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, kv := range []models.SystemSetting{
			{Key: database.SettingWhatsAppToken, Value: cfg.AccessToken},
			{Key: database.SettingPhoneNumberID, Value: cfg.PhoneNumberID},
			{Key: database.SettingWABAID, Value: cfg.WhatsAppBusinessAccountID},
		} {
			if err := tx.Save(&kv).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
