package dashboard

import (
	"context"
	"log"

	wire "partnerhub/pkg/models"
)

type ConfigManager interface {
	UpdateMetaApiConfig(ctx context.Context, cfg wire.MetaApiConfig) error
}

// SaveSettings stores the Meta credentials. All three fields are needed.
func SaveSettings(ctx context.Context, m ConfigManager, cfg wire.MetaApiConfig) Notice {
	if !cfg.Complete() {
		return Notice{Level: LevelError, Message: "All fields are required"}
	}
	if err := m.UpdateMetaApiConfig(ctx, cfg); err != nil {
		log.Printf("Save settings error: %v", err)
		return Notice{Level: LevelError, Message: "Failed to save settings"}
	}
	return Notice{Level: LevelSuccess, Message: "Settings saved successfully"}
}

type StatusSource interface {
	GetWhatsAppIntegrationStatus(ctx context.Context) (string, error)
	GetWhatsAppTokenStatus(ctx context.Context) (string, error)
	HasAtLeastOnePhoneNumberAttached(ctx context.Context) (wire.MetaPhoneNumberStatus, error)
}

// Connection summarizes the Meta integration for the status panel.
type Connection struct {
	Integration string
	Token       string
	Phone       wire.MetaPhoneNumberStatus
}

func (c Connection) Connected() bool {
	return c.Integration == wire.IntegrationConnected
}

func (c Connection) TokenValid() bool {
	return c.Token == wire.TokenValid
}

func (c Connection) HasPhoneNumber() bool {
	return c.Phone.HasAnyNumberAttached
}

// LoadConnection queries the three probes. The first failure is returned
// with whatever was gathered before it.
func LoadConnection(ctx context.Context, src StatusSource) (Connection, error) {
	var c Connection
	var err error
	if c.Integration, err = src.GetWhatsAppIntegrationStatus(ctx); err != nil {
		return c, err
	}
	if c.Token, err = src.GetWhatsAppTokenStatus(ctx); err != nil {
		return c, err
	}
	if c.Phone, err = src.HasAtLeastOnePhoneNumberAttached(ctx); err != nil {
		return c, err
	}
	return c, nil
}
