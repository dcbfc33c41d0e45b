package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"partnerhub/internal/whatsapp"
	wire "partnerhub/pkg/models"
)

const (
	StatusNotConfigured = wire.IntegrationNotConfigured
	StatusConnected     = wire.IntegrationConnected
	TokenValid          = wire.TokenValid
	TokenInvalid        = wire.TokenInvalid
)

func (s *Service) GetMetaApiConfig(ctx context.Context) (wire.MetaApiConfig, error) {
	if err := s.requireAdmin(ctx); err != nil {
		return wire.MetaApiConfig{}, err
	}
	return s.store.MetaConfig(ctx)
}

func (s *Service) UpdateMetaApiConfig(ctx context.Context, cfg wire.MetaApiConfig) error {
	if err := s.requireAdmin(ctx); err != nil {
		return err
	}
	cfg.AccessToken = strings.TrimSpace(cfg.AccessToken)
	cfg.PhoneNumberID = strings.TrimSpace(cfg.PhoneNumberID)
	cfg.WhatsAppBusinessAccountID = strings.TrimSpace(cfg.WhatsAppBusinessAccountID)
	if !cfg.Complete() {
		return fmt.Errorf("%w: access token, phone number id and business account id are required", ErrInvalidInput)
	}
	if err := s.store.SaveMetaConfig(ctx, cfg); err != nil {
		return err
	}
	log.Println("Meta API configuration updated")
	s.invalidate(
		wire.KeyMetaApiConfig,
		wire.KeyWhatsAppIntegrationStatus,
		wire.KeyWhatsAppTokenStatus,
		wire.KeyPhoneNumberStatus,
		wire.KeyWhatsAppAccountDetails,
	)
	return nil
}

// GetWhatsAppAccountDetails returns the stored credentials, or nil when
// they are incomplete.
func (s *Service) GetWhatsAppAccountDetails(ctx context.Context) (*wire.MetaApiConfig, error) {
	if err := s.requireAdmin(ctx); err != nil {
		return nil, err
	}
	cfg, err := s.store.MetaConfig(ctx)
	if err != nil {
		return nil, err
	}
	if !cfg.Complete() {
		return nil, nil
	}
	return &cfg, nil
}

// GetWhatsAppIntegrationStatus probes the configured phone number.
func (s *Service) GetWhatsAppIntegrationStatus(ctx context.Context) (string, error) {
	if err := s.requireAdmin(ctx); err != nil {
		return "", err
	}
	cfg, err := s.store.MetaConfig(ctx)
	if err != nil {
		return "", err
	}
	if !cfg.Complete() {
		return StatusNotConfigured, nil
	}
	if _, err := s.meta.LookupPhoneNumber(ctx, cfg); err != nil {
		return "Error: " + err.Error(), nil
	}
	return StatusConnected, nil
}

func (s *Service) GetWhatsAppTokenStatus(ctx context.Context) (string, error) {
	if err := s.requireAdmin(ctx); err != nil {
		return "", err
	}
	cfg, err := s.store.MetaConfig(ctx)
	if err != nil {
		return "", err
	}
	if cfg.AccessToken == "" {
		return StatusNotConfigured, nil
	}
	if err := s.meta.CheckToken(ctx, cfg.AccessToken); err != nil {
		var apiErr *whatsapp.APIError
		if !errors.As(err, &apiErr) {
			return "", fmt.Errorf("%w: %v", ErrUpstream, err)
		}
		log.Printf("Access token rejected: %v", err)
		return TokenInvalid, nil
	}
	return TokenValid, nil
}

// HasAtLeastOnePhoneNumberAttached counts the numbers on the business
// account. A Graph error is reported through APIStatusCode rather than
// returned.
func (s *Service) HasAtLeastOnePhoneNumberAttached(ctx context.Context) (wire.MetaPhoneNumberStatus, error) {
	if err := s.requireAdmin(ctx); err != nil {
		return wire.MetaPhoneNumberStatus{}, err
	}
	cfg, err := s.store.MetaConfig(ctx)
	if err != nil {
		return wire.MetaPhoneNumberStatus{}, err
	}
	if !cfg.Complete() {
		return wire.MetaPhoneNumberStatus{}, nil
	}

	nums, code, err := s.meta.PhoneNumbers(ctx, cfg)
	if err != nil {
		var apiErr *whatsapp.APIError
		if !errors.As(err, &apiErr) {
			return wire.MetaPhoneNumberStatus{}, fmt.Errorf("%w: %v", ErrUpstream, err)
		}
		return wire.MetaPhoneNumberStatus{APIStatusCode: apiErr.Status}, nil
	}

	st := wire.MetaPhoneNumberStatus{
		HasAnyNumberAttached: len(nums) > 0,
		TotalNumbers:         len(nums),
		APIStatusCode:        code,
	}
	for _, n := range nums {
		if n.Sandbox() {
			st.TestNumbers++
		} else {
			st.ProductionNumbers++
		}
	}
	return st, nil
}
