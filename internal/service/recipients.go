package service

import (
	"context"
	"fmt"
	"strings"

	wire "partnerhub/pkg/models"
)

func (s *Service) AddRecipient(ctx context.Context, r wire.RecipientRecord) error {
	if err := s.requireAdmin(ctx); err != nil {
		return err
	}
	r.PhoneNumber = strings.TrimSpace(r.PhoneNumber)
	if r.PhoneNumber == "" {
		return fmt.Errorf("%w: phone number is required", ErrInvalidInput)
	}
	if !r.RecipientType.Valid() {
		return fmt.Errorf("%w: unknown recipient type %q", ErrInvalidInput, r.RecipientType)
	}
	if err := s.store.AddRecipient(ctx, r); err != nil {
		return err
	}
	s.invalidate(wire.KeyApprovedRecipients)
	return nil
}

func (s *Service) RemoveRecipient(ctx context.Context, phone string) error {
	if err := s.requireAdmin(ctx); err != nil {
		return err
	}
	if err := s.store.RemoveRecipient(ctx, phone); err != nil {
		return err
	}
	s.invalidate(wire.KeyApprovedRecipients)
	return nil
}

func (s *Service) GetRecipient(ctx context.Context, phone string) (wire.RecipientRecord, error) {
	if err := s.requireAdmin(ctx); err != nil {
		return wire.RecipientRecord{}, err
	}
	return s.store.GetRecipient(ctx, phone)
}

func (s *Service) ListRecipients(ctx context.Context) ([]wire.RecipientRecord, error) {
	if err := s.requireAdmin(ctx); err != nil {
		return nil, err
	}
	return s.store.ListRecipients(ctx)
}
