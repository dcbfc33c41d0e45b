package service

import (
	"context"
	"fmt"
	"strings"

	"partnerhub/internal/metrics"
	wire "partnerhub/pkg/models"
)

// SubmitContactForm is public. Company is the only optional field.
func (s *Service) SubmitContactForm(ctx context.Context, sub wire.ContactFormSubmission) error {
	sub.Name = strings.TrimSpace(sub.Name)
	sub.Email = strings.TrimSpace(sub.Email)
	sub.Phone = strings.TrimSpace(sub.Phone)
	sub.Company = strings.TrimSpace(sub.Company)
	if sub.Name == "" || sub.Email == "" || sub.Phone == "" || strings.TrimSpace(sub.Message) == "" {
		return fmt.Errorf("%w: name, email, phone and message are required", ErrInvalidInput)
	}
	if !strings.Contains(sub.Email, "@") {
		return fmt.Errorf("%w: email address looks malformed", ErrInvalidInput)
	}
	sub.Timestamp = s.now()

	if err := s.store.CreateSubmission(ctx, sub); err != nil {
		return err
	}
	metrics.ContactSubmissions.Inc()
	s.invalidate(wire.KeyContactFormSubmissions)
	return nil
}

// ListSubmissions returns submissions newest first, optionally filtered.
func (s *Service) ListSubmissions(ctx context.Context, query string) ([]wire.ContactFormSubmission, error) {
	if err := s.requireAdmin(ctx); err != nil {
		return nil, err
	}
	return s.store.ListSubmissions(ctx, query)
}
