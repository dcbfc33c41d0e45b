package service

import (
	"context"
	"fmt"
	"strings"

	wire "partnerhub/pkg/models"
)

func (s *Service) CreateTemplate(ctx context.Context, in wire.TemplateInput) (string, error) {
	if err := s.requireAdmin(ctx); err != nil {
		return "", err
	}
	if strings.TrimSpace(in.Name) == "" {
		return "", fmt.Errorf("%w: template name is required", ErrInvalidInput)
	}
	id := s.newID()
	if err := s.store.CreateTemplate(ctx, id, in, s.now()); err != nil {
		return "", err
	}
	s.invalidate(wire.KeyTemplates)
	return id, nil
}

func (s *Service) UpdateTemplate(ctx context.Context, in wire.TemplateUpdateInput) error {
	if err := s.requireAdmin(ctx); err != nil {
		return err
	}
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: template name is required", ErrInvalidInput)
	}
	if err := s.store.UpdateTemplate(ctx, in, s.now()); err != nil {
		return err
	}
	s.invalidate(wire.KeyTemplates)
	return nil
}

func (s *Service) DeleteTemplate(ctx context.Context, id string) error {
	if err := s.requireAdmin(ctx); err != nil {
		return err
	}
	if err := s.store.DeleteTemplate(ctx, id); err != nil {
		return err
	}
	s.invalidate(wire.KeyTemplates)
	return nil
}

func (s *Service) GetTemplate(ctx context.Context, id string) (wire.WhatsAppTemplate, error) {
	if err := s.requireAdmin(ctx); err != nil {
		return wire.WhatsAppTemplate{}, err
	}
	return s.store.GetTemplate(ctx, id)
}

func (s *Service) ListTemplates(ctx context.Context) ([]wire.WhatsAppTemplate, error) {
	if err := s.requireAdmin(ctx); err != nil {
		return nil, err
	}
	return s.store.ListTemplates(ctx)
}

// ListMetaTemplates returns the templates registered with Meta.
func (s *Service) ListMetaTemplates(ctx context.Context) ([]wire.ExternalWhatsAppTemplate, error) {
	if err := s.requireAdmin(ctx); err != nil {
		return nil, err
	}
	creds, err := s.store.MetaConfig(ctx)
	if err != nil {
		return nil, err
	}
	if !creds.Complete() {
		return nil, ErrNotConfigured
	}
	tmpls, err := s.meta.ListTemplates(ctx, creds)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	return tmpls, nil
}
