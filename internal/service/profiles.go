package service

import (
	"context"
	"fmt"
	"strings"

	wire "partnerhub/pkg/models"
)

// GetCallerUserProfile returns nil for guests and for callers without a
// saved profile.
func (s *Service) GetCallerUserProfile(ctx context.Context) (*wire.UserProfile, error) {
	c := CallerFrom(ctx)
	if c.Principal == "" {
		return nil, nil
	}
	return s.store.GetProfile(ctx, c.Principal)
}

func (s *Service) SaveCallerUserProfile(ctx context.Context, p wire.UserProfile) error {
	c := CallerFrom(ctx)
	if c.Principal == "" {
		return fmt.Errorf("%w: guests cannot save a profile", ErrForbidden)
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if err := s.store.SaveProfile(ctx, c.Principal, p); err != nil {
		return err
	}
	s.invalidate(wire.KeyProfiles)
	return nil
}

// GetUserProfile lets a caller read their own profile, and admins read any.
func (s *Service) GetUserProfile(ctx context.Context, principal string) (*wire.UserProfile, error) {
	if CallerFrom(ctx).Principal != principal || principal == "" {
		if err := s.requireAdmin(ctx); err != nil {
			return nil, err
		}
	}
	return s.store.GetProfile(ctx, principal)
}

// AssignUserRole sets principal's role and issues it a new bearer token,
// which is returned once. Any earlier token for principal stops working.
func (s *Service) AssignUserRole(ctx context.Context, principal string, role wire.UserRole) (string, error) {
	if err := s.requireAdmin(ctx); err != nil {
		return "", err
	}
	principal = strings.TrimSpace(principal)
	if principal == "" {
		return "", fmt.Errorf("%w: principal is required", ErrInvalidInput)
	}
	if !role.Valid() {
		return "", fmt.Errorf("%w: unknown role %q", ErrInvalidInput, role)
	}
	token, err := newPrincipalToken()
	if err != nil {
		return "", err
	}
	if err := s.store.AssignRole(ctx, principal, role, hashToken(token)); err != nil {
		return "", err
	}
	s.invalidate(wire.KeyProfiles)
	return token, nil
}
