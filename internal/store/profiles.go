package store

import (
	"context"
	"errors"

	"partnerhub/internal/models"
	wire "partnerhub/pkg/models"

	"gorm.io/gorm/clause"
)

// GetProfile returns nil when the principal has no saved profile.
func (s *Store) GetProfile(ctx context.Context, principal string) (*wire.UserProfile, error) {
	var p models.UserProfile
	err := s.db.WithContext(ctx).Where("principal = ?", principal).First(&p).Error
	if err != nil {
		if errors.Is(notFound(err), ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &wire.UserProfile{Name: p.Name, Email: p.Email, Phone: p.Phone}, nil
}

func (s *Store) SaveProfile(ctx context.Context, principal string, p wire.UserProfile) error {
	return s.db.WithContext(ctx).Save(&models.UserProfile{
		Principal: principal,
		Name:      p.Name,
		Email:     p.Email,
		Phone:     p.Phone,
	}).Error
}

// GetRole returns the assigned role and whether one exists.
func (s *Store) GetRole(ctx context.Context, principal string) (wire.UserRole, bool, error) {
	var r models.RoleAssignment
	err := s.db.WithContext(ctx).Where("principal = ?", principal).First(&r).Error
	if err != nil {
		if errors.Is(notFound(err), ErrNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return wire.UserRole(r.Role), true, nil
}

// AssignRole sets the principal's role and replaces its token hash.
func (s *Store) AssignRole(ctx context.Context, principal string, role wire.UserRole, tokenHash string) error {
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "principal"}},
		DoUpdates: clause.AssignmentColumns([]string{"role", "token_hash", "updated_at"}),
	}).Create(&models.RoleAssignment{Principal: principal, Role: string(role), TokenHash: tokenHash}).Error
}

// PrincipalByTokenHash returns the principal whose token hashes to hash.
func (s *Store) PrincipalByTokenHash(ctx context.Context, hash string) (string, bool, error) {
	if hash == "" {
		return "", false, nil
	}
	var r models.RoleAssignment
	err := s.db.WithContext(ctx).Where("token_hash = ?", hash).First(&r).Error
	if err != nil {
		if errors.Is(notFound(err), ErrNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return r.Principal, true, nil
}
