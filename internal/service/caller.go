package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	wire "partnerhub/pkg/models"
)

// Caller identifies who invoked an actor method. The transport only builds
// one from a verified credential.
type Caller struct {
	Principal string
	// Admin is set when the request carried the admin token.
	Admin bool
}

// AuthenticateToken resolves a principal token issued by AssignUserRole.
func (s *Service) AuthenticateToken(ctx context.Context, token string) (Caller, error) {
	if token == "" {
		return Caller{}, ErrUnauthorized
	}
	principal, ok, err := s.store.PrincipalByTokenHash(ctx, hashToken(token))
	if err != nil {
		return Caller{}, err
	}
	if !ok {
		return Caller{}, ErrUnauthorized
	}
	return Caller{Principal: principal}, nil
}

func newPrincipalToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return hex.EncodeToString(b), nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

type callerKey struct{}

func WithCaller(ctx context.Context, c Caller) context.Context {
	return context.WithValue(ctx, callerKey{}, c)
}

// CallerFrom returns the anonymous caller when none was attached.
func CallerFrom(ctx context.Context) Caller {
	c, _ := ctx.Value(callerKey{}).(Caller)
	return c
}

// CallerRole resolves the caller's role: the admin token wins, then an
// assigned role, then user for any named principal, else guest.
func (s *Service) CallerRole(ctx context.Context) (wire.UserRole, error) {
	c := CallerFrom(ctx)
	if c.Admin {
		return wire.RoleAdmin, nil
	}
	if c.Principal == "" {
		return wire.RoleGuest, nil
	}
	role, ok, err := s.store.GetRole(ctx, c.Principal)
	if err != nil {
		return "", err
	}
	if !ok {
		return wire.RoleUser, nil
	}
	return role, nil
}

func (s *Service) IsCallerAdmin(ctx context.Context) (bool, error) {
	role, err := s.CallerRole(ctx)
	if err != nil {
		return false, err
	}
	return role == wire.RoleAdmin, nil
}

func (s *Service) requireAdmin(ctx context.Context) error {
	ok, err := s.IsCallerAdmin(ctx)
	if err != nil {
		return err
	}
	if !ok {
		return ErrForbidden
	}
	return nil
}
