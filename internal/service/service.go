// Package service implements the actor methods on top of the store and the
// Meta Graph client. Transport concerns live in internal/api.
package service

import (
	"context"
	"errors"
	"time"

	"partnerhub/internal/store"
	"partnerhub/internal/whatsapp"
	wire "partnerhub/pkg/models"

	"github.com/google/uuid"
)

var (
	ErrNotFound             = store.ErrNotFound
	ErrAlreadyExists        = store.ErrAlreadyExists
	ErrForbidden            = errors.New("forbidden")
	ErrUnauthorized         = errors.New("invalid token")
	ErrInvalidInput         = errors.New("invalid input")
	ErrRecipientNotApproved = errors.New("recipient is not on the approved list")
	ErrNotConfigured        = errors.New("meta API is not configured")
	ErrUpstream             = errors.New("meta API request failed")
	ErrRateLimited          = errors.New("too many requests")
)

// MetaClient is the subset of the Graph API the actor needs.
type MetaClient interface {
	SendText(ctx context.Context, creds wire.MetaApiConfig, to, body string) (string, error)
	ListTemplates(ctx context.Context, creds wire.MetaApiConfig) ([]wire.ExternalWhatsAppTemplate, error)
	PhoneNumbers(ctx context.Context, creds wire.MetaApiConfig) ([]whatsapp.PhoneNumber, int, error)
	LookupPhoneNumber(ctx context.Context, creds wire.MetaApiConfig) (whatsapp.PhoneNumber, error)
	CheckToken(ctx context.Context, token string) error
}

// Notifier receives the query keys a mutation made stale.
type Notifier interface {
	Invalidate(keys ...string)
}

type Options struct {
	SelfNumber string
	UploadDir  string
	// MaxUploadBytes caps a single document; zero means 10 MiB.
	MaxUploadBytes int64
	Now            func() time.Time
	NewID          func() string
}

type Service struct {
	store      *store.Store
	meta       MetaClient
	events     Notifier
	selfNumber string
	uploadDir  string
	maxUpload  int64
	now        func() time.Time
	newID      func() string
}

func New(st *store.Store, meta MetaClient, events Notifier, opts Options) *Service {
	s := &Service{
		store:      st,
		meta:       meta,
		events:     events,
		selfNumber: opts.SelfNumber,
		uploadDir:  opts.UploadDir,
		maxUpload:  opts.MaxUploadBytes,
		now:        opts.Now,
		newID:      opts.NewID,
	}
	if s.maxUpload <= 0 {
		s.maxUpload = 10 << 20
	}
	if s.now == nil {
		s.now = func() time.Time { return time.Now().UTC() }
	}
	if s.newID == nil {
		s.newID = uuid.NewString
	}
	if s.events == nil {
		s.events = nopNotifier{}
	}
	return s
}

// SelfNumber is the operator's own WhatsApp number.
func (s *Service) SelfNumber() string {
	return s.selfNumber
}

func (s *Service) invalidate(keys ...string) {
	s.events.Invalidate(keys...)
}

type nopNotifier struct{}

func (nopNotifier) Invalidate(...string) {}
