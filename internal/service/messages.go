package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"partnerhub/internal/metrics"
	"partnerhub/internal/models"
	"partnerhub/internal/whatsapp"
	wire "partnerhub/pkg/models"
)

func (s *Service) ListMessages(ctx context.Context) ([]wire.WhatsAppMessage, error) {
	if err := s.requireAdmin(ctx); err != nil {
		return nil, err
	}
	return s.store.ListMessages(ctx)
}

// SendLocal records a message without delivering it anywhere.
func (s *Service) SendLocal(ctx context.Context, sender, recipient, content string) error {
	if err := s.requireAdmin(ctx); err != nil {
		return err
	}
	if sender == "" || recipient == "" || strings.TrimSpace(content) == "" {
		return fmt.Errorf("%w: sender, recipient and content are required", ErrInvalidInput)
	}
	if err := s.store.CreateMessage(ctx, &models.Message{
		ID:        s.newID(),
		Sender:    sender,
		Recipient: recipient,
		Content:   content,
		Status:    string(wire.StatusSent),
		Timestamp: s.now(),
	}); err != nil {
		return err
	}
	metrics.SendTotal.WithLabelValues("local", "sent").Inc()
	s.invalidate(wire.KeyWhatsAppMessages)
	return nil
}

// SendViaAPI delivers a text message through the Meta Cloud API. The
// recipient must be on the approved list; otherwise nothing is sent.
func (s *Service) SendViaAPI(ctx context.Context, p wire.MessagePayload) (wire.MetaApiResponse, error) {
	if err := s.requireAdmin(ctx); err != nil {
		return wire.MetaApiResponse{}, err
	}
	if p.To == "" || strings.TrimSpace(p.Content) == "" {
		return wire.MetaApiResponse{}, fmt.Errorf("%w: recipient and content are required", ErrInvalidInput)
	}

	if _, err := s.store.GetRecipient(ctx, p.To); err != nil {
		if errors.Is(err, ErrNotFound) {
			metrics.SendTotal.WithLabelValues("api", "not_approved").Inc()
			return wire.MetaApiResponse{}, fmt.Errorf("%w: %s", ErrRecipientNotApproved, p.To)
		}
		return wire.MetaApiResponse{}, err
	}

	creds, err := s.store.MetaConfig(ctx)
	if err != nil {
		return wire.MetaApiResponse{}, err
	}
	if !creds.Complete() {
		return wire.MetaApiResponse{}, ErrNotConfigured
	}

	from := p.From
	if from == "" {
		from = s.selfNumber
	}
	msg := &models.Message{
		ID:        s.newID(),
		Sender:    from,
		Recipient: p.To,
		Content:   p.Content,
		Timestamp: s.now(),
	}

	metaID, sendErr := s.meta.SendText(ctx, creds, p.To, p.Content)
	if sendErr != nil {
		log.Printf("Meta send to %s failed: %v", p.To, sendErr)
		msg.Status = string(wire.StatusFailed)
		if err := s.store.CreateMessage(ctx, msg); err != nil {
			log.Printf("Error recording failed message: %v", err)
		}
		s.invalidate(wire.KeyWhatsAppMessages)

		if whatsapp.IsNotAllowListed(sendErr) {
			metrics.SendTotal.WithLabelValues("api", "not_approved").Inc()
			return wire.MetaApiResponse{}, fmt.Errorf("%w: %v", ErrRecipientNotApproved, sendErr)
		}
		metrics.SendTotal.WithLabelValues("api", "failed").Inc()
		return wire.MetaApiResponse{}, fmt.Errorf("%w: %v", ErrUpstream, sendErr)
	}

	msg.Status = string(wire.StatusSent)
	msg.MetaMessageID = metaID
	if err := s.store.CreateMessage(ctx, msg); err != nil {
		return wire.MetaApiResponse{}, err
	}
	metrics.SendTotal.WithLabelValues("api", "sent").Inc()
	s.invalidate(wire.KeyWhatsAppMessages)

	return wire.MetaApiResponse{DeliveryStatus: wire.StatusSent, MetaMessageID: metaID}, nil
}

// RecordInbound stores a message a counterpart sent to the business number.
func (s *Service) RecordInbound(ctx context.Context, from, metaID, content string, at time.Time) error {
	if at.IsZero() {
		at = s.now()
	}
	if err := s.store.CreateMessage(ctx, &models.Message{
		ID:            s.newID(),
		MetaMessageID: metaID,
		Sender:        from,
		Recipient:     s.selfNumber,
		Content:       content,
		Status:        string(wire.StatusDelivered),
		Timestamp:     at,
	}); err != nil {
		return err
	}
	s.invalidate(wire.KeyWhatsAppMessages)
	return nil
}

// ApplyStatus records a delivery status reported by Meta. Unknown statuses
// and unknown message ids are ignored.
func (s *Service) ApplyStatus(ctx context.Context, metaID, status string) error {
	st, ok := wire.ParseMessageStatus(status)
	if !ok {
		log.Printf("Ignoring status %q for %s", status, metaID)
		return nil
	}
	updated, err := s.store.UpdateStatusByMetaID(ctx, metaID, st)
	if err != nil {
		return err
	}
	if updated {
		s.invalidate(wire.KeyWhatsAppMessages)
	}
	return nil
}
