package service

import (
	"context"
	"crypto/subtle"
	"log"
	"net/http"

	"partnerhub/internal/database"
	"partnerhub/internal/metrics"
	wire "partnerhub/pkg/models"
)

const verificationLogLimit = 50

// VerifyMetaWebhook answers Meta's subscription handshake and logs the
// attempt.
func (s *Service) VerifyMetaWebhook(ctx context.Context, req wire.MetaWebhookVerificationRequest) (wire.WebhookVerificationOutcome, error) {
	expected, err := s.store.Setting(ctx, database.SettingVerifyToken)
	if err != nil {
		return wire.WebhookVerificationOutcome{}, err
	}

	var out wire.WebhookVerificationOutcome
	switch {
	case req.Mode != "subscribe":
		out.Kind = wire.VerificationModeMismatch
	case expected == "" || subtle.ConstantTimeCompare([]byte(req.VerifyToken), []byte(expected)) != 1:
		out.Kind = wire.VerificationInvalidToken
	default:
		out = wire.WebhookVerificationOutcome{Kind: wire.VerificationSuccess, Challenge: req.Challenge}
	}

	resp := wire.MetaWebhookVerificationResponse{ResponseCode: http.StatusForbidden, ResponseBody: "Forbidden"}
	if out.Succeeded() {
		resp = wire.MetaWebhookVerificationResponse{ResponseCode: http.StatusOK, ResponseBody: req.Challenge}
		log.Println("Webhook verified successfully!")
	} else {
		log.Printf("Webhook verification failed: %s", out.Kind)
	}
	metrics.WebhookVerifications.WithLabelValues(string(out.Kind)).Inc()

	if err := s.store.LogVerification(ctx, wire.WebhookVerificationLogEntry{
		Request:   req,
		Response:  resp,
		Timestamp: s.now(),
	}, out.Kind); err != nil {
		log.Printf("Error logging webhook verification: %v", err)
	}
	s.invalidate(wire.KeyWebhookStats)
	return out, nil
}

// GetWebhookVerificationStats returns nil before the first attempt.
func (s *Service) GetWebhookVerificationStats(ctx context.Context) (*wire.WebhookVerificationStats, error) {
	if err := s.requireAdmin(ctx); err != nil {
		return nil, err
	}
	return s.store.VerificationStats(ctx, verificationLogLimit)
}
