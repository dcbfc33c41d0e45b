package store

import (
	"context"

	"partnerhub/internal/models"
	wire "partnerhub/pkg/models"
)

func (s *Store) LogVerification(ctx context.Context, entry wire.WebhookVerificationLogEntry, kind wire.VerificationKind) error {
	return s.db.WithContext(ctx).Create(&models.WebhookVerification{
		Mode:         entry.Request.Mode,
		VerifyToken:  entry.Request.VerifyToken,
		Challenge:    entry.Request.Challenge,
		Outcome:      string(kind),
		ResponseCode: entry.Response.ResponseCode,
		ResponseBody: entry.Response.ResponseBody,
		CreatedAt:    entry.Timestamp,
	}).Error
}

// VerificationStats counts outcomes and returns up to limit recent logs,
// newest first. It returns nil when nothing has been logged yet.
func (s *Store) VerificationStats(ctx context.Context, limit int) (*wire.WebhookVerificationStats, error) {
	type outcomeCount struct {
		Outcome string
		N       int
	}
	var counts []outcomeCount
	if err := s.db.WithContext(ctx).Model(&models.WebhookVerification{}).
		Select("outcome, COUNT(*) AS n").Group("outcome").Scan(&counts).Error; err != nil {
		return nil, err
	}
	if len(counts) == 0 {
		return nil, nil
	}

	stats := &wire.WebhookVerificationStats{Logs: []wire.WebhookVerificationLogEntry{}}
	for _, c := range counts {
		switch wire.VerificationKind(c.Outcome) {
		case wire.VerificationSuccess:
			stats.Successful = c.N
		case wire.VerificationInvalidToken:
			stats.Failed = c.N
		case wire.VerificationModeMismatch:
			stats.ModeMismatched = c.N
		}
	}

	var rows []models.WebhookVerification
	if err := s.db.WithContext(ctx).Order("created_at DESC, id DESC").Limit(limit).Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, r := range rows {
		stats.Logs = append(stats.Logs, wire.WebhookVerificationLogEntry{
			Request: wire.MetaWebhookVerificationRequest{
				Mode:        r.Mode,
				VerifyToken: r.VerifyToken,
				Challenge:   r.Challenge,
			},
			Response: wire.MetaWebhookVerificationResponse{
				ResponseCode: r.ResponseCode,
				ResponseBody: r.ResponseBody,
			},
			Timestamp: r.CreatedAt,
		})
	}
	return stats, nil
}
