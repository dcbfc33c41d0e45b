package store

import (
	"context"
	"strings"
	"time"

	"partnerhub/internal/models"
	wire "partnerhub/pkg/models"
)

func (s *Store) CreateSubmission(ctx context.Context, sub wire.ContactFormSubmission) error {
	return s.db.WithContext(ctx).Create(&models.ContactSubmission{
		Name:      sub.Name,
		Email:     sub.Email,
		Phone:     sub.Phone,
		Company:   sub.Company,
		Message:   sub.Message,
		CreatedAt: sub.Timestamp,
	}).Error
}

// ListSubmissions returns submissions newest first. A non-empty query keeps
// entries whose name, email, phone or company contains it, ignoring case.
func (s *Store) ListSubmissions(ctx context.Context, query string) ([]wire.ContactFormSubmission, error) {
	q := s.db.WithContext(ctx).Order("created_at DESC")
	if term := strings.ToLower(strings.TrimSpace(query)); term != "" {
		like := "%" + term + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ? OR LOWER(phone) LIKE ? OR LOWER(company) LIKE ?",
			like, like, like, like)
	}
	var rows []models.ContactSubmission
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]wire.ContactFormSubmission, 0, len(rows))
	for _, r := range rows {
		out = append(out, wire.ContactFormSubmission{
			Name:      r.Name,
			Email:     r.Email,
			Phone:     r.Phone,
			Company:   r.Company,
			Message:   r.Message,
			Timestamp: r.CreatedAt.In(time.UTC),
		})
	}
	return out, nil
}
