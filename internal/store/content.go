package store

import (
	"context"

	"partnerhub/internal/models"
	wire "partnerhub/pkg/models"
)

const officeContactRow = 1

func (s *Store) AddFAQ(ctx context.Context, id string, faq wire.FAQ) error {
	return s.db.WithContext(ctx).Save(&models.FAQ{ID: id, Question: faq.Question, Answer: faq.Answer}).Error
}

func (s *Store) ListFAQs(ctx context.Context) ([]wire.FAQ, error) {
	var rows []models.FAQ
	if err := s.db.WithContext(ctx).Order("created_at ASC, id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]wire.FAQ, 0, len(rows))
	for _, r := range rows {
		out = append(out, wire.FAQ{Question: r.Question, Answer: r.Answer})
	}
	return out, nil
}

func (s *Store) AddPartnerBenefit(ctx context.Context, id string, b wire.PartnerBenefit) error {
	return s.db.WithContext(ctx).Save(&models.PartnerBenefit{ID: id, Title: b.Title, Description: b.Description}).Error
}

func (s *Store) ListPartnerBenefits(ctx context.Context) ([]wire.PartnerBenefit, error) {
	var rows []models.PartnerBenefit
	if err := s.db.WithContext(ctx).Order("created_at ASC, id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]wire.PartnerBenefit, 0, len(rows))
	for _, r := range rows {
		out = append(out, wire.PartnerBenefit{Title: r.Title, Description: r.Description})
	}
	return out, nil
}

// OfficeContact returns the stored block, or a zero value if none was saved.
func (s *Store) OfficeContact(ctx context.Context) (wire.OfficeContactData, error) {
	var row models.OfficeContact
	err := s.db.WithContext(ctx).Where("id = ?", officeContactRow).First(&row).Error
	if err != nil {
		if notFound(err) == ErrNotFound {
			return wire.OfficeContactData{}, nil
		}
		return wire.OfficeContactData{}, err
	}
	return wire.OfficeContactData{
		Address:  row.Address,
		City:     row.City,
		District: row.District,
		State:    row.State,
		Phone:    row.Phone,
		Email:    row.Email,
	}, nil
}

func (s *Store) SaveOfficeContact(ctx context.Context, d wire.OfficeContactData) error {
	return s.db.WithContext(ctx).Save(&models.OfficeContact{
		ID:       officeContactRow,
		Address:  d.Address,
		City:     d.City,
		District: d.District,
		State:    d.State,
		Phone:    d.Phone,
		Email:    d.Email,
	}).Error
}
