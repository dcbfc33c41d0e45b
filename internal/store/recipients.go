package store

import (
	"context"

	"partnerhub/internal/models"
	wire "partnerhub/pkg/models"
)

func (s *Store) AddRecipient(ctx context.Context, r wire.RecipientRecord) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Recipient{}).
		Where("phone_number = ?", r.PhoneNumber).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrAlreadyExists
	}
	return s.db.WithContext(ctx).Create(&models.Recipient{
		PhoneNumber:   r.PhoneNumber,
		PartnerID:     r.PartnerID,
		SourceSystem:  r.SourceSystem,
		RecipientType: string(r.RecipientType),
		Description:   r.Description,
	}).Error
}

func (s *Store) RemoveRecipient(ctx context.Context, phone string) error {
	res := s.db.WithContext(ctx).Where("phone_number = ?", phone).Delete(&models.Recipient{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) GetRecipient(ctx context.Context, phone string) (wire.RecipientRecord, error) {
	var r models.Recipient
	if err := s.db.WithContext(ctx).Where("phone_number = ?", phone).First(&r).Error; err != nil {
		return wire.RecipientRecord{}, notFound(err)
	}
	return toWireRecipient(r), nil
}

func (s *Store) ListRecipients(ctx context.Context) ([]wire.RecipientRecord, error) {
	var rows []models.Recipient
	if err := s.db.WithContext(ctx).Order("created_at ASC, phone_number ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]wire.RecipientRecord, 0, len(rows))
	for _, r := range rows {
		out = append(out, toWireRecipient(r))
	}
	return out, nil
}

func toWireRecipient(r models.Recipient) wire.RecipientRecord {
	return wire.RecipientRecord{
		PhoneNumber:   r.PhoneNumber,
		PartnerID:     r.PartnerID,
		SourceSystem:  r.SourceSystem,
		RecipientType: wire.RecipientType(r.RecipientType),
		Description:   r.Description,
	}
}
