package store

import (
	"context"
	"time"

	"partnerhub/internal/models"
	wire "partnerhub/pkg/models"
)

func (s *Store) CreateTemplate(ctx context.Context, id string, in wire.TemplateInput, now time.Time) error {
	return s.db.WithContext(ctx).Create(&models.Template{
		ID:        id,
		Name:      in.Name,
		Content:   in.Content,
		CreatedAt: now,
	}).Error
}

func (s *Store) UpdateTemplate(ctx context.Context, in wire.TemplateUpdateInput, now time.Time) error {
	res := s.db.WithContext(ctx).Model(&models.Template{}).Where("id = ?", in.ID).
		Updates(map[string]interface{}{"name": in.Name, "content": in.Content, "updated_at": now})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) DeleteTemplate(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Template{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) GetTemplate(ctx context.Context, id string) (wire.WhatsAppTemplate, error) {
	var t models.Template
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&t).Error; err != nil {
		return wire.WhatsAppTemplate{}, notFound(err)
	}
	return toWireTemplate(t), nil
}

func (s *Store) ListTemplates(ctx context.Context) ([]wire.WhatsAppTemplate, error) {
	var rows []models.Template
	if err := s.db.WithContext(ctx).Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]wire.WhatsAppTemplate, 0, len(rows))
	for _, t := range rows {
		out = append(out, toWireTemplate(t))
	}
	return out, nil
}

func toWireTemplate(t models.Template) wire.WhatsAppTemplate {
	return wire.WhatsAppTemplate{
		ID:        t.ID,
		Name:      t.Name,
		Content:   t.Content,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}
