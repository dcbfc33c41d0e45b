package store

import (
	"context"

	"partnerhub/internal/models"
	wire "partnerhub/pkg/models"
)

func (s *Store) CreateDocument(ctx context.Context, d *models.Document) error {
	return s.db.WithContext(ctx).Create(d).Error
}

func (s *Store) ListDocuments(ctx context.Context) ([]wire.SubmittedDocument, error) {
	var rows []models.Document
	if err := s.db.WithContext(ctx).Order("uploaded_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]wire.SubmittedDocument, 0, len(rows))
	for _, d := range rows {
		out = append(out, toWireDocument(d))
	}
	return out, nil
}

// GetDocument returns the stored row, including where its bytes live.
func (s *Store) GetDocument(ctx context.Context, id string) (models.Document, error) {
	var d models.Document
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&d).Error; err != nil {
		return models.Document{}, notFound(err)
	}
	return d, nil
}

func toWireDocument(d models.Document) wire.SubmittedDocument {
	return wire.SubmittedDocument{
		ID:          d.ID,
		FileName:    d.FileName,
		DocType:     wire.DocumentType(d.DocType),
		ContentType: d.ContentType,
		Size:        d.Size,
		UploadedAt:  d.UploadedAt,
	}
}
