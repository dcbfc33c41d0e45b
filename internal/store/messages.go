package store

import (
	"context"

	"partnerhub/internal/models"
	wire "partnerhub/pkg/models"
)

func (s *Store) CreateMessage(ctx context.Context, m *models.Message) error {
	return s.db.WithContext(ctx).Create(m).Error
}

// ListMessages returns every message, oldest first.
func (s *Store) ListMessages(ctx context.Context) ([]wire.WhatsAppMessage, error) {
	var rows []models.Message
	if err := s.db.WithContext(ctx).Order("timestamp ASC, id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]wire.WhatsAppMessage, 0, len(rows))
	for _, m := range rows {
		out = append(out, toWireMessage(m))
	}
	return out, nil
}

// UpdateStatusByMetaID applies a delivery status reported by Meta. It
// returns false when no stored message carries that id.
func (s *Store) UpdateStatusByMetaID(ctx context.Context, metaID string, status wire.MessageStatus) (bool, error) {
	res := s.db.WithContext(ctx).Model(&models.Message{}).
		Where("meta_message_id = ?", metaID).
		Update("status", string(status))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func toWireMessage(m models.Message) wire.WhatsAppMessage {
	return wire.WhatsAppMessage{
		ID:        m.ID,
		Sender:    m.Sender,
		Recipient: m.Recipient,
		Content:   m.Content,
		Status:    wire.MessageStatus(m.Status),
		Timestamp: m.Timestamp,
	}
}
