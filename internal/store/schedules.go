package store

import (
	"context"
	"encoding/json"
	"fmt"

	"partnerhub/internal/models"
	wire "partnerhub/pkg/models"
)

func (s *Store) CreateSchedule(ctx context.Context, sch wire.Schedule) error {
	recipients, err := json.Marshal(sch.Recipients)
	if err != nil {
		return fmt.Errorf("encode recipients: %w", err)
	}
	return s.db.WithContext(ctx).Create(&models.ScheduledMessage{
		ID:             sch.ID,
		TemplateID:     sch.TemplateID,
		TemplateName:   sch.TemplateName,
		MessageContent: sch.MessageContent,
		Recipients:     string(recipients),
		ScheduleType:   string(sch.ScheduleType),
		RunAt:          sch.RunAtTimestamp,
		LastRunAt:      sch.LastRunTimestamp,
		RunCount:       sch.RunCount,
	}).Error
}

func (s *Store) DeleteSchedule(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.ScheduledMessage{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) GetSchedule(ctx context.Context, id string) (wire.Schedule, error) {
	var row models.ScheduledMessage
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		return wire.Schedule{}, notFound(err)
	}
	return toWireSchedule(row)
}

// ListSchedules returns schedules of the given type, or all when typ is empty.
func (s *Store) ListSchedules(ctx context.Context, typ wire.ScheduleType) ([]wire.Schedule, error) {
	q := s.db.WithContext(ctx).Order("created_at ASC, id ASC")
	if typ != "" {
		q = q.Where("schedule_type = ?", string(typ))
	}
	var rows []models.ScheduledMessage
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]wire.Schedule, 0, len(rows))
	for _, row := range rows {
		sch, err := toWireSchedule(row)
		if err != nil {
			return nil, err
		}
		out = append(out, sch)
	}
	return out, nil
}

func toWireSchedule(row models.ScheduledMessage) (wire.Schedule, error) {
	recipients := []wire.RecipientRecord{}
	if row.Recipients != "" {
		if err := json.Unmarshal([]byte(row.Recipients), &recipients); err != nil {
			return wire.Schedule{}, fmt.Errorf("decode recipients of schedule %s: %w", row.ID, err)
		}
	}
	return wire.Schedule{
		ID:               row.ID,
		TemplateID:       row.TemplateID,
		TemplateName:     row.TemplateName,
		MessageContent:   row.MessageContent,
		Recipients:       recipients,
		ScheduleType:     wire.ScheduleType(row.ScheduleType),
		RunAtTimestamp:   row.RunAt,
		LastRunTimestamp: row.LastRunAt,
		RunCount:         row.RunCount,
	}, nil
}
