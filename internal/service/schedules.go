package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	wire "partnerhub/pkg/models"
)

// ScheduleMessage records a template send for an approved recipient. The
// schedule is stored only; nothing executes it.
func (s *Service) ScheduleMessage(ctx context.Context, templateID, phone string, typ wire.ScheduleType, runAt *time.Time) error {
	if err := s.requireAdmin(ctx); err != nil {
		return err
	}
	if !typ.Valid() {
		return fmt.Errorf("%w: unknown schedule type %q", ErrInvalidInput, typ)
	}
	tmpl, err := s.store.GetTemplate(ctx, templateID)
	if err != nil {
		return err
	}
	rec, err := s.store.GetRecipient(ctx, phone)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return fmt.Errorf("%w: %s", ErrRecipientNotApproved, phone)
		}
		return err
	}

	if err := s.store.CreateSchedule(ctx, wire.Schedule{
		ID:             s.newID(),
		TemplateID:     tmpl.ID,
		TemplateName:   tmpl.Name,
		MessageContent: tmpl.Content,
		Recipients:     []wire.RecipientRecord{rec},
		ScheduleType:   typ,
		RunAtTimestamp: runAt,
	}); err != nil {
		return err
	}
	s.invalidate(wire.KeySchedules)
	return nil
}

// ListSchedules returns schedules of one type, or all when typ is empty.
func (s *Service) ListSchedules(ctx context.Context, typ wire.ScheduleType) ([]wire.Schedule, error) {
	if err := s.requireAdmin(ctx); err != nil {
		return nil, err
	}
	return s.store.ListSchedules(ctx, typ)
}

func (s *Service) GetSchedule(ctx context.Context, id string) (wire.Schedule, error) {
	if err := s.requireAdmin(ctx); err != nil {
		return wire.Schedule{}, err
	}
	return s.store.GetSchedule(ctx, id)
}

func (s *Service) DeleteSchedule(ctx context.Context, id string) error {
	if err := s.requireAdmin(ctx); err != nil {
		return err
	}
	if err := s.store.DeleteSchedule(ctx, id); err != nil {
		return err
	}
	s.invalidate(wire.KeySchedules)
	return nil
}
