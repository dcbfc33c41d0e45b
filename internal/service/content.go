package service

import (
	"context"
	"fmt"
	"strings"

	wire "partnerhub/pkg/models"
)

var onboardingRequirements = []wire.OnboardingRequirement{
	{DocType: wire.DocPanCard, Description: "Valid Permanent Account Number card", Required: true},
	{DocType: wire.DocAadhaarCard, Description: "Government-issued identity proof", Required: true},
	{DocType: wire.DocBankDetails, Description: "Active bank account information", Required: true},
	{DocType: wire.DocEducationCertificate, Description: "10th pass certificate or highest educational qualification", Required: true},
	{DocType: wire.DocMobileNumber, Description: "Active mobile number for verification", Required: true},
	{DocType: wire.DocEmail, Description: "Valid email address for communication", Required: true},
	{DocType: wire.DocSelfie, Description: "Recent photograph for identity verification", Required: true},
}

func (s *Service) OnboardingRequirements(context.Context) []wire.OnboardingRequirement {
	out := make([]wire.OnboardingRequirement, len(onboardingRequirements))
	copy(out, onboardingRequirements)
	return out
}

func (s *Service) AddFAQ(ctx context.Context, id, question, answer string) error {
	if err := s.requireAdmin(ctx); err != nil {
		return err
	}
	if strings.TrimSpace(question) == "" || strings.TrimSpace(answer) == "" {
		return fmt.Errorf("%w: question and answer are required", ErrInvalidInput)
	}
	if id == "" {
		id = s.newID()
	}
	if err := s.store.AddFAQ(ctx, id, wire.FAQ{Question: question, Answer: answer}); err != nil {
		return err
	}
	s.invalidate(wire.KeyContent)
	return nil
}

func (s *Service) ListFAQs(ctx context.Context) ([]wire.FAQ, error) {
	return s.store.ListFAQs(ctx)
}

func (s *Service) AddPartnerBenefit(ctx context.Context, id, title, description string) error {
	if err := s.requireAdmin(ctx); err != nil {
		return err
	}
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if id == "" {
		id = s.newID()
	}
	if err := s.store.AddPartnerBenefit(ctx, id, wire.PartnerBenefit{Title: title, Description: description}); err != nil {
		return err
	}
	s.invalidate(wire.KeyContent)
	return nil
}

func (s *Service) ListPartnerBenefits(ctx context.Context) ([]wire.PartnerBenefit, error) {
	return s.store.ListPartnerBenefits(ctx)
}

func (s *Service) OfficeContact(ctx context.Context) (wire.OfficeContactData, error) {
	return s.store.OfficeContact(ctx)
}

func (s *Service) UpdateOfficeContact(ctx context.Context, d wire.OfficeContactData) error {
	if err := s.requireAdmin(ctx); err != nil {
		return err
	}
	if err := s.store.SaveOfficeContact(ctx, d); err != nil {
		return err
	}
	s.invalidate(wire.KeyContent)
	return nil
}
