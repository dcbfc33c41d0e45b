package dashboard

import (
	"context"
	"strings"

	wire "partnerhub/pkg/models"
)

const (
	DefaultPartnerID    = "admin"
	DefaultSourceSystem = "PB Partners"
	DefaultDescription  = "Approved recipient"
)

// RecipientForm is what the operator types to approve a number.
type RecipientForm struct {
	PhoneNumber string
	Description string
	Type        wire.RecipientType
}

// Record fills the defaults the console applies to new recipients.
func (f RecipientForm) Record() wire.RecipientRecord {
	r := wire.RecipientRecord{
		PhoneNumber:   strings.TrimSpace(f.PhoneNumber),
		PartnerID:     DefaultPartnerID,
		SourceSystem:  DefaultSourceSystem,
		RecipientType: f.Type,
		Description:   strings.TrimSpace(f.Description),
	}
	if r.RecipientType == "" {
		r.RecipientType = wire.RecipientIndividual
	}
	if r.Description == "" {
		r.Description = DefaultDescription
	}
	return r
}

type RecipientManager interface {
	AddRecipient(ctx context.Context, r wire.RecipientRecord) error
	RemoveRecipient(ctx context.Context, phone string) error
}

// AddRecipient approves the form's number unless it is blank or already
// in existing.
func AddRecipient(ctx context.Context, m RecipientManager, form RecipientForm, existing []wire.RecipientRecord) Notice {
	r := form.Record()
	if r.PhoneNumber == "" {
		return Notice{Level: LevelError, Message: "Phone number is required"}
	}
	if !r.RecipientType.Valid() {
		return Notice{Level: LevelError, Message: "Unknown recipient type " + string(r.RecipientType)}
	}
	if Approved(r.PhoneNumber, existing) {
		return Notice{Level: LevelError, Message: "This phone number is already approved"}
	}
	if err := m.AddRecipient(ctx, r); err != nil {
		return failure(err, "Failed to approve recipient")
	}
	return Notice{Level: LevelSuccess, Message: "Recipient approved successfully"}
}

func RemoveRecipient(ctx context.Context, m RecipientManager, phone string) Notice {
	if err := m.RemoveRecipient(ctx, strings.TrimSpace(phone)); err != nil {
		return failure(err, "Failed to remove recipient")
	}
	return Notice{Level: LevelSuccess, Message: "Recipient removed from approved list"}
}
