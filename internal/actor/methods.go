package actor

import (
	"context"
	"time"

	wire "partnerhub/pkg/models"
)

func scoped(key, sub string) string {
	return key + "/" + sub
}

// Messages

func (c *Client) GetAllWhatsAppMessages(ctx context.Context) ([]wire.WhatsAppMessage, error) {
	return query[[]wire.WhatsAppMessage](ctx, c, wire.KeyWhatsAppMessages, "getAllWhatsAppMessages", nil)
}

// SendWhatsAppMessage records a message through the local relay. Nothing
// is delivered outside the backend.
func (c *Client) SendWhatsAppMessage(ctx context.Context, sender, recipient, content string) error {
	return c.mutate(ctx, "sendWhatsAppMessage", wire.LocalSendRequest{
		Sender:    sender,
		Recipient: recipient,
		Content:   content,
	}, nil, wire.KeyWhatsAppMessages)
}

// SendWhatsAppMessageViaAPI delivers through Meta. errors.Is(err,
// ErrRecipientNotApproved) reports an approval refusal.
func (c *Client) SendWhatsAppMessageViaAPI(ctx context.Context, p wire.MessagePayload) (wire.MetaApiResponse, error) {
	var resp wire.MetaApiResponse
	err := c.mutate(ctx, "sendWhatsAppMessageViaAPI", p, &resp, wire.KeyWhatsAppMessages)
	if err != nil {
		// A failed send is still logged server-side.
		c.Invalidate(wire.KeyWhatsAppMessages)
	}
	return resp, err
}

// Recipients

func (c *Client) ListRecipients(ctx context.Context) ([]wire.RecipientRecord, error) {
	return query[[]wire.RecipientRecord](ctx, c, wire.KeyApprovedRecipients, "listRecipients", nil)
}

func (c *Client) GetRecipient(ctx context.Context, phone string) (wire.RecipientRecord, error) {
	return query[wire.RecipientRecord](ctx, c, scoped(wire.KeyApprovedRecipients, phone), "getRecipient", wire.PhoneRequest{PhoneNumber: phone})
}

func (c *Client) AddRecipient(ctx context.Context, r wire.RecipientRecord) error {
	return c.mutate(ctx, "addRecipient", r, nil, wire.KeyApprovedRecipients)
}

func (c *Client) RemoveRecipient(ctx context.Context, phone string) error {
	return c.mutate(ctx, "removeRecipient", wire.PhoneRequest{PhoneNumber: phone}, nil, wire.KeyApprovedRecipients)
}

// Contact form

func (c *Client) SubmitContactForm(ctx context.Context, s wire.ContactFormSubmission) error {
	return c.mutate(ctx, "submitContactForm", s, nil, wire.KeyContactFormSubmissions)
}

func (c *Client) GetAllContactFormSubmissions(ctx context.Context, q string) ([]wire.ContactFormSubmission, error) {
	return query[[]wire.ContactFormSubmission](ctx, c, scoped(wire.KeyContactFormSubmissions, q), "getAllContactFormSubmissions", wire.SubmissionQuery{Query: q})
}

// Templates

func (c *Client) GetAllTemplates(ctx context.Context) ([]wire.WhatsAppTemplate, error) {
	return query[[]wire.WhatsAppTemplate](ctx, c, wire.KeyTemplates, "getAllTemplates", nil)
}

func (c *Client) GetTemplate(ctx context.Context, id string) (wire.WhatsAppTemplate, error) {
	return query[wire.WhatsAppTemplate](ctx, c, scoped(wire.KeyTemplates, id), "getTemplate", wire.IDRequest{ID: id})
}

// CreateTemplate returns the new template's id.
func (c *Client) CreateTemplate(ctx context.Context, in wire.TemplateInput) (string, error) {
	var resp wire.CreatedResponse
	if err := c.mutate(ctx, "createTemplate", in, &resp, wire.KeyTemplates); err != nil {
		return "", err
	}
	return resp.ID, nil
}

func (c *Client) UpdateTemplate(ctx context.Context, in wire.TemplateUpdateInput) error {
	return c.mutate(ctx, "updateTemplate", in, nil, wire.KeyTemplates)
}

func (c *Client) DeleteTemplate(ctx context.Context, id string) error {
	return c.mutate(ctx, "deleteTemplate", wire.IDRequest{ID: id}, nil, wire.KeyTemplates)
}

func (c *Client) ListMetaTemplates(ctx context.Context) ([]wire.ExternalWhatsAppTemplate, error) {
	return query[[]wire.ExternalWhatsAppTemplate](ctx, c, scoped(wire.KeyTemplates, "meta"), "listMetaTemplates", nil)
}

// Schedules

func (c *Client) ScheduleMessage(ctx context.Context, templateID, phone string, typ wire.ScheduleType, runAt *time.Time) error {
	return c.mutate(ctx, "scheduleMessage", wire.ScheduleRequest{
		TemplateID:           templateID,
		RecipientPhoneNumber: phone,
		ScheduleType:         typ,
		RunAtTimestamp:       runAt,
	}, nil, wire.KeySchedules)
}

func (c *Client) GetAllSchedules(ctx context.Context) ([]wire.Schedule, error) {
	return query[[]wire.Schedule](ctx, c, wire.KeySchedules, "getAllSchedules", nil)
}

func (c *Client) GetAllImmediateSchedules(ctx context.Context) ([]wire.Schedule, error) {
	return query[[]wire.Schedule](ctx, c, scoped(wire.KeySchedules, string(wire.ScheduleImmediate)), "getAllImmediateSchedules", nil)
}

func (c *Client) GetAllDailySchedules(ctx context.Context) ([]wire.Schedule, error) {
	return query[[]wire.Schedule](ctx, c, scoped(wire.KeySchedules, string(wire.ScheduleDaily)), "getAllDailySchedules", nil)
}

func (c *Client) GetSchedule(ctx context.Context, id string) (wire.Schedule, error) {
	return query[wire.Schedule](ctx, c, scoped(wire.KeySchedules, "id:"+id), "getSchedule", wire.IDRequest{ID: id})
}

func (c *Client) DeleteSchedule(ctx context.Context, id string) error {
	return c.mutate(ctx, "deleteSchedule", wire.IDRequest{ID: id}, nil, wire.KeySchedules)
}

// Meta integration

func (c *Client) GetMetaApiConfig(ctx context.Context) (wire.MetaApiConfig, error) {
	return query[wire.MetaApiConfig](ctx, c, wire.KeyMetaApiConfig, "getMetaApiConfig", nil)
}

func (c *Client) UpdateMetaApiConfig(ctx context.Context, cfg wire.MetaApiConfig) error {
	return c.mutate(ctx, "updateMetaApiConfig", cfg, nil,
		wire.KeyMetaApiConfig,
		wire.KeyWhatsAppIntegrationStatus,
		wire.KeyWhatsAppTokenStatus,
		wire.KeyPhoneNumberStatus,
		wire.KeyWhatsAppAccountDetails,
	)
}

// GetWhatsAppAccountDetails returns nil while the credentials are
// incomplete.
func (c *Client) GetWhatsAppAccountDetails(ctx context.Context) (*wire.MetaApiConfig, error) {
	return query[*wire.MetaApiConfig](ctx, c, wire.KeyWhatsAppAccountDetails, "getWhatsAppAccountDetails", nil)
}

func (c *Client) GetWhatsAppIntegrationStatus(ctx context.Context) (string, error) {
	return query[string](ctx, c, wire.KeyWhatsAppIntegrationStatus, "getWhatsAppIntegrationStatus", nil)
}

func (c *Client) GetWhatsAppTokenStatus(ctx context.Context) (string, error) {
	return query[string](ctx, c, wire.KeyWhatsAppTokenStatus, "getWhatsAppTokenStatus", nil)
}

func (c *Client) HasAtLeastOnePhoneNumberAttached(ctx context.Context) (wire.MetaPhoneNumberStatus, error) {
	return query[wire.MetaPhoneNumberStatus](ctx, c, wire.KeyPhoneNumberStatus, "hasAtLeastOnePhoneNumberAttached", nil)
}

// Webhook

func (c *Client) VerifyMetaWebhook(ctx context.Context, req wire.MetaWebhookVerificationRequest) (wire.WebhookVerificationOutcome, error) {
	var out wire.WebhookVerificationOutcome
	err := c.mutate(ctx, "verifyMetaWebhook", req, &out, wire.KeyWebhookStats)
	return out, err
}

// GetWebhookVerificationStats returns nil before the first attempt.
func (c *Client) GetWebhookVerificationStats(ctx context.Context) (*wire.WebhookVerificationStats, error) {
	return query[*wire.WebhookVerificationStats](ctx, c, wire.KeyWebhookStats, "getWebhookVerificationStats", nil)
}

// Documents

func (c *Client) GetAllSubmittedDocuments(ctx context.Context) ([]wire.SubmittedDocument, error) {
	return query[[]wire.SubmittedDocument](ctx, c, wire.KeySubmittedDocuments, "getAllSubmittedDocuments", nil)
}

func (c *Client) GetOnboardingRequirements(ctx context.Context) ([]wire.OnboardingRequirement, error) {
	return query[[]wire.OnboardingRequirement](ctx, c, scoped(wire.KeyContent, "onboarding"), "getOnboardingRequirements", nil)
}

// Users

func (c *Client) GetCallerUserProfile(ctx context.Context) (*wire.UserProfile, error) {
	return query[*wire.UserProfile](ctx, c, scoped(wire.KeyProfiles, "caller"), "getCallerUserProfile", nil)
}

func (c *Client) SaveCallerUserProfile(ctx context.Context, p wire.UserProfile) error {
	return c.mutate(ctx, "saveCallerUserProfile", p, nil, wire.KeyProfiles)
}

func (c *Client) GetUserProfile(ctx context.Context, user string) (*wire.UserProfile, error) {
	return query[*wire.UserProfile](ctx, c, scoped(wire.KeyProfiles, "user:"+user), "getUserProfile", wire.UserRequest{User: user})
}

func (c *Client) GetCallerUserRole(ctx context.Context) (wire.UserRole, error) {
	return query[wire.UserRole](ctx, c, scoped(wire.KeyProfiles, "role"), "getCallerUserRole", nil)
}

func (c *Client) IsCallerAdmin(ctx context.Context) (bool, error) {
	return query[bool](ctx, c, scoped(wire.KeyProfiles, "admin"), "isCallerAdmin", nil)
}

// AssignCallerUserRole returns the bearer token issued to user.
func (c *Client) AssignCallerUserRole(ctx context.Context, user string, role wire.UserRole) (string, error) {
	var resp wire.PrincipalTokenResponse
	if err := c.mutate(ctx, "assignCallerUserRole", wire.AssignRoleRequest{User: user, Role: role}, &resp, wire.KeyProfiles); err != nil {
		return "", err
	}
	return resp.Token, nil
}

// Site content

func (c *Client) GetAllFAQs(ctx context.Context) ([]wire.FAQ, error) {
	return query[[]wire.FAQ](ctx, c, scoped(wire.KeyContent, "faqs"), "getAllFAQs", nil)
}

func (c *Client) AddFAQ(ctx context.Context, id, question, answer string) error {
	return c.mutate(ctx, "addFAQ", wire.FAQRequest{ID: id, Question: question, Answer: answer}, nil, wire.KeyContent)
}

func (c *Client) GetAllPartnerBenefits(ctx context.Context) ([]wire.PartnerBenefit, error) {
	return query[[]wire.PartnerBenefit](ctx, c, scoped(wire.KeyContent, "benefits"), "getAllPartnerBenefits", nil)
}

func (c *Client) AddPartnerBenefit(ctx context.Context, id, title, description string) error {
	return c.mutate(ctx, "addPartnerBenefit", wire.PartnerBenefitRequest{ID: id, Title: title, Description: description}, nil, wire.KeyContent)
}

func (c *Client) GetOfficeContactData(ctx context.Context) (wire.OfficeContactData, error) {
	return query[wire.OfficeContactData](ctx, c, scoped(wire.KeyContent, "office"), "getOfficeContactData", nil)
}

func (c *Client) UpdateOfficeContactData(ctx context.Context, d wire.OfficeContactData) error {
	return c.mutate(ctx, "updateOfficeContactData", d, nil, wire.KeyContent)
}
