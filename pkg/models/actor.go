package models

import "time"

// MessageStatus is the delivery state reported for a WhatsApp message.
type MessageStatus string

const (
	StatusSent      MessageStatus = "sent"
	StatusDelivered MessageStatus = "delivered"
	StatusRead      MessageStatus = "read"
	StatusFailed    MessageStatus = "failed"
)

// ParseMessageStatus maps a Meta status string onto MessageStatus.
func ParseMessageStatus(s string) (MessageStatus, bool) {
	switch MessageStatus(s) {
	case StatusSent, StatusDelivered, StatusRead, StatusFailed:
		return MessageStatus(s), true
	}
	return "", false
}

// WhatsAppMessage is a single message exchanged with a counterpart.
type WhatsAppMessage struct {
	ID        string        `json:"id"`
	Sender    string        `json:"sender"`
	Recipient string        `json:"recipient"`
	Content   string        `json:"content"`
	Status    MessageStatus `json:"status"`
	Timestamp time.Time     `json:"timestamp"`
}

// MessagePayload is the argument of sendWhatsAppMessageViaAPI.
type MessagePayload struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Content string `json:"content"`
}

type MetaApiResponse struct {
	DeliveryStatus MessageStatus `json:"deliveryStatus"`
	MetaMessageID  string        `json:"metaMessageId"`
}

type RecipientType string

const (
	RecipientIndividual      RecipientType = "individual"
	RecipientAutomatedSystem RecipientType = "automatedSystem"
	RecipientCorporateClient RecipientType = "corporateClient"
	RecipientRepresentative  RecipientType = "representative"
	RecipientTeamMember      RecipientType = "teamMember"
)

func (t RecipientType) Valid() bool {
	switch t {
	case RecipientIndividual, RecipientAutomatedSystem, RecipientCorporateClient,
		RecipientRepresentative, RecipientTeamMember:
		return true
	}
	return false
}

// RecipientRecord is an approved recipient for Meta API sends.
type RecipientRecord struct {
	PhoneNumber   string        `json:"phoneNumber"`
	PartnerID     string        `json:"partnerId"`
	SourceSystem  string        `json:"sourceSystem"`
	RecipientType RecipientType `json:"recipientType"`
	Description   string        `json:"description"`
}

type WhatsAppTemplate struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Content   string     `json:"content"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

type TemplateInput struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

type TemplateUpdateInput struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Content string `json:"content"`
}

type ScheduleType string

const (
	ScheduleImmediate ScheduleType = "immediate"
	ScheduleDaily     ScheduleType = "daily"
)

func (t ScheduleType) Valid() bool {
	return t == ScheduleImmediate || t == ScheduleDaily
}

type Schedule struct {
	ID               string            `json:"id"`
	TemplateID       string            `json:"templateId"`
	TemplateName     string            `json:"templateName"`
	MessageContent   string            `json:"messageContent"`
	Recipients       []RecipientRecord `json:"recipients"`
	ScheduleType     ScheduleType      `json:"scheduleType"`
	RunAtTimestamp   *time.Time        `json:"runAtTimestamp,omitempty"`
	LastRunTimestamp *time.Time        `json:"lastRunTimestamp,omitempty"`
	RunCount         int               `json:"runCount"`
}

type ContactFormSubmission struct {
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Company   string    `json:"company"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

type DocumentType string

const (
	DocBankDetails          DocumentType = "bankDetails"
	DocMobileNumber         DocumentType = "mobileNumber"
	DocSelfie               DocumentType = "selfie"
	DocEmail                DocumentType = "email"
	DocPanCard              DocumentType = "panCard"
	DocAadhaarCard          DocumentType = "aadhaarCard"
	DocEducationCertificate DocumentType = "educationCertificate"
)

func (t DocumentType) Valid() bool {
	switch t {
	case DocBankDetails, DocMobileNumber, DocSelfie, DocEmail, DocPanCard,
		DocAadhaarCard, DocEducationCertificate:
		return true
	}
	return false
}

// SubmittedDocument describes an uploaded onboarding document. The bytes
// are served separately.
type SubmittedDocument struct {
	ID          string       `json:"id"`
	FileName    string       `json:"fileName"`
	DocType     DocumentType `json:"docType"`
	ContentType string       `json:"contentType"`
	Size        int64        `json:"size"`
	UploadedAt  time.Time    `json:"uploadedAt"`
}

type OnboardingRequirement struct {
	DocType     DocumentType `json:"docType"`
	Description string       `json:"description"`
	Required    bool         `json:"required"`
}

type UserProfile struct {
	Name  string  `json:"name"`
	Email *string `json:"email,omitempty"`
	Phone *string `json:"phone,omitempty"`
}

type UserRole string

const (
	RoleAdmin UserRole = "admin"
	RoleUser  UserRole = "user"
	RoleGuest UserRole = "guest"
)

func (r UserRole) Valid() bool {
	return r == RoleAdmin || r == RoleUser || r == RoleGuest
}

type MetaApiConfig struct {
	WhatsAppBusinessAccountID string `json:"whatsappBusinessAccountId"`
	AccessToken               string `json:"accessToken"`
	PhoneNumberID             string `json:"phoneNumberId"`
}

// Complete reports whether every credential is set.
func (c MetaApiConfig) Complete() bool {
	return c.WhatsAppBusinessAccountID != "" && c.AccessToken != "" && c.PhoneNumberID != ""
}

type MetaPhoneNumberStatus struct {
	HasAnyNumberAttached bool `json:"hasAnyNumberAttached"`
	TotalNumbers         int  `json:"totalNumbers"`
	TestNumbers          int  `json:"testNumbers"`
	ProductionNumbers    int  `json:"productionNumbers"`
	APIStatusCode        int  `json:"apiStatusCode"`
}

type Language struct {
	Code   string `json:"code"`
	Policy string `json:"policy"`
}

type Example struct {
	BodyText [][]string `json:"body_text,omitempty"`
}

type TemplateComponent struct {
	Type    string   `json:"type,omitempty"`
	Format  string   `json:"format,omitempty"`
	Text    string   `json:"text,omitempty"`
	Example *Example `json:"example,omitempty"`
}

// ExternalWhatsAppTemplate is a template as registered with Meta.
type ExternalWhatsAppTemplate struct {
	ID         string              `json:"id"`
	Name       string              `json:"name"`
	Status     string              `json:"status"`
	Category   string              `json:"category"`
	Language   Language            `json:"language"`
	Components []TemplateComponent `json:"components"`
}

type MetaWebhookVerificationRequest struct {
	Mode        string `json:"mode"`
	VerifyToken string `json:"verifyToken"`
	Challenge   string `json:"challenge"`
}

type MetaWebhookVerificationResponse struct {
	ResponseCode int    `json:"responseCode"`
	ResponseBody string `json:"responseBody"`
}

// VerificationKind tags a WebhookVerificationOutcome.
type VerificationKind string

const (
	VerificationSuccess      VerificationKind = "success"
	VerificationInvalidToken VerificationKind = "invalidToken"
	VerificationModeMismatch VerificationKind = "modeMismatch"
)

// WebhookVerificationOutcome is a tagged result. Challenge is only set
// when Kind is VerificationSuccess.
type WebhookVerificationOutcome struct {
	Kind      VerificationKind `json:"kind"`
	Challenge string           `json:"challenge,omitempty"`
}

func (o WebhookVerificationOutcome) Succeeded() bool {
	return o.Kind == VerificationSuccess
}

type WebhookVerificationLogEntry struct {
	Request   MetaWebhookVerificationRequest  `json:"request"`
	Response  MetaWebhookVerificationResponse `json:"response"`
	Timestamp time.Time                       `json:"timestamp"`
}

type WebhookVerificationStats struct {
	Successful     int                           `json:"successful"`
	Failed         int                           `json:"failed"`
	ModeMismatched int                           `json:"modeMismatched"`
	Logs           []WebhookVerificationLogEntry `json:"logs"`
}

type FAQ struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type PartnerBenefit struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type OfficeContactData struct {
	Address  string `json:"address"`
	City     string `json:"city"`
	District string `json:"district"`
	State    string `json:"state"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
}

// Integration and token status strings.
const (
	IntegrationNotConfigured = "Not Configured"
	IntegrationConnected     = "Connected"
	TokenValid               = "Valid"
	TokenInvalid             = "Invalid"
)
