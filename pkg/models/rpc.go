package models

import "time"

// Request bodies for POST /api/rpc/<method>. Methods without arguments
// take an empty body.

type IDRequest struct {
	ID string `json:"id"`
}

type PhoneRequest struct {
	PhoneNumber string `json:"phoneNumber"`
}

type UserRequest struct {
	User string `json:"user"`
}

type AssignRoleRequest struct {
	User string   `json:"user"`
	Role UserRole `json:"role"`
}

// PrincipalTokenResponse carries the bearer token issued with a role. It
// is only ever returned once.
type PrincipalTokenResponse struct {
	Principal string `json:"principal"`
	Token     string `json:"token"`
}

type FAQRequest struct {
	ID       string `json:"id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type PartnerBenefitRequest struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type ScheduleRequest struct {
	TemplateID           string       `json:"templateId"`
	RecipientPhoneNumber string       `json:"recipientPhoneNumber"`
	ScheduleType         ScheduleType `json:"scheduleType"`
	RunAtTimestamp       *time.Time   `json:"runAtTimestamp,omitempty"`
}

type LocalSendRequest struct {
	Sender    string `json:"sender"`
	Recipient string `json:"recipient"`
	Content   string `json:"content"`
}

type SubmissionQuery struct {
	Query string `json:"query,omitempty"`
}

type CreatedResponse struct {
	ID string `json:"id"`
}

type StatusResponse struct {
	Status string `json:"status"`
}

// ErrorCode classifies an error response.
type ErrorCode string

const (
	CodeNotFound             ErrorCode = "not_found"
	CodeAlreadyExists        ErrorCode = "already_exists"
	CodeForbidden            ErrorCode = "forbidden"
	CodeUnauthorized         ErrorCode = "unauthorized"
	CodeInvalidInput         ErrorCode = "invalid_input"
	CodeRecipientNotApproved ErrorCode = "recipient_not_approved"
	CodeNotConfigured        ErrorCode = "not_configured"
	CodeUpstream             ErrorCode = "upstream_error"
	CodeRateLimited          ErrorCode = "rate_limited"
	CodeInternal             ErrorCode = "internal"
)

type ErrorResponse struct {
	Error string    `json:"error"`
	Code  ErrorCode `json:"code"`
}
