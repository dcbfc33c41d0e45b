package models

import (
	"time"
)

// Message represents a WhatsApp message, inbound or outbound
type Message struct {
	ID            string    `gorm:"primaryKey;type:varchar(64)" json:"id"`
	MetaMessageID string    `gorm:"type:varchar(255);index" json:"meta_message_id"`
	Sender        string    `gorm:"type:varchar(50);index;not null" json:"sender"`
	Recipient     string    `gorm:"type:varchar(50);index;not null" json:"recipient"`
	Content       string    `gorm:"type:text" json:"content"`
	Status        string    `gorm:"type:varchar(20)" json:"status"`
	Timestamp     time.Time `gorm:"index;not null" json:"timestamp"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Message) TableName() string {
	return "messages"
}

// Recipient is a phone number approved for Meta API sends
type Recipient struct {
	PhoneNumber   string    `gorm:"primaryKey;type:varchar(50)" json:"phone_number"`
	PartnerID     string    `gorm:"type:varchar(255)" json:"partner_id"`
	SourceSystem  string    `gorm:"type:varchar(255)" json:"source_system"`
	RecipientType string    `gorm:"type:varchar(50)" json:"recipient_type"`
	Description   string    `gorm:"type:text" json:"description"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Recipient) TableName() string {
	return "approved_recipients"
}

// Template is a locally authored message template
type Template struct {
	ID        string     `gorm:"primaryKey;type:varchar(64)" json:"id"`
	Name      string     `gorm:"type:varchar(255);not null" json:"name"`
	Content   string     `gorm:"type:text" json:"content"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

func (Template) TableName() string {
	return "templates"
}

// ScheduledMessage records a template send requested for later
type ScheduledMessage struct {
	ID             string     `gorm:"primaryKey;type:varchar(64)" json:"id"`
	TemplateID     string     `gorm:"type:varchar(64);index" json:"template_id"`
	TemplateName   string     `gorm:"type:varchar(255)" json:"template_name"`
	MessageContent string     `gorm:"type:text" json:"message_content"`
	Recipients     string     `gorm:"type:text" json:"recipients"` // JSON recipient records
	ScheduleType   string     `gorm:"type:varchar(20);index" json:"schedule_type"`
	RunAt          *time.Time `json:"run_at"`
	LastRunAt      *time.Time `json:"last_run_at"`
	RunCount       int        `gorm:"default:0" json:"run_count"`
	CreatedAt      time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (ScheduledMessage) TableName() string {
	return "scheduled_messages"
}

// ContactSubmission is a contact form entry from the public site
type ContactSubmission struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(255)" json:"name"`
	Email     string    `gorm:"type:varchar(255)" json:"email"`
	Phone     string    `gorm:"type:varchar(50)" json:"phone"`
	Company   string    `gorm:"type:varchar(255)" json:"company"`
	Message   string    `gorm:"type:text" json:"message"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

func (ContactSubmission) TableName() string {
	return "contact_submissions"
}

// Document is an uploaded onboarding document; bytes live on disk
type Document struct {
	ID          string    `gorm:"primaryKey;type:varchar(64)" json:"id"`
	FileName    string    `gorm:"type:varchar(255)" json:"file_name"`
	DocType     string    `gorm:"type:varchar(50)" json:"doc_type"`
	ContentType string    `gorm:"type:varchar(100)" json:"content_type"`
	Size        int64     `json:"size"`
	StoragePath string    `gorm:"type:text" json:"-"`
	UploadedAt  time.Time `gorm:"index" json:"uploaded_at"`
}

func (Document) TableName() string {
	return "documents"
}

// UserProfile is keyed by the caller's principal
type UserProfile struct {
	Principal string    `gorm:"primaryKey;type:varchar(255)" json:"principal"`
	Name      string    `gorm:"type:varchar(255)" json:"name"`
	Email     *string   `gorm:"type:varchar(255)" json:"email"`
	Phone     *string   `gorm:"type:varchar(50)" json:"phone"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (UserProfile) TableName() string {
	return "user_profiles"
}

type RoleAssignment struct {
	Principal string    `gorm:"primaryKey;type:varchar(255)" json:"principal"`
	Role      string    `gorm:"type:varchar(20)" json:"role"`
	// TokenHash is the hex SHA-256 of the principal's bearer token.
	TokenHash string    `gorm:"type:varchar(64);index" json:"-"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (RoleAssignment) TableName() string {
	return "role_assignments"
}

// SystemSetting is a key/value pair overriding env configuration
type SystemSetting struct {
	Key   string `gorm:"primaryKey;type:varchar(100)" json:"key"`
	Value string `gorm:"type:text" json:"value"`
}

func (SystemSetting) TableName() string {
	return "system_settings"
}

// WebhookVerification logs a single Meta webhook verification attempt
type WebhookVerification struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Mode         string    `gorm:"type:varchar(50)" json:"mode"`
	VerifyToken  string    `gorm:"type:varchar(255)" json:"verify_token"`
	Challenge    string    `gorm:"type:text" json:"challenge"`
	Outcome      string    `gorm:"type:varchar(20);index" json:"outcome"`
	ResponseCode int       `json:"response_code"`
	ResponseBody string    `gorm:"type:text" json:"response_body"`
	CreatedAt    time.Time `gorm:"index" json:"created_at"`
}

func (WebhookVerification) TableName() string {
	return "webhook_verifications"
}

type FAQ struct {
	ID        string    `gorm:"primaryKey;type:varchar(64)" json:"id"`
	Question  string    `gorm:"type:text" json:"question"`
	Answer    string    `gorm:"type:text" json:"answer"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (FAQ) TableName() string {
	return "faqs"
}

type PartnerBenefit struct {
	ID          string    `gorm:"primaryKey;type:varchar(64)" json:"id"`
	Title       string    `gorm:"type:varchar(255)" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (PartnerBenefit) TableName() string {
	return "partner_benefits"
}

// OfficeContact holds a single row with the office address block
type OfficeContact struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Address  string `gorm:"type:text" json:"address"`
	City     string `gorm:"type:varchar(100)" json:"city"`
	District string `gorm:"type:varchar(100)" json:"district"`
	State    string `gorm:"type:varchar(100)" json:"state"`
	Phone    string `gorm:"type:varchar(50)" json:"phone"`
	Email    string `gorm:"type:varchar(255)" json:"email"`
}

func (OfficeContact) TableName() string {
	return "office_contact"
}

// All lists every model for auto-migration and data copies.
func All() []interface{} {
	return []interface{}{
		&Message{},
		&Recipient{},
		&Template{},
		&ScheduledMessage{},
		&ContactSubmission{},
		&Document{},
		&UserProfile{},
		&RoleAssignment{},
		&SystemSetting{},
		&WebhookVerification{},
		&FAQ{},
		&PartnerBenefit{},
		&OfficeContact{},
	}
}
