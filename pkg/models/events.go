package models

// Query keys shared by the actor's event hub and the console cache.
const (
	KeyWhatsAppMessages          = "whatsappMessages"
	KeyApprovedRecipients        = "approvedRecipients"
	KeyContactFormSubmissions    = "contactFormSubmissions"
	KeySubmittedDocuments        = "submittedDocuments"
	KeyMetaApiConfig             = "metaApiConfig"
	KeyWhatsAppIntegrationStatus = "whatsappIntegrationStatus"
	KeyWhatsAppTokenStatus       = "whatsappTokenStatus"
	KeyPhoneNumberStatus         = "phoneNumberStatus"
	KeyWhatsAppAccountDetails    = "whatsappAccountDetails"
	KeyTemplates                 = "templates"
	KeySchedules                 = "schedules"
	KeyWebhookStats              = "webhookVerificationStats"
	KeyContent                   = "content"
	KeyProfiles                  = "profiles"
)

// Event is pushed to console subscribers over the websocket hub.
type Event struct {
	Type string   `json:"type"`
	Keys []string `json:"keys,omitempty"`
}

const EventInvalidate = "invalidate"

// Touches reports whether the event invalidates key.
func (e Event) Touches(key string) bool {
	for _, k := range e.Keys {
		if k == key {
			return true
		}
	}
	return false
}
