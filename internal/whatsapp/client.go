package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	wire "partnerhub/pkg/models"
)

// CodeNotAllowListed is the Graph error returned when the recipient is not
// in the test number's allowed list.
const CodeNotAllowListed = 131030

type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// GenericMessage is the body of POST /{phone-number-id}/messages. Only
// text messages are sent.
type GenericMessage struct {
	MessagingProduct string   `json:"messaging_product"`
	RecipientType    string   `json:"recipient_type,omitempty"`
	To               string   `json:"to"`
	Type             string   `json:"type"`
	Text             *TextObj `json:"text,omitempty"`
}

type TextObj struct {
	Body       string `json:"body"`
	PreviewUrl bool   `json:"preview_url,omitempty"`
}

type sendResponse struct {
	Messages []struct {
		ID string `json:"id"`
	} `json:"messages"`
}

// PhoneNumber is an entry of GET /{waba}/phone_numbers.
type PhoneNumber struct {
	ID                 string `json:"id"`
	DisplayPhoneNumber string `json:"display_phone_number"`
	VerifiedName       string `json:"verified_name"`
	AccountMode        string `json:"account_mode"`
}

// Sandbox reports whether the number is a Meta test number.
func (p PhoneNumber) Sandbox() bool {
	return strings.EqualFold(p.AccountMode, "SANDBOX")
}

// APIError is a non-2xx Graph response.
type APIError struct {
	Status  int
	Code    int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("graph API error: status %d", e.Status)
	}
	return fmt.Sprintf("graph API error: status %d code %d: %s", e.Status, e.Code, e.Message)
}

func (e *APIError) NotAllowListed() bool {
	return e.Code == CodeNotAllowListed
}

// IsNotAllowListed reports whether err carries Meta's allow-list refusal.
func IsNotAllowListed(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.NotAllowListed()
}

// --- Helper Functions ---

func (c *Client) sendRequest(ctx context.Context, method, path, token string, body, out interface{}) (int, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return 0, err
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, bodyReader)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, err
	}

	if resp.StatusCode >= 400 {
		return resp.StatusCode, parseAPIError(resp.StatusCode, respBody)
	}
	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return resp.StatusCode, fmt.Errorf("decode graph response: %w", err)
		}
	}
	return resp.StatusCode, nil
}

func parseAPIError(status int, body []byte) *APIError {
	var envelope struct {
		Error struct {
			Message string `json:"message"`
			Code    int    `json:"code"`
		} `json:"error"`
	}
	apiErr := &APIError{Status: status}
	if err := json.Unmarshal(body, &envelope); err == nil {
		apiErr.Code = envelope.Error.Code
		apiErr.Message = envelope.Error.Message
	}
	if apiErr.Message == "" {
		apiErr.Message = strings.TrimSpace(string(body))
	}
	return apiErr
}

// --- Messaging Methods ---

// SendText posts a text message from the configured phone number and
// returns the Meta message id.
func (c *Client) SendText(ctx context.Context, creds wire.MetaApiConfig, to, body string) (string, error) {
	msg := GenericMessage{
		MessagingProduct: "whatsapp",
		RecipientType:    "individual",
		To:               to,
		Type:             "text",
		Text:             &TextObj{Body: body},
	}
	var resp sendResponse
	path := "/" + url.PathEscape(creds.PhoneNumberID) + "/messages"
	if _, err := c.sendRequest(ctx, http.MethodPost, path, creds.AccessToken, msg, &resp); err != nil {
		return "", err
	}
	if len(resp.Messages) == 0 || resp.Messages[0].ID == "" {
		return "", fmt.Errorf("graph response carried no message id")
	}
	return resp.Messages[0].ID, nil
}

// --- Template Management Methods ---

func (c *Client) ListTemplates(ctx context.Context, creds wire.MetaApiConfig) ([]wire.ExternalWhatsAppTemplate, error) {
	var resp struct {
		Data []wire.ExternalWhatsAppTemplate `json:"data"`
	}
	path := "/" + url.PathEscape(creds.WhatsAppBusinessAccountID) + "/message_templates"
	if _, err := c.sendRequest(ctx, http.MethodGet, path, creds.AccessToken, nil, &resp); err != nil {
		return nil, err
	}
	if resp.Data == nil {
		return []wire.ExternalWhatsAppTemplate{}, nil
	}
	return resp.Data, nil
}

// --- Account Methods ---

// PhoneNumbers lists the numbers attached to the business account together
// with the HTTP status the Graph API answered with.
func (c *Client) PhoneNumbers(ctx context.Context, creds wire.MetaApiConfig) ([]PhoneNumber, int, error) {
	var resp struct {
		Data []PhoneNumber `json:"data"`
	}
	path := "/" + url.PathEscape(creds.WhatsAppBusinessAccountID) +
		"/phone_numbers?fields=id,display_phone_number,verified_name,account_mode"
	status, err := c.sendRequest(ctx, http.MethodGet, path, creds.AccessToken, nil, &resp)
	if err != nil {
		return nil, status, err
	}
	return resp.Data, status, nil
}

// LookupPhoneNumber fetches the configured phone number object.
func (c *Client) LookupPhoneNumber(ctx context.Context, creds wire.MetaApiConfig) (PhoneNumber, error) {
	var num PhoneNumber
	path := "/" + url.PathEscape(creds.PhoneNumberID) + "?fields=id,display_phone_number,verified_name"
	_, err := c.sendRequest(ctx, http.MethodGet, path, creds.AccessToken, nil, &num)
	return num, err
}

// CheckToken calls /me, which only succeeds for a live access token.
func (c *Client) CheckToken(ctx context.Context, token string) error {
	_, err := c.sendRequest(ctx, http.MethodGet, "/me", token, nil, nil)
	return err
}
