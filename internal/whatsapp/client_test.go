package whatsapp

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	wire "partnerhub/pkg/models"

	"github.com/stretchr/testify/require"
)

var testCreds = wire.MetaApiConfig{
	AccessToken:               "tok",
	PhoneNumberID:             "pn1",
	WhatsAppBusinessAccountID: "waba1",
}

func TestSendText(t *testing.T) {
	var got GenericMessage
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/pn1/messages", r.URL.Path)
		require.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"messaging_product":"whatsapp","messages":[{"id":"wamid.ABC"}]}`))
	}))
	defer srv.Close()

	id, err := NewClient(srv.URL).SendText(context.Background(), testCreds, "919876543210", "hello")
	require.NoError(t, err)
	require.Equal(t, "wamid.ABC", id)
	require.Equal(t, "919876543210", got.To)
	require.Equal(t, "text", got.Type)
	require.Equal(t, "hello", got.Text.Body)
}

func TestSendTextBody(t *testing.T) {
	var body []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ = io.ReadAll(r.Body)
		_, _ = w.Write([]byte(`{"messages":[{"id":"wamid.X"}]}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).SendText(context.Background(), testCreds, "919876543210", "hello")
	require.NoError(t, err)
	require.JSONEq(t, `{"messaging_product":"whatsapp","recipient_type":"individual","to":"919876543210","type":"text","text":{"body":"hello"}}`, string(body))
}

func TestSendTextNotAllowListed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"message":"Recipient phone number not in allowed list","code":131030}}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).SendText(context.Background(), testCreds, "1", "hi")
	require.Error(t, err)
	require.True(t, IsNotAllowListed(err))

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusBadRequest, apiErr.Status)
	require.Contains(t, apiErr.Message, "allowed list")
}

func TestPhoneNumbers(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/waba1/phone_numbers", r.URL.Path)
		require.Contains(t, r.URL.Query().Get("fields"), "account_mode")
		_, _ = w.Write([]byte(`{"data":[
			{"id":"1","display_phone_number":"+1 555","account_mode":"SANDBOX"},
			{"id":"2","display_phone_number":"+91 770","account_mode":"LIVE"}]}`))
	}))
	defer srv.Close()

	nums, status, err := NewClient(srv.URL).PhoneNumbers(context.Background(), testCreds)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, nums, 2)
	require.True(t, nums[0].Sandbox())
	require.False(t, nums[1].Sandbox())
}

func TestListTemplatesAndToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/waba1/message_templates":
			_, _ = w.Write([]byte(`{"data":[{"id":"t","name":"hello_world","status":"APPROVED",
				"category":"UTILITY","language":{"code":"en_US"},
				"components":[{"type":"BODY","text":"Hi {{1}}","example":{"body_text":[["Asha"]]}}]}]}`))
		case "/me":
			if r.Header.Get("Authorization") != "Bearer good" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			_, _ = w.Write([]byte(`{"id":"me"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	tmpls, err := c.ListTemplates(context.Background(), testCreds)
	require.NoError(t, err)
	require.Len(t, tmpls, 1)
	require.Equal(t, "en_US", tmpls[0].Language.Code)
	require.Equal(t, [][]string{{"Asha"}}, tmpls[0].Components[0].Example.BodyText)

	require.NoError(t, c.CheckToken(context.Background(), "good"))

	err = c.CheckToken(context.Background(), "bad")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusUnauthorized, apiErr.Status)
}
