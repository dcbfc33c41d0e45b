package dashboard

import (
	"context"
	"testing"

	"partnerhub/internal/actor"
	wire "partnerhub/pkg/models"

	"github.com/stretchr/testify/require"
)

type fakeManager struct {
	added   []wire.RecipientRecord
	removed []string
	cfg     *wire.MetaApiConfig
	err     error
}

func (f *fakeManager) AddRecipient(_ context.Context, r wire.RecipientRecord) error {
	if f.err != nil {
		return f.err
	}
	f.added = append(f.added, r)
	return nil
}

func (f *fakeManager) RemoveRecipient(_ context.Context, phone string) error {
	if f.err != nil {
		return f.err
	}
	f.removed = append(f.removed, phone)
	return nil
}

func (f *fakeManager) UpdateMetaApiConfig(_ context.Context, cfg wire.MetaApiConfig) error {
	if f.err != nil {
		return f.err
	}
	f.cfg = &cfg
	return nil
}

func TestRecipientFormDefaults(t *testing.T) {
	r := RecipientForm{PhoneNumber: " 919800000001 "}.Record()
	require.Equal(t, wire.RecipientRecord{
		PhoneNumber:   "919800000001",
		PartnerID:     "admin",
		SourceSystem:  "PB Partners",
		RecipientType: wire.RecipientIndividual,
		Description:   "Approved recipient",
	}, r)
}

func TestAddRecipient(t *testing.T) {
	m := &fakeManager{}
	ctx := context.Background()

	require.Equal(t, "Phone number is required", AddRecipient(ctx, m, RecipientForm{PhoneNumber: "  "}, nil).Message)
	require.Equal(t, "This phone number is already approved",
		AddRecipient(ctx, m, RecipientForm{PhoneNumber: "B"}, approvedList("B")).Message)
	require.Equal(t, LevelError, AddRecipient(ctx, m, RecipientForm{PhoneNumber: "C", Type: "vendor"}, nil).Level)
	require.Empty(t, m.added)

	n := AddRecipient(ctx, m, RecipientForm{PhoneNumber: "C", Type: wire.RecipientCorporateClient, Description: "Acme"}, nil)
	require.Equal(t, LevelSuccess, n.Level)
	require.Len(t, m.added, 1)
	require.Equal(t, wire.RecipientCorporateClient, m.added[0].RecipientType)
	require.Equal(t, "Acme", m.added[0].Description)

	m.err = &actor.Error{Status: 409, Code: wire.CodeAlreadyExists, Message: "recipient already exists"}
	require.Equal(t, "recipient already exists", AddRecipient(ctx, m, RecipientForm{PhoneNumber: "D"}, nil).Message)
}

func TestRemoveRecipient(t *testing.T) {
	m := &fakeManager{}
	n := RemoveRecipient(context.Background(), m, "B")
	require.Equal(t, "Recipient removed from approved list", n.Message)
	require.Equal(t, []string{"B"}, m.removed)
}

func TestSaveSettings(t *testing.T) {
	m := &fakeManager{}
	ctx := context.Background()

	n := SaveSettings(ctx, m, wire.MetaApiConfig{AccessToken: "tok", PhoneNumberID: "pn"})
	require.Equal(t, "All fields are required", n.Message)
	require.Nil(t, m.cfg)

	cfg := wire.MetaApiConfig{AccessToken: "tok", PhoneNumberID: "pn", WhatsAppBusinessAccountID: "waba"}
	n = SaveSettings(ctx, m, cfg)
	require.Equal(t, LevelSuccess, n.Level)
	require.Equal(t, cfg, *m.cfg)
}

type fakeStatus struct {
	integration string
	token       string
	phone       wire.MetaPhoneNumberStatus
	err         error
}

func (f fakeStatus) GetWhatsAppIntegrationStatus(context.Context) (string, error) {
	return f.integration, nil
}

func (f fakeStatus) GetWhatsAppTokenStatus(context.Context) (string, error) {
	return f.token, f.err
}

func (f fakeStatus) HasAtLeastOnePhoneNumberAttached(context.Context) (wire.MetaPhoneNumberStatus, error) {
	return f.phone, nil
}

func TestLoadConnection(t *testing.T) {
	c, err := LoadConnection(context.Background(), fakeStatus{
		integration: wire.IntegrationConnected,
		token:       wire.TokenValid,
		phone:       wire.MetaPhoneNumberStatus{HasAnyNumberAttached: true, TotalNumbers: 1},
	})
	require.NoError(t, err)
	require.True(t, c.Connected())
	require.True(t, c.TokenValid())
	require.True(t, c.HasPhoneNumber())

	c, err = LoadConnection(context.Background(), fakeStatus{integration: "Error: boom", err: actor.ErrUpstream})
	require.ErrorIs(t, err, actor.ErrUpstream)
	require.False(t, c.Connected())
	require.Equal(t, "Error: boom", c.Integration)
}
