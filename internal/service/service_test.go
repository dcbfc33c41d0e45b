package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"partnerhub/internal/database"
	"partnerhub/internal/models"
	"partnerhub/internal/store"
	"partnerhub/internal/whatsapp"
	wire "partnerhub/pkg/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type fakeMeta struct {
	sendCalls  int
	sendErr    error
	lookupErr  error
	tokenErr   error
	numbers    []whatsapp.PhoneNumber
	numbersErr error
}

func (f *fakeMeta) SendText(_ context.Context, _ wire.MetaApiConfig, to, _ string) (string, error) {
	f.sendCalls++
	if f.sendErr != nil {
		return "", f.sendErr
	}
	return "wamid." + to, nil
}

func (f *fakeMeta) ListTemplates(context.Context, wire.MetaApiConfig) ([]wire.ExternalWhatsAppTemplate, error) {
	return []wire.ExternalWhatsAppTemplate{{ID: "1", Name: "hello_world"}}, nil
}

func (f *fakeMeta) PhoneNumbers(context.Context, wire.MetaApiConfig) ([]whatsapp.PhoneNumber, int, error) {
	if f.numbersErr != nil {
		return nil, 0, f.numbersErr
	}
	return f.numbers, http.StatusOK, nil
}

func (f *fakeMeta) LookupPhoneNumber(context.Context, wire.MetaApiConfig) (whatsapp.PhoneNumber, error) {
	return whatsapp.PhoneNumber{ID: "pn"}, f.lookupErr
}

func (f *fakeMeta) CheckToken(context.Context, string) error {
	return f.tokenErr
}

type recorder struct {
	mu   sync.Mutex
	keys []string
}

func (r *recorder) Invalidate(keys ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.keys = append(r.keys, keys...)
}

func (r *recorder) has(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, k := range r.keys {
		if k == key {
			return true
		}
	}
	return false
}

type fixture struct {
	svc    *Service
	store  *store.Store
	meta   *fakeMeta
	events *recorder
}

var fixedNow = time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC)

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	st := store.New(db)
	meta := &fakeMeta{}
	events := &recorder{}
	n := 0
	svc := New(st, meta, events, Options{
		SelfNumber:     "7709446589",
		UploadDir:      t.TempDir(),
		MaxUploadBytes: 64,
		Now:            func() time.Time { return fixedNow },
		NewID: func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		},
	})
	return &fixture{svc: svc, store: st, meta: meta, events: events}
}

func adminCtx() context.Context {
	return WithCaller(context.Background(), Caller{Admin: true})
}

func (f *fixture) configureMeta(t *testing.T) {
	t.Helper()
	require.NoError(t, f.store.SaveMetaConfig(context.Background(), wire.MetaApiConfig{
		AccessToken: "tok", PhoneNumberID: "pn", WhatsAppBusinessAccountID: "waba",
	}))
}

func (f *fixture) approve(t *testing.T, phone string) {
	t.Helper()
	require.NoError(t, f.svc.AddRecipient(adminCtx(), wire.RecipientRecord{
		PhoneNumber: phone, PartnerID: "admin", SourceSystem: "PB Partners",
		RecipientType: wire.RecipientIndividual, Description: "Approved recipient",
	}))
}

func TestCallerRoles(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	role, err := f.svc.CallerRole(ctx)
	require.NoError(t, err)
	require.Equal(t, wire.RoleGuest, role)

	alice := WithCaller(ctx, Caller{Principal: "alice"})
	role, err = f.svc.CallerRole(alice)
	require.NoError(t, err)
	require.Equal(t, wire.RoleUser, role)

	_, err = f.svc.ListMessages(alice)
	require.ErrorIs(t, err, ErrForbidden)

	token, err := f.svc.AssignUserRole(adminCtx(), "alice", wire.RoleAdmin)
	require.NoError(t, err)
	ok, err := f.svc.IsCallerAdmin(alice)
	require.NoError(t, err)
	require.True(t, ok)

	_, err = f.svc.ListMessages(alice)
	require.NoError(t, err)

	caller, err := f.svc.AuthenticateToken(ctx, token)
	require.NoError(t, err)
	require.Equal(t, Caller{Principal: "alice"}, caller)

	_, err = f.svc.AuthenticateToken(ctx, "not-a-token")
	require.ErrorIs(t, err, ErrUnauthorized)
	_, err = f.svc.AuthenticateToken(ctx, "")
	require.ErrorIs(t, err, ErrUnauthorized)

	rotated, err := f.svc.AssignUserRole(adminCtx(), "alice", wire.RoleUser)
	require.NoError(t, err)
	require.NotEqual(t, token, rotated)
	_, err = f.svc.AuthenticateToken(ctx, token)
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestAssignUserRoleNeedsAdmin(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.AssignUserRole(WithCaller(context.Background(), Caller{Principal: "eve"}), "eve", wire.RoleAdmin)
	require.ErrorIs(t, err, ErrForbidden)
}

func TestSendViaAPIRefusesUnapprovedWithoutCallingMeta(t *testing.T) {
	f := newFixture(t)
	f.configureMeta(t)

	_, err := f.svc.SendViaAPI(adminCtx(), wire.MessagePayload{To: "C", Content: "hi"})
	require.ErrorIs(t, err, ErrRecipientNotApproved)
	require.Zero(t, f.meta.sendCalls)

	msgs, err := f.svc.ListMessages(adminCtx())
	require.NoError(t, err)
	require.Empty(t, msgs)
}

func TestSendViaAPIApproved(t *testing.T) {
	f := newFixture(t)
	f.configureMeta(t)
	f.approve(t, "919876543210")

	resp, err := f.svc.SendViaAPI(adminCtx(), wire.MessagePayload{To: "919876543210", Content: "hello"})
	require.NoError(t, err)
	require.Equal(t, wire.StatusSent, resp.DeliveryStatus)
	require.Equal(t, "wamid.919876543210", resp.MetaMessageID)
	require.True(t, f.events.has(wire.KeyWhatsAppMessages))

	msgs, err := f.svc.ListMessages(adminCtx())
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	require.Equal(t, "7709446589", msgs[0].Sender)
	require.Equal(t, wire.StatusSent, msgs[0].Status)

	require.NoError(t, f.svc.ApplyStatus(context.Background(), "wamid.919876543210", "read"))
	msgs, err = f.svc.ListMessages(adminCtx())
	require.NoError(t, err)
	require.Equal(t, wire.StatusRead, msgs[0].Status)
}

func TestSendViaAPIUpstreamRefusal(t *testing.T) {
	f := newFixture(t)
	f.configureMeta(t)
	f.approve(t, "1")

	f.meta.sendErr = &whatsapp.APIError{Status: 400, Code: whatsapp.CodeNotAllowListed, Message: "not in allowed list"}
	_, err := f.svc.SendViaAPI(adminCtx(), wire.MessagePayload{To: "1", Content: "hi"})
	require.ErrorIs(t, err, ErrRecipientNotApproved)

	f.meta.sendErr = errors.New("connection reset")
	_, err = f.svc.SendViaAPI(adminCtx(), wire.MessagePayload{To: "1", Content: "hi"})
	require.ErrorIs(t, err, ErrUpstream)

	msgs, err := f.svc.ListMessages(adminCtx())
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	for _, m := range msgs {
		require.Equal(t, wire.StatusFailed, m.Status)
	}
}

func TestSendViaAPINotConfigured(t *testing.T) {
	f := newFixture(t)
	f.approve(t, "1")
	_, err := f.svc.SendViaAPI(adminCtx(), wire.MessagePayload{To: "1", Content: "hi"})
	require.ErrorIs(t, err, ErrNotConfigured)
	require.Zero(t, f.meta.sendCalls)
}

func TestSendLocalAndInbound(t *testing.T) {
	f := newFixture(t)
	require.ErrorIs(t, f.svc.SendLocal(adminCtx(), "A", "B", "   "), ErrInvalidInput)
	require.NoError(t, f.svc.SendLocal(adminCtx(), "7709446589", "B", "note"))
	require.NoError(t, f.svc.RecordInbound(context.Background(), "B", "wamid.in", "reply", fixedNow.Add(time.Second)))

	msgs, err := f.svc.ListMessages(adminCtx())
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	require.Equal(t, wire.StatusSent, msgs[0].Status)
	require.Equal(t, "7709446589", msgs[1].Recipient)
	require.Equal(t, wire.StatusDelivered, msgs[1].Status)
}

func TestRecipientDuplicates(t *testing.T) {
	f := newFixture(t)
	f.approve(t, "1")
	err := f.svc.AddRecipient(adminCtx(), wire.RecipientRecord{PhoneNumber: "1", RecipientType: wire.RecipientTeamMember})
	require.ErrorIs(t, err, ErrAlreadyExists)

	err = f.svc.AddRecipient(adminCtx(), wire.RecipientRecord{PhoneNumber: "2", RecipientType: "robot"})
	require.ErrorIs(t, err, ErrInvalidInput)

	require.ErrorIs(t, f.svc.RemoveRecipient(adminCtx(), "9"), ErrNotFound)
	require.NoError(t, f.svc.RemoveRecipient(adminCtx(), "1"))
	require.True(t, f.events.has(wire.KeyApprovedRecipients))
}

func TestVerifyMetaWebhook(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.store.DB().Create(&models.SystemSetting{Key: database.SettingVerifyToken, Value: "secret"}).Error)

	out, err := f.svc.VerifyMetaWebhook(ctx, wire.MetaWebhookVerificationRequest{Mode: "subscribe", VerifyToken: "secret", Challenge: "42"})
	require.NoError(t, err)
	require.True(t, out.Succeeded())
	require.Equal(t, "42", out.Challenge)

	out, err = f.svc.VerifyMetaWebhook(ctx, wire.MetaWebhookVerificationRequest{Mode: "subscribe", VerifyToken: "wrong", Challenge: "42"})
	require.NoError(t, err)
	require.Equal(t, wire.VerificationInvalidToken, out.Kind)
	require.Empty(t, out.Challenge)

	out, err = f.svc.VerifyMetaWebhook(ctx, wire.MetaWebhookVerificationRequest{Mode: "unsubscribe", VerifyToken: "secret"})
	require.NoError(t, err)
	require.Equal(t, wire.VerificationModeMismatch, out.Kind)

	stats, err := f.svc.GetWebhookVerificationStats(adminCtx())
	require.NoError(t, err)
	require.Equal(t, 1, stats.Successful)
	require.Equal(t, 1, stats.Failed)
	require.Equal(t, 1, stats.ModeMismatched)
	require.Len(t, stats.Logs, 3)
}

func TestVerifyWithoutConfiguredToken(t *testing.T) {
	f := newFixture(t)
	out, err := f.svc.VerifyMetaWebhook(context.Background(), wire.MetaWebhookVerificationRequest{Mode: "subscribe"})
	require.NoError(t, err)
	require.Equal(t, wire.VerificationInvalidToken, out.Kind)
}

func TestIntegrationStatuses(t *testing.T) {
	f := newFixture(t)
	ctx := adminCtx()

	status, err := f.svc.GetWhatsAppIntegrationStatus(ctx)
	require.NoError(t, err)
	require.Equal(t, StatusNotConfigured, status)

	token, err := f.svc.GetWhatsAppTokenStatus(ctx)
	require.NoError(t, err)
	require.Equal(t, StatusNotConfigured, token)

	details, err := f.svc.GetWhatsAppAccountDetails(ctx)
	require.NoError(t, err)
	require.Nil(t, details)

	require.ErrorIs(t, f.svc.UpdateMetaApiConfig(ctx, wire.MetaApiConfig{AccessToken: "x"}), ErrInvalidInput)
	f.configureMeta(t)

	status, err = f.svc.GetWhatsAppIntegrationStatus(ctx)
	require.NoError(t, err)
	require.Equal(t, StatusConnected, status)

	f.meta.lookupErr = &whatsapp.APIError{Status: 400, Message: "bad id"}
	status, err = f.svc.GetWhatsAppIntegrationStatus(ctx)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(status, "Error: "))

	token, err = f.svc.GetWhatsAppTokenStatus(ctx)
	require.NoError(t, err)
	require.Equal(t, TokenValid, token)

	f.meta.tokenErr = &whatsapp.APIError{Status: 401}
	token, err = f.svc.GetWhatsAppTokenStatus(ctx)
	require.NoError(t, err)
	require.Equal(t, TokenInvalid, token)

	f.meta.numbers = []whatsapp.PhoneNumber{{ID: "1", AccountMode: "SANDBOX"}, {ID: "2", AccountMode: "LIVE"}, {ID: "3", AccountMode: "LIVE"}}
	st, err := f.svc.HasAtLeastOnePhoneNumberAttached(ctx)
	require.NoError(t, err)
	require.Equal(t, wire.MetaPhoneNumberStatus{
		HasAnyNumberAttached: true, TotalNumbers: 3, TestNumbers: 1, ProductionNumbers: 2, APIStatusCode: 200,
	}, st)

	f.meta.numbersErr = &whatsapp.APIError{Status: 403}
	st, err = f.svc.HasAtLeastOnePhoneNumberAttached(ctx)
	require.NoError(t, err)
	require.False(t, st.HasAnyNumberAttached)
	require.Equal(t, 403, st.APIStatusCode)
}

func TestUpdateMetaApiConfigInvalidatesStatuses(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.svc.UpdateMetaApiConfig(adminCtx(), wire.MetaApiConfig{
		AccessToken: " tok ", PhoneNumberID: "pn", WhatsAppBusinessAccountID: "waba",
	}))
	for _, k := range []string{wire.KeyMetaApiConfig, wire.KeyWhatsAppIntegrationStatus, wire.KeyWhatsAppTokenStatus, wire.KeyPhoneNumberStatus} {
		require.True(t, f.events.has(k), k)
	}
	cfg, err := f.svc.GetMetaApiConfig(adminCtx())
	require.NoError(t, err)
	require.Equal(t, "tok", cfg.AccessToken)
}

func TestContactForm(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	err := f.svc.SubmitContactForm(ctx, wire.ContactFormSubmission{Name: "Asha", Email: "asha@example.in", Phone: "1"})
	require.ErrorIs(t, err, ErrInvalidInput)

	require.NoError(t, f.svc.SubmitContactForm(ctx, wire.ContactFormSubmission{
		Name: "Asha", Email: "asha@example.in", Phone: "1", Message: "Call me",
	}))
	_, err = f.svc.ListSubmissions(ctx, "")
	require.ErrorIs(t, err, ErrForbidden)

	subs, err := f.svc.ListSubmissions(adminCtx(), "asha")
	require.NoError(t, err)
	require.Len(t, subs, 1)
	require.True(t, fixedNow.Equal(subs[0].Timestamp))
}

func TestUploadDocument(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.ErrorIs(t, f.svc.UploadDocument(ctx, "passport", "a.pdf", "", strings.NewReader("x")), ErrInvalidInput)
	require.ErrorIs(t, f.svc.UploadDocument(ctx, wire.DocPanCard, "big.bin", "", bytes.NewReader(make([]byte, 65))), ErrInvalidInput)

	require.NoError(t, f.svc.UploadDocument(ctx, wire.DocPanCard, "../../pan.txt", "", strings.NewReader("PAN ABCDE1234F")))

	docs, err := f.svc.ListDocuments(adminCtx())
	require.NoError(t, err)
	require.Len(t, docs, 1)
	require.Equal(t, "pan.txt", docs[0].FileName)
	require.Equal(t, int64(14), docs[0].Size)
	require.True(t, strings.HasPrefix(docs[0].ContentType, "text/plain"))

	doc, file, err := f.svc.OpenDocument(adminCtx(), docs[0].ID)
	require.NoError(t, err)
	defer file.Close()
	body, err := io.ReadAll(file)
	require.NoError(t, err)
	require.Equal(t, "PAN ABCDE1234F", string(body))
	require.Equal(t, wire.DocPanCard, wire.DocumentType(doc.DocType))

	_, _, err = f.svc.OpenDocument(adminCtx(), "missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestScheduleMessage(t *testing.T) {
	f := newFixture(t)
	ctx := adminCtx()

	require.ErrorIs(t, f.svc.ScheduleMessage(ctx, "none", "1", wire.ScheduleDaily, nil), ErrNotFound)

	id, err := f.svc.CreateTemplate(ctx, wire.TemplateInput{Name: "welcome", Content: "Welcome aboard"})
	require.NoError(t, err)
	require.ErrorIs(t, f.svc.ScheduleMessage(ctx, id, "1", wire.ScheduleDaily, nil), ErrRecipientNotApproved)
	require.ErrorIs(t, f.svc.ScheduleMessage(ctx, id, "1", "weekly", nil), ErrInvalidInput)

	f.approve(t, "1")
	runAt := fixedNow.Add(time.Hour)
	require.NoError(t, f.svc.ScheduleMessage(ctx, id, "1", wire.ScheduleDaily, &runAt))
	require.NoError(t, f.svc.ScheduleMessage(ctx, id, "1", wire.ScheduleImmediate, nil))

	daily, err := f.svc.ListSchedules(ctx, wire.ScheduleDaily)
	require.NoError(t, err)
	require.Len(t, daily, 1)
	require.Equal(t, "Welcome aboard", daily[0].MessageContent)
	require.Equal(t, "1", daily[0].Recipients[0].PhoneNumber)
	require.Zero(t, daily[0].RunCount)

	all, err := f.svc.ListSchedules(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 2)
}

func TestProfiles(t *testing.T) {
	f := newFixture(t)
	guest := context.Background()
	bob := WithCaller(guest, Caller{Principal: "bob"})

	p, err := f.svc.GetCallerUserProfile(guest)
	require.NoError(t, err)
	require.Nil(t, p)
	require.ErrorIs(t, f.svc.SaveCallerUserProfile(guest, wire.UserProfile{Name: "x"}), ErrForbidden)

	require.NoError(t, f.svc.SaveCallerUserProfile(bob, wire.UserProfile{Name: "Bob"}))
	p, err = f.svc.GetCallerUserProfile(bob)
	require.NoError(t, err)
	require.Equal(t, "Bob", p.Name)

	_, err = f.svc.GetUserProfile(WithCaller(guest, Caller{Principal: "eve"}), "bob")
	require.ErrorIs(t, err, ErrForbidden)
	p, err = f.svc.GetUserProfile(adminCtx(), "bob")
	require.NoError(t, err)
	require.Equal(t, "Bob", p.Name)
}

func TestOnboardingRequirementsAreCopies(t *testing.T) {
	f := newFixture(t)
	reqs := f.svc.OnboardingRequirements(context.Background())
	require.Len(t, reqs, 7)
	reqs[0].Required = false
	require.True(t, f.svc.OnboardingRequirements(context.Background())[0].Required)
}
