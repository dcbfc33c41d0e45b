package main

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"partnerhub/internal/dashboard"
	wire "partnerhub/pkg/models"
)

func TestWriteThreadGroupsByDay(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	msgs := []wire.WhatsAppMessage{
		{Sender: "111", Recipient: "self", Content: "hi", Timestamp: now.Add(-25 * time.Hour)},
		{Sender: "self", Recipient: "111", Content: "hello", Status: wire.StatusDelivered, Timestamp: now.Add(-time.Hour)},
	}

	var b strings.Builder
	writeThread(&b, msgs, "self", now)
	require.Equal(t, "-- Yesterday --\n11:00  < hi\n-- Today --\n11:00  > hello ✓✓\n", b.String())
}

func TestWriteContactsEmpty(t *testing.T) {
	var b strings.Builder
	writeContacts(&b, nil, time.Now())
	require.Equal(t, "No conversations yet\n", b.String())
}

func TestWriteConnection(t *testing.T) {
	var b strings.Builder
	writeConnection(&b, dashboard.Connection{
		Integration: wire.IntegrationConnected,
		Token:       wire.TokenValid,
		Phone:       wire.MetaPhoneNumberStatus{HasAnyNumberAttached: true, TotalNumbers: 2, ProductionNumbers: 1, TestNumbers: 1},
	})
	require.Contains(t, b.String(), "Integration:  Connected\n")
	require.Contains(t, b.String(), "2 attached (1 production, 1 test)")
}

func TestReport(t *testing.T) {
	require.NoError(t, report(dashboard.Notice{}))
	require.NoError(t, report(dashboard.Notice{Level: dashboard.LevelSuccess, Message: "ok"}))

	err := report(dashboard.Notice{Level: dashboard.LevelError, Message: "nope", Action: dashboard.ActionApproveRecipient, Contact: "919800000001"})
	require.EqualError(t, err, "nope\nRun: console approve 919800000001")

	err = report(dashboard.Notice{Level: dashboard.LevelError, Message: "nope"})
	require.EqualError(t, err, "nope")
}
