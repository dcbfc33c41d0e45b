package dashboard

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"partnerhub/internal/actor"
	wire "partnerhub/pkg/models"

	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	localCalls []wire.LocalSendRequest
	apiCalls   []wire.MessagePayload
	err        error
}

func (f *fakeSender) SendWhatsAppMessage(_ context.Context, sender, recipient, content string) error {
	f.localCalls = append(f.localCalls, wire.LocalSendRequest{Sender: sender, Recipient: recipient, Content: content})
	return f.err
}

func (f *fakeSender) SendWhatsAppMessageViaAPI(_ context.Context, p wire.MessagePayload) (wire.MetaApiResponse, error) {
	f.apiCalls = append(f.apiCalls, p)
	if f.err != nil {
		return wire.MetaApiResponse{}, f.err
	}
	return wire.MetaApiResponse{DeliveryStatus: wire.StatusSent, MetaMessageID: "wamid.1"}, nil
}

func approvedList(numbers ...string) []wire.RecipientRecord {
	var out []wire.RecipientRecord
	for _, n := range numbers {
		out = append(out, wire.RecipientRecord{PhoneNumber: n, RecipientType: wire.RecipientIndividual})
	}
	return out
}

func TestApproved(t *testing.T) {
	require.False(t, Approved("919800000001", nil))
	require.True(t, Approved("919800000001", approvedList("919800000001")))
	// No normalization.
	require.False(t, Approved("+919800000001", approvedList("919800000001")))
	require.False(t, Approved("9800000001", approvedList("919800000001")))
}

func TestLocalSendClearsDraftOnSuccess(t *testing.T) {
	f := &fakeSender{}
	c := NewComposer(f, self)
	c.Select("B")
	c.SetDraft("  hello  ")

	n := c.SendLocal(context.Background())
	require.Equal(t, LevelSuccess, n.Level)
	require.Equal(t, Sent, c.State())
	require.Empty(t, c.Draft())
	require.Equal(t, []wire.LocalSendRequest{{Sender: self, Recipient: "B", Content: "hello"}}, f.localCalls)
}

func TestLocalSendKeepsDraftOnFailure(t *testing.T) {
	f := &fakeSender{err: errors.New("boom")}
	c := NewComposer(f, self)
	c.Select("B")
	c.SetDraft("hello")

	n := c.SendLocal(context.Background())
	require.Equal(t, Notice{Level: LevelError, Message: "Failed to send message"}, n)
	require.Equal(t, Failed, c.State())
	require.Equal(t, "hello", c.Draft())
	require.Len(t, f.localCalls, 1)
}

func TestNothingToSendIsANoOp(t *testing.T) {
	f := &fakeSender{}
	c := NewComposer(f, self)

	c.SetDraft("hello")
	require.True(t, c.SendLocal(context.Background()).Empty())

	c.Select("B")
	c.SetDraft("   ")
	require.True(t, c.SendLocal(context.Background()).Empty())
	require.True(t, c.SendViaAPI(context.Background(), approvedList("B")).Empty())

	require.Empty(t, f.localCalls)
	require.Empty(t, f.apiCalls)
	require.Equal(t, Composing, c.State())
}

func TestAPISendRefusedLocallyWhenNotApproved(t *testing.T) {
	f := &fakeSender{}
	c := NewComposer(f, self)
	c.Select("C")
	c.SetDraft("policy details")

	n := c.SendViaAPI(context.Background(), nil)
	require.Equal(t, LevelError, n.Level)
	require.Equal(t, ActionApproveRecipient, n.Action)
	require.Equal(t, "C", n.Contact)
	require.Empty(t, f.apiCalls)
	require.Equal(t, "policy details", c.Draft())
	require.Equal(t, Composing, c.State())
}

func TestAPISendWhenApproved(t *testing.T) {
	f := &fakeSender{}
	c := NewComposer(f, self)
	c.Select("C")
	c.SetDraft("policy details")

	n := c.SendViaAPI(context.Background(), approvedList("B", "C"))
	require.Equal(t, Notice{Level: LevelSuccess, Message: "Message sent via Meta API"}, n)
	require.Equal(t, []wire.MessagePayload{{From: self, To: "C", Content: "policy details"}}, f.apiCalls)
	require.Empty(t, c.Draft())
	require.Equal(t, Sent, c.State())
}

func TestAPISendServerRefusal(t *testing.T) {
	refusal := &actor.Error{Status: 422, Code: wire.CodeRecipientNotApproved, Message: "recipient is not on the approved list"}
	f := &fakeSender{err: refusal}
	c := NewComposer(f, self)
	c.Select("C")
	c.SetDraft("hi")

	n := c.SendViaAPI(context.Background(), approvedList("C"))
	require.Equal(t, ActionApproveRecipient, n.Action)
	require.Equal(t, Failed, c.State())
	require.Equal(t, "hi", c.Draft())

	f.err = &actor.Error{Status: 502, Code: wire.CodeUpstream, Message: "meta API request failed: timeout"}
	c.SetDraft("hi")
	n = c.SendViaAPI(context.Background(), approvedList("C"))
	require.Equal(t, Notice{Level: LevelError, Message: "meta API request failed: timeout"}, n)
	require.Len(t, f.apiCalls, 2)
}

func TestAPISendGatesTheContactItSends(t *testing.T) {
	f := &fakeSender{}
	c := NewComposer(f, self)
	c.Select("A")
	approved := approvedList("A")

	done := make(chan struct{})
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		for i := 0; ; i++ {
			select {
			case <-done:
				return
			default:
			}
			if i%2 == 0 {
				c.Select("B")
			} else {
				c.Select("A")
			}
		}
	}()

	for i := 0; i < 500; i++ {
		c.SetDraft("hi")
		n := c.SendViaAPI(context.Background(), approved)
		if n.Action == ActionApproveRecipient {
			require.Equal(t, "B", n.Contact)
		}
	}
	close(done)
	<-stopped

	for _, p := range f.apiCalls {
		require.Equal(t, "A", p.To)
	}
}

func TestUnavailableBackend(t *testing.T) {
	f := &fakeSender{err: fmt.Errorf("%w: connection refused", actor.ErrUnavailable)}
	c := NewComposer(f, self)
	c.Select("B")
	c.SetDraft("hi")

	require.Equal(t, "Backend is not available", c.SendLocal(context.Background()).Message)
}

func TestStateNames(t *testing.T) {
	require.Equal(t, "composing", Composing.String())
	require.Equal(t, "sending", Sending.String())
	require.Equal(t, "sent", Sent.String())
	require.Equal(t, "failed", Failed.String())
}
