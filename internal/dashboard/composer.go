package dashboard

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"

	"partnerhub/internal/actor"
	wire "partnerhub/pkg/models"
)

// State is where the outgoing message is in its send.
type State int

const (
	Composing State = iota
	Sending
	Sent
	Failed
)

func (s State) String() string {
	switch s {
	case Composing:
		return "composing"
	case Sending:
		return "sending"
	case Sent:
		return "sent"
	case Failed:
		return "failed"
	}
	return "unknown"
}

type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Action is a follow-up the console offers with a notice.
type Action string

const (
	ActionNone             Action = ""
	ActionApproveRecipient Action = "approve_recipient"
)

// Notice is the user-facing result of a console action. The zero Notice
// means nothing happened.
type Notice struct {
	Level   Level
	Message string
	Action  Action
	// Contact is the number the action applies to.
	Contact string
}

func (n Notice) Empty() bool {
	return n.Level == "" && n.Message == ""
}

const notApprovedMessage = "Recipient not approved. Please add this number to the approved recipients list first."

func notApproved(contact string) Notice {
	return Notice{Level: LevelError, Message: notApprovedMessage, Action: ActionApproveRecipient, Contact: contact}
}

func failure(err error, fallback string) Notice {
	if errors.Is(err, actor.ErrUnavailable) {
		return Notice{Level: LevelError, Message: "Backend is not available"}
	}
	if err == nil || err.Error() == "" {
		return Notice{Level: LevelError, Message: fallback}
	}
	return Notice{Level: LevelError, Message: err.Error()}
}

// MessageSender is the part of the actor the composer calls.
type MessageSender interface {
	SendWhatsAppMessage(ctx context.Context, sender, recipient, content string) error
	SendWhatsAppMessageViaAPI(ctx context.Context, p wire.MessagePayload) (wire.MetaApiResponse, error)
}

// Composer holds the draft for the selected contact and drives both send
// paths through composing, sending and then sent or failed. It never
// retries.
type Composer struct {
	client MessageSender
	self   string

	mu      sync.Mutex
	contact string
	draft   string
	state   State
}

func NewComposer(client MessageSender, self string) *Composer {
	return &Composer{client: client, self: self}
}

// Select switches the conversation. The draft is kept.
func (c *Composer) Select(contact string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.contact = contact
	c.state = Composing
}

func (c *Composer) SetDraft(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft = text
	if c.state != Sending {
		c.state = Composing
	}
}

func (c *Composer) Contact() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.contact
}

func (c *Composer) Draft() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

func (c *Composer) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// begin returns the trimmed draft and contact and moves to Sending. ok is
// false when there is nothing to send. allow, when set, is checked against
// the same contact under the same lock; refusing it leaves the state alone.
func (c *Composer) begin(allow func(contact string) bool) (contact, content string, ok, refused bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	contact, content = c.contact, strings.TrimSpace(c.draft)
	if content == "" || contact == "" {
		return contact, "", false, false
	}
	if allow != nil && !allow(contact) {
		return contact, "", false, true
	}
	if c.state == Sending {
		return contact, "", false, false
	}
	c.state = Sending
	return contact, content, true, false
}

// finish records the outcome. The draft is cleared only on success.
func (c *Composer) finish(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.state = Failed
		return
	}
	c.state = Sent
	c.draft = ""
}

// SendLocal records the draft through the local relay.
func (c *Composer) SendLocal(ctx context.Context) Notice {
	contact, content, ok, _ := c.begin(nil)
	if !ok {
		return Notice{}
	}
	err := c.client.SendWhatsAppMessage(ctx, c.self, contact, content)
	c.finish(err)
	if err != nil {
		log.Printf("Send message error: %v", err)
		if errors.Is(err, actor.ErrUnavailable) {
			return failure(err, "")
		}
		return Notice{Level: LevelError, Message: "Failed to send message"}
	}
	return Notice{Level: LevelSuccess, Message: "Message sent successfully"}
}

// SendViaAPI delivers the draft through Meta. An unapproved contact is
// refused before any call is made.
func (c *Composer) SendViaAPI(ctx context.Context, approved []wire.RecipientRecord) Notice {
	contact, content, ok, refused := c.begin(func(contact string) bool {
		return Approved(contact, approved)
	})
	if refused {
		return notApproved(contact)
	}
	if !ok {
		return Notice{}
	}
	_, err := c.client.SendWhatsAppMessageViaAPI(ctx, wire.MessagePayload{From: c.self, To: contact, Content: content})
	c.finish(err)
	if err != nil {
		log.Printf("Send via API error: %v", err)
		if errors.Is(err, actor.ErrRecipientNotApproved) {
			return notApproved(contact)
		}
		return failure(err, "Failed to send message via API")
	}
	return Notice{Level: LevelSuccess, Message: "Message sent via Meta API"}
}
