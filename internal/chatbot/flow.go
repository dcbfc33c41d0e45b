// Package chatbot is the rule-based assistant shown on the public site.
package chatbot

import (
	"errors"
	"fmt"
	"time"
)

type Intent string

const (
	Welcome           Intent = "welcome"
	PartnerOnboarding Intent = "partner_onboarding"
	InsuranceServices Intent = "insurance_services"
	ClaimsSupport     Intent = "claims_support"
	ContactTeam       Intent = "contact_team"
	WhatsAppConnect   Intent = "whatsapp_connect"
)

var ErrUnknownIntent = errors.New("unknown chatbot intent")

type QuickReply struct {
	Label  string `json:"label"`
	Intent Intent `json:"intent"`
}

// Node is the bot's answer to an intent. Link, when set, is opened after
// the message is shown.
type Node struct {
	Intent       Intent       `json:"intent"`
	Message      string       `json:"message"`
	QuickReplies []QuickReply `json:"quickReplies,omitempty"`
	Link         string       `json:"link,omitempty"`
}

var (
	connect = QuickReply{Label: "Connect on WhatsApp", Intent: WhatsAppConnect}
	back    = QuickReply{Label: "Back to Menu", Intent: Welcome}
)

var flow = map[Intent]Node{
	Welcome: {
		Intent:  Welcome,
		Message: "Hello! 👋 Welcome to PB Partners Hub. How can we assist you today?",
		QuickReplies: []QuickReply{
			{Label: "Partner Onboarding Help", Intent: PartnerOnboarding},
			{Label: "Insurance Services", Intent: InsuranceServices},
			{Label: "Claims & Support", Intent: ClaimsSupport},
			{Label: "Contact Team", Intent: ContactTeam},
		},
	},
	PartnerOnboarding: {
		Intent: PartnerOnboarding,
		Message: "We help with partner onboarding assistance, policy issuance & process help, documentation guidance, " +
			"and daily partner query support. Would you like to connect with our team?",
		QuickReplies: []QuickReply{connect, back},
	},
	InsuranceServices: {
		Intent: InsuranceServices,
		Message: "We provide support for:\n• Life Insurance\n• Health Insurance\n• Motor Insurance\n" +
			"• General Insurance\n• Policy Renewal & Servicing\n\nWould you like to know more?",
		QuickReplies: []QuickReply{connect, back},
	},
	ClaimsSupport: {
		Intent: ClaimsSupport,
		Message: "Our team provides complete claims & service coordination support. We can help you with claims " +
			"processing, documentation, and follow-ups. Would you like to connect with our support team?",
		QuickReplies: []QuickReply{connect, back},
	},
	ContactTeam: {
		Intent: ContactTeam,
		Message: "You can reach us at:\n📧 Email: info@pbpartnershub.in\n📞 Mobile: 7972584060\n" +
			"💬 WhatsApp: 7709446589\n\nWould you like to connect on WhatsApp now?",
		QuickReplies: []QuickReply{connect, back},
	},
	WhatsAppConnect: {
		Intent:       WhatsAppConnect,
		Message:      "Great! Opening WhatsApp now...",
		QuickReplies: []QuickReply{back},
	},
}

// Bot answers intents. WhatsAppLink is attached to the whatsapp_connect
// node.
type Bot struct {
	WhatsAppLink string
}

func (b Bot) Lookup(intent Intent) (Node, error) {
	n, ok := flow[intent]
	if !ok {
		return Node{}, fmt.Errorf("%w: %q", ErrUnknownIntent, intent)
	}
	n.QuickReplies = append([]QuickReply(nil), n.QuickReplies...)
	if intent == WhatsAppConnect {
		n.Link = b.WhatsAppLink
	}
	return n, nil
}

type Sender string

const (
	FromBot  Sender = "bot"
	FromUser Sender = "user"
)

type Message struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Sender    Sender    `json:"sender"`
	Timestamp time.Time `json:"timestamp"`
}

// Conversation is one visitor's transcript. It starts with the welcome
// message.
type Conversation struct {
	bot      Bot
	now      func() time.Time
	messages []Message
	current  Node
}

func NewConversation(bot Bot, now func() time.Time) *Conversation {
	if now == nil {
		now = time.Now
	}
	c := &Conversation{bot: bot, now: now}
	welcome, _ := bot.Lookup(Welcome)
	c.current = welcome
	c.add(welcome.Message, FromBot)
	return c
}

// Choose records the quick reply the visitor picked and the bot's answer.
func (c *Conversation) Choose(r QuickReply) (Node, error) {
	n, err := c.bot.Lookup(r.Intent)
	if err != nil {
		return Node{}, err
	}
	c.add(r.Label, FromUser)
	c.add(n.Message, FromBot)
	c.current = n
	return n, nil
}

func (c *Conversation) Current() Node {
	return c.current
}

func (c *Conversation) Messages() []Message {
	return append([]Message(nil), c.messages...)
}

func (c *Conversation) add(text string, from Sender) {
	c.messages = append(c.messages, Message{
		ID:        fmt.Sprintf("%d", len(c.messages)+1),
		Text:      text,
		Sender:    from,
		Timestamp: c.now(),
	})
}
