// Package dashboard holds the operator console's messaging logic: contact
// and thread derivation, the approval gate, the two send paths and the
// live message feed. Everything here is independent of how it is drawn.
package dashboard

import (
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	wire "partnerhub/pkg/models"
)

// PreviewLength is the number of characters kept in a contact preview.
const PreviewLength = 50

// Contact is a counterpart derived from the message log.
type Contact struct {
	PhoneNumber string
	Preview     string
	Timestamp   time.Time
}

// Counterpart returns the other party of m as seen by self. It reports
// false for messages self sent to itself.
func Counterpart(m wire.WhatsAppMessage, self string) (string, bool) {
	switch {
	case m.Sender == self && m.Recipient == self:
		return "", false
	case m.Sender == self:
		return m.Recipient, true
	case m.Recipient == self:
		return m.Sender, true
	default:
		return m.Sender, true
	}
}

// Preview truncates content to PreviewLength characters and marks the cut
// with "...".
func Preview(content string) string {
	if utf8.RuneCountInString(content) <= PreviewLength {
		return content
	}
	runes := []rune(content)
	return string(runes[:PreviewLength]) + "..."
}

// Contacts derives one entry per counterpart carrying its most recent
// message, newest first. Equal timestamps order by phone number.
func Contacts(messages []wire.WhatsAppMessage, self string) []Contact {
	latest := make(map[string]wire.WhatsAppMessage)
	for _, m := range messages {
		cp, ok := Counterpart(m, self)
		if !ok {
			continue
		}
		prev, seen := latest[cp]
		if !seen || newer(m, prev) {
			latest[cp] = m
		}
	}

	contacts := make([]Contact, 0, len(latest))
	for cp, m := range latest {
		contacts = append(contacts, Contact{
			PhoneNumber: cp,
			Preview:     Preview(m.Content),
			Timestamp:   m.Timestamp,
		})
	}
	sort.Slice(contacts, func(i, j int) bool {
		a, b := contacts[i], contacts[j]
		if !a.Timestamp.Equal(b.Timestamp) {
			return a.Timestamp.After(b.Timestamp)
		}
		return a.PhoneNumber < b.PhoneNumber
	})
	return contacts
}

// newer orders by timestamp, then id, so the pick does not depend on the
// input order.
func newer(a, b wire.WhatsAppMessage) bool {
	if !a.Timestamp.Equal(b.Timestamp) {
		return a.Timestamp.After(b.Timestamp)
	}
	return a.ID > b.ID
}

// Thread returns the messages exchanged with counterpart, oldest first.
// Equal timestamps order by id.
func Thread(messages []wire.WhatsAppMessage, counterpart string) []wire.WhatsAppMessage {
	if counterpart == "" {
		return nil
	}
	var thread []wire.WhatsAppMessage
	for _, m := range messages {
		if m.Sender == counterpart || m.Recipient == counterpart {
			thread = append(thread, m)
		}
	}
	sort.SliceStable(thread, func(i, j int) bool {
		a, b := thread[i], thread[j]
		if !a.Timestamp.Equal(b.Timestamp) {
			return a.Timestamp.Before(b.Timestamp)
		}
		return a.ID < b.ID
	})
	return thread
}

// Filter keeps contacts whose number or preview contains term, ignoring
// case. An empty term keeps everything.
func Filter(contacts []Contact, term string) []Contact {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return contacts
	}
	var out []Contact
	for _, c := range contacts {
		if strings.Contains(strings.ToLower(c.PhoneNumber), term) ||
			strings.Contains(strings.ToLower(c.Preview), term) {
			out = append(out, c)
		}
	}
	return out
}

type Stats struct {
	Total          int
	Sent           int
	Received       int
	UniqueContacts int
}

func ComputeStats(messages []wire.WhatsAppMessage, self string) Stats {
	st := Stats{Total: len(messages)}
	for _, m := range messages {
		if m.Sender == self {
			st.Sent++
		}
		if m.Recipient == self {
			st.Received++
		}
	}
	st.UniqueContacts = len(Contacts(messages, self))
	return st
}

// DayLabel renders ts as "Today", "Yesterday" or a date, relative to now
// in now's location.
func DayLabel(ts, now time.Time) string {
	ts = ts.In(now.Location())
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	switch {
	case !ts.Before(today) && ts.Before(today.AddDate(0, 0, 1)):
		return "Today"
	case !ts.Before(today.AddDate(0, 0, -1)) && ts.Before(today):
		return "Yesterday"
	default:
		return ts.Format("2 Jan 2006")
	}
}

// StatusMark is the console glyph for a delivery status.
func StatusMark(s wire.MessageStatus) string {
	switch s {
	case wire.StatusSent:
		return "✓"
	case wire.StatusDelivered:
		return "✓✓"
	case wire.StatusRead:
		return "✓✓ read"
	case wire.StatusFailed:
		return "✗"
	default:
		return "…"
	}
}
