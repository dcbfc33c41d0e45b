package main

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"partnerhub/internal/dashboard"
	wire "partnerhub/pkg/models"
)

const clock = "15:04"

func writeContacts(w io.Writer, contacts []dashboard.Contact, now time.Time) {
	if len(contacts) == 0 {
		fmt.Fprintln(w, "No conversations yet")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, c := range contacts {
		fmt.Fprintf(tw, "%s\t%s %s\t%s\n",
			c.PhoneNumber, dashboard.DayLabel(c.Timestamp, now), c.Timestamp.In(now.Location()).Format(clock), c.Preview)
	}
	tw.Flush()
}

// writeThread prints messages oldest first under a day header whenever
// the day changes. Outgoing lines carry their delivery mark.
func writeThread(w io.Writer, msgs []wire.WhatsAppMessage, self string, now time.Time) {
	if len(msgs) == 0 {
		fmt.Fprintln(w, "No messages")
		return
	}
	var day string
	for _, m := range msgs {
		if d := dashboard.DayLabel(m.Timestamp, now); d != day {
			day = d
			fmt.Fprintf(w, "-- %s --\n", day)
		}
		at := m.Timestamp.In(now.Location()).Format(clock)
		if m.Sender == self {
			fmt.Fprintf(w, "%s  > %s %s\n", at, m.Content, dashboard.StatusMark(m.Status))
		} else {
			fmt.Fprintf(w, "%s  < %s\n", at, m.Content)
		}
	}
}

func writeRecipients(w io.Writer, list []wire.RecipientRecord) {
	if len(list) == 0 {
		fmt.Fprintln(w, "No approved recipients")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PHONE\tTYPE\tSOURCE\tDESCRIPTION")
	for _, r := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.PhoneNumber, r.RecipientType, r.SourceSystem, r.Description)
	}
	tw.Flush()
}

func writeConnection(w io.Writer, c dashboard.Connection) {
	fmt.Fprintf(w, "Integration:  %s\n", c.Integration)
	fmt.Fprintf(w, "Token:        %s\n", c.Token)
	phone := "none attached"
	if c.HasPhoneNumber() {
		phone = fmt.Sprintf("%d attached (%d production, %d test)",
			c.Phone.TotalNumbers, c.Phone.ProductionNumbers, c.Phone.TestNumbers)
	}
	fmt.Fprintf(w, "Phone number: %s\n", phone)
}
