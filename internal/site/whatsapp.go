package site

import (
	"net/url"
	"strings"

	"github.com/skip2/go-qrcode"
)

// DefaultGreeting pre-fills the chat opened from the floating button and
// the chatbot.
const DefaultGreeting = "Hello! I would like to know more about PB Partners Hub."

// componentEscaper undoes the QueryEscape escapes that encodeURIComponent
// leaves alone, and spells spaces as %20.
var componentEscaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// WhatsAppURL builds the wa.me link for an Indian number, with an optional
// pre-filled message.
func WhatsAppURL(number, text string) string {
	u := "https://wa.me/91" + number
	if text == "" {
		return u
	}
	return u + "?text=" + componentEscaper.Replace(url.QueryEscape(text))
}

// WhatsAppQR renders the wa.me link as a PNG.
func WhatsAppQR(number, text string, size int) ([]byte, error) {
	if size <= 0 {
		size = 512
	}
	return qrcode.Encode(WhatsAppURL(number, text), qrcode.Medium, size)
}
