package webhook

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"time"

	"partnerhub/internal/metrics"
	"partnerhub/pkg/models"

	"github.com/gin-gonic/gin"
)

// Receiver is what the webhook needs from the actor.
type Receiver interface {
	VerifyMetaWebhook(ctx context.Context, req models.MetaWebhookVerificationRequest) (models.WebhookVerificationOutcome, error)
	RecordInbound(ctx context.Context, from, metaID, content string, at time.Time) error
	ApplyStatus(ctx context.Context, metaID, status string) error
}

type Handler struct {
	Receiver Receiver
}

func NewHandler(r Receiver) *Handler {
	return &Handler{Receiver: r}
}

func (h *Handler) VerifyWebhook(c *gin.Context) {
	mode := c.Query("hub.mode")
	token := c.Query("hub.verify_token")
	challenge := c.Query("hub.challenge")

	if mode == "" || token == "" {
		c.Status(http.StatusBadRequest)
		return
	}

	out, err := h.Receiver.VerifyMetaWebhook(c.Request.Context(), models.MetaWebhookVerificationRequest{
		Mode:        mode,
		VerifyToken: token,
		Challenge:   challenge,
	})
	if err != nil {
		log.Printf("Error verifying webhook: %v", err)
		c.Status(http.StatusInternalServerError)
		return
	}
	if !out.Succeeded() {
		c.Status(http.StatusForbidden)
		return
	}
	c.String(http.StatusOK, out.Challenge)
}

func (h *Handler) HandleMessage(c *gin.Context) {
	var payload models.WebhookPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		log.Printf("Error binding JSON: %v", err)
		c.Status(http.StatusBadRequest)
		return
	}

	ctx := c.Request.Context()
	for _, entry := range payload.Entry {
		for _, change := range entry.Changes {
			for _, message := range change.Value.Messages {
				metrics.WebhookEvents.WithLabelValues("message").Inc()
				content := Content(message)
				log.Printf("Received %s from %s", message.Type, message.From)
				if err := h.Receiver.RecordInbound(ctx, message.From, message.ID, content, unixTime(message.Timestamp)); err != nil {
					log.Printf("Error storing message %s: %v", message.ID, err)
				}
			}
			for _, status := range change.Value.Statuses {
				metrics.WebhookEvents.WithLabelValues("status").Inc()
				if err := h.Receiver.ApplyStatus(ctx, status.ID, status.Status); err != nil {
					log.Printf("Error applying status %s to %s: %v", status.Status, status.ID, err)
				}
			}
		}
	}

	// Meta retries anything but 200, so storage errors are only logged.
	c.Status(http.StatusOK)
}

// Content renders an inbound message as the text stored for it.
func Content(message models.InboundMessage) string {
	switch message.Type {
	case "text":
		return message.Text.Body
	case "image":
		return media("image", message.Image, true)
	case "video":
		return media("video", message.Video, true)
	case "audio":
		return media("audio", message.Audio, false)
	case "document":
		content := "[document]"
		if message.Document != nil {
			content += ":" + message.Document.ID
			if message.Document.Filename != "" {
				content += ":" + message.Document.Filename
			}
		}
		return content
	case "interactive":
		if message.Interactive != nil {
			if r := message.Interactive.ButtonReply; r != nil {
				return r.Title
			}
			if r := message.Interactive.ListReply; r != nil {
				return r.Title
			}
		}
		return "[interactive]"
	default:
		return "[" + message.Type + "]"
	}
}

func media(kind string, m *models.MediaMessage, withCaption bool) string {
	content := "[" + kind + "]"
	if m == nil {
		return content
	}
	content += ":" + m.ID
	if withCaption && m.Caption != "" {
		content += ":" + m.Caption
	}
	return content
}

// unixTime parses Meta's unix-seconds timestamp; zero when absent.
func unixTime(s string) time.Time {
	secs, err := strconv.ParseInt(s, 10, 64)
	if err != nil || secs <= 0 {
		return time.Time{}
	}
	return time.Unix(secs, 0).UTC()
}
