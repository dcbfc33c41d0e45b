package api

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"time"

	"partnerhub/internal/service"
	wire "partnerhub/pkg/models"

	"github.com/gin-gonic/gin"
)

// ContactHandler serves the approved-recipient list and the public
// contact form.
type ContactHandler struct {
	Service *service.Service
}

func NewContactHandler(svc *service.Service) *ContactHandler {
	return &ContactHandler{Service: svc}
}

func (h *ContactHandler) ListRecipients(c *gin.Context) {
	recipients, err := h.Service.ListRecipients(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if recipients == nil {
		recipients = []wire.RecipientRecord{}
	}
	c.JSON(http.StatusOK, recipients)
}

func (h *ContactHandler) GetRecipient(c *gin.Context) {
	var req wire.PhoneRequest
	if !bindJSON(c, &req) {
		return
	}
	r, err := h.Service.GetRecipient(c.Request.Context(), req.PhoneNumber)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

func (h *ContactHandler) AddRecipient(c *gin.Context) {
	var req wire.RecipientRecord
	if !bindJSON(c, &req) {
		return
	}
	if err := h.Service.AddRecipient(c.Request.Context(), req); err != nil {
		respondError(c, err)
		return
	}
	ok(c)
}

func (h *ContactHandler) RemoveRecipient(c *gin.Context) {
	var req wire.PhoneRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.Service.RemoveRecipient(c.Request.Context(), req.PhoneNumber); err != nil {
		respondError(c, err)
		return
	}
	ok(c)
}

func (h *ContactHandler) SubmitContactForm(c *gin.Context) {
	var req wire.ContactFormSubmission
	if !bindJSON(c, &req) {
		return
	}
	if err := h.Service.SubmitContactForm(c.Request.Context(), req); err != nil {
		respondError(c, err)
		return
	}
	ok(c)
}

// ListSubmissions accepts an optional {"query": ...} body.
func (h *ContactHandler) ListSubmissions(c *gin.Context) {
	var req wire.SubmissionQuery
	if c.Request.ContentLength > 0 && !bindJSON(c, &req) {
		return
	}
	subs, err := h.Service.ListSubmissions(c.Request.Context(), req.Query)
	if err != nil {
		respondError(c, err)
		return
	}
	if subs == nil {
		subs = []wire.ContactFormSubmission{}
	}
	c.JSON(http.StatusOK, subs)
}

// ExportSubmissions streams the submissions matching ?q= as CSV.
func (h *ContactHandler) ExportSubmissions(c *gin.Context) {
	subs, err := h.Service.ListSubmissions(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := writeSubmissionsCSV(&buf, subs); err != nil {
		respondError(c, fmt.Errorf("write csv: %w", err))
		return
	}

	c.Header("Content-Disposition", "attachment; filename=contact-submissions.csv")
	c.Data(http.StatusOK, "text/csv", buf.Bytes())
}

func writeSubmissionsCSV(out io.Writer, subs []wire.ContactFormSubmission) error {
	w := csv.NewWriter(out)
	if err := w.Write([]string{"Name", "Email", "Phone", "Company", "Message", "Submitted At"}); err != nil {
		return err
	}
	for _, s := range subs {
		row := []string{
			spreadsheetSafe(s.Name),
			spreadsheetSafe(s.Email),
			spreadsheetSafe(s.Phone),
			spreadsheetSafe(s.Company),
			spreadsheetSafe(s.Message),
			s.Timestamp.Format(time.RFC3339),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// spreadsheetSafe prefixes a quote to cells a spreadsheet would evaluate
// as a formula. Form input is public, so every text cell goes through it.
func spreadsheetSafe(cell string) string {
	if cell == "" {
		return cell
	}
	switch cell[0] {
	case '=', '+', '-', '@', '\t', '\r':
		return "'" + cell
	}
	return cell
}
