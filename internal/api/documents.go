package api

import (
	"fmt"
	"net/http"
	"strings"

	"partnerhub/internal/service"
	wire "partnerhub/pkg/models"

	"github.com/gin-gonic/gin"
)

// DocumentHandler accepts onboarding uploads and serves them back to
// admins.
type DocumentHandler struct {
	Service *service.Service
}

func NewDocumentHandler(svc *service.Service) *DocumentHandler {
	return &DocumentHandler{Service: svc}
}

// UploadDocument takes a multipart form with docType, file and an
// optional fileName overriding the part's own name.
func (h *DocumentHandler) UploadDocument(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File is required", "code": wire.CodeInvalidInput})
		return
	}
	defer file.Close()

	name := strings.TrimSpace(c.PostForm("fileName"))
	if name == "" {
		name = header.Filename
	}
	docType := wire.DocumentType(c.PostForm("docType"))

	err = h.Service.UploadDocument(c.Request.Context(), docType, name, header.Header.Get("Content-Type"), file)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c)
}

func (h *DocumentHandler) ListDocuments(c *gin.Context) {
	docs, err := h.Service.ListDocuments(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if docs == nil {
		docs = []wire.SubmittedDocument{}
	}
	c.JSON(http.StatusOK, docs)
}

func (h *DocumentHandler) DownloadDocument(c *gin.Context) {
	doc, f, err := h.Service.OpenDocument(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	defer f.Close()

	c.Header("Content-Type", doc.ContentType)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.FileName))
	http.ServeContent(c.Writer, c.Request, doc.FileName, doc.UploadedAt, f)
}
