package service

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"partnerhub/internal/models"
	wire "partnerhub/pkg/models"
)

// UploadDocument stores an onboarding document. It is public: partners
// upload before they have an account.
func (s *Service) UploadDocument(ctx context.Context, docType wire.DocumentType, fileName, contentType string, r io.Reader) error {
	if !docType.Valid() {
		return fmt.Errorf("%w: unknown document type %q", ErrInvalidInput, docType)
	}
	fileName = filepath.Base(strings.TrimSpace(fileName))
	if fileName == "" || fileName == "." || fileName == string(filepath.Separator) {
		return fmt.Errorf("%w: file name is required", ErrInvalidInput)
	}

	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		return fmt.Errorf("create upload dir: %w", err)
	}
	id := s.newID()
	path := filepath.Join(s.uploadDir, id)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create upload file: %w", err)
	}

	br := bufio.NewReader(r)
	if contentType == "" || contentType == "application/octet-stream" {
		head, _ := br.Peek(512)
		contentType = http.DetectContentType(head)
	}

	n, err := io.Copy(f, io.LimitReader(br, s.maxUpload+1))
	closeErr := f.Close()
	if err == nil {
		err = closeErr
	}
	if err == nil && n == 0 {
		err = fmt.Errorf("%w: file is empty", ErrInvalidInput)
	}
	if err == nil && n > s.maxUpload {
		err = fmt.Errorf("%w: file exceeds %d bytes", ErrInvalidInput, s.maxUpload)
	}
	if err != nil {
		if rmErr := os.Remove(path); rmErr != nil {
			log.Printf("Error removing partial upload %s: %v", path, rmErr)
		}
		return err
	}

	if err := s.store.CreateDocument(ctx, &models.Document{
		ID:          id,
		FileName:    fileName,
		DocType:     string(docType),
		ContentType: contentType,
		Size:        n,
		StoragePath: path,
		UploadedAt:  s.now(),
	}); err != nil {
		os.Remove(path)
		return err
	}
	log.Printf("Stored %s document %s (%d bytes)", docType, fileName, n)
	s.invalidate(wire.KeySubmittedDocuments)
	return nil
}

func (s *Service) ListDocuments(ctx context.Context) ([]wire.SubmittedDocument, error) {
	if err := s.requireAdmin(ctx); err != nil {
		return nil, err
	}
	return s.store.ListDocuments(ctx)
}

// OpenDocument returns the document metadata and its bytes. The caller
// closes the file.
func (s *Service) OpenDocument(ctx context.Context, id string) (models.Document, *os.File, error) {
	if err := s.requireAdmin(ctx); err != nil {
		return models.Document{}, nil, err
	}
	doc, err := s.store.GetDocument(ctx, id)
	if err != nil {
		return models.Document{}, nil, err
	}
	f, err := os.Open(doc.StoragePath)
	if err != nil {
		if os.IsNotExist(err) {
			return models.Document{}, nil, fmt.Errorf("%w: document bytes missing", ErrNotFound)
		}
		return models.Document{}, nil, err
	}
	return doc, f, nil
}
