package actor

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"

	wire "partnerhub/pkg/models"
)

// UploadDocument posts r as a multipart onboarding document.
func (c *Client) UploadDocument(ctx context.Context, docType wire.DocumentType, fileName string, r io.Reader) error {
	if c == nil {
		return ErrUnavailable
	}

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	go func() {
		err := writeUpload(mw, docType, fileName, r)
		pw.CloseWithError(err)
	}()

	req, err := c.newRequest(ctx, http.MethodPost, "/api/rpc/uploadDocument", pr)
	if err != nil {
		pr.Close()
		return err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.do(req)
	pr.Close()
	if err != nil {
		return err
	}
	resp.Body.Close()
	c.cache.Invalidate(wire.KeySubmittedDocuments)
	return nil
}

func writeUpload(mw *multipart.Writer, docType wire.DocumentType, fileName string, r io.Reader) error {
	if err := mw.WriteField("docType", string(docType)); err != nil {
		return err
	}
	if err := mw.WriteField("fileName", fileName); err != nil {
		return err
	}
	part, err := mw.CreateFormFile("file", fileName)
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, r); err != nil {
		return err
	}
	return mw.Close()
}

// DownloadDocument copies a stored document into w.
func (c *Client) DownloadDocument(ctx context.Context, id string, w io.Writer) (int64, error) {
	return c.download(ctx, "/api/documents/"+url.PathEscape(id)+"/content", w)
}

// ExportSubmissions copies the CSV export of submissions matching q into w.
func (c *Client) ExportSubmissions(ctx context.Context, q string, w io.Writer) (int64, error) {
	path := "/api/submissions/export"
	if q != "" {
		path += "?q=" + url.QueryEscape(q)
	}
	return c.download(ctx, path, w)
}

func (c *Client) download(ctx context.Context, path string, w io.Writer) (int64, error) {
	if c == nil {
		return 0, ErrUnavailable
	}
	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return 0, err
	}
	resp, err := c.do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	n, err := io.Copy(w, resp.Body)
	if err != nil {
		return n, fmt.Errorf("read %s: %w", path, err)
	}
	return n, nil
}
