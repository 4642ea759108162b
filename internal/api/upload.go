package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"shopctl/internal/logging"
)

// UploadResult is the upload endpoint's response.
type UploadResult struct {
	URL string `json:"url"`
}

// Upload sends a file as a multipart form body to path (the dedicated upload
// endpoint) and returns the public URL the server assigned.
func (c *Client) Upload(ctx context.Context, path, filename string, r io.Reader) (UploadResult, error) {
	var result UploadResult

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return result, fmt.Errorf("api: build multipart body: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return result, fmt.Errorf("api: read upload source: %w", err)
	}
	if err := writer.Close(); err != nil {
		return result, fmt.Errorf("api: finalize multipart body: %w", err)
	}

	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.httpClient.Timeout)
		defer cancel()
	}

	u := c.BaseURL() + "/" + strings.TrimLeft(path, "/")
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, &buf)
	if err != nil {
		return result, fmt.Errorf("api: create upload request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if err := c.authorize(req); err != nil {
		return result, err
	}
	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logging.APIError("[%s] upload %s transport error: %v", requestID, filename, err)
		return result, fmt.Errorf("api: upload %s: %w", filename, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return result, fmt.Errorf("api: read upload response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return result, parseError(resp.StatusCode, body)
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return result, fmt.Errorf("api: decode upload response: %w", err)
	}
	logging.API("[%s] uploaded %s -> %s", requestID, filename, result.URL)
	return result, nil
}
