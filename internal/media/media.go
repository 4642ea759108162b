// Package media wraps the asset library endpoints: multipart uploads plus
// the browse/delete surface the pickers use.
package media

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"shopctl/internal/api"
	"shopctl/internal/logging"
	"shopctl/internal/types"
)

// Accepted upload extensions, lower-case with dot.
var allowedExt = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true,
	".webp": true, ".svg": true, ".pdf": true, ".mp4": true,
}

// MaxUploadSize caps uploads client-side before any bytes move.
const MaxUploadSize = 20 << 20

// ErrUnsupportedType rejects an upload by extension before any request.
var ErrUnsupportedType = fmt.Errorf("media: unsupported file type")

// ErrTooLarge rejects an upload by size before any request.
var ErrTooLarge = fmt.Errorf("media: file exceeds %d MB", MaxUploadSize>>20)

// Service is the media library service.
type Service struct {
	client *api.Client
}

// NewService creates the service.
func NewService(c *api.Client) *Service {
	return &Service{client: c}
}

// List returns one page of library assets.
func (s *Service) List(ctx context.Context, p api.ListParams) (api.ListResponse[types.MediaFile], error) {
	return api.List[types.MediaFile](ctx, s.client, "/media", p)
}

// Upload validates the file locally, then streams it to the upload endpoint
// and returns the assigned public URL.
func (s *Service) Upload(ctx context.Context, filename string, size int64, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedExt[ext] {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, ext)
	}
	if size > MaxUploadSize {
		return "", ErrTooLarge
	}

	timer := logging.StartTimer(logging.CategoryMedia, "upload "+filename)
	res, err := s.client.Upload(ctx, "/media/upload", filename, r)
	timer.Stop()
	if err != nil {
		return "", err
	}
	return res.URL, nil
}

// Delete removes an asset from the library. The server refuses assets still
// referenced by products or sections; that error surfaces as-is.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.client.Delete(ctx, fmt.Sprintf("/media/%d", id))
}
