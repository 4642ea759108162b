// Package reviews is the moderation queue for customer product reviews.
// Reviews arrive pending; moderation either approves them onto the
// storefront or rejects them. Both moves are reversible until deleted.
package reviews

import (
	"context"
	"fmt"

	"shopctl/internal/api"
	"shopctl/internal/types"
)

// Service is the review moderation service.
type Service struct {
	client *api.Client
}

// NewService creates the service.
func NewService(c *api.Client) *Service {
	return &Service{client: c}
}

// List returns one page of reviews. Filter by "status" to scope the queue.
func (s *Service) List(ctx context.Context, p api.ListParams) (api.ListResponse[types.Review], error) {
	return api.List[types.Review](ctx, s.client, "/reviews", p)
}

// Approve publishes a review to the storefront.
func (s *Service) Approve(ctx context.Context, id int64) error {
	return s.setStatus(ctx, id, types.ReviewApproved)
}

// Reject hides a review without deleting it.
func (s *Service) Reject(ctx context.Context, id int64) error {
	return s.setStatus(ctx, id, types.ReviewRejected)
}

func (s *Service) setStatus(ctx context.Context, id int64, st types.ReviewStatus) error {
	body := map[string]types.ReviewStatus{"status": st}
	return s.client.Put(ctx, fmt.Sprintf("/reviews/%d/status", id), body, nil)
}

// Delete removes a review permanently.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.client.Delete(ctx, fmt.Sprintf("/reviews/%d", id))
}
