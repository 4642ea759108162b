package billing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"shopctl/internal/api"
	"shopctl/internal/draft"
	"shopctl/internal/types"
)

// Promos is the promo code service.
type Promos struct {
	client *api.Client
}

// NewPromos creates the service.
func NewPromos(c *api.Client) *Promos {
	return &Promos{client: c}
}

// List returns one page of promo codes.
func (s *Promos) List(ctx context.Context, p api.ListParams) (api.ListResponse[types.PromoCode], error) {
	return api.List[types.PromoCode](ctx, s.client, "/promo-codes", p)
}

// Create posts a new promo code.
func (s *Promos) Create(ctx context.Context, p PromoPayload) error {
	return s.client.Post(ctx, "/promo-codes", p, nil)
}

// Update replaces a promo code's editable fields.
func (s *Promos) Update(ctx context.Context, id int64, p PromoPayload) error {
	return s.client.Put(ctx, fmt.Sprintf("/promo-codes/%d", id), p, nil)
}

// SetActive enables or disables a code without editing it.
func (s *Promos) SetActive(ctx context.Context, id int64, active bool) error {
	body := map[string]bool{"isActive": active}
	return s.client.Put(ctx, fmt.Sprintf("/promo-codes/%d/status", id), body, nil)
}

// Delete removes a promo code.
func (s *Promos) Delete(ctx context.Context, id int64) error {
	return s.client.Delete(ctx, fmt.Sprintf("/promo-codes/%d", id))
}

// PromoPayload is the editable field set of a promo code.
type PromoPayload struct {
	Code       string             `json:"code" validate:"required"`
	Kind       types.DiscountKind `json:"kind" validate:"oneof=percent fixed"`
	Value      float64            `json:"value" validate:"gt=0"`
	MinOrder   *float64           `json:"minOrder,omitempty"`
	UsageLimit *int               `json:"usageLimit,omitempty"`
	ExpiresAt  *time.Time         `json:"expiresAt,omitempty"`
	IsActive   bool               `json:"isActive"`
}

// PromoDraft couples the form controller with the promo payload.
type PromoDraft struct {
	*draft.Form[PromoPayload]
}

// NewPromoDraft opens a draft: nil creates, a loaded code edits.
func NewPromoDraft(existing *types.PromoCode) *PromoDraft {
	if existing == nil {
		return &PromoDraft{Form: draft.New(PromoPayload{Kind: types.DiscountPercent, IsActive: true})}
	}
	seed := PromoPayload{
		Code:       existing.Code,
		Kind:       existing.Kind,
		Value:      existing.Value,
		MinOrder:   existing.MinOrder,
		UsageLimit: existing.UsageLimit,
		ExpiresAt:  existing.ExpiresAt,
		IsActive:   existing.IsActive,
	}
	return &PromoDraft{Form: draft.Edit(seed, existing.ID)}
}

// Save normalizes and submits the draft. Codes are stored upper-case; a
// CODE_EXISTS conflict lands on the code field with the draft preserved.
func (d *PromoDraft) Save(ctx context.Context, svc *Promos) error {
	p := d.Value()
	p.Code = strings.ToUpper(draft.Trim(p.Code))

	checks := []draft.Check[PromoPayload]{
		func(p *PromoPayload) map[string]string {
			if p.Kind == types.DiscountPercent && p.Value > 100 {
				return map[string]string{"value": "percent discount cannot exceed 100"}
			}
			return nil
		},
		func(p *PromoPayload) map[string]string {
			if p.ExpiresAt != nil && p.ExpiresAt.Before(time.Now()) {
				return map[string]string{"expiresAt": "expiry is in the past"}
			}
			return nil
		},
	}
	return d.Form.Save(ctx, checks, svc.Create, svc.Update)
}
