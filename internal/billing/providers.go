package billing

import (
	"context"
	"fmt"
	"sort"

	"shopctl/internal/api"
	"shopctl/internal/draft"
	"shopctl/internal/types"
)

// RequiredConfigKeys lists the config keys each provider type must carry
// before it can be submitted. Types not listed need no config (e.g. cash
// on delivery).
var RequiredConfigKeys = map[string][]string{
	"stripe":   {"secret_key", "publishable_key"},
	"paypal":   {"client_id", "client_secret"},
	"yookassa": {"shop_id", "secret_key"},
}

// ProviderTypes returns the known provider types in stable order.
func ProviderTypes() []string {
	out := []string{"cod"}
	for t := range RequiredConfigKeys {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// Providers is the payment provider configuration service.
type Providers struct {
	client *api.Client
}

// NewProviders creates the service.
func NewProviders(c *api.Client) *Providers {
	return &Providers{client: c}
}

// List returns all configured providers in display order.
func (s *Providers) List(ctx context.Context) ([]types.PaymentProvider, error) {
	var resp struct {
		Items []types.PaymentProvider `json:"items"`
	}
	if err := s.client.Get(ctx, "/payment-providers", nil, &resp); err != nil {
		return nil, err
	}
	sort.SliceStable(resp.Items, func(i, j int) bool {
		return resp.Items[i].Position < resp.Items[j].Position
	})
	return resp.Items, nil
}

// Create posts a new provider.
func (s *Providers) Create(ctx context.Context, p ProviderPayload) error {
	return s.client.Post(ctx, "/payment-providers", p, nil)
}

// Update replaces a provider's editable fields.
func (s *Providers) Update(ctx context.Context, id int64, p ProviderPayload) error {
	return s.client.Put(ctx, fmt.Sprintf("/payment-providers/%d", id), p, nil)
}

// SetEnabled toggles a provider on the checkout.
func (s *Providers) SetEnabled(ctx context.Context, id int64, enabled bool) error {
	body := map[string]bool{"enabled": enabled}
	return s.client.Put(ctx, fmt.Sprintf("/payment-providers/%d/status", id), body, nil)
}

// Move changes a provider's checkout position.
func (s *Providers) Move(ctx context.Context, id int64, position int) error {
	body := map[string]int{"position": position}
	return s.client.Put(ctx, fmt.Sprintf("/payment-providers/%d/move", id), body, nil)
}

// Delete removes a provider.
func (s *Providers) Delete(ctx context.Context, id int64) error {
	return s.client.Delete(ctx, fmt.Sprintf("/payment-providers/%d", id))
}

// ProviderPayload is the editable field set of a payment provider.
type ProviderPayload struct {
	Type    string            `json:"type" validate:"required"`
	Name    string            `json:"name" validate:"required"`
	Enabled bool              `json:"enabled"`
	Config  map[string]string `json:"config,omitempty"`
}

// ProviderDraft couples the form controller with the provider payload.
type ProviderDraft struct {
	*draft.Form[ProviderPayload]
}

// NewProviderDraft opens a draft: nil creates, a loaded provider edits.
func NewProviderDraft(existing *types.PaymentProvider) *ProviderDraft {
	if existing == nil {
		return &ProviderDraft{Form: draft.New(ProviderPayload{Type: "cod", Config: map[string]string{}})}
	}
	cfg := make(map[string]string, len(existing.Config))
	for k, v := range existing.Config {
		cfg[k] = v
	}
	seed := ProviderPayload{
		Type:    existing.Type,
		Name:    existing.Name,
		Enabled: existing.Enabled,
		Config:  cfg,
	}
	return &ProviderDraft{Form: draft.Edit(seed, existing.ID)}
}

// Save validates the required config keys for the chosen type pre-flight,
// then submits. Missing keys land on config.<key> fields.
func (d *ProviderDraft) Save(ctx context.Context, svc *Providers) error {
	p := d.Value()
	p.Name = draft.Trim(p.Name)

	checks := []draft.Check[ProviderPayload]{
		func(p *ProviderPayload) map[string]string {
			errs := map[string]string{}
			for _, key := range RequiredConfigKeys[p.Type] {
				if draft.Trim(p.Config[key]) == "" {
					errs["config."+key] = "required for " + p.Type
				}
			}
			if len(errs) == 0 {
				return nil
			}
			return errs
		},
	}
	return d.Form.Save(ctx, checks, svc.Create, svc.Update)
}
