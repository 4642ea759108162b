// Package billing covers the money-adjacent settings: currencies, promo
// codes, and payment provider configuration.
package billing

import (
	"context"
	"fmt"

	"shopctl/internal/api"
	"shopctl/internal/types"
)

// ErrDefaultCurrency rejects disabling or deleting the default currency;
// another currency must be made default first.
var ErrDefaultCurrency = fmt.Errorf("billing: the default currency cannot be disabled")

// Currencies is the currency settings service.
type Currencies struct {
	client *api.Client
}

// NewCurrencies creates the service.
func NewCurrencies(c *api.Client) *Currencies {
	return &Currencies{client: c}
}

// List returns all configured currencies. The set is small, so this
// endpoint is not paginated.
func (s *Currencies) List(ctx context.Context) ([]types.Currency, error) {
	var resp struct {
		Items []types.Currency `json:"items"`
	}
	if err := s.client.Get(ctx, "/currencies", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// Create posts a new currency.
func (s *Currencies) Create(ctx context.Context, p CurrencyPayload) error {
	return s.client.Post(ctx, "/currencies", p, nil)
}

// Update replaces a currency's editable fields.
func (s *Currencies) Update(ctx context.Context, id int64, p CurrencyPayload) error {
	return s.client.Put(ctx, fmt.Sprintf("/currencies/%d", id), p, nil)
}

// SetDefault makes a currency the default; the server clears the previous
// default in the same transaction, so there is always exactly one.
func (s *Currencies) SetDefault(ctx context.Context, id int64) error {
	return s.client.Put(ctx, fmt.Sprintf("/currencies/%d/default", id), nil, nil)
}

// SetActive enables or disables a currency. The default currency stays on.
func (s *Currencies) SetActive(ctx context.Context, cur types.Currency, active bool) error {
	if cur.IsDefault && !active {
		return ErrDefaultCurrency
	}
	body := map[string]bool{"isActive": active}
	return s.client.Put(ctx, fmt.Sprintf("/currencies/%d/status", cur.ID), body, nil)
}

// Delete removes a currency. The default currency is rejected locally.
func (s *Currencies) Delete(ctx context.Context, cur types.Currency) error {
	if cur.IsDefault {
		return ErrDefaultCurrency
	}
	return s.client.Delete(ctx, fmt.Sprintf("/currencies/%d", cur.ID))
}

// CurrencyPayload is the editable field set of a currency.
type CurrencyPayload struct {
	Code     string  `json:"code" validate:"required,len=3,uppercase"`
	Symbol   string  `json:"symbol" validate:"required"`
	Rate     float64 `json:"rate" validate:"gt=0"`
	IsActive bool    `json:"isActive"`
}
