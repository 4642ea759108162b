package catalog

import (
	"context"
	"fmt"

	"shopctl/internal/api"
	"shopctl/internal/draft"
	"shopctl/internal/slug"
	"shopctl/internal/types"
)

// Products is the product service.
type Products struct {
	client *api.Client
}

// NewProducts creates the service.
func NewProducts(c *api.Client) *Products {
	return &Products{client: c}
}

// List returns one page of products.
func (s *Products) List(ctx context.Context, p api.ListParams) (api.ListResponse[types.Product], error) {
	return api.List[types.Product](ctx, s.client, "/products", p)
}

// Get loads one product.
func (s *Products) Get(ctx context.Context, id int64) (types.Product, error) {
	var out types.Product
	err := s.client.Get(ctx, fmt.Sprintf("/products/%d", id), nil, &out)
	return out, err
}

// Create posts a new product.
func (s *Products) Create(ctx context.Context, p ProductPayload) error {
	return s.client.Post(ctx, "/products", p, nil)
}

// Update replaces an existing product's editable fields.
func (s *Products) Update(ctx context.Context, id int64, p ProductPayload) error {
	return s.client.Put(ctx, fmt.Sprintf("/products/%d", id), p, nil)
}

// Delete removes a product.
func (s *Products) Delete(ctx context.Context, id int64) error {
	return s.client.Delete(ctx, fmt.Sprintf("/products/%d", id))
}

// Duplicate asks the server to clone a product (the copy comes back on the
// next list reload).
func (s *Products) Duplicate(ctx context.Context, id int64) error {
	return s.client.Post(ctx, fmt.Sprintf("/products/%d/duplicate", id), nil, nil)
}

// SetStatus moves a product between draft/published/archived.
func (s *Products) SetStatus(ctx context.Context, id int64, status types.ProductStatus) error {
	body := map[string]types.ProductStatus{"status": status}
	return s.client.Put(ctx, fmt.Sprintf("/products/%d/status", id), body, nil)
}

// ProductPayload is the editable field set sent on create/update.
type ProductPayload struct {
	Name       string              `json:"name" validate:"required"`
	Slug       string              `json:"slug" validate:"required"`
	SKU        string              `json:"sku" validate:"required"`
	CategoryID *int64              `json:"categoryId"`
	Price      float64             `json:"price" validate:"gte=0"`
	OldPrice   *float64            `json:"oldPrice,omitempty"`
	Stock      int                 `json:"stock" validate:"gte=0"`
	Status     types.ProductStatus `json:"status" validate:"oneof=draft published archived"`
	Images     []string            `json:"images,omitempty"`
}

// ProductDraft couples the form controller with the product payload.
type ProductDraft struct {
	*draft.Form[ProductPayload]
	slugBind draft.SlugBinding
}

// NewProductDraft opens a draft: nil creates, a loaded record edits.
func NewProductDraft(existing *types.Product) *ProductDraft {
	if existing == nil {
		return &ProductDraft{Form: draft.New(ProductPayload{Status: types.ProductDraft})}
	}
	seed := ProductPayload{
		Name:       existing.Name,
		Slug:       existing.Slug,
		SKU:        existing.SKU,
		CategoryID: existing.CategoryID,
		Price:      existing.Price,
		OldPrice:   existing.OldPrice,
		Stock:      existing.Stock,
		Status:     existing.Status,
		Images:     existing.Images,
	}
	return &ProductDraft{Form: draft.Edit(seed, existing.ID)}
}

// SetName updates the name and derives the slug while the binding holds.
func (d *ProductDraft) SetName(name string) {
	d.Value().Name = name
	if s, ok := d.slugBind.Derive(d.IsNew(), name); ok {
		d.Value().Slug = s
	}
}

// SetSlug records a manual slug edit.
func (d *ProductDraft) SetSlug(s string) {
	d.slugBind.Touch()
	d.Value().Slug = s
}

func (d *ProductDraft) checks() []draft.Check[ProductPayload] {
	return []draft.Check[ProductPayload]{
		func(p *ProductPayload) map[string]string {
			errs := map[string]string{}
			if p.Slug != "" && !slug.Valid(p.Slug) {
				errs["slug"] = "must contain only a-z, 0-9 and hyphens"
			}
			if p.OldPrice != nil && *p.OldPrice <= p.Price {
				errs["oldPrice"] = "old price must exceed the current price"
			}
			if len(errs) == 0 {
				return nil
			}
			return errs
		},
	}
}

// Save normalizes and submits the draft through the product service.
func (d *ProductDraft) Save(ctx context.Context, svc *Products) error {
	p := d.Value()
	p.Name = draft.Trim(p.Name)
	p.Slug = draft.Trim(p.Slug)
	p.SKU = draft.Trim(p.SKU)

	return d.Form.Save(ctx, d.checks(), svc.Create, svc.Update)
}
