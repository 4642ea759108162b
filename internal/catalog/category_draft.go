package catalog

import (
	"context"

	"shopctl/internal/draft"
	"shopctl/internal/slug"
	"shopctl/internal/types"
)

// CategoryPayload is the editable field set sent on create/update.
type CategoryPayload struct {
	Name           string  `json:"name" validate:"required"`
	Slug           string  `json:"slug" validate:"required"`
	ParentID       *int64  `json:"parentId"`
	Description    string  `json:"description"`
	ImageURL       *string `json:"imageUrl"`
	SEOTitle       *string `json:"seoTitle"`
	SEODescription *string `json:"seoDescription"`
	IsActive       bool    `json:"isActive"`
}

// CategoryDraft couples the generic form controller with the category
// payload and the name->slug binding.
type CategoryDraft struct {
	*draft.Form[CategoryPayload]
	slugBind draft.SlugBinding
}

// NewCategoryDraft opens a draft: pass nil for a new category, or the loaded
// record to edit it.
func NewCategoryDraft(existing *types.Category) *CategoryDraft {
	if existing == nil {
		return &CategoryDraft{Form: draft.New(CategoryPayload{IsActive: true})}
	}
	seed := CategoryPayload{
		Name:           existing.Name,
		Slug:           existing.Slug,
		ParentID:       existing.ParentID,
		Description:    existing.Description,
		ImageURL:       existing.ImageURL,
		SEOTitle:       existing.SEOTitle,
		SEODescription: existing.SEODescription,
		IsActive:       existing.IsActive,
	}
	return &CategoryDraft{Form: draft.Edit(seed, existing.ID)}
}

// SetName updates the name and, for a new draft with an untouched slug
// field, regenerates the slug.
func (d *CategoryDraft) SetName(name string) {
	d.Value().Name = name
	if s, ok := d.slugBind.Derive(d.IsNew(), name); ok {
		d.Value().Slug = s
	}
}

// SetSlug records a manual slug edit; auto-derivation stops.
func (d *CategoryDraft) SetSlug(s string) {
	d.slugBind.Touch()
	d.Value().Slug = s
}

// checks holds the category-specific validation beyond struct tags.
func (d *CategoryDraft) checks() []draft.Check[CategoryPayload] {
	return []draft.Check[CategoryPayload]{
		func(p *CategoryPayload) map[string]string {
			if p.Slug != "" && !slug.Valid(p.Slug) {
				return map[string]string{"slug": "must contain only a-z, 0-9 and hyphens"}
			}
			return nil
		},
	}
}

// Save normalizes the payload and submits it through the category service.
func (d *CategoryDraft) Save(ctx context.Context, svc *Categories) error {
	p := d.Value()
	p.Name = draft.Trim(p.Name)
	p.Slug = draft.Trim(p.Slug)
	p.Description = draft.Trim(p.Description)
	p.ImageURL = draft.OptionalFrom(p.ImageURL)
	p.SEOTitle = draft.OptionalFrom(p.SEOTitle)
	p.SEODescription = draft.OptionalFrom(p.SEODescription)

	return d.Form.Save(ctx, d.checks(), svc.Create, svc.Update)
}
