package pages

import (
	"context"
	"errors"

	"shopctl/internal/draft"
	"shopctl/internal/slug"
)

// ErrHasChildPages rejects deleting a page that still has child pages.
var ErrHasChildPages = errors.New("pages: page has child pages; move or delete them first")

// PagePayload is the editable meta field set of a page (sections travel
// separately through Service.Save).
type PagePayload struct {
	Title    string     `json:"title" validate:"required"`
	Slug     string     `json:"slug" validate:"required"`
	ParentID *int64     `json:"parentId"`
	Status   PageStatus `json:"status" validate:"oneof=draft published"`
	SEOTitle *string    `json:"seoTitle"`
}

// PageDraft couples the form controller with the page payload.
type PageDraft struct {
	*draft.Form[PagePayload]
	slugBind draft.SlugBinding
}

// NewPageDraft opens a draft: nil creates, a loaded page edits.
func NewPageDraft(existing *Page) *PageDraft {
	if existing == nil {
		return &PageDraft{Form: draft.New(PagePayload{Status: StatusDraft})}
	}
	seed := PagePayload{
		Title:    existing.Name,
		Slug:     existing.Slug,
		ParentID: existing.ParentID,
		Status:   existing.Status,
	}
	return &PageDraft{Form: draft.Edit(seed, existing.ID)}
}

// SetTitle updates the title and derives the slug while the binding holds.
func (d *PageDraft) SetTitle(title string) {
	d.Value().Title = title
	if s, ok := d.slugBind.Derive(d.IsNew(), title); ok {
		d.Value().Slug = s
	}
}

// SetSlug records a manual slug edit.
func (d *PageDraft) SetSlug(s string) {
	d.slugBind.Touch()
	d.Value().Slug = s
}

// Save normalizes and submits the draft through the page service.
func (d *PageDraft) Save(ctx context.Context, svc *Service) error {
	p := d.Value()
	p.Title = draft.Trim(p.Title)
	p.Slug = draft.Trim(p.Slug)
	p.SEOTitle = draft.OptionalFrom(p.SEOTitle)

	checks := []draft.Check[PagePayload]{
		func(p *PagePayload) map[string]string {
			if p.Slug != "" && !slug.Valid(p.Slug) {
				return map[string]string{"slug": "must contain only a-z, 0-9 and hyphens"}
			}
			return nil
		},
	}
	return d.Form.Save(ctx, checks, svc.Create, svc.Update)
}
