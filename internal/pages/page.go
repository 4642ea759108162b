package pages

import (
	"context"
	"fmt"

	"shopctl/internal/api"
	"shopctl/internal/tree"
	"shopctl/internal/types"
)

// PageStatus enumerates page lifecycle states.
type PageStatus string

const (
	StatusDraft     PageStatus = "draft"
	StatusPublished PageStatus = "published"
)

// Page is a site page: hierarchy fields on the embedded Node (Name carries
// the title), plus the ordered section array. Section order is rendering
// order; reorders and hide toggles stay local until the whole page is saved.
type Page struct {
	types.Node
	Status   PageStatus `json:"status"`
	Sections []Section  `json:"sections"`
}

// MoveSection moves the section at from to position to, shifting the rest.
// Out-of-range indexes are a no-op.
func (p *Page) MoveSection(from, to int) {
	n := len(p.Sections)
	if from < 0 || from >= n || to < 0 || to >= n || from == to {
		return
	}
	s := p.Sections[from]
	rest := append(p.Sections[:from:from], p.Sections[from+1:]...)
	p.Sections = append(rest[:to:to], append([]Section{s}, rest[to:]...)...)
}

// MoveUp swaps the section with its predecessor.
func (p *Page) MoveUp(i int) { p.MoveSection(i, i-1) }

// MoveDown swaps the section with its successor.
func (p *Page) MoveDown(i int) { p.MoveSection(i, i+1) }

// ToggleHidden flips a section's visibility locally.
func (p *Page) ToggleHidden(i int) {
	if i < 0 || i >= len(p.Sections) {
		return
	}
	p.Sections[i].Hidden = !p.Sections[i].Hidden
}

// RemoveSection drops the section at i locally.
func (p *Page) RemoveSection(i int) {
	if i < 0 || i >= len(p.Sections) {
		return
	}
	p.Sections = append(p.Sections[:i], p.Sections[i+1:]...)
}

// InsertSection inserts s at i (clamped to the array bounds).
func (p *Page) InsertSection(i int, s Section) {
	if i < 0 {
		i = 0
	}
	if i > len(p.Sections) {
		i = len(p.Sections)
	}
	p.Sections = append(p.Sections[:i:i], append([]Section{s}, p.Sections[i:]...)...)
}

// Service is the page service.
type Service struct {
	client *api.Client
}

// NewService creates the service.
func NewService(c *api.Client) *Service {
	return &Service{client: c}
}

// List returns one page of pages (sections omitted by the server).
func (s *Service) List(ctx context.Context, p api.ListParams) (api.ListResponse[Page], error) {
	return api.List[Page](ctx, s.client, "/pages", p)
}

// All returns the full flat page list for tree materialization.
func (s *Service) All(ctx context.Context) ([]Page, error) {
	var resp struct {
		Items []Page `json:"items"`
	}
	if err := s.client.Get(ctx, "/pages/tree", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// Flat returns the depth-first flattened page tree.
func (s *Service) Flat(ctx context.Context) ([]tree.Flat, error) {
	all, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	nodes := make([]types.Node, len(all))
	for i, p := range all {
		nodes[i] = p.Node
	}
	return tree.Flatten(tree.Build(nodes)), nil
}

// Get loads one page with its full section array.
func (s *Service) Get(ctx context.Context, id int64) (Page, error) {
	var out Page
	err := s.client.Get(ctx, fmt.Sprintf("/pages/%d", id), nil, &out)
	return out, err
}

// Create posts a new page.
func (s *Service) Create(ctx context.Context, p PagePayload) error {
	return s.client.Post(ctx, "/pages", p, nil)
}

// Update replaces a page's meta fields (not its sections).
func (s *Service) Update(ctx context.Context, id int64, p PagePayload) error {
	return s.client.Put(ctx, fmt.Sprintf("/pages/%d", id), p, nil)
}

// Save persists the whole page including the section array. This is the
// only way section edits reach the server.
func (s *Service) Save(ctx context.Context, p Page) error {
	return s.client.Put(ctx, fmt.Sprintf("/pages/%d", p.ID), p, nil)
}

// Publish makes a page publicly visible.
func (s *Service) Publish(ctx context.Context, id int64) error {
	return s.client.Post(ctx, fmt.Sprintf("/pages/%d/publish", id), nil, nil)
}

// Unpublish takes a page offline.
func (s *Service) Unpublish(ctx context.Context, id int64) error {
	return s.client.Post(ctx, fmt.Sprintf("/pages/%d/unpublish", id), nil, nil)
}

// Duplicate asks the server to clone a page.
func (s *Service) Duplicate(ctx context.Context, id int64) error {
	return s.client.Post(ctx, fmt.Sprintf("/pages/%d/duplicate", id), nil, nil)
}

// Delete removes a page. Pages with child pages are rejected locally, same
// guard as categories.
func (s *Service) Delete(ctx context.Context, p Page) error {
	if p.ChildCount > 0 {
		return ErrHasChildPages
	}
	return s.client.Delete(ctx, fmt.Sprintf("/pages/%d", p.ID))
}
