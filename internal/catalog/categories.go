// Package catalog covers the category tree and the product list: loading,
// editing, re-parenting and the guard rails around destructive operations.
package catalog

import (
	"context"
	"errors"
	"fmt"

	"shopctl/internal/api"
	"shopctl/internal/logging"
	"shopctl/internal/tree"
	"shopctl/internal/types"
)

// ErrHasChildren rejects deleting a category that still has child
// categories. Checked client-side so the operator is told before a request
// is ever sent.
var ErrHasChildren = errors.New("catalog: category has child categories; move or delete them first")

// Categories is the category service.
type Categories struct {
	client *api.Client
}

// NewCategories creates the service.
func NewCategories(c *api.Client) *Categories {
	return &Categories{client: c}
}

// List returns one page of categories.
func (s *Categories) List(ctx context.Context, p api.ListParams) (api.ListResponse[types.Category], error) {
	return api.List[types.Category](ctx, s.client, "/categories", p)
}

// All returns the full flat category list, position-ordered, for tree
// materialization and parent pickers.
func (s *Categories) All(ctx context.Context) ([]types.Category, error) {
	var resp struct {
		Items []types.Category `json:"items"`
	}
	if err := s.client.Get(ctx, "/categories/tree", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// Tree returns the materialized category forest.
func (s *Categories) Tree(ctx context.Context) ([]*tree.Item, error) {
	cats, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	return tree.Build(nodesOf(cats)), nil
}

// Flat returns the depth-first flattened tree for indented list rendering.
func (s *Categories) Flat(ctx context.Context) ([]tree.Flat, error) {
	roots, err := s.Tree(ctx)
	if err != nil {
		return nil, err
	}
	return tree.Flatten(roots), nil
}

// ParentOptions returns the categories that may become the parent of
// excludeID (0 for a new category): never itself, never a descendant, never
// a node at the nesting cap.
func (s *Categories) ParentOptions(ctx context.Context, excludeID int64) ([]types.Node, error) {
	cats, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	return tree.ParentOptions(nodesOf(cats), excludeID, tree.MaxNestingLevel), nil
}

// Create posts a new category.
func (s *Categories) Create(ctx context.Context, p CategoryPayload) error {
	return s.client.Post(ctx, "/categories", p, nil)
}

// Update replaces an existing category's editable fields.
func (s *Categories) Update(ctx context.Context, id int64, p CategoryPayload) error {
	return s.client.Put(ctx, fmt.Sprintf("/categories/%d", id), p, nil)
}

// Delete removes a category. Categories with children are rejected locally;
// the caller must pass the loaded record so the guard sees ChildCount.
func (s *Categories) Delete(ctx context.Context, cat types.Category) error {
	if cat.ChildCount > 0 {
		logging.Get(logging.CategoryCatalog).Info("delete of category %d blocked: %d children", cat.ID, cat.ChildCount)
		return ErrHasChildren
	}
	return s.client.Delete(ctx, fmt.Sprintf("/categories/%d", cat.ID))
}

// ToggleActive flips a category's visibility.
func (s *Categories) ToggleActive(ctx context.Context, id int64, active bool) error {
	body := map[string]bool{"isActive": active}
	return s.client.Put(ctx, fmt.Sprintf("/categories/%d/status", id), body, nil)
}

// Move re-parents and/or repositions a category. The server re-derives
// Level for the whole subtree; the client just reloads afterwards.
func (s *Categories) Move(ctx context.Context, id int64, parentID *int64, position int) error {
	body := map[string]any{"parentId": parentID, "position": position}
	return s.client.Put(ctx, fmt.Sprintf("/categories/%d/move", id), body, nil)
}

func nodesOf(cats []types.Category) []types.Node {
	nodes := make([]types.Node, len(cats))
	for i, c := range cats {
		nodes[i] = c.Node
	}
	return nodes
}
