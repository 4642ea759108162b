// Package users manages operator accounts and their roles.
package users

import (
	"context"
	"fmt"

	"shopctl/internal/api"
	"shopctl/internal/draft"
	"shopctl/internal/types"
)

// Service is the account management service.
type Service struct {
	client *api.Client
}

// NewService creates the service.
func NewService(c *api.Client) *Service {
	return &Service{client: c}
}

// List returns one page of accounts.
func (s *Service) List(ctx context.Context, p api.ListParams) (api.ListResponse[types.User], error) {
	return api.List[types.User](ctx, s.client, "/users", p)
}

// Get loads one account.
func (s *Service) Get(ctx context.Context, id int64) (types.User, error) {
	var out types.User
	err := s.client.Get(ctx, fmt.Sprintf("/users/%d", id), nil, &out)
	return out, err
}

// Create posts a new account. The server mails the invite.
func (s *Service) Create(ctx context.Context, p UserPayload) error {
	return s.client.Post(ctx, "/users", p, nil)
}

// Update replaces an account's editable fields.
func (s *Service) Update(ctx context.Context, id int64, p UserPayload) error {
	return s.client.Put(ctx, fmt.Sprintf("/users/%d", id), p, nil)
}

// SetActive enables or disables an account.
func (s *Service) SetActive(ctx context.Context, id int64, active bool) error {
	body := map[string]bool{"isActive": active}
	return s.client.Put(ctx, fmt.Sprintf("/users/%d/status", id), body, nil)
}

// Delete removes an account.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.client.Delete(ctx, fmt.Sprintf("/users/%d", id))
}

// UserPayload is the editable field set of an account.
type UserPayload struct {
	Email       string     `json:"email" validate:"required,email"`
	Name        string     `json:"name" validate:"required"`
	Role        types.Role `json:"role" validate:"oneof=owner admin manager viewer"`
	Permissions []string   `json:"permissions,omitempty"`
	IsActive    bool       `json:"isActive"`
}

// UserDraft couples the form controller with the account payload.
type UserDraft struct {
	*draft.Form[UserPayload]
}

// NewUserDraft opens a draft: nil creates, a loaded account edits.
func NewUserDraft(existing *types.User) *UserDraft {
	if existing == nil {
		return &UserDraft{Form: draft.New(UserPayload{Role: types.RoleViewer, IsActive: true})}
	}
	seed := UserPayload{
		Email:       existing.Email,
		Name:        existing.Name,
		Role:        existing.Role,
		Permissions: existing.Permissions,
		IsActive:    existing.IsActive,
	}
	return &UserDraft{Form: draft.Edit(seed, existing.ID)}
}

// Save normalizes and submits the draft. An EMAIL_EXISTS conflict lands on
// the email field with the draft preserved.
func (d *UserDraft) Save(ctx context.Context, svc *Service) error {
	p := d.Value()
	p.Email = draft.Trim(p.Email)
	p.Name = draft.Trim(p.Name)
	return d.Form.Save(ctx, nil, svc.Create, svc.Update)
}
