// Package orders is the read-mostly order desk: list, inspect, and walk an
// order through its status flow. Orders are created by the storefront, never
// here, so the only mutations are status moves and operator comments.
package orders

import (
	"context"
	"fmt"

	"shopctl/internal/api"
	"shopctl/internal/types"
)

// ErrBadTransition rejects a status move the flow does not allow.
var ErrBadTransition = fmt.Errorf("orders: status transition not allowed")

// transitions is the forward order flow. Cancel is reachable from any
// non-terminal state; delivered and cancelled are terminal.
var transitions = map[types.OrderStatus][]types.OrderStatus{
	types.OrderNew:       {types.OrderPaid, types.OrderCancelled},
	types.OrderPaid:      {types.OrderShipped, types.OrderCancelled},
	types.OrderShipped:   {types.OrderDelivered, types.OrderCancelled},
	types.OrderDelivered: nil,
	types.OrderCancelled: nil,
}

// NextStatuses returns the statuses an order may move to from its current
// one, in menu order.
func NextStatuses(current types.OrderStatus) []types.OrderStatus {
	return transitions[current]
}

// CanTransition reports whether from -> to is an allowed move.
func CanTransition(from, to types.OrderStatus) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Service is the order desk service.
type Service struct {
	client *api.Client
}

// NewService creates the service.
func NewService(c *api.Client) *Service {
	return &Service{client: c}
}

// List returns one page of orders (items omitted by the server).
func (s *Service) List(ctx context.Context, p api.ListParams) (api.ListResponse[types.Order], error) {
	return api.List[types.Order](ctx, s.client, "/orders", p)
}

// Get loads one order with its line items.
func (s *Service) Get(ctx context.Context, id int64) (types.Order, error) {
	var out types.Order
	err := s.client.Get(ctx, fmt.Sprintf("/orders/%d", id), nil, &out)
	return out, err
}

// SetStatus moves an order to a new status. Moves the flow does not allow
// are rejected locally before any request.
func (s *Service) SetStatus(ctx context.Context, o types.Order, to types.OrderStatus) error {
	if !CanTransition(o.Status, to) {
		return fmt.Errorf("%w: %s -> %s", ErrBadTransition, o.Status, to)
	}
	body := map[string]types.OrderStatus{"status": to}
	return s.client.Put(ctx, fmt.Sprintf("/orders/%d/status", o.ID), body, nil)
}

// SetComment replaces the operator comment on an order.
func (s *Service) SetComment(ctx context.Context, id int64, comment string) error {
	body := map[string]string{"comment": comment}
	return s.client.Put(ctx, fmt.Sprintf("/orders/%d/comment", id), body, nil)
}
