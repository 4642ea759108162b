package orders

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopctl/internal/api"
	"shopctl/internal/session"
	"shopctl/internal/types"
)

func testService(t *testing.T, handler http.Handler) *Service {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	t.Setenv(session.EnvToken, "tok")
	sess, err := session.Load(t.TempDir())
	require.NoError(t, err)
	return NewService(api.New(api.Config{BaseURL: srv.URL}, sess))
}

func TestStatusFlow(t *testing.T) {
	assert.True(t, CanTransition(types.OrderNew, types.OrderPaid))
	assert.True(t, CanTransition(types.OrderPaid, types.OrderCancelled))
	assert.False(t, CanTransition(types.OrderNew, types.OrderShipped), "no skipping payment")
	assert.False(t, CanTransition(types.OrderDelivered, types.OrderCancelled), "delivered is terminal")
	assert.Empty(t, NextStatuses(types.OrderCancelled))
}

func TestSetStatusRejectsBadMoveLocally(t *testing.T) {
	svc := testService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request may be issued")
	}))

	o := types.Order{ID: 7, Status: types.OrderDelivered}
	err := svc.SetStatus(context.Background(), o, types.OrderPaid)
	assert.ErrorIs(t, err, ErrBadTransition)
}

func TestSetStatusIssuesPut(t *testing.T) {
	var path string
	var body map[string]string
	svc := testService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		assert.Equal(t, http.MethodPut, r.Method)
		json.NewDecoder(r.Body).Decode(&body)
	}))

	o := types.Order{ID: 7, Status: types.OrderPaid}
	require.NoError(t, svc.SetStatus(context.Background(), o, types.OrderShipped))
	assert.Equal(t, "/orders/7/status", path)
	assert.Equal(t, "shipped", body["status"])
}

func TestGetDecodesLineItems(t *testing.T) {
	svc := testService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/orders/3", r.URL.Path)
		json.NewEncoder(w).Encode(types.Order{
			ID: 3, Number: "A-1003", Status: types.OrderPaid,
			Items: []types.OrderItem{{ID: 1, ProductID: 9, Name: "Boots", Quantity: 2, UnitPrice: 40}},
			Total: 80, Currency: "USD",
		})
	}))

	o, err := svc.Get(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, o.Items, 1)
	assert.Equal(t, "A-1003", o.Number)
	assert.Equal(t, 2, o.Items[0].Quantity)
}
