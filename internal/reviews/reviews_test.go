package reviews

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

func TestApproveAndReject(t *testing.T) {
	var paths []string
	var statuses []string
	svc := testService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		statuses = append(statuses, body["status"])
	}))

	require.NoError(t, svc.Approve(context.Background(), 5))
	require.NoError(t, svc.Reject(context.Background(), 6))
	assert.Equal(t, []string{"/reviews/5/status", "/reviews/6/status"}, paths)
	assert.Equal(t, []string{"approved", "rejected"}, statuses)
}

func TestListPassesStatusFilter(t *testing.T) {
	var query string
	svc := testService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.RawQuery
		json.NewEncoder(w).Encode(map[string]any{
			"items":      []types.Review{{ID: 1, Status: types.ReviewPending}},
			"pagination": types.Pagination{Page: 1, Limit: 20, Total: 1, TotalPages: 1},
		})
	}))

	p := api.ListParams{Page: 1, Limit: 20, Filters: map[string]string{"status": "pending"}}
	resp, err := svc.List(context.Background(), p)
	require.NoError(t, err)
	assert.Contains(t, query, "status=pending")
	require.Len(t, resp.Items, 1)
}
