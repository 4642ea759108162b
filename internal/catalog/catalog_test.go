package catalog

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

func testClient(t *testing.T, handler http.Handler) (*api.Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	t.Setenv(session.EnvToken, "test-token")
	sess, err := session.Load(t.TempDir())
	require.NoError(t, err)
	return api.New(api.Config{BaseURL: srv.URL}, sess), srv
}

func TestDeleteWithChildrenRejectedLocally(t *testing.T) {
	requested := false
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requested = true
	}))
	svc := NewCategories(client)

	cat := types.Category{Node: types.Node{ID: 5, ChildCount: 3}}
	err := svc.Delete(context.Background(), cat)

	assert.ErrorIs(t, err, ErrHasChildren)
	assert.False(t, requested, "guard must fire before any request is sent")
}

func TestDeleteLeafIssuesRequest(t *testing.T) {
	var method, path string
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method, path = r.Method, r.URL.Path
	}))
	svc := NewCategories(client)

	cat := types.Category{Node: types.Node{ID: 5}}
	require.NoError(t, svc.Delete(context.Background(), cat))
	assert.Equal(t, http.MethodDelete, method)
	assert.Equal(t, "/categories/5", path)
}

func TestFlatMaterializesServerOrder(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/categories/tree", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{"items": []map[string]any{
			{"id": 1, "parentId": nil, "level": 0, "name": "Root"},
			{"id": 2, "parentId": 1, "level": 1, "name": "Child A"},
			{"id": 3, "parentId": 1, "level": 1, "name": "Child B"},
			{"id": 9, "parentId": 404, "level": 1, "name": "Orphan"},
		}})
	}))
	svc := NewCategories(client)

	flat, err := svc.Flat(context.Background())
	require.NoError(t, err)
	require.Len(t, flat, 4, "orphans must stay visible")

	ids := []int64{flat[0].ID, flat[1].ID, flat[2].ID, flat[3].ID}
	assert.Equal(t, []int64{1, 2, 3, 9}, ids)
	assert.Equal(t, 0, flat[3].Depth, "orphan renders as a root")
}

func TestParentOptionsExcludesSubtree(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"items": []map[string]any{
			{"id": 1, "parentId": nil, "level": 0},
			{"id": 2, "parentId": 1, "level": 1},
			{"id": 3, "parentId": 2, "level": 2},
			{"id": 4, "parentId": nil, "level": 0},
		}})
	}))
	svc := NewCategories(client)

	opts, err := svc.ParentOptions(context.Background(), 2)
	require.NoError(t, err)

	ids := map[int64]bool{}
	for _, o := range opts {
		ids[o.ID] = true
	}
	assert.False(t, ids[2])
	assert.False(t, ids[3])
	assert.True(t, ids[1])
	assert.True(t, ids[4])
}

func TestCategoryDraftSlugDerivation(t *testing.T) {
	d := NewCategoryDraft(nil)

	d.SetName("Зимняя Обувь")
	assert.Equal(t, "zimniaia-obuv", d.Value().Slug)

	d.SetName("Winter Boots")
	assert.Equal(t, "winter-boots", d.Value().Slug, "slug follows the name while untouched")

	d.SetSlug("my-own-slug")
	d.SetName("Renamed Again")
	assert.Equal(t, "my-own-slug", d.Value().Slug, "manual edit detaches derivation")
}

func TestCategoryDraftEditNeverRewritesSlug(t *testing.T) {
	existing := &types.Category{Node: types.Node{ID: 3, Name: "Shoes", Slug: "shoes"}}
	d := NewCategoryDraft(existing)

	d.SetName("Shoes Renamed")
	assert.Equal(t, "shoes", d.Value().Slug)
}

func TestCategoryDraftSaveCreatesAndNormalizes(t *testing.T) {
	var got CategoryPayload
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/categories", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
	}))
	svc := NewCategories(client)

	d := NewCategoryDraft(nil)
	d.SetName("  Hats  ")
	empty := "  "
	d.Value().SEOTitle = &empty

	require.NoError(t, d.Save(context.Background(), svc))
	assert.Equal(t, "Hats", got.Name)
	assert.Nil(t, got.SEOTitle, "blank optional strings are sent as null")
	assert.True(t, d.Saved())
}

func TestCategoryDraftSlugConflictKeepsDraftOpen(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"error":"SLUG_EXISTS","message":"slug already in use"}`))
	}))
	svc := NewCategories(client)

	d := NewCategoryDraft(nil)
	d.SetName("Hats")
	err := d.Save(context.Background(), svc)

	require.Error(t, err)
	assert.Equal(t, "slug already in use", d.FieldError("slug"))
	assert.Equal(t, "hats", d.Value().Slug, "operator input intact for retry")
	assert.False(t, d.Saved())
}

func TestProductDraftValidation(t *testing.T) {
	d := NewProductDraft(nil)
	d.SetName("Sneaker")
	d.Value().SKU = "SN-1"
	d.Value().Price = 100
	old := 50.0
	d.Value().OldPrice = &old

	ok := d.Validate(d.checks()...)
	assert.False(t, ok)
	assert.NotEmpty(t, d.FieldError("oldPrice"))
}

func TestProductStatusUpdate(t *testing.T) {
	var path string
	var body map[string]string
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		json.NewDecoder(r.Body).Decode(&body)
	}))
	svc := NewProducts(client)

	require.NoError(t, svc.SetStatus(context.Background(), 12, types.ProductPublished))
	assert.Equal(t, "/products/12/status", path)
	assert.Equal(t, "published", body["status"])
}
