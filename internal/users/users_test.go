package users

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

func TestUserDraftRequiresValidEmail(t *testing.T) {
	d := NewUserDraft(nil)
	d.Value().Name = "Pat"
	d.Value().Email = "not-an-email"

	ok := d.Validate()
	assert.False(t, ok)
	assert.Equal(t, "must be a valid email", d.FieldError("email"))
}

func TestUserDraftEmailConflictLandsOnField(t *testing.T) {
	svc := testService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"error":"EMAIL_EXISTS","message":"email already registered"}`))
	}))

	d := NewUserDraft(nil)
	d.Value().Name = "Pat"
	d.Value().Email = "pat@example.com"

	err := d.Save(context.Background(), svc)
	require.Error(t, err)
	assert.Equal(t, "email already registered", d.FieldError("email"))
	assert.Equal(t, "pat@example.com", d.Value().Email, "draft intact for retry")
}

func TestUserDraftEditUpdatesExisting(t *testing.T) {
	var method, path string
	var got UserPayload
	svc := testService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method, path = r.Method, r.URL.Path
		json.NewDecoder(r.Body).Decode(&got)
	}))

	existing := &types.User{ID: 4, Email: "pat@example.com", Name: "Pat", Role: types.RoleManager, IsActive: true}
	d := NewUserDraft(existing)
	d.Value().Role = types.RoleAdmin

	require.NoError(t, d.Save(context.Background(), svc))
	assert.Equal(t, http.MethodPut, method)
	assert.Equal(t, "/users/4", path)
	assert.Equal(t, types.RoleAdmin, got.Role)
}

func TestSetActive(t *testing.T) {
	var path string
	var body map[string]bool
	svc := testService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		json.NewDecoder(r.Body).Decode(&body)
	}))

	require.NoError(t, svc.SetActive(context.Background(), 9, false))
	assert.Equal(t, "/users/9/status", path)
	assert.Equal(t, false, body["isActive"])
}
