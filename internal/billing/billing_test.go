package billing

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopctl/internal/api"
	"shopctl/internal/session"
	"shopctl/internal/types"
)

func testClient(t *testing.T, handler http.Handler) *api.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	t.Setenv(session.EnvToken, "tok")
	sess, err := session.Load(t.TempDir())
	require.NoError(t, err)
	return api.New(api.Config{BaseURL: srv.URL}, sess)
}

func TestDefaultCurrencyGuards(t *testing.T) {
	svc := NewCurrencies(testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request may be issued")
	})))

	def := types.Currency{ID: 1, Code: "USD", IsDefault: true}
	assert.ErrorIs(t, svc.SetActive(context.Background(), def, false), ErrDefaultCurrency)
	assert.ErrorIs(t, svc.Delete(context.Background(), def), ErrDefaultCurrency)
}

func TestNonDefaultCurrencyCanBeDisabled(t *testing.T) {
	var path string
	svc := NewCurrencies(testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
	})))

	cur := types.Currency{ID: 2, Code: "EUR"}
	require.NoError(t, svc.SetActive(context.Background(), cur, false))
	assert.Equal(t, "/currencies/2/status", path)
}

func TestPromoDraftPercentCap(t *testing.T) {
	svc := NewPromos(testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("invalid draft must not submit")
	})))

	d := NewPromoDraft(nil)
	d.Value().Code = "SALE"
	d.Value().Kind = types.DiscountPercent
	d.Value().Value = 150

	err := d.Save(context.Background(), svc)
	require.Error(t, err)
	assert.Equal(t, "percent discount cannot exceed 100", d.FieldError("value"))
}

func TestPromoDraftUppercasesCode(t *testing.T) {
	var got PromoPayload
	svc := NewPromos(testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&got)
	})))

	d := NewPromoDraft(nil)
	d.Value().Code = " spring10 "
	d.Value().Value = 10
	future := time.Now().Add(24 * time.Hour)
	d.Value().ExpiresAt = &future

	require.NoError(t, d.Save(context.Background(), svc))
	assert.Equal(t, "SPRING10", got.Code)
}

func TestPromoDraftCodeConflictLandsOnField(t *testing.T) {
	svc := NewPromos(testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"error":"CODE_EXISTS","message":"code already in use"}`))
	})))

	d := NewPromoDraft(nil)
	d.Value().Code = "SALE"
	d.Value().Value = 10

	err := d.Save(context.Background(), svc)
	require.Error(t, err)
	assert.Equal(t, "code already in use", d.FieldError("code"))
	assert.False(t, d.Saved())
}

func TestProviderDraftRequiresConfigKeys(t *testing.T) {
	svc := NewProviders(testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("incomplete config must not submit")
	})))

	d := NewProviderDraft(nil)
	d.Value().Type = "stripe"
	d.Value().Name = "Stripe"
	d.Value().Config = map[string]string{"secret_key": "sk_test"}

	err := d.Save(context.Background(), svc)
	require.Error(t, err)
	assert.Empty(t, d.FieldError("config.secret_key"))
	assert.NotEmpty(t, d.FieldError("config.publishable_key"))
}

func TestProviderDraftCodNeedsNoConfig(t *testing.T) {
	var got ProviderPayload
	svc := NewProviders(testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&got)
	})))

	d := NewProviderDraft(nil)
	d.Value().Name = "Cash on delivery"

	require.NoError(t, d.Save(context.Background(), svc))
	assert.Equal(t, "cod", got.Type)
}

func TestProvidersListSortsByPosition(t *testing.T) {
	svc := NewProviders(testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"items": []types.PaymentProvider{
			{ID: 1, Type: "paypal", Position: 2},
			{ID: 2, Type: "stripe", Position: 1},
		}})
	})))

	items, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "stripe", items[0].Type)
}

func TestProviderTypesStable(t *testing.T) {
	a := ProviderTypes()
	b := ProviderTypes()
	assert.Equal(t, a, b)
	assert.Contains(t, a, "cod")
	assert.Contains(t, a, "stripe")
}
