package settings

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carebridge/homecare-platform/pkg/logging"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	mr := miniredis.RunT(t)
	return NewStore(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
}

func TestGetReturnsDefaultsWhenUnset(t *testing.T) {
	store := newTestStore(t)

	got, err := store.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), got)
}

func TestSetGetRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	want := &Settings{
		AgencyName:        "Sunrise Home Care",
		ContactEmail:      "office@sunrise.example",
		Timezone:          "America/Chicago",
		BillingDay:        15,
		AcceptingRequests: true,
	}
	require.NoError(t, store.Set(ctx, want))

	got, err := store.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestSetValidation(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	err := store.Set(ctx, &Settings{AgencyName: "", BillingDay: 1})
	assert.ErrorIs(t, err, ErrMissingAgencyName)

	err = store.Set(ctx, &Settings{AgencyName: "X", BillingDay: 31})
	assert.ErrorIs(t, err, ErrInvalidBillingDay)
}

func TestUpdateSettingsHandler(t *testing.T) {
	store := newTestStore(t)
	handler := NewHandler(store, logging.Default())

	body := `{"agency_name":"Sunrise Home Care","timezone":"UTC","billing_day":5}`
	req := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.UpdateSettings(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	got, err := store.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Sunrise Home Care", got.AgencyName)
	assert.Equal(t, 5, got.BillingDay)
}

func TestUpdateSettingsHandlerRejectsInvalid(t *testing.T) {
	handler := NewHandler(newTestStore(t), logging.Default())

	req := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(`{"billing_day":5}`))
	rec := httptest.NewRecorder()
	handler.UpdateSettings(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetSettingsHandler(t *testing.T) {
	handler := NewHandler(newTestStore(t), logging.Default())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.GetSettings(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got Settings
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, DefaultSettings().AgencyName, got.AgencyName)
}
