package router

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/carebridge/homecare-platform/internal/applications"
	httpmiddleware "github.com/carebridge/homecare-platform/internal/http/middleware"
	"github.com/carebridge/homecare-platform/internal/patients"
	"github.com/carebridge/homecare-platform/internal/pricing"
	"github.com/carebridge/homecare-platform/pkg/logging"
)

const testAuthSecret = "router-test-secret"

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	logger := logging.Default()

	store := pricing.NewFileStore(filepath.Join(t.TempDir(), "pricing.json"), logger)

	return New(&Config{
		Logger:              logger,
		PricingHandler:      pricing.NewHandler(store, nil, logger),
		PatientsHandler:     patients.NewHandler(patients.NewInMemoryRepository(), logger),
		ApplicationsHandler: applications.NewHandler(applications.NewInMemoryRepository(), logger),
		AuthSecret:          testAuthSecret,
	})
}

func token(t *testing.T, role string) string {
	t.Helper()
	claims := httpmiddleware.PortalClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testAuthSecret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return "Bearer " + signed
}

func TestPublicCatalogNeedsNoAuth(t *testing.T) {
	r := newTestRouter(t)

	for _, path := range []string{"/health", "/api/pricing", "/api/services", "/api/services/home-care-service"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Errorf("GET %s = %d, want 200", path, rec.Code)
		}
	}
}

func TestAdminRoutesRequireToken(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/admin/patients", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("unauthenticated = %d, want 401", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/admin/patients", nil)
	req.Header.Set("Authorization", token(t, httpmiddleware.RoleAdmin))
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("admin token = %d, want 200", rec.Code)
	}
}

func TestReviewerGateRejectsOtherRoles(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/reviewer/applications", nil)
	req.Header.Set("Authorization", token(t, httpmiddleware.RolePatient))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("patient on reviewer route = %d, want 403", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/reviewer/applications", nil)
	req.Header.Set("Authorization", token(t, httpmiddleware.RoleReviewer))
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("reviewer token = %d, want 200", rec.Code)
	}
}

func TestUnknownServiceSlug404s(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/services/no-such-thing", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}
