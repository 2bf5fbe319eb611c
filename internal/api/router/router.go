package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/carebridge/homecare-platform/internal/admin"
	"github.com/carebridge/homecare-platform/internal/applications"
	"github.com/carebridge/homecare-platform/internal/caregivers"
	httpmiddleware "github.com/carebridge/homecare-platform/internal/http/middleware"
	"github.com/carebridge/homecare-platform/internal/invoices"
	"github.com/carebridge/homecare-platform/internal/medications"
	"github.com/carebridge/homecare-platform/internal/patients"
	"github.com/carebridge/homecare-platform/internal/pricing"
	"github.com/carebridge/homecare-platform/internal/requests"
	"github.com/carebridge/homecare-platform/internal/settings"
	"github.com/carebridge/homecare-platform/internal/visits"
	"github.com/carebridge/homecare-platform/pkg/logging"
)

// Config holds router configuration.
type Config struct {
	Logger *logging.Logger

	PricingHandler      *pricing.Handler
	PatientsHandler     *patients.Handler
	CaregiversHandler   *caregivers.Handler
	RequestsHandler     *requests.Handler
	MedicationsHandler  *medications.Handler
	VisitsHandler       *visits.Handler
	InvoicesHandler     *invoices.Handler
	ApplicationsHandler *applications.Handler
	SettingsHandler     *settings.Handler
	DashboardHandler    *admin.DashboardHandler
	MetricsHandler      http.Handler

	AuthSecret         string
	CORSAllowedOrigins []string
	RateLimitPerMinute int
	RateLimitBurst     int
}

// New creates a chi router with all routes configured.
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}
	if cfg.RateLimitPerMinute > 0 {
		r.Use(httpmiddleware.RateLimit(float64(cfg.RateLimitPerMinute)/60.0, cfg.RateLimitBurst))
	}

	// Public endpoints: customer catalog, job applications, health, metrics.
	r.Group(func(public chi.Router) {
		public.Get("/health", healthCheck)
		if cfg.MetricsHandler != nil {
			public.Handle("/metrics", cfg.MetricsHandler)
		}
		if cfg.PricingHandler != nil {
			public.Get("/api/pricing", cfg.PricingHandler.GetCatalog)
			public.Get("/api/services", cfg.PricingHandler.ListCustomerServices)
			public.Get("/api/services/{serviceSlug}", cfg.PricingHandler.GetServiceBySlug)
		}
		if cfg.ApplicationsHandler != nil {
			public.Post("/api/applications", cfg.ApplicationsHandler.Submit)
		}
	})

	// Staff portal: full administrative surface.
	r.Route("/admin", func(adminRoutes chi.Router) {
		adminRoutes.Use(httpmiddleware.RequireRole(cfg.AuthSecret, httpmiddleware.RoleAdmin))

		if cfg.PricingHandler != nil {
			adminRoutes.Post("/pricing", cfg.PricingHandler.SaveCatalog)
			adminRoutes.Post("/pricing/services/{itemID}/clone", cfg.PricingHandler.CloneService)
			adminRoutes.Delete("/pricing/items/{itemID}", cfg.PricingHandler.DeleteItem)
		}
		if cfg.PatientsHandler != nil {
			adminRoutes.Mount("/patients", cfg.PatientsHandler.Routes())
		}
		if cfg.CaregiversHandler != nil {
			adminRoutes.Mount("/caregivers", cfg.CaregiversHandler.Routes())
		}
		if cfg.RequestsHandler != nil {
			adminRoutes.Mount("/requests", cfg.RequestsHandler.Routes())
		}
		if cfg.MedicationsHandler != nil {
			adminRoutes.Mount("/medications", cfg.MedicationsHandler.Routes())
		}
		if cfg.VisitsHandler != nil {
			adminRoutes.Mount("/visits", cfg.VisitsHandler.Routes())
		}
		if cfg.InvoicesHandler != nil {
			adminRoutes.Mount("/invoices", cfg.InvoicesHandler.Routes())
		}
		if cfg.SettingsHandler != nil {
			adminRoutes.Mount("/settings", cfg.SettingsHandler.Routes())
		}
		if cfg.DashboardHandler != nil {
			adminRoutes.Mount("/", cfg.DashboardHandler.Routes())
		}
	})

	// Reviewer portal: application triage.
	if cfg.ApplicationsHandler != nil {
		r.Route("/reviewer", func(reviewer chi.Router) {
			reviewer.Use(httpmiddleware.RequireRole(cfg.AuthSecret, httpmiddleware.RoleReviewer))
			reviewer.Mount("/applications", cfg.ApplicationsHandler.Routes())
		})
	}

	// Caregiver portal: own schedule and request updates.
	r.Route("/caregiver", func(caregiver chi.Router) {
		caregiver.Use(httpmiddleware.RequireRole(cfg.AuthSecret, httpmiddleware.RoleCaregiver))
		if cfg.VisitsHandler != nil {
			caregiver.Get("/visits/{caregiverID}", cfg.VisitsHandler.ListByCaregiver)
			caregiver.Post("/visits/{visitID}/status", cfg.VisitsHandler.SetStatus)
		}
		if cfg.RequestsHandler != nil {
			caregiver.Post("/requests/{requestID}/status", cfg.RequestsHandler.UpdateStatus)
		}
	})

	// Patient portal: own records plus filing service requests.
	r.Route("/patient", func(patient chi.Router) {
		patient.Use(httpmiddleware.RequireRole(cfg.AuthSecret, httpmiddleware.RolePatient))
		if cfg.RequestsHandler != nil {
			patient.Post("/requests", cfg.RequestsHandler.CreateRequest)
			patient.Get("/requests", cfg.RequestsHandler.ListRequests)
		}
		if cfg.MedicationsHandler != nil {
			patient.Get("/medications/{patientID}", cfg.MedicationsHandler.ListByPatient)
		}
		if cfg.VisitsHandler != nil {
			patient.Get("/visits/{patientID}", cfg.VisitsHandler.ListByPatient)
		}
		if cfg.InvoicesHandler != nil {
			patient.Get("/invoices/{patientID}", cfg.InvoicesHandler.ListByPatient)
		}
	})

	return r
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status": "ok"}`))
}
