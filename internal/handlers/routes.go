package handlers

import (
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/gdg-garage/event-registration-api/internal/auth"
	"github.com/gdg-garage/event-registration-api/internal/config"
	"github.com/gdg-garage/event-registration-api/internal/metrics"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Handlers groups everything the routes dispatch to. Gate may be nil.
type Handlers struct {
	Registration *RegistrationHandler
	Admin        *AdminHandler
	Health       *HealthHandler
	Gate         *auth.AdminGate
}

func RegisterRoutes(r *chi.Mux, cfg *config.Config, h Handlers) huma.API {
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger)
	r.Use(middleware.Recoverer)
	if cfg.MetricsEnabled {
		r.Use(metrics.Middleware)
	}
	if cfg.EnableCORS {
		r.Use(CORS(cfg.CORSAllowedOrigins))
	}

	if cfg.MetricsEnabled {
		r.Handle("/metrics", metrics.Handler())
	}

	// Initialize Huma API
	api := humachi.New(r, huma.DefaultConfig("Event Registration API", "1.0.0"))
	Register(api, cfg.APIPrefix, h)
	return api
}

// Register adds every operation to api, with paths under prefix.
func Register(api huma.API, prefix string, h Handlers) {
	huma.Get(api, "/health", h.Health.HandleHealth, func(o *huma.Operation) {
		o.Tags = []string{"health"}
	})

	// Public routes
	huma.Post(api, prefix+"/registration", h.Registration.HandleRegister, func(o *huma.Operation) {
		o.Summary = "Submit a group registration"
		o.Tags = []string{"registrations"}
	})
	huma.Get(api, prefix+"/registrations/{email}", h.Registration.HandleGetRegistrations, func(o *huma.Operation) {
		o.Summary = "List the registrations of a booking"
		o.Tags = []string{"registrations"}
	})
	huma.Put(api, prefix+"/update-registration", h.Registration.HandleUpdate, func(o *huma.Operation) {
		o.Summary = "Update one participant's registration"
		o.Tags = []string{"registrations"}
	})
	huma.Delete(api, prefix+"/delete-registration", h.Registration.HandleDelete, func(o *huma.Operation) {
		o.Summary = "Delete one participant's registration"
		o.Tags = []string{"registrations"}
	})
	huma.Get(api, prefix+"/check-admin/{email}", h.Admin.HandleCheckAdmin, func(o *huma.Operation) {
		o.Tags = []string{"admin"}
	})

	// Admin routes
	admin := func(o *huma.Operation) {
		o.Tags = []string{"admin"}
		if h.Gate != nil && h.Gate.Enabled() {
			o.Middlewares = append(o.Middlewares, h.Gate.Middleware)
		}
	}
	huma.Get(api, prefix+"/admin/all-registrations", h.Admin.HandleAllRegistrations, admin)
	huma.Get(api, prefix+"/admin/analytics", h.Admin.HandleAnalytics, admin)
	huma.Get(api, prefix+"/admin/detailed-analytics", h.Admin.HandleDetailedAnalytics, admin)
}
