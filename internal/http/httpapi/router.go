package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"ngonexus/internal/http/handlers"
	"ngonexus/internal/middleware"
)

// Options configures the route tree.
type Options struct {
	Logger         zerolog.Logger
	DefaultLocale  string
	CountryLookup  middleware.CountryLookup
	AllowedOrigins []string
}

// NewRouter builds the API route tree.
func NewRouter(app *handlers.App, opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		middleware.Logger(opts.Logger),
		middleware.CORS(opts.AllowedOrigins),
		middleware.I18N(opts.DefaultLocale, opts.CountryLookup),
	)

	r.Get("/v1/healthz", app.Health)

	r.Route("/v1/auth", func(r chi.Router) {
		r.Post("/register", app.Register)
		r.Post("/login", app.Login)
		r.Post("/admin-login", app.AdminLogin)
		r.Post("/logout", app.Logout)
	})

	r.Get("/v1/me", app.Me)
	r.Put("/v1/me", app.UpdateProfile)

	r.Route("/v1/campaigns", func(r chi.Router) {
		r.Get("/", app.CampaignsList)
		r.Post("/", app.CampaignsCreate)
		r.Post("/{id}/donate", app.CampaignDonate)
	})

	r.Get("/v1/donations", app.DonationsList)

	r.Route("/v1/events", func(r chi.Router) {
		r.Get("/", app.EventsList)
		r.Post("/", app.EventsCreate)
		r.Post("/{id}/join", app.EventJoin)
	})

	r.Get("/v1/view", app.ResolveView)
	r.Get("/v1/notification", app.Notification)
	r.Get("/v1/transparency/summary", app.TransparencySummary)

	r.Route("/v1/ai", func(r chi.Router) {
		r.Get("/key-status", app.AIKeyStatus)
		r.Put("/key", app.AIKeySet)
		r.Group(func(r chi.Router) {
			r.Use(middleware.SingleFlight())
			r.Post("/summary", app.AISummary)
			r.Post("/chat", app.AIChat)
			r.Post("/search", app.AISearch)
			r.Post("/nearby", app.AINearby)
			r.Post("/poster", app.AIPoster)
			r.Post("/photo-edit", app.AIPhotoEdit)
			r.Post("/photo-analyze", app.AIPhotoAnalyze)
		})
	})

	return r
}
