package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/sessions"

	"ui-design-gallery/app/controller"
	"ui-design-gallery/app/middleware"
	"ui-design-gallery/metrics"
)

// Controllers groups the HTTP handlers mounted by New
type Controllers struct {
	Design     *controller.DesignController
	Engagement *controller.EngagementController
	CodeMatch  *controller.CodeMatchController
	Request    *controller.RequestController
	Newsletter *controller.NewsletterController
	WebVitals  *controller.WebVitalsController
}

// Options holds the middleware dependencies
type Options struct {
	CORSOrigins  []string
	VisitorStore sessions.Store
	RateLimiter  *middleware.RateLimiter
	AdminToken   string
}

// pingHandler handles GET /ping
func pingHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

// New builds the application router
func New(c *Controllers, opts Options) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS(opts.CORSOrigins))
	r.Use(metrics.InstrumentHandler)

	r.Get("/ping", pingHandler)
	r.Handle("/metrics", metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Visitor(opts.VisitorStore))

		// Designs
		r.Get("/designs", c.Design.List)
		r.Get("/designs/popular", c.Design.Popular)
		r.Get("/designs/{slug}", c.Design.GetBySlug)
		r.Get("/designs/{id}/preview", c.Design.Preview)
		r.Get("/saved", c.Engagement.ListSaved)

		// Design requests
		r.Get("/requests", c.Request.List)

		// Shared code matches
		r.Get("/code-match/{hash}", c.CodeMatch.GetByHash)

		// Writes are rate limited per visitor
		r.Group(func(r chi.Router) {
			r.Use(opts.RateLimiter.Handler)

			r.Post("/designs/{id}/like", c.Engagement.ToggleLike)
			r.Post("/designs/{id}/save", c.Engagement.Save)
			r.Delete("/designs/{id}/save", c.Engagement.Unsave)

			r.Post("/code-match", c.CodeMatch.Match)

			r.Post("/requests", c.Request.Create)
			r.Post("/requests/{id}/vote", c.Request.Vote)

			r.Post("/newsletter/subscribe", c.Newsletter.Subscribe)
			r.Post("/newsletter/unsubscribe", c.Newsletter.Unsubscribe)

			r.Post("/web-vitals", c.WebVitals.Record)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireAdminToken(opts.AdminToken))

			r.Get("/designs", c.Design.AdminList)
			r.Post("/designs", c.Design.Create)
			r.Post("/designs/import", c.Design.Import)
			r.Put("/designs/{id}", c.Design.Update)
			r.Delete("/designs/{id}", c.Design.Archive)

			r.Put("/requests/{id}", c.Request.Update)
		})
	})

	return r
}
