package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"prema-telhados/go_backend/internal/app/config"
	"prema-telhados/go_backend/internal/app/http/handlers"
	"prema-telhados/go_backend/internal/app/http/middleware"
)

func NewRouter(cfg config.Config, h *handlers.Handlers) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(chimw.Recoverer)
	r.Use(middleware.CORS(cfg.CORSAllowOrigin))

	r.Get("/health", h.Health)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/auth/login", h.Login)
		r.Post("/auth/logout", h.Logout)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireSession(h.Sessions, h.Accounts))

			r.Get("/auth/me", h.Me)

			r.Get("/catalog", h.GetCatalog)
			r.Post("/catalog/reload", h.ReloadCatalog)

			r.Route("/quote", func(r chi.Router) {
				r.Get("/", h.GetQuote)
				r.Patch("/", h.UpdateQuote)
				r.Delete("/", h.ResetQuote)
				r.Get("/totals", h.Totals)
				r.Get("/proposal.pdf", h.ProposalPDF)

				r.Post("/items", h.AddItem)
				r.Post("/items/from-catalog", h.AddItemFromCatalog)
				r.Patch("/items/{id}", h.UpdateItem)
				r.Delete("/items/{id}", h.RemoveItem)

				r.Post("/photos", h.UploadPhotos)
				r.Get("/photos/{id}", h.GetPhoto)
				r.Patch("/photos/{id}", h.CaptionPhoto)
				r.Delete("/photos/{id}", h.RemovePhoto)
			})

			r.Get("/proposals", h.ListProposals)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.InternalAuth(cfg.InternalToken))

			r.Post("/quotes", h.CreateQuote)
		})
	})

	return r
}
