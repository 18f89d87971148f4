package http

import (
	chi "github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/serragrande/logsgb/internal/metrics"
	"github.com/serragrande/logsgb/internal/middleware"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Auth      *AuthHandler
	Entities  *EntityHandler
	Shipments *ShipmentHandler
	Wizard    *WizardHandler
	Stats     *StatsHandler
	Export    *ExportHandler
	Images    *ImagesHandler
}

// NewRouter assembles the API route tree.
//
// Everything under /api except register and login requires a bearer token.
// Read endpoints additionally require an approved session; mutations and
// user administration are restricted to the super-admin identity.
func NewRouter(h Handlers, sessions middleware.SessionResolver, superUsername string, log *zap.Logger) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.WithRequestLogging(log))
	r.Use(middleware.SessionAuth(sessions))

	r.Method("GET", "/metrics", metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(chiMiddleware.AllowContentType("application/json"))
			r.Post("/register", h.Auth.Register)
			r.Post("/login", h.Auth.Login)
		})

		// Pending sessions may inspect themselves and leave.
		r.Post("/logout", h.Auth.Logout)
		r.Get("/session", h.Auth.Session)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireApproved)

			r.Get("/products", h.Entities.ListProducts)
			r.Get("/drivers", h.Entities.ListDrivers)
			r.Get("/trucks", h.Entities.ListTrucks)
			r.Get("/trailers", h.Entities.ListTrailers)
			r.Get("/shipments", h.Shipments.List)
			r.Get("/stats", h.Stats.Get)
			r.Get("/reports/{kind}", h.Export.Get)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireSuperAdmin(superUsername))

				// Raw image bytes, so outside the JSON content-type gate.
				r.Post("/images", h.Images.Process)

				r.Group(func(r chi.Router) {
					r.Use(chiMiddleware.AllowContentType("application/json"))

					r.Post("/products", h.Entities.SaveProduct)
					r.Put("/products/{id}", h.Entities.SaveProduct)
					r.Delete("/products/{id}", h.Entities.DeleteProduct)

					r.Post("/drivers", h.Entities.SaveDriver)
					r.Put("/drivers/{id}", h.Entities.SaveDriver)
					r.Delete("/drivers/{id}", h.Entities.DeleteDriver)

					r.Post("/trucks", h.Entities.SaveTruck)
					r.Put("/trucks/{id}", h.Entities.SaveTruck)
					r.Put("/trucks/{id}/trailer", h.Entities.LinkTrailer)
					r.Delete("/trucks/{id}", h.Entities.DeleteTruck)

					r.Post("/trailers", h.Entities.SaveTrailer)
					r.Put("/trailers/{id}", h.Entities.SaveTrailer)
					r.Delete("/trailers/{id}", h.Entities.DeleteTrailer)

					r.Delete("/shipments/{id}", h.Shipments.Delete)

					r.Post("/shipments/drafts", h.Wizard.Open)
					r.Get("/shipments/drafts/{id}", h.Wizard.Get)
					r.Delete("/shipments/drafts/{id}", h.Wizard.Cancel)
					r.Put("/shipments/drafts/{id}/header", h.Wizard.SetHeader)
					r.Put("/shipments/drafts/{id}/driver", h.Wizard.LookupDriver)
					r.Put("/shipments/drafts/{id}/vehicle", h.Wizard.LookupVehicle)
					r.Post("/shipments/drafts/{id}/next", h.Wizard.Next)
					r.Post("/shipments/drafts/{id}/back", h.Wizard.Back)
					r.Post("/shipments/drafts/{id}/items", h.Wizard.AddItem)
					r.Post("/shipments/drafts/{id}/finish", h.Wizard.Finish)

					r.Get("/users/pending", h.Auth.PendingUsers)
					r.Put("/users/{id}/status", h.Auth.SetStatus)
				})
			})
		})
	})

	return r
}
