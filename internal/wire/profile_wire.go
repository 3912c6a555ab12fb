package wire

import (
	"advonex/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireProfile(r chi.Router, h *adaptor.ProfileHandler, auth, requireClient, requireLawyer mw) {
	r.Route("/api/profiles", func(r chi.Router) {
		r.Use(auth)

		r.Group(func(r chi.Router) {
			r.Use(requireClient)
			r.Get("/client", h.GetClient)
			r.Put("/client", h.UpdateClient)
		})

		r.Group(func(r chi.Router) {
			r.Use(requireLawyer)
			r.Get("/lawyer", h.GetLawyer)
			r.Put("/lawyer", h.UpdateLawyer)
		})
	})
}
