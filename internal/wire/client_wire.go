package wire

import (
	"advonex/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireClient(r chi.Router, h *adaptor.ClientHandler, auth, requireClient mw) {
	r.Route("/api/client", func(r chi.Router) {
		r.Use(auth)
		r.Use(requireClient)

		r.Post("/save-lawyer", h.SaveLawyer)
		r.Get("/saved-lawyers", h.ListSavedLawyers)

		r.Post("/request-consultation", h.RequestConsultation)
		r.Get("/consultation-requests", h.ListConsultations)
		r.Get("/consultation-requests/{id}", h.GetConsultation)
		r.Post("/consultation-requests/{id}/cancel", h.CancelConsultation)
	})
}
