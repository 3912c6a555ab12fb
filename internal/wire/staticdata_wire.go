package wire

import (
	"advonex/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireStaticData(r chi.Router, h *adaptor.StaticDataHandler, auth, requireLawyer mw) {
	r.Route("/api/static-data", func(r chi.Router) {
		// ==================== PUBLIC ROUTES ====================
		r.Get("/practice-areas", h.ListPracticeAreas)
		r.Get("/courts", h.ListCourts)

		// ==================== PROTECTED ROUTES ====================
		// Lawyers manage their own taxonomy links
		r.Route("/lawyer/me", func(r chi.Router) {
			r.Use(auth)
			r.Use(requireLawyer)

			r.Post("/practice-areas", h.AddPracticeArea)
			r.Delete("/practice-areas/{id}", h.RemovePracticeArea)
			r.Post("/practice-courts", h.AddPracticeCourt)
			r.Delete("/practice-courts/{id}", h.RemovePracticeCourt)
			r.Post("/services", h.AddService)
			r.Delete("/services/{id}", h.RemoveService)
		})
	})
}
