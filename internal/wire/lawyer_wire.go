package wire

import (
	"advonex/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireLawyer(r chi.Router, h *adaptor.LawyerHandler, auth, requireLawyer mw) {
	// ==================== PUBLIC ROUTES ====================
	// Public search and detail
	r.Get("/api/lawyers", h.Search)
	r.Get("/api/lawyers/{id}", h.GetByID)

	// ==================== PROTECTED ROUTES ====================
	r.Route("/api/lawyer", func(r chi.Router) {
		r.Use(auth)
		r.Use(requireLawyer)
		r.Get("/dashboard", h.Dashboard)
		r.Get("/consultation-requests", h.Inbox)
	})
}
