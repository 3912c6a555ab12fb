package wire

import (
	"advonex/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireAuth(r chi.Router, h *adaptor.AuthHandler, auth mw) {
	r.Route("/api/auth", func(r chi.Router) {
		// ==================== PUBLIC ROUTES ====================
		r.Post("/request-otp", h.RequestOtp)
		r.Post("/verify-otp", h.VerifyOtp)
		r.Post("/request-otp-email", h.RequestEmailOtp)
		r.Post("/verify-otp-email", h.VerifyEmailOtp)
		r.Post("/refresh", h.Refresh)

		// ==================== PROTECTED ROUTES ====================
		r.Group(func(r chi.Router) {
			r.Use(auth)
			r.Post("/logout", h.Logout)
			r.Post("/add-role", h.AddRole)
			r.Get("/me", h.Me)
		})
	})
}
