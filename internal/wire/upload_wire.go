package wire

import (
	"advonex/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireUpload(r chi.Router, h *adaptor.UploadHandler, auth, requireClient, requireLawyer mw) {
	r.Route("/api/upload", func(r chi.Router) {
		r.Use(auth)

		r.Post("/image", h.UploadImage)
		r.With(requireClient).Post("/profile-pic/client", h.ClientProfilePic)
		r.With(requireLawyer).Post("/profile-pic/lawyer", h.LawyerProfilePic)
	})
}
