// internal/wire/wire.go
package wire

import (
	"net/http"

	"advonex/internal/adaptor"
	"advonex/internal/data/entity"
	"advonex/internal/usecase"
	"advonex/pkg/middleware"

	"github.com/go-chi/chi/v5"
)

// App holds the wired router plus the background sweeps the server starts
// alongside it.
type App struct {
	Router  *chi.Mux
	Cleanup *usecase.CleanupService
}

// Wiring initializes services, handlers and routes.
func Wiring(d usecase.Deps) *App {
	service := usecase.NewService(d)
	handler := adaptor.NewHandler(service, d.Log)

	router := setupRouter(handler, d)

	return &App{
		Router:  router,
		Cleanup: service.Cleanup,
	}
}

func setupRouter(handler *adaptor.Handler, d usecase.Deps) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger(d.Log))
	r.Use(middleware.Recover(d.Log))
	r.Use(middleware.CORS())

	// Route-level middleware shared by the feature wires
	auth := middleware.Auth(d.Tokens, d.Repo.User, d.Log)
	requireClient := middleware.RequireRole(entity.RoleClient, d.Log)
	requireLawyer := middleware.RequireRole(entity.RoleLawyer, d.Log)

	wireAuth(r, handler.Auth, auth)
	wireProfile(r, handler.Profile, auth, requireClient, requireLawyer)
	wireLawyer(r, handler.Lawyer, auth, requireLawyer)
	wireClient(r, handler.Client, auth, requireClient)
	wireStaticData(r, handler.StaticData, auth, requireLawyer)
	wireUpload(r, handler.Upload, auth, requireClient, requireLawyer)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}

type mw = func(http.Handler) http.Handler
