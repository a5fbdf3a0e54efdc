package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/mehtaruchit28/ips-ui/backend/app"
	"github.com/mehtaruchit28/ips-ui/backend/handlers"
	appmiddleware "github.com/mehtaruchit28/ips-ui/backend/middleware"
	"github.com/mehtaruchit28/ips-ui/backend/storage"
	"github.com/mehtaruchit28/ips-ui/backend/utils"
)

// SetupRoutes configures all application routes and middleware
func SetupRoutes(deps *app.Dependencies) http.Handler {
	r := chi.NewRouter()

	// Core middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(appmiddleware.RequestLogger(deps.Logger))
	r.Use(middleware.Recoverer)
	if timeout := deps.Config.Server.RequestTimeout; timeout > 0 {
		r.Use(middleware.Timeout(timeout))
	}

	// CORS middleware
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		ExposedHeaders:   []string{"Location", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check endpoints
	var database storage.Pinger
	if deps.DB != nil {
		database = storage.PingFunc(deps.DB.HealthCheck)
	}
	health := handlers.NewHealthHandler(database, pinger(deps.SessionStore), deps.Logger)
	r.Get("/healthz", health.HandleHealth)
	r.Get("/readyz", health.HandleReadiness)

	r.Group(func(r chi.Router) {
		r.Use(deps.ClientMiddleware.Identify)

		// Public
		r.Get("/", handlers.RootHandler(deps))
		r.Get("/login", handlers.LoginPageHandler(deps))
		r.Post("/api/auth/login", handlers.LoginHandler(deps))

		// Everything else sits behind the auth gate
		r.Group(func(r chi.Router) {
			r.Use(deps.AuthMiddleware.RequireSession)

			r.Get("/home", handlers.HomePageHandler(deps))
			r.Get("/users", handlers.UsersPageHandler(deps))
			r.Get("/permissions", handlers.GetPermissionsHandler(deps))
			r.Get("/change_password", handlers.ChangePasswordPageHandler(deps))
			r.Get("/state_county_map", handlers.StateMapPageHandler(deps))

			r.Route("/api", func(r chi.Router) {
				r.Post("/auth/logout", handlers.LogoutHandler(deps))
				r.Get("/auth/session", handlers.SessionHandler(deps))
				r.Get("/layout", handlers.LayoutHandler(deps))

				r.Route("/users", func(r chi.Router) {
					r.Get("/", handlers.ListUsersHandler(deps))
					r.Post("/", handlers.CreateUserHandler(deps))
				})

				r.Route("/permissions", func(r chi.Router) {
					r.Get("/", handlers.GetPermissionsHandler(deps))
					r.Put("/active", handlers.SelectRoleHandler(deps))
					r.Post("/save", handlers.SavePermissionsHandler(deps))
					r.Post("/roles", handlers.CreateRoleHandler(deps))
					r.Route("/roles/{role}", func(r chi.Router) {
						r.Delete("/", handlers.DeleteRoleHandler(deps))
						r.Post("/toggle", handlers.ToggleReportHandler(deps))
						r.Post("/select-all", handlers.SelectAllHandler(deps))
						r.Post("/deselect-all", handlers.DeselectAllHandler(deps))
					})
				})

				r.Post("/password", handlers.ChangePasswordHandler(deps))
			})
		})
	})

	// 404 handler
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		_ = utils.WriteNotFound(w, "endpoint not found")
	})

	return r
}

func pinger(store storage.KeyValueStore) storage.Pinger {
	if p, ok := store.(storage.Pinger); ok {
		return p
	}
	return nil
}
