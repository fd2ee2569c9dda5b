package routes

import (
	"net/http"

	"github.com/Riverafc7/esports-club-platform/api"
	"github.com/Riverafc7/esports-club-platform/handlers"
	"github.com/Riverafc7/esports-club-platform/middleware"
	"github.com/Riverafc7/esports-club-platform/services"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Handlers struct {
	Auth       *handlers.AuthHandler
	User       *handlers.UserHandler
	Team       *handlers.TeamHandler
	Tournament *handlers.TournamentHandler
	Admin      *handlers.AdminHandler
	WebSocket  *handlers.WebSocketHandler
}

// New assembles the full API surface. Three tiers: public, Bearer-token
// authenticated, and admin-only.
func New(h Handlers, tokens *services.TokenService, allowedOrigins []string) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	authenticate := middleware.Authenticator(tokens)

	r.Route("/api", func(r chi.Router) {
		// Public.
		r.Post("/login", h.Auth.Login)
		r.Post("/register", h.Auth.Register)
		r.Post("/refresh", h.Auth.Refresh)
		r.Post("/forgot-password", h.Auth.ForgotPassword)
		r.Get("/verify-reset-token/{token}", h.Auth.VerifyResetToken)
		r.Post("/reset-password", h.Auth.ResetPassword)

		r.Get("/tournaments", h.Tournament.List)
		r.Get("/tournaments/{id}", h.Tournament.Get)
		r.Get("/tournament/{id}/teams", h.Tournament.Teams)
		r.Get("/tournament/{id}/matches", h.Tournament.Matches)
		r.Get("/tournament/{id}/stats", h.Tournament.Stats)
		r.Get("/tournament/{id}/live", h.WebSocket.Serve)

		r.Get("/docs/openapi.json", api.OpenAPIHandler())
		r.Get("/docs/*", httpSwagger.Handler(
			httpSwagger.URL("/api/docs/openapi.json"),
		))

		// Authenticated.
		r.Group(func(r chi.Router) {
			r.Use(authenticate)

			r.Post("/logout", h.Auth.Logout)

			r.Get("/user/profile", h.User.Profile)
			r.Put("/user/update", h.User.UpdateProfile)
			r.Put("/user/change-password", h.User.ChangePassword)
			r.Post("/user/upload-avatar", h.User.UploadAvatar)

			r.Post("/team/create", h.Team.Create)
			r.Post("/team/join", h.Team.Join)
			r.Post("/team/leave", h.Team.Leave)
			r.Delete("/team/delete", h.Team.Delete)
			r.Put("/team/update", h.Team.UpdateName)
			r.Post("/team/upload-logo", h.Team.UploadLogo)
			r.Put("/team/update-player", h.Team.UpdatePlayer)
			r.Delete("/team/remove-player/{userID}", h.Team.RemovePlayer)
			r.Get("/team/my-team", h.Team.MyTeam)
			r.Get("/team/calendar", h.Tournament.TeamCalendar)

			r.Post("/tournament/register", h.Tournament.Register)
			r.Post("/tournament/leave", h.Tournament.Leave)

			// Admin.
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAdmin)

				r.Post("/tournaments/create", h.Tournament.Create)
				r.Put("/tournaments/update/{id}", h.Tournament.Update)
				r.Delete("/tournaments/delete/{id}", h.Tournament.Delete)

				r.Post("/admin/tournament/{id}/regenerate-matches", h.Admin.RegenerateMatches)
				r.Post("/admin/tournament/{id}/update-stats", h.Admin.UpdateStats)
				r.Get("/admin/matches", h.Admin.ListMatches)
				r.Put("/admin/matches/{id}", h.Admin.UpdateMatch)
			})
		})
	})

	return r
}
