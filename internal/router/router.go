package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"carelink-backend/internal/handlers"
	"carelink-backend/internal/middleware"
)

func New(
	jwtAuth *middleware.JWTAuth,
	quota *middleware.Quota,
	assistantHandler *handlers.AssistantHandler,
	chatHandler *handlers.ChatHandler,
	organizationHandler *handlers.OrganizationHandler,
	doctorHandler *handlers.DoctorHandler,
	appointmentHandler *handlers.AppointmentHandler,
	frontendURL string,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)

	allowedOrigins := []string{"*"}
	if frontendURL != "" {
		allowedOrigins = []string{frontendURL}
	}
	r.Use(cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: frontendURL != "",
	}).Handler)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {

		// ──── Assistant Gateway ────
		// Anonymous callers are allowed; a valid token just adds
		// personalization and a per-user quota bucket.
		r.Route("/assistant", func(r chi.Router) {
			r.Use(jwtAuth.OptionalMiddleware)
			r.Use(quota.Middleware)
			r.Post("/", assistantHandler.Respond)
		})

		// ──── Conversation Routes ────
		r.Route("/chat/conversations", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Post("/", chatHandler.CreateConversation)
			r.Get("/", chatHandler.ListConversations)
			r.Get("/{id}", chatHandler.GetConversation)
			r.Post("/{id}/messages", chatHandler.AppendMessage)
			r.Delete("/{id}", chatHandler.DeleteConversation)
		})

		// ──── Care Directory Routes ────
		r.Route("/organizations", func(r chi.Router) {
			r.Get("/", organizationHandler.List)
			r.Get("/{id}", organizationHandler.Get)

			r.Group(func(r chi.Router) {
				r.Use(jwtAuth.Middleware)
				r.Post("/", organizationHandler.Create)
				r.Put("/{id}", organizationHandler.Update)
				r.Delete("/{id}", organizationHandler.Delete)
			})
		})

		r.Route("/doctors", func(r chi.Router) {
			r.Get("/", doctorHandler.List)
			r.Get("/{id}", doctorHandler.Get)

			r.Group(func(r chi.Router) {
				r.Use(jwtAuth.Middleware)
				r.Post("/", doctorHandler.Create)
				r.Put("/{id}", doctorHandler.Update)
				r.Delete("/{id}", doctorHandler.Delete)
			})
		})

		// ──── Appointment Routes ────
		r.Route("/appointments", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Post("/", appointmentHandler.Book)
			r.Get("/", appointmentHandler.List)
			r.Get("/{id}", appointmentHandler.Get)
			r.Post("/{id}/cancel", appointmentHandler.Cancel)
		})
	})

	return r
}
