/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the chi router, middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for the mobile/web clients

SECURITY NOTE:
  No authentication middleware. Auth-token handling belongs to the HR
  backend this engine fronts; all endpoints here are public.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Route("/api", func(r chi.Router) {
		// User routes
		r.Route("/users", func(r chi.Router) {
			r.Get("/", h.ListUsers)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.GetUser)
				r.Get("/tasks", h.ListUserTasks)

				r.Route("/salary", func(r chi.Router) {
					r.Get("/", h.GetSalaryHistory)
					r.Get("/current", h.GetCurrentMonthSalary)
					r.Get("/yearly", h.GetYearlySalary)
				})

				r.Route("/attendance", func(r chi.Router) {
					r.Get("/today", h.GetTodayAttendance)
					r.Get("/week", h.GetWeekAttendance)
					r.Get("/stats", h.GetAttendanceStats)
					r.Post("/clock-in", h.ClockIn)
					r.Post("/clock-out", h.ClockOut)
				})

				r.Route("/applications", func(r chi.Router) {
					r.Get("/", h.ListApplications)
					r.Post("/leave", h.ApplyLeave)
					r.Post("/overtime", h.ApplyOvertime)
					r.Post("/outwork", h.ApplyOutwork)
				})
			})
		})

		// Salary routes
		r.Route("/salary", func(r chi.Router) {
			r.Get("/records", h.GenerateSalaryRecords)
		})

		// Scenario routes
		r.Route("/scenarios", func(r chi.Router) {
			r.Get("/", h.ListScenarios)
			r.Get("/current", h.GetCurrentScenario)
			r.Post("/load", h.LoadScenario)
			r.Post("/reset", h.ResetStore)
		})
	})

	return r
}
