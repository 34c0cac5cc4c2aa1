package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/hrportal/workforce/internal/auth"
	"github.com/hrportal/workforce/internal/dashboard"
	"github.com/hrportal/workforce/internal/employee"
	"github.com/hrportal/workforce/internal/holiday"
	"github.com/hrportal/workforce/internal/leave"
	"github.com/hrportal/workforce/internal/leavetype"
	"github.com/hrportal/workforce/internal/overtime"
	"github.com/hrportal/workforce/internal/transport/middleware"
	"github.com/hrportal/workforce/internal/transport/swagger"
)

// Handlers bundles every feature handler the router mounts.
type Handlers struct {
	Auth      *auth.Handler
	Employee  *employee.Handler
	LeaveType *leavetype.Handler
	Leave     *leave.Handler
	Overtime  *overtime.Handler
	Holiday   *holiday.Handler
	Dashboard *dashboard.Handler
}

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, h Handlers, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	router.Use(middleware.CORS)
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))

	// Serve OpenAPI spec at root (outside API prefix)
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/login", h.Auth.Login)
			sr.Post("/refresh", h.Auth.RefreshToken)
			sr.Post("/logout", h.Auth.Logout)
		})

		// Everything below requires an authenticated employee.
		r.Group(func(pr chi.Router) {
			pr.Use(h.Auth.AuthMiddleware)

			pr.Post("/auth/change-password", h.Auth.ChangePassword)

			pr.Route("/employees", func(er chi.Router) {
				er.Get("/me", h.Employee.Me)
				er.Get("/team", h.Employee.Team)
				er.Get("/", h.Employee.ListEmployees)
				er.Post("/", h.Employee.CreateEmployee)
				er.Get("/{id}", h.Employee.GetEmployee)
				er.Patch("/{id}", h.Employee.UpdateEmployee)
				er.Delete("/{id}", h.Employee.DeleteEmployee)
			})

			pr.Route("/leave-types", func(lr chi.Router) {
				lr.Get("/", h.LeaveType.ListLeaveTypes)
				lr.Post("/", h.LeaveType.CreateLeaveType)
				lr.Patch("/{id}", h.LeaveType.UpdateLeaveType)
			})

			pr.Route("/leaves", func(lr chi.Router) {
				lr.Post("/", h.Leave.CreateLeave)
				lr.Get("/", h.Leave.ListLeaves)
				lr.Get("/approvals", h.Leave.PendingApprovals)
				lr.Patch("/{id}/decide", h.Leave.DecideLeave)
				lr.Patch("/{id}/cancel", h.Leave.CancelLeave)
			})

			pr.Route("/overtime", func(or chi.Router) {
				or.Post("/", h.Overtime.CreateOvertime)
				or.Get("/", h.Overtime.ListOvertime)
				or.Get("/approvals", h.Overtime.PendingApprovals)
				or.Patch("/{id}/decide", h.Overtime.DecideOvertime)
			})

			pr.Route("/holidays", func(hr chi.Router) {
				hr.Get("/", h.Holiday.ListHolidays)
				hr.Post("/", h.Holiday.CreateHoliday)
			})

			pr.Get("/dashboard/stats", h.Dashboard.GetStats)
		})
	})
}
