package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/cmlabs-hris/attendance-backend-go/internal/config"
	"github.com/cmlabs-hris/attendance-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/attendance-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

// Handlers groups every HTTP handler mounted by NewRouter.
type Handlers struct {
	Auth       AuthHandler
	Employee   EmployeeHandler
	Attendance AttendanceHandler
	Break      BreakHandler
	Leave      LeaveHandler
	Holiday    HolidayHandler
	Member     MemberHandler
	Payroll    PayrollHandler
	Dashboard  DashboardHandler
}

func NewRouter(cfg config.AppConfig, version string, JWTService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(!isDevelopment(cfg.Env))
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "attendance-backend"),
		slog.String("version", version),
		slog.String("env", cfg.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))

	// Verifier only records the token and its error; the groups below decide
	// whether a token is needed.
	r.Use(jwtauth.Verifier(JWTService.JWTAuth()))

	r.Route("/api", func(r chi.Router) {
		// Public
		r.Group(func(r chi.Router) {
			r.Post("/auth/login", h.Auth.Login)
			r.Post("/auth/send-otp", h.Auth.SendOTP)
			r.Post("/auth/verify-otp", h.Auth.VerifyOTP)
			r.Get("/employees/verify/{phone}", h.Employee.VerifyPhone)
			r.Post("/members", h.Member.SubmitMember)
		})

		// The first admin registers anonymously; later ones need an owner token.
		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthOptional)
			r.Post("/auth/register", h.Auth.Register)
		})

		// Any authenticated caller
		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthRequired)

			r.Post("/attendance/clock-in", h.Attendance.ClockIn)
			r.Put("/attendance/clock-out", h.Attendance.ClockOut)
			r.Post("/attendance/break/start", h.Break.StartBreak)
			r.Put("/attendance/break/end", h.Break.EndBreak)
			r.Post("/leaves", h.Leave.SubmitLeave)
			r.Get("/holidays", h.Holiday.ListHolidays)

			// Employees may only read their own history
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireSelfOrOwner("employee_id"))
				r.Get("/my-attendance/{employee_id}", h.Attendance.MyAttendance)
				r.Get("/my-breaks/{employee_id}", h.Break.MyBreaks)
				r.Get("/my-leaves/{employee_id}", h.Leave.MyLeaves)
			})

			// Owner only
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireOwner)

				r.Get("/employees", h.Employee.ListEmployees)
				r.Post("/employees", h.Employee.CreateEmployee)
				r.Get("/employees/{id}", h.Employee.GetEmployee)
				r.Put("/employees/{id}", h.Employee.UpdateEmployee)
				r.Delete("/employees/{id}", h.Employee.DeleteEmployee)

				r.Get("/attendance", h.Attendance.ListAttendance)
				r.Put("/attendance/{id}/status", h.Attendance.UpdateStatus)
				r.Get("/breaks", h.Break.ListBreaks)

				r.Get("/leaves", h.Leave.ListLeaves)
				r.Put("/leaves/{id}/status", h.Leave.ResolveLeave)

				r.Post("/holidays", h.Holiday.CreateHoliday)
				r.Put("/holidays/{id}", h.Holiday.UpdateHoliday)
				r.Delete("/holidays/{id}", h.Holiday.DeleteHoliday)

				r.Get("/members", h.Member.ListMembers)
				r.Post("/members/{id}/approve", h.Member.ApproveMember)
				r.Post("/members/{id}/reject", h.Member.RejectMember)
				r.Delete("/members/{id}", h.Member.DeleteMember)

				r.Get("/payroll", h.Payroll.ListPayroll)
				r.Get("/payroll/calculate/{month}/{year}", h.Payroll.CalculatePayroll)
				r.Get("/payroll/export/{month}/{year}", h.Payroll.ExportPayroll)
				r.Put("/payroll/{id}/status", h.Payroll.UpdateStatus)
			})
		})
	})

	r.With(middleware.AuthRequired, middleware.RequireOwner).Get("/dashboard/stats", h.Dashboard.GetStats)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, "Route not found")
	})

	return r
}

func isDevelopment(env string) bool {
	return env == "" || env == "development"
}
