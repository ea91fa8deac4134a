package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/config"
	appHTTP "github.com/cmlabs-hris/attendance-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/cron"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/email"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/telemetry"
	"github.com/cmlabs-hris/attendance-backend-go/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/attendance-backend-go/internal/service/attendance"
	serviceAuth "github.com/cmlabs-hris/attendance-backend-go/internal/service/auth"
	breakService "github.com/cmlabs-hris/attendance-backend-go/internal/service/breaks"
	dashboardService "github.com/cmlabs-hris/attendance-backend-go/internal/service/dashboard"
	employeeService "github.com/cmlabs-hris/attendance-backend-go/internal/service/employee"
	holidayService "github.com/cmlabs-hris/attendance-backend-go/internal/service/holiday"
	leaveService "github.com/cmlabs-hris/attendance-backend-go/internal/service/leave"
	memberService "github.com/cmlabs-hris/attendance-backend-go/internal/service/member"
	payrollService "github.com/cmlabs-hris/attendance-backend-go/internal/service/payroll"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, cfg.Telemetry, version)
	if err != nil {
		slog.Warn("tracing disabled", "error", err)
	}

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolOptions{
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if db == nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	migrator := database.NewMigrator(db)
	if err != nil {
		// Requests fail with 500 until the database comes back and the retry job migrates it.
		slog.Error("database unreachable, deferring migrations", "error", err)
	} else if err := migrator.Ensure(ctx); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	loc := cfg.Location()
	txManager := postgresql.NewTxManager(db)

	adminRepo := postgresql.NewAdminRepository(db)
	otpRepo := postgresql.NewOTPRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	breakRepo := postgresql.NewBreakRepository(db)
	leaveRepo := postgresql.NewLeaveRequestRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)
	memberRepo := postgresql.NewMemberRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)
	dashboardRepo := postgresql.NewDashboardRepository(db)

	emailService, err := email.NewEmailService(cfg.SMTP)
	if err != nil {
		return fmt.Errorf("init email service: %w", err)
	}
	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.OwnerExpiration, cfg.JWT.EmployeeExpiration)

	authSvc := serviceAuth.NewAuthService(adminRepo, otpRepo, employeeRepo, JWTService, emailService, cfg.OTP)
	employeeSvc := employeeService.NewEmployeeService(txManager, employeeRepo)
	attendanceSvc := attendanceService.NewAttendanceService(txManager, attendanceRepo, employeeRepo, loc)
	breakSvc := breakService.NewBreakService(txManager, breakRepo, employeeRepo, loc)
	leaveSvc := leaveService.NewLeaveService(txManager, leaveRepo, employeeRepo, loc)
	holidaySvc := holidayService.NewHolidayService(holidayRepo)
	memberSvc := memberService.NewMemberService(txManager, memberRepo, employeeRepo, loc)
	payrollSvc := payrollService.NewPayrollService(txManager, payrollRepo, employeeRepo)
	dashboardSvc := dashboardService.NewDashboardService(dashboardRepo, loc)

	scheduler := cron.NewScheduler(loc)
	if err := cron.NewLeaveJobs(leaveSvc).RegisterJobs(scheduler, cfg.Cron.LeaveSyncSchedule); err != nil {
		return fmt.Errorf("register cron jobs: %w", err)
	}
	if !migrator.Done() {
		if err := scheduler.AddJob("ensure_migrations", cfg.Cron.MigrationRetrySchedule, migrator.Ensure); err != nil {
			return fmt.Errorf("register cron jobs: %w", err)
		}
	}

	router := appHTTP.NewRouter(cfg.App, version, JWTService, appHTTP.Handlers{
		Auth:       appHTTP.NewAuthHandler(authSvc),
		Employee:   appHTTP.NewEmployeeHandler(employeeSvc),
		Attendance: appHTTP.NewAttendanceHandler(attendanceSvc),
		Break:      appHTTP.NewBreakHandler(breakSvc),
		Leave:      appHTTP.NewLeaveHandler(leaveSvc),
		Holiday:    appHTTP.NewHolidayHandler(holidaySvc),
		Member:     appHTTP.NewMemberHandler(memberSvc),
		Payroll:    appHTTP.NewPayrollHandler(payrollSvc),
		Dashboard:  appHTTP.NewDashboardHandler(dashboardSvc),
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           otelhttp.NewHandler(router, "attendance-api"),
		ReadHeaderTimeout: 10 * time.Second,
	}

	scheduler.Start()

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", server.Addr, "env", cfg.App.Env, "version", version)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		scheduler.Stop()
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("http shutdown", "error", err)
	}
	scheduler.Stop()
	if shutdownTracing != nil {
		if err := shutdownTracing(shutdownCtx); err != nil {
			slog.Error("flush traces", "error", err)
		}
	}
	return nil
}
