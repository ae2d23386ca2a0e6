package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/workpulse-hq/workforce-backend-go/internal/config"
	appHTTP "github.com/workpulse-hq/workforce-backend-go/internal/handler/http"
	"github.com/workpulse-hq/workforce-backend-go/internal/pkg/cron"
	"github.com/workpulse-hq/workforce-backend-go/internal/pkg/database"
	"github.com/workpulse-hq/workforce-backend-go/internal/pkg/email"
	"github.com/workpulse-hq/workforce-backend-go/internal/pkg/jwt"
	"github.com/workpulse-hq/workforce-backend-go/internal/pkg/oauth"
	"github.com/workpulse-hq/workforce-backend-go/internal/pkg/sse"
	"github.com/workpulse-hq/workforce-backend-go/internal/repository/postgresql"
	attendanceService "github.com/workpulse-hq/workforce-backend-go/internal/service/attendance"
	authService "github.com/workpulse-hq/workforce-backend-go/internal/service/auth"
	employeeService "github.com/workpulse-hq/workforce-backend-go/internal/service/employee"
	holidayService "github.com/workpulse-hq/workforce-backend-go/internal/service/holiday"
	leaveService "github.com/workpulse-hq/workforce-backend-go/internal/service/leave"
	taskLogService "github.com/workpulse-hq/workforce-backend-go/internal/service/tasklog"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading config: ", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal("Invalid config: ", err)
	}

	rules, err := cfg.WorkdayRules()
	if err != nil {
		log.Fatal("Invalid workday config: ", err)
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		log.Fatal("Error connecting to database: ", err)
	}
	defer db.Close()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	txManager := postgresql.NewManager(db)
	userRepo := postgresql.NewUserRepository(db)
	jwtRepo := postgresql.NewJWTRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)
	leaveRepo := postgresql.NewLeaveRepository(db)
	taskLogRepo := postgresql.NewTaskLogRepository(db)

	jwtSvc := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	googleSvc := oauth.NewGoogleService(cfg.OAuth2Google.ClientID, cfg.OAuth2Google.ClientSecret, cfg.OAuth2Google.RedirectURL, cfg.OAuth2Google.Scopes)
	emailSvc, err := email.NewEmailService(cfg.SMTP)
	if err != nil {
		log.Fatal("Failed to initialize email service: ", err)
	}

	hub := sse.NewHub()

	holidayCal := holidayService.NewCalendar(holidayRepo)
	leaveCal := leaveService.NewCalendar(leaveRepo)
	timerCloser := taskLogService.NewTimerCloser(taskLogRepo)
	directory := employeeService.NewDirectory(userRepo)
	notifier := attendanceService.NewHubNotifier(hub)

	attendanceSvc := attendanceService.NewService(
		txManager,
		attendanceRepo,
		holidayCal,
		leaveCal,
		timerCloser,
		directory,
		notifier,
		rules,
		logger,
	)
	authSvc := authService.NewAuthService(txManager, userRepo, jwtSvc, jwtRepo)
	holidaySvc := holidayService.NewService(holidayRepo, attendanceSvc, rules, logger)
	leaveSvc := leaveService.NewService(leaveRepo, rules, logger)
	taskLogSvc := taskLogService.NewService(taskLogRepo, attendanceRepo, rules, logger)
	employeeSvc := employeeService.NewService(userRepo, jwtRepo, emailSvc, cfg.App, logger)

	scheduler := cron.NewScheduler()
	attendanceJobs := cron.NewAttendanceJobs(attendanceSvc, attendanceRepo, directory, holidayCal, leaveCal, rules)
	attendanceJobs.RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(jwtSvc, cfg.App.FrontendURL, appHTTP.Handlers{
		Auth:       appHTTP.NewAuthHandler(jwtSvc, authSvc, googleSvc, cfg.App.FrontendURL),
		Attendance: appHTTP.NewAttendanceHandler(attendanceSvc, userRepo, jwtSvc, hub),
		TaskLog:    appHTTP.NewTaskLogHandler(taskLogSvc),
		Holiday:    appHTTP.NewHolidayHandler(holidaySvc),
		Leave:      appHTTP.NewLeaveHandler(leaveSvc),
		Employee:   appHTTP.NewEmployeeHandler(employeeSvc),
	})

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("server starting", slog.Int("port", cfg.App.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	hub.Shutdown()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", slog.String("error", err.Error()))
	}
}
