package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/hrportal/workforce/internal"
	"github.com/hrportal/workforce/internal/auth"
	"github.com/hrportal/workforce/internal/core/events"
	"github.com/hrportal/workforce/internal/dashboard"
	dashboardpg "github.com/hrportal/workforce/internal/dashboard/postgres"
	"github.com/hrportal/workforce/internal/employee"
	employeepg "github.com/hrportal/workforce/internal/employee/postgres"
	"github.com/hrportal/workforce/internal/holiday"
	holidaypg "github.com/hrportal/workforce/internal/holiday/postgres"
	"github.com/hrportal/workforce/internal/leave"
	leavepg "github.com/hrportal/workforce/internal/leave/postgres"
	"github.com/hrportal/workforce/internal/leavetype"
	leavetypepg "github.com/hrportal/workforce/internal/leavetype/postgres"
	"github.com/hrportal/workforce/internal/overtime"
	overtimepg "github.com/hrportal/workforce/internal/overtime/postgres"
	"github.com/hrportal/workforce/internal/transport/rest"
	"github.com/hrportal/workforce/pkg/logger"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config   *internal.Config
	DB       *sqlx.DB
	Router   *chi.Mux
	Handlers rest.Handlers
	Logger   *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	rest.RegisterAllRoutes(deps.Router, deps.DB.DB, deps.Handlers, deps.Logger)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("received signal, shutting down", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			deps.Logger.Error("database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if os.Getenv("APP_ENV") == "production" {
		logger.Init("production")
	} else {
		logger.Init("development")
	}
	lg := logger.L()

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: db.DB}), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize gorm: %w", err)
	}

	handlers := buildHandlers(config, gormDB, lg)

	return &Dependencies{
		Config:   config,
		DB:       db,
		Router:   chi.NewRouter(),
		Handlers: handlers,
		Logger:   lg,
	}, nil
}

func buildHandlers(config *internal.Config, gormDB *gorm.DB, lg *slog.Logger) rest.Handlers {
	bus := events.NewEventBus(lg)
	registerEventLogging(bus, lg)

	employeeRepo := employeepg.NewEmployeeRepository(gormDB)
	leaveTypeRepo := leavetypepg.NewLeaveTypeRepository(gormDB)
	leaveRepo := leavepg.NewLeaveRepository(gormDB)
	overtimeRepo := overtimepg.NewOvertimeRepository(gormDB)
	holidayRepo := holidaypg.NewHolidayRepository(gormDB)
	dashboardRepo := dashboardpg.NewDashboardRepository(gormDB)

	employeeService := employee.NewService(employeeRepo, config.Security.BCryptCost, lg)
	leaveTypeService := leavetype.NewService(leaveTypeRepo, lg)
	leaveService := leave.NewService(leaveRepo, employeeService, leaveTypeService, bus, lg)
	overtimeService := overtime.NewService(overtimeRepo, employeeService, bus, lg)
	holidayService := holiday.NewService(holidayRepo, lg)
	dashboardService := dashboard.NewService(dashboardRepo, lg)

	tokens := auth.NewJWTTokenGenerator(
		config.Security.AccessTokenSecret,
		config.Security.RefreshTokenSecret,
		config.Security.AccessTokenDuration,
		config.Security.RefreshTokenDuration,
	)
	authService := auth.NewService(employeeService, tokens, config.Security.BCryptCost, lg)

	return rest.Handlers{
		Auth:      auth.NewHandler(authService),
		Employee:  employee.NewHandler(employeeService),
		LeaveType: leavetype.NewHandler(leaveTypeService),
		Leave:     leave.NewHandler(leaveService),
		Overtime:  overtime.NewHandler(overtimeService),
		Holiday:   holiday.NewHandler(holidayService),
		Dashboard: dashboard.NewHandler(dashboardService),
	}
}

// registerEventLogging subscribes an audit-style log line to every lifecycle
// event the services publish.
func registerEventLogging(bus *events.EventBus, lg *slog.Logger) {
	logEvent := func(ctx context.Context, event events.Event) error {
		lg.Info("lifecycle event",
			"event_type", event.EventType(),
			"event_id", event.EventID(),
			"payload", event.Payload())
		return nil
	}

	for _, eventType := range []string{
		events.EventTypeLeaveRequested,
		events.EventTypeLeaveDecided,
		events.EventTypeLeaveCancelled,
		events.EventTypeOvertimeClaimed,
		events.EventTypeOvertimeDecided,
	} {
		bus.Subscribe(eventType, logEvent)
	}
}

// initDB initializes the database connection
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}
