package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"classroom-occupancy-tracker/internal/config"
	"classroom-occupancy-tracker/internal/infrastructure/database/postgres"
	"classroom-occupancy-tracker/internal/logger"
	"classroom-occupancy-tracker/internal/mail"
	"classroom-occupancy-tracker/internal/routes"
)

// maxPortAttempts bounds the fall-forward search when the configured port
// is already bound.
const maxPortAttempts = 10

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("Failed to load configuration: " + err.Error() + "\n")
		os.Exit(1)
	}

	env := cfg.Server.Environment
	if env == "" {
		env = "development"
	}
	if err := logger.Init(env); err != nil {
		os.Stderr.WriteString("Failed to initialize logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting classroom occupancy tracker",
		zap.String("environment", env),
	)

	if cfg.Database.Host == "" || cfg.Database.DBName == "" {
		logger.Fatal("Database configuration is missing. Please set DB_HOST and DB_NAME environment variables.")
	}
	if cfg.JWT.Secret == "" {
		logger.Fatal("JWT secret is missing. Please set JWT_SECRET environment variable.")
	}

	db, err := postgres.NewDB(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", zap.Error(err))
		}
	}()

	if err := postgres.Migrate(db); err != nil {
		logger.Fatal("Failed to migrate schema", zap.Error(err))
	}

	seedCtx, seedCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer seedCancel()
	if err := postgres.Seed(seedCtx,
		postgres.NewStatusRepository(db),
		postgres.NewAccountRepository(db),
	); err != nil {
		logger.Fatal("Failed to seed initial data", zap.Error(err))
	}

	mailer := mail.NewSMTPMailer(&cfg.SMTP)
	router := routes.SetupRoutes(cfg, db, mailer)

	listener, addr, err := listenWithFallback(cfg.Server.Host, cfg.Server.Port)
	if err != nil {
		logger.Fatal("Failed to bind listen address", zap.Error(err))
	}

	server := &http.Server{
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Server starting",
			zap.String("address", addr),
		)
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutdown Server ...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("Failed to shutdown server", zap.Error(err))
	}

	logger.Info("Server exited properly")
}

// listenWithFallback binds the configured port, falling forward to the next
// port when the address is already in use.
func listenWithFallback(host, port string) (net.Listener, string, error) {
	portNum, err := strconv.Atoi(port)
	if err != nil {
		return nil, "", errors.New("invalid listen port: " + port)
	}

	var lastErr error
	for i := 0; i < maxPortAttempts; i++ {
		addr := net.JoinHostPort(host, strconv.Itoa(portNum+i))
		listener, err := net.Listen("tcp", addr)
		if err == nil {
			if i > 0 {
				logger.Warn("Configured port was busy, fell forward",
					zap.String("configured_port", port),
					zap.String("address", addr),
				)
			}
			return listener, addr, nil
		}
		if !isAddrInUse(err) {
			return nil, "", err
		}
		lastErr = err
	}

	return nil, "", lastErr
}

func isAddrInUse(err error) bool {
	if errors.Is(err, syscall.EADDRINUSE) {
		return true
	}
	return strings.Contains(err.Error(), "address already in use")
}
