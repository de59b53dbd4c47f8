package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tpo_system/internal/handlers"
	"tpo_system/internal/logger"
	"tpo_system/internal/ratelimit"
	"tpo_system/internal/repository"
	"tpo_system/internal/repository/db"
	"tpo_system/internal/server"
	"tpo_system/internal/service"

	"github.com/spf13/viper"
)

func main() {
	// init logger
	log := logger.Get(logger.InfoLevel)

	// load config.yml + environment
	if err := loadConfig(); err != nil {
		log.Fatalw("error reading config", "err", err)
	}

	// The signing secret has no fallback on purpose: starting with a
	// guessable default would silently void every issued token.
	authCfg, err := authConfig()
	if err != nil {
		log.Fatalw("invalid auth config", "err", err)
	}

	// open DB
	sqlDB, err := openDB(log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Fatalw("failed to close sqlite", "err", cerr)
		}
	}()

	// wire dependencies
	repos := repository.NewRepository(sqlDB)
	services := service.NewService(repos, authCfg)
	apiHandler := handlers.NewHandler(services, log,
		ratelimit.NewFixedWindow(limitConfig("rate_limit.general", 100, 15*time.Minute)),
		ratelimit.NewFixedWindow(limitConfig("rate_limit.auth", 100, time.Minute)),
	)

	// start HTTP server
	srv := &server.Server{}
	runHTTPServer(srv, viper.GetString("port"), apiHandler, log)

	// graceful shutdown
	waitForShutdown(srv, log)
}

func loadConfig() error {
	viper.AddConfigPath("configs") // configs/config.yml
	viper.SetConfigName("config")
	if err := viper.BindEnv("auth.jwt_secret", "JWT_SECRET"); err != nil {
		return err
	}
	return viper.ReadInConfig()
}

// authConfig assembles the immutable auth configuration passed into the
// service layer at startup. A missing signing secret is fatal.
func authConfig() (service.AuthConfig, error) {
	secret := viper.GetString("auth.jwt_secret")
	if secret == "" {
		return service.AuthConfig{}, errMissingSecret
	}
	return service.AuthConfig{
		SigningKey: secret,
		TokenTTL:   viper.GetDuration("auth.token_ttl"),
		BcryptCost: viper.GetInt("auth.bcrypt_cost"),
	}, nil
}

var errMissingSecret = errors.New("JWT_SECRET is not set; refusing to start without a signing secret")

// limitConfig reads one rate-limit tier from config with sane defaults.
func limitConfig(key string, defaultMax int, defaultWindow time.Duration) ratelimit.Config {
	cfg := ratelimit.Config{Max: defaultMax, Window: defaultWindow}
	if v := viper.GetInt(key + ".max"); v > 0 {
		cfg.Max = v
	}
	if v := viper.GetDuration(key + ".window"); v > 0 {
		cfg.Window = v
	}
	return cfg
}

// openDB initializes the SQLite database using configuration.
func openDB(log *logger.Logger) (*sql.DB, error) {
	dbPath := viper.GetString("db.path")
	if dbPath == "" {
		log.Infow("db.path not set in config; using default file", "default", "tpo.db")
		dbPath = "tpo.db"
	}
	return db.InitDB(dbPath)
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if port == "" {
			port = "8080"
		}
		if err := srv.Run(port, handler.InitRoutes()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// allow in-flight requests to complete
	ctx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalw("server forced to shutdown", "err", err)
	}
}
