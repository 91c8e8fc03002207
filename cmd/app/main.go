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

	"marketplace/cmd"
	httpadapter "marketplace/internal/adapters/in/http"
	"marketplace/internal/adapters/out/postgres"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	slogger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(slogger)

	configs, err := cmd.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	gormDB, err := gorm.Open(gorm_postgres.Open(configs.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}
	if err := postgres.Migrate(gormDB); err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}

	var redisClient *redis.Client
	if configs.RedisEnabled() {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     configs.RedisAddr,
			Password: configs.RedisPassword,
			DB:       configs.RedisDB,
		})
		defer redisClient.Close()
	}

	app, err := cmd.NewCompositionRoot(configs, gormDB, redisClient, slogger)
	if err != nil {
		log.Fatalf("Error building application: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, app, configs, slogger); err != nil {
		log.Fatalf("Application terminated with error: %v", err)
	}
}

func run(ctx context.Context, app *cmd.CompositionRoot, configs cmd.Config, slogger *slog.Logger) error {
	e := newWebServer(app, configs, slogger)

	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	g, ctx := errgroup.WithContext(ctx)

	if relay := app.Relay(); relay != nil {
		g.Go(func() error {
			return relay.Run(ctx, nil)
		})
	}

	g.Go(func() error {
		slogger.InfoContext(ctx, "Starting web server", "port", configs.HTTPPort)
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("web server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		slogger.Info("Shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		// Sockets are hijacked connections that Shutdown does not wait for;
		// closing the registry ends their write loops.
		app.Registry().Close()
		err := e.Shutdown(shutdownCtx)
		app.Notifier().Wait()
		return err
	})

	return g.Wait()
}

func newWebServer(app *cmd.CompositionRoot, configs cmd.Config, slogger *slog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = httpadapter.NewErrorHandler(slogger)
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(httpadapter.NewRequestLogger(slogger))

	auth := httpadapter.NewAuthMiddleware([]byte(configs.JWTSecret))
	app.CreateHTTPServer().Register(e, auth, app.CreateOrdersSocket().Serve)
	return e
}
