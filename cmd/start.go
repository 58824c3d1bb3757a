package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"feedme/core/loader"
	"feedme/core/logger"
	"feedme/core/metrics"
	"feedme/core/middleware/auth"
	"feedme/core/middleware/rayid"
	"feedme/core/server"
	"feedme/feature/entries"
	"feedme/feature/ingest"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "feedme/docs/swagger"
)

// @title feedme API
// @version 1.0
// @description Reading-list ingestion and entry store API.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

var noScheduler bool

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the API server and the ingest scheduler",
	Long: `Starts the HTTP API, mounts every enabled feature and runs ingest cycles
on the configured cron schedule until interrupted.`,
	RunE: runStart,
}

func init() {
	startCmd.Flags().BoolVar(&noScheduler, "no-scheduler", false, "Serve the API without scheduled ingest cycles")
	RootCmd.AddCommand(startCmd)
}

// newApp builds the Fiber app: ray id, request log, public health, metrics and
// docs routes, then the API key guard and the features.
func newApp(cfg server.Config, logg *zap.Logger, features ...loader.Feature) (*fiber.App, error) {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	mgr := loader.NewManager()
	mgr.Register(features...)

	// Ray id first so every later log line carries it.
	app.Use(rayid.New())
	app.Use(func(c *fiber.Ctx) error {
		l := logger.WithRayID(logg, c)
		start := time.Now()
		err := c.Next()
		l.Info("Request handled",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("duration", time.Since(start)),
		)
		if err != nil {
			l.Error("Request error", zap.Error(err))
		}
		return err
	})

	// Public.
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	app.Get("/swagger/*", swagger.HandlerDefault)

	app.Use(auth.New(auth.Config{ApiKey: cfg.ApiKey}))
	if cfg.ApiKey == "" {
		logg.Warn("API key is empty, the API is unauthenticated")
	}

	if err := mgr.LoadAll(app); err != nil {
		return nil, err
	}
	return app, nil
}

func runStart(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	rt, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer rt.close()
	logg := rt.logger

	source, err := rt.readerSource(ctx)
	if err != nil {
		return err
	}

	m := metrics.NewIngest(prometheus.DefaultRegisterer)
	svc := ingest.NewService(source, rt.store, m, rt.cfg.Ingest.Account, logg.Named("ingest"))

	app, err := newApp(rt.cfg.Server, logg,
		ingest.NewFeature(svc, rt.cfg.Ingest, logg.Named("ingest")),
		entries.NewFeature(rt.store, logg.Named("entries")),
	)
	if err != nil {
		return err
	}

	var scheduler *ingest.Scheduler
	if !noScheduler {
		scheduler, err = ingest.NewScheduler(rt.cfg.Ingest, svc, logg.Named("scheduler"))
		if err != nil {
			return err
		}
		scheduler.Start()
	}

	listenErr := make(chan error, 1)
	go func() {
		logg.Info("Starting server", zap.String("addr", rt.cfg.Server.Addr()))
		listenErr <- app.Listen(rt.cfg.Server.Addr())
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sig)

	var serveErr error
	select {
	case s := <-sig:
		logg.Info("Shutting down", zap.String("signal", s.String()))
	case err := <-listenErr:
		if err == nil {
			err = errors.New("server stopped unexpectedly")
		}
		serveErr = err
		logg.Error("Server failed", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), rt.cfg.Server.ShutdownTimeout())
	defer cancel()

	if scheduler != nil {
		if err := scheduler.Stop(shutdownCtx); err != nil {
			logg.Warn("Scheduler did not stop in time", zap.Error(err))
		}
	}
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logg.Warn("Server did not shut down cleanly", zap.Error(err))
	}
	return serveErr
}
