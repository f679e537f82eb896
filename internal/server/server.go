// Package server boots the application: config, Mongo, Redis, storage,
// the notification dispatcher, and the HTTP surface with graceful
// shutdown.
package server

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

	"github.com/inbasree/weddingvista/app/controllers"
	"github.com/inbasree/weddingvista/app/repositories"
	"github.com/inbasree/weddingvista/app/routes"
	"github.com/inbasree/weddingvista/app/services"
	"github.com/inbasree/weddingvista/config"
	"github.com/inbasree/weddingvista/pkg/cache"
	"github.com/inbasree/weddingvista/pkg/database"
	"github.com/inbasree/weddingvista/pkg/logger"
	"github.com/inbasree/weddingvista/pkg/metrics"
	"github.com/inbasree/weddingvista/pkg/middleware"
	"github.com/inbasree/weddingvista/pkg/notification"
	"github.com/inbasree/weddingvista/pkg/reqid"
	"github.com/inbasree/weddingvista/pkg/response"
	"github.com/inbasree/weddingvista/pkg/router"
	"github.com/inbasree/weddingvista/pkg/storage"
	"github.com/inbasree/weddingvista/pkg/workerpool"
)

const (
	requestTimeout  = 15 * time.Second
	shutdownTimeout = 10 * time.Second
	mailPoolSize    = 8
)

// Start boots everything and blocks until SIGINT/SIGTERM.
func Start() error {
	if err := config.Load(); err != nil {
		return err
	}

	ctx := context.Background()
	db, err := database.Connect(ctx)
	if err != nil {
		return fmt.Errorf("mongo: %w", err)
	}
	defer db.Close(context.Background())

	if err := repositories.EnsureIndexes(ctx, db.Database()); err != nil {
		return err
	}

	if err := cache.Connect(); err != nil {
		logger.Warn("redis unavailable, stats cache disabled", "error", err)
	}

	storage.Connect()

	// Request logs additionally land in Mongo for the admin audit trail.
	audit := logger.NewAuditHandler(db.Database().Collection("audit_logs"), slog.LevelInfo)
	defer audit.Close()
	logger.SetHandler(logger.NewMultiHandler(logger.L.Handler(), audit))

	pool := workerpool.New(mailPoolSize)
	defer pool.Shutdown()
	dispatcher := notification.NewDispatcher(notification.SMTPSender, pool)

	users := repositories.NewUserRepository(db.Database())
	otps := repositories.NewOTPRepository(db.Database())
	products := repositories.NewProductRepository(db.Database())
	bookings := repositories.NewBookingRepository(db.Database())
	reviews := repositories.NewReviewRepository(db.Database())

	c := routes.Controllers{
		Auth:    controllers.NewAuthController(services.NewAuthService(users, otps, dispatcher)),
		Booking: controllers.NewBookingController(services.NewBookingService(bookings, dispatcher)),
		Review:  controllers.NewReviewController(services.NewReviewService(reviews)),
		Product: controllers.NewProductController(services.NewCatalogService(products, storage.Default())),
	}

	r := router.New()
	r.Use(
		metrics.Middleware(),
		middleware.Recovery,
		reqid.Middleware(),
		middleware.Logger,
		middleware.CORS(middleware.DefaultCORSOptions()),
		middleware.RateLimit(300, time.Minute),
		middleware.Timeout(requestTimeout),
	)

	routes.RegisterAPI(r, c, users)

	r.HandleFunc("/metrics", metrics.Handler())
	r.Get("/healthz", "healthz", healthz(db))
	r.Mount("/uploads", http.StripPrefix("/uploads/", http.FileServer(http.Dir(storage.LocalRoot()))))

	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           r.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", srv.Addr, "env", config.AppEnv())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// healthz reports liveness plus store connectivity.
func healthz(db *database.Mongo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		deps := map[string]interface{}{"mongo": "up", "redis": "up"}
		code := http.StatusOK
		if err := db.Ping(ctx); err != nil {
			deps["mongo"] = "down"
			code = http.StatusServiceUnavailable
		}
		if err := cache.Ping(ctx); err != nil {
			deps["redis"] = "down"
		}
		if code == http.StatusOK {
			response.Status(w, code, "", deps)
		} else {
			response.StatusError(w, code, "degraded")
		}
	}
}
