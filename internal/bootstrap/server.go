package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Domenick1991/carrental/api"
	"github.com/Domenick1991/carrental/config"
)

type Handlers struct {
	Bookings  *api.BookingHandler
	Cars      *api.CarHandler
	Checkout  *api.CheckoutHandler
	Auth      *api.AuthHandler
	Dashboard *api.DashboardHandler
	Payments  *api.PaymentHandler
}

// NewRouter wires every handler under /api.
func NewRouter(cfg *config.Config, h Handlers, log *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(log))

	cc := cors.DefaultConfig()
	if len(cfg.HTTP.AllowedOrigins) == 0 {
		cc.AllowAllOrigins = true
	} else {
		cc.AllowOrigins = cfg.HTTP.AllowedOrigins
	}
	router.Use(cors.New(cc))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	root := router.Group("/api")
	h.Auth.Register(root)
	h.Cars.Register(root.Group("/cars"))
	h.Checkout.Register(root.Group("/checkout"))

	admin := root.Group("/admin")
	h.Bookings.Register(admin.Group("/bookings"))
	h.Cars.RegisterAdmin(admin.Group("/cars"))
	h.Dashboard.Register(admin.Group("/dashboard"))
	h.Payments.Register(admin.Group("/payments"))
	h.Auth.RegisterAdmin(admin.Group("/users"))

	return router
}

// Run serves router and blocks until ctx is canceled or the server fails.
func Run(ctx context.Context, cfg *config.Config, router http.Handler, log *zap.Logger) error {
	srv := &http.Server{
		Addr:              cfg.HTTP.Address,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server listening", zap.String("address", cfg.HTTP.Address))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		log.Info("http server stopped")
		return nil
	}
}

func requestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
