package commands

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"m365-dashboard/internal/adapters/primary/http/handlers"
	"m365-dashboard/internal/adapters/primary/http/middleware"
	"m365-dashboard/internal/adapters/secondary/graph"
	"m365-dashboard/internal/adapters/secondary/msauth"
	"m365-dashboard/internal/adapters/secondary/sharepoint"
	"m365-dashboard/internal/adapters/secondary/sqlite"
	"m365-dashboard/internal/bootstrap"
	"m365-dashboard/internal/core/services"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the startup sequence and serve the dashboard API",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := bootstrap.Run(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	// Secondary adapters
	configRepo := sqlite.NewTenantConfigRepository(db)
	userRepo := sqlite.NewUserRepository(db)
	tokens := msauth.New(cfg.Microsoft.LoginBaseURL, cfg.Microsoft.Timeout)
	graphClient := graph.New(cfg.Microsoft.GraphBaseURL, cfg.Microsoft.Timeout)
	spClient := sharepoint.New(cfg.Microsoft.Timeout)

	// Core services
	authSvc := services.NewAuthService(userRepo, cfg.Auth.SecretKey, cfg.Auth.TokenTTL)
	configSvc := services.NewConfigService(configRepo, tokens)
	catalogSvc := services.NewCatalogService(configRepo, tokens, graphClient, spClient)
	timesheetSvc := services.NewTimesheetService(configRepo, tokens, graphClient, spClient)
	chartsSvc := services.NewChartsService(configRepo, tokens, graphClient)
	columnsSvc := services.NewColumnsService(configRepo, tokens, graphClient)

	// Primary adapter
	h := handlers.New(authSvc, configSvc, catalogSvc, timesheetSvc, chartsSvc, columnsSvc)

	if cfg.Server.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Metrics(),
		middleware.AllowedHosts(cfg.Server.AllowedHosts),
		gin.Recovery(),
	)

	api := router.Group("/api/v1/dashboard")
	h.RegisterPublicRoutes(api)
	protected := api.Group("", middleware.Auth(authSvc))
	h.RegisterRoutes(protected)

	router.Static("/static", cfg.Static.Root)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Health check with DB ping; backs the container liveness probe.
	router.GET("/healthz", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case <-quit:
	}
	log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced shutdown: %w", err)
	}

	log.Info("server stopped")
	return nil
}
