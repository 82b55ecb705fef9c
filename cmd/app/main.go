package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/GoyacJ/qmt-gateway/adapter"
	"github.com/GoyacJ/qmt-gateway/config"
	"github.com/GoyacJ/qmt-gateway/logger"
	"github.com/GoyacJ/qmt-gateway/metrics"
	"github.com/GoyacJ/qmt-gateway/routes"
	"github.com/GoyacJ/qmt-gateway/service"
)

var (
	cfgFile string
	envFile string
	addr    string
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "qmt-gateway",
		Short:         "REST gateway in front of a QMT execution backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runGateway,
	}

	rootCmd.Flags().StringVar(&cfgFile, "config", "", "config file (default is ./qmt-gateway.yaml if present)")
	rootCmd.Flags().StringVar(&envFile, "env-file", "", "dotenv file (default is ./.env if present)")
	rootCmd.Flags().StringVar(&addr, "addr", "", "listen address, overrides QMT_GATEWAY_ADDR")

	if err := rootCmd.Execute(); err != nil {
		os.Stderr.WriteString("qmt-gateway: " + err.Error() + "\n")
		os.Exit(1)
	}
}

func runGateway(cmd *cobra.Command, args []string) error {
	// 1. Config
	cfg, err := config.Load(config.Options{ConfigFile: cfgFile, EnvFile: envFile})
	if err != nil {
		return errors.Wrap(err, "load config")
	}
	if addr != "" {
		cfg.Addr = addr
	}

	// 2. Logger
	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return errors.Wrap(err, "build logger")
	}
	defer func() { _ = log.Sync() }()

	// 3. Execution adapter; an unavailable backend aborts startup
	execAdapter, err := adapter.New(cfg, log)
	if err != nil {
		log.Error("execution adapter unavailable", zap.String("mode", cfg.Mode), zap.Error(err))
		return err
	}
	if !cfg.AuthEnabled() {
		log.Warn("bearer token not configured, auth gate disabled")
	}

	// 4. Service, metrics and router
	recorder := metrics.NewDefaultRecorder()
	gatewaySrv := service.NewGatewayService(execAdapter, recorder, log)

	gin.SetMode(cfg.GinMode)
	router := routes.NewRouter(cfg, gatewaySrv, recorder, log)

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: router,
	}

	// 5. Serve until a signal arrives or the listener fails
	serveErr := make(chan error, 1)
	go func() {
		log.Info("qmt gateway listening", zap.String("addr", cfg.Addr), zap.String("mode", cfg.Mode))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	select {
	case err, ok := <-serveErr:
		if ok {
			return errors.Wrap(err, "serve")
		}
		return nil
	case <-ctx.Done():
		log.Info("shutdown signal received, draining connections")
	}

	// 6. Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "server forced to shutdown")
	}
	log.Info("gracefully shutdown")
	return nil
}
