package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/intradash/adminkit/internal/common/config"
	"github.com/intradash/adminkit/pkg/logger"
	"github.com/intradash/adminkit/pkg/version"
)

var (
	configPath string

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of mock-backend",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("mock-backend version %s\n", version.Get())
		},
	}

	rootCmd = &cobra.Command{
		Use:   "mock-backend",
		Short: "In-memory intranet dashboard backend",
		Long:  `mock-backend serves the dashboard REST API from memory for local adminctl development`,
		Run: func(cmd *cobra.Command, args []string) {
			run()
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "conf", "configs/mock-backend.yaml", "path to configuration file")
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() {
	cfg, cfgPath, err := config.LoadConfig[config.MockBackendConfig](configPath)
	if err != nil {
		// Usable without a config file: defaults match adminctl's.
		cfg = &config.MockBackendConfig{}
	}
	if cfg.Port == 0 {
		cfg.Port = 3001
	}
	if cfg.JWT.SecretKey == "" {
		cfg.JWT.SecretKey = "mock-backend-secret"
	}
	if cfg.JWT.Duration <= 0 {
		cfg.JWT.Duration = 24 * time.Hour
	}

	zapLogger, err := logger.NewLogger(&cfg.Logger)
	if err != nil {
		panic(err)
	}
	defer zapLogger.Sync()

	zapLogger.Info("starting mock-backend",
		zap.String("version", version.Get()),
		zap.String("conf", cfgPath),
		zap.Int("port", cfg.Port))

	router := gin.Default()
	newServer(cfg, zapLogger).registerRoutes(router)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("shutting down mock-backend")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Fatal("forced shutdown", zap.Error(err))
	}
}
