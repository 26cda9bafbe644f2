package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"delavnice.si/web/internal/config"
	"delavnice.si/web/internal/observability"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := config.New()
	var configPath, envFile string

	root := &cobra.Command{
		Use:           "web",
		Short:         "Delavnice.si web front-end",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", os.Getenv(config.EnvPrefix+"_CONFIG"), "YAML config file")
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before the environment is read")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := config.LoadDotEnv(envFile); err != nil {
				return err
			}
			if err := config.ReadFile(v, configPath); err != nil {
				return err
			}
			cfg, err := config.Load(v)
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}
	flags := serveCmd.Flags()
	flags.String("addr", "", "HTTP listen address (default :$PORT or :8080)")
	flags.Bool("dev", false, "development mode: console logs, on-disk content, content watcher")
	flags.String("log-level", "info", "debug, info, warn or error")
	flags.String("content-dir", "", "on-disk content directory (dev mode only)")
	flags.String("api-base-url", "", "backend base URL; empty uses the built-in fake")
	bindFlags(v, serveCmd, map[string]string{
		"server.addr":  "addr",
		"dev":          "dev",
		"log_level":    "log-level",
		"content.dir":  "content-dir",
		"api.base_url": "api-base-url",
	})

	root.AddCommand(serveCmd)
	// bare invocation serves, as the container entrypoint expects
	root.RunE = serveCmd.RunE
	root.Flags().AddFlagSet(serveCmd.Flags())
	return root
}

func bindFlags(v *viper.Viper, cmd *cobra.Command, keys map[string]string) {
	for key, flag := range keys {
		_ = v.BindPFlag(key, cmd.Flags().Lookup(flag))
	}
}

func serve(ctx context.Context, cfg config.Config) error {
	logger, err := observability.NewLogger(cfg.LogLevel, cfg.Dev)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	a, err := newApp(cfg, logger)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           a.routes(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("web listening", zap.String("addr", cfg.Server.Addr), zap.Bool("dev", cfg.Dev), zap.Bool("fake_api", a.reset.Fake()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})

	if cfg.Dev && cfg.Content.Dir != "" {
		g.Go(func() error {
			return a.content.Watch(ctx, cfg.Content.Dir, logger)
		})
	}

	g.Go(func() error {
		<-ctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
