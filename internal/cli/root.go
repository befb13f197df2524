package cli

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
	"github.com/vietddude/stylelog"

	"github.com/Dr-Boom/KYT-Demo/internal/api"
	"github.com/Dr-Boom/KYT-Demo/internal/core/config"
	"github.com/Dr-Boom/KYT-Demo/internal/emitter"
	redisclient "github.com/Dr-Boom/KYT-Demo/internal/infra/redis"
	"github.com/Dr-Boom/KYT-Demo/internal/mockdata"
	"github.com/Dr-Boom/KYT-Demo/internal/store"
)

var (
	cfgPath string
	isDebug bool
)

var rootCmd = &cobra.Command{
	Use:   "kyt",
	Short: "KYT transaction monitoring demo",
	Long:  `kyt serves a seeded, deterministic transaction-monitoring dataset with case management and address screening.`,
	Run:   runServer,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the demo API (default command)",
	Run:   runServer,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "config.yaml", "config file (default is config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&isDebug, "debug", false, "enable debug logging")
	rootCmd.AddCommand(serveCmd)
}

// setup loads .env and the config file and installs the default logger.
func setup() *config.AppConfig {
	_ = godotenv.Load()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		stylelog.InitDefault()
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	slogLevel := slog.LevelInfo
	switch {
	case isDebug || cfg.Logging.Level == "debug":
		slogLevel = slog.LevelDebug
	case cfg.Logging.Level == "warn":
		slogLevel = slog.LevelWarn
	case cfg.Logging.Level == "error":
		slogLevel = slog.LevelError
	}

	if cfg.Logging.Format == "json" {
		slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slogLevel})))
	} else {
		stylelog.InitDefault(&tint.Options{
			Level:      slogLevel,
			TimeFormat: time.RFC3339,
		})
	}
	return cfg
}

// dataset generates the configured demo dataset.
func dataset(cfg *config.AppConfig) mockdata.Dataset {
	opts, err := cfg.Generator.Options()
	if err != nil {
		slog.Error("Invalid generator config", "error", err)
		os.Exit(1)
	}
	return mockdata.Generate(opts)
}

// newStore builds a store over the configured dataset with em as its audit sink.
func newStore(cfg *config.AppConfig, em emitter.Emitter) *store.Store {
	return store.New(dataset(cfg), store.Options{
		Emitter:       em,
		DefaultAuthor: cfg.Store.DefaultAuthor,
	})
}

func runServer(cmd *cobra.Command, args []string) {
	cfg := setup()

	audit := emitter.NewMemoryLog(cfg.Store.AuditCapacity)
	sinks := emitter.Multi{audit}
	var history emitter.History

	if cfg.Redis.URL != "" {
		client, err := redisclient.NewClient(cfg.Redis)
		if err != nil {
			slog.Error("Failed to connect to redis", "error", err)
			os.Exit(1)
		}
		publisher := redisclient.NewAuditPublisher(client, cfg.Redis.Channel)
		sinks = append(sinks, publisher)
		history = publisher
		slog.Info("Publishing audit entries to redis", "channel", cfg.Redis.Channel)
	}
	defer func() {
		if err := sinks.Close(); err != nil {
			slog.Warn("Failed to close audit sinks", "error", err)
		}
	}()

	st := newStore(cfg, sinks)
	snap := st.Snapshot()
	slog.Info("Dataset generated",
		"seed", *cfg.Generator.Seed,
		"transactions", len(snap.Transactions),
		"cases", len(snap.Cases),
		"reference", snap.Reference.Format(time.RFC3339),
	)

	srv := api.NewServer(api.Config{
		Port:           cfg.Server.Port,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		History:        history,
	}, st, audit)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received signal, shutting down...", "signal", sig)
	case err := <-errCh:
		slog.Error("API server failed", "error", err)
		os.Exit(1)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		slog.Error("Error during shutdown", "error", err)
		os.Exit(1)
	}
}
