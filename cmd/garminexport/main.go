// Command garminexport pulls personal health and activity data from
// Garmin Connect and writes it to local JSON and Markdown files.
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

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"garminexport/internal/config"
	"garminexport/pkg/auth"
	"garminexport/pkg/cache"
	"garminexport/pkg/connect"
	"garminexport/pkg/export"
	"garminexport/pkg/logging"
	"garminexport/pkg/metrics"
	"garminexport/pkg/report"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// cliOverrides holds flag values that beat the loaded configuration
// when their flag was set on the command line.
type cliOverrides struct {
	days        int
	dataDir     string
	sessionFile string
	logLevel    string
	pretty      bool
	metricsAddr string
	redisAddr   string
}

func (o *cliOverrides) apply(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("days") {
		cfg.Days = o.days
	}
	if flags.Changed("data-dir") {
		cfg.DataDir = o.dataDir
	}
	if flags.Changed("session-file") {
		cfg.SessionFile = o.sessionFile
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level = o.logLevel
	}
	if flags.Changed("pretty") {
		cfg.Logging.Pretty = o.pretty
	}
	if flags.Changed("metrics-addr") {
		cfg.Metrics.Addr = o.metricsAddr
	}
	if flags.Changed("redis-addr") {
		cfg.Redis.Addr = o.redisAddr
		cfg.Redis.Enabled = true
	}
}

func newRootCmd() *cobra.Command {
	var configPath string
	overrides := &cliOverrides{}

	root := &cobra.Command{
		Use:   "garminexport",
		Short: "Export personal Garmin Connect data to local files",
		Long: `garminexport logs into Garmin Connect, fetches a fixed catalogue of
health and activity data (daily stats, sleep, heart rate, HRV, training
metrics and more), and writes it as JSON and Markdown artifacts.

A run never fails on individual endpoints: anything Garmin does not
answer shows up as an empty category in the output.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, configPath, overrides)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return runExport(ctx, cmd, cfg)
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file")
	root.PersistentFlags().StringVar(&overrides.sessionFile, "session-file", "", "path of the persisted session")
	root.PersistentFlags().StringVar(&overrides.logLevel, "log-level", "", "log level: debug, info, warn, error")
	root.PersistentFlags().BoolVar(&overrides.pretty, "pretty", false, "human-readable log output")

	root.Flags().IntVarP(&overrides.days, "days", "d", 0, "days of history to fetch, counting back from today")
	root.Flags().StringVar(&overrides.dataDir, "data-dir", "", "directory for export artifacts")
	root.Flags().StringVar(&overrides.metricsAddr, "metrics-addr", "", "listen address for Prometheus metrics (empty disables)")
	root.Flags().StringVar(&overrides.redisAddr, "redis-addr", "", "Redis address for response caching (enables the cache)")

	root.AddCommand(newLoginCmd(&configPath, overrides))
	return root
}

func newLoginCmd(configPath *string, overrides *cliOverrides) *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Log in with fresh credentials and persist the session",
		Long: `login ignores any stored session, performs a credential login
against Garmin Connect, and saves the resulting session for later runs.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, *configPath, overrides)
			if err != nil {
				return err
			}
			if cfg.Email == "" || cfg.Password == "" {
				return fmt.Errorf("email and password are required (set GARMIN_EMAIL and GARMIN_PASSWORD)")
			}

			logging.Setup(loggingConfig(cfg))

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			client, err := newConnectClient(cfg, nil)
			if err != nil {
				return err
			}

			session, err := client.Login(ctx, cfg.Email, cfg.Password)
			if err != nil {
				return fmt.Errorf("login: %w", err)
			}

			if err := auth.NewFileStore(cfg.SessionFile).Save(session); err != nil {
				return fmt.Errorf("save session: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Session saved to %s\n", cfg.SessionFile)
			return nil
		},
	}
}

func loadConfig(cmd *cobra.Command, configPath string, overrides *cliOverrides) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	overrides.apply(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func runExport(ctx context.Context, cmd *cobra.Command, cfg *config.Config) error {
	logging.Setup(loggingConfig(cfg))
	logger := logging.NewLogger("cli")

	if cfg.Metrics.Addr != "" {
		server := startMetricsServer(cfg.Metrics.Addr)
		defer server.Shutdown(context.Background())
		logger.Info().Str("addr", cfg.Metrics.Addr).Msg("Metrics listener started")
	}

	manager := openCache(ctx, cfg)
	if manager != nil {
		defer manager.Close()
	}

	client, err := newConnectClient(cfg, manager)
	if err != nil {
		return err
	}

	authenticator, err := auth.New(auth.NewFileStore(cfg.SessionFile), client)
	if err != nil {
		return err
	}
	if _, err := authenticator.Authenticate(ctx, cfg.Email, cfg.Password); err != nil {
		return fmt.Errorf("authenticate: %w", err)
	}

	exporter, err := export.New(client, export.Config{
		History: cfg.HistoryConfig(),
		Call:    cfg.CallConfig(),
	})
	if err != nil {
		return err
	}

	rec := exporter.Run(ctx, cfg.Days)

	writer, err := report.NewWriter(cfg.DataDir)
	if err != nil {
		return err
	}
	paths, err := writer.WriteAll(rec, time.Now())
	if err != nil {
		return fmt.Errorf("write artifacts: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Export complete: %d artifacts in %s\n", len(paths), cfg.DataDir)
	return nil
}

func loggingConfig(cfg *config.Config) logging.Config {
	logCfg := logging.DefaultConfig()
	if cfg.Logging.Level != "" {
		logCfg.Level = logging.LogLevel(cfg.Logging.Level)
	}
	logCfg.Pretty = cfg.Logging.Pretty
	return logCfg
}

// openCache connects the optional Redis cache. An unreachable Redis
// downgrades to an uncached run instead of blocking the export.
func openCache(ctx context.Context, cfg *config.Config) *cache.Manager {
	if !cfg.Redis.Enabled {
		return nil
	}

	logger := logging.NewLogger("cli")
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("Redis unavailable, running without cache")
		client.Close()
		return nil
	}

	logger.Info().Str("addr", cfg.Redis.Addr).Msg("Response cache enabled")
	return cache.NewManager(client)
}

func newConnectClient(cfg *config.Config, manager *cache.Manager) (*connect.Client, error) {
	connectCfg := connect.DefaultConfig()
	if cfg.Connect.BaseURL != "" {
		connectCfg.BaseURL = cfg.Connect.BaseURL
	}
	if cfg.Connect.SSOBaseURL != "" {
		connectCfg.SSOBaseURL = cfg.Connect.SSOBaseURL
	}
	if cfg.Connect.UserAgent != "" {
		connectCfg.UserAgent = cfg.Connect.UserAgent
	}
	if cfg.Connect.Timeout > 0 {
		connectCfg.Timeout = cfg.Connect.Timeout
	}
	connectCfg.Cache = manager
	connectCfg.CachePastTTL = cfg.Redis.PastTTL

	return connect.New(connectCfg)
}

func startMetricsServer(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())

	server := &http.Server{Addr: addr, Handler: mux}
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.NewLogger("cli").Error().Err(err).Msg("Metrics listener failed")
		}
	}()
	return server
}
