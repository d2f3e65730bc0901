// Command arcade serves the mini game arcade.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/arcadehub/arcade"
	"github.com/arcadehub/arcade/internal/config"
	"github.com/arcadehub/arcade/internal/games"
	"github.com/arcadehub/arcade/internal/logging"
	"github.com/arcadehub/arcade/internal/server"
	"github.com/arcadehub/arcade/internal/stats"
)

var (
	configPath string
	logLevel   string

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:           "arcade",
	Short:         "A hub of small browser games",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			return err
		}
		if cmd.Flags().Changed("log-level") {
			cfg.LogLevel = logLevel
		}
		if logger, err = logging.New(cfg.LogLevel); err != nil {
			return err
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	Long:  "Run the HTTP server.\n\n" + config.Usage(),
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "Print the route table",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		table, err := games.Table(nil, nil)
		if err != nil {
			return err
		}
		return table.Print(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a YAML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.AddCommand(serveCmd, routesCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		var cfgErr *arcade.ConfigError
		if errors.As(err, &cfgErr) {
			fmt.Fprintln(os.Stderr, "route table is invalid:")
			for _, p := range cfgErr.Problems {
				fmt.Fprintln(os.Stderr, "  -", p)
			}
		} else {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	counter, closeCounter, err := newCounter(ctx)
	if err != nil {
		return err
	}
	defer closeCounter()

	srv, err := server.New(cfg, logger, counter)
	if err != nil {
		return err
	}
	return srv.Run(ctx)
}

func newCounter(ctx context.Context) (stats.Counter, func(), error) {
	if cfg.Redis.Addr == "" {
		logger.Info("keeping visit counts in memory")
		return stats.NewMemory(), func() {}, nil
	}
	rc, err := stats.NewRedis(ctx, &redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("could not connect to redis: %w", err)
	}
	logger.Info("keeping visit counts in redis", zap.String("addr", cfg.Redis.Addr))
	return rc, func() {
		if err := rc.Close(); err != nil {
			logger.Error("could not close redis client", zap.Error(err))
		}
	}, nil
}
