package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"talent-match/internal/app"
	"talent-match/internal/config"
	"talent-match/internal/logger"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const cliName = "recommender"

var rootCmd = &cobra.Command{
	Use:          cliName,
	Short:        "recommender scores candidates against the job catalog and manages stored recommendations",
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

type env struct {
	ctx    context.Context
	cfg    config.Config
	logger *zap.Logger
	stop   func()
}

// setup loads config and a logger; command flags win over LOG_JSON/LOG_DEBUG.
func setup() (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	lg, err := logger.New(cfg.App.LogJSON || viper.GetBool("json"), cfg.App.LogDebug || viper.GetBool("debug"))
	if err != nil {
		return nil, fmt.Errorf("creating a logger: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	return &env{
		ctx:    ctx,
		cfg:    cfg,
		logger: lg.Named(cliName),
		stop: func() {
			stop()
			_ = lg.Sync()
		},
	}, nil
}

func (e *env) container() (*app.Container, error) {
	return app.NewContainer(e.ctx, e.cfg, e.logger)
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
