// Package main is the entry point of the mucalc tool.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/udisondev/mugo/internal/config"
)

const ConfigPath = "config/mucalc.yaml"

var (
	configPath string
	cfg        config.Calculator
)

var rootCmd = &cobra.Command{
	Use:   "mucalc",
	Short: "Item power-up calculator",
	Long: `mucalc evaluates the attributes a character gets from equipped items:
base values, excellent and ancient bonuses, item set and option combination bonuses.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default $MUGO_CONFIG or "+ConfigPath+")")

	rootCmd.AddCommand(calcCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(revisionsCmd)
}

// setup загружает .env и конфиг, настраивает slog.
func setup(_ *cobra.Command, _ []string) error {
	// .env опционален
	envLoaded := godotenv.Load() == nil

	path := configPath
	if path == "" {
		path = ConfigPath
		if p := os.Getenv("MUGO_CONFIG"); p != "" {
			path = p
		}
	}

	var err error
	cfg, err = config.LoadCalculator(path)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	})))
	slog.Debug("config loaded", "path", path, "data_dir", cfg.DataDir, "dotenv", envLoaded)
	return nil
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
