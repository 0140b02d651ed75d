// Command cmsctl is the operator CLI for the CMS backend.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"basegraph.app/cms/common/logger"
	"basegraph.app/cms/core/config"
)

var rootCmd = &cobra.Command{
	Use:           "cmsctl",
	Short:         "Operate the CMS backend",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(userCmd)
	rootCmd.AddCommand(schemaCmd)
	rootCmd.AddCommand(eventsCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// loadConfig is called by the commands that touch a backend.
func loadConfig(ctx context.Context) (config.Config, error) {
	cfg, err := config.Load(config.ServiceTypeCLI)
	if err != nil {
		return config.Config{}, fmt.Errorf("loading config: %w", err)
	}
	logger.Setup(cfg)
	slog.DebugContext(ctx, "config loaded", "env", cfg.Env, "store", cfg.Store.Backend)
	return cfg, nil
}
