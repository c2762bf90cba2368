package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"index-manager/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// envDir is the directory holding the optional .env file.
	envDir string
	// manifestPath overrides index.manifest.
	manifestPath string
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "index-manager",
	Short: "Custom PostgreSQL index manager",
	Long: `Index Manager keeps the custom indexes declared in entity metadata in sync with
the database: missing indexes are created, obsolete ones are dropped.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. SIGINT and SIGTERM cancel the running command.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := RootCmd.ExecuteContext(ctx); err != nil {
		// Console encoding with development timestamps for CLI users.
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		stop()
		os.Exit(1)
	}
}

func init() {
	RootCmd.PersistentFlags().StringVar(&envDir, "env-dir", ".", "Directory of the .env file")
	RootCmd.PersistentFlags().StringVar(&manifestPath, "manifest", "", "Entity manifest path (overrides INDEX_MANIFEST)")
}
