package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var dumpSQL bool

// updateCmd reconciles the managed indexes.
var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Create new and drop obsolete custom indexes",
	Long: `Compares the indexes declared in the entity manifest with the managed indexes
in the database, drops the ones no longer declared and creates the missing ones.

Examples:
  # Apply changes
  index-manager update

  # Print the SQL instead of executing it
  index-manager update --dump-sql`,
	RunE: runUpdate,
}

func init() {
	updateCmd.Flags().BoolVar(&dumpSQL, "dump-sql", false, "Dump SQL instead of creating and dropping indexes")
	RootCmd.AddCommand(updateCmd)
}

func runUpdate(cmd *cobra.Command, args []string) error {
	rt, err := bootstrap(true)
	if err != nil {
		return err
	}
	defer rt.close()

	out, err := rt.service.Apply(cmd.Context(), dumpSQL)
	if out != nil && out.Result != nil {
		for _, line := range out.Result.Lines {
			fmt.Fprintln(cmd.OutOrStdout(), line)
		}
		if out.ReportKey != "" {
			rt.logger.Info("Run report archived", zap.String("key", out.ReportKey))
		}
	}
	return err
}
