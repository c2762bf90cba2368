package cmd

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"index-manager/feature/indexes"

	"github.com/spf13/cobra"
)

var listJSON bool

// listCmd prints the managed indexes present in the database.
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List managed indexes present in the database",
	RunE:  runList,
}

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Print JSON instead of a table")
	RootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	rt, err := bootstrap(true)
	if err != nil {
		return err
	}
	defer rt.close()

	list, err := rt.service.List(cmd.Context())
	if err != nil {
		return err
	}

	if listJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(list)
	}
	return printIndexTable(cmd, list)
}

func printIndexTable(cmd *cobra.Command, list []indexes.ListedIndex) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SCHEMA\tTABLE\tNAME\tUNIQUE\tMETHOD\tCOLUMNS\tWHERE")
	for _, item := range list {
		if item.Parsed == nil {
			fmt.Fprintf(w, "%s\t%s\t%s\t?\t?\t?\t%s\n", item.Schema, item.Table, item.Name, item.ParseError)
			continue
		}
		p := item.Parsed
		fmt.Fprintf(w, "%s\t%s\t%s\t%t\t%s\t%s\t%s\n",
			item.Schema, item.Table, item.Name, p.Unique, p.Method, strings.Join(p.Columns, ", "), p.Where)
	}
	return w.Flush()
}
