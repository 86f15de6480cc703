package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/agentx-labs/serialcheck/internal/catalog"
	"github.com/agentx-labs/serialcheck/internal/codec"
	"github.com/spf13/cobra"
)

var listJSON bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the test cases in the catalog",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(listCmd)
}

// listEntry represents a catalog case for display.
type listEntry struct {
	Name string `json:"name"`
	Kind string `json:"kind"`
}

func runList(cmd *cobra.Command, args []string) error {
	var entries []listEntry
	for _, c := range catalog.Cases() {
		entries = append(entries, listEntry{Name: c.Name, Kind: codec.KindOf(c.Value)})
	}

	if listJSON {
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "NAME\tKIND")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\n", e.Name, e.Kind)
	}
	return w.Flush()
}
