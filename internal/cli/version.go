package cli

import (
	"encoding/json"
	"fmt"

	"github.com/agentx-labs/serialcheck/internal/branding"
	"github.com/agentx-labs/serialcheck/internal/codec"
	"github.com/agentx-labs/serialcheck/internal/platform"
	"github.com/spf13/cobra"
)

var (
	versionShort bool
	versionJSON  bool
)

func init() {
	versionCmd.Flags().BoolVar(&versionShort, "short", false, "Print version number only")
	versionCmd.Flags().BoolVar(&versionJSON, "json", false, "Print version info as JSON")
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if versionShort {
			fmt.Fprintln(out, buildVersion)
			return nil
		}

		if versionJSON {
			info := map[string]any{
				"version":  buildVersion,
				"commit":   buildCommit,
				"date":     buildDate,
				"runtime":  platform.RuntimeVersion(),
				"platform": platform.Descriptor(),
				"protocol": codec.HighestProtocol,
			}
			data, err := json.MarshalIndent(info, "", "  ")
			if err != nil {
				return fmt.Errorf("marshaling version info: %w", err)
			}
			fmt.Fprintln(out, string(data))
			return nil
		}

		fmt.Fprintf(out, "%s version %s (commit: %s, built: %s)\n", branding.CLIName(), buildVersion, buildCommit, buildDate)
		fmt.Fprintf(out, "runtime %s, platform %s, highest protocol %d\n", platform.RuntimeVersion(), platform.Descriptor(), codec.HighestProtocol)
		return nil
	},
}
