package cli

import (
	"fmt"

	"github.com/agentx-labs/serialcheck/internal/compare"
	"github.com/agentx-labs/serialcheck/internal/platform"
	"github.com/spf13/cobra"
)

type compareOptions struct {
	left       string
	right      string
	format     string
	failOnDiff bool
}

var compareOpts compareOptions

func init() {
	compareCmd.Flags().StringVar(&compareOpts.left, "left", platform.Linux, "First platform directory")
	compareCmd.Flags().StringVar(&compareOpts.right, "right", platform.Windows, "Second platform directory")
	compareCmd.Flags().StringVar(&compareOpts.format, "format", "text", "Report format (text, json, yaml)")
	compareCmd.Flags().BoolVar(&compareOpts.failOnDiff, "fail-on-diff", false, "Exit non-zero when differences are found")
	rootCmd.AddCommand(compareCmd)
}

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare stored results of two platforms",
	Long: `Load the stored results of two platform directories and report test cases
that are missing on one side (MISSING) or whose hashes differ (DIFFERENT).
A platform without a result directory compares as empty.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCompare(cmd, compareOpts)
	},
}

func runCompare(cmd *cobra.Command, opts compareOptions) error {
	format, err := compare.ParseFormat(opts.format)
	if err != nil {
		return err
	}
	runner, err := newRunner(cmd)
	if err != nil {
		return err
	}

	report, err := runner.Compare(opts.left, opts.right)
	if err != nil {
		return err
	}
	if err := compare.Render(cmd.OutOrStdout(), format, report); err != nil {
		return err
	}

	if opts.failOnDiff && len(report.Differences) > 0 {
		return fmt.Errorf("%d difference(s) between %s and %s", len(report.Differences), opts.left, opts.right)
	}
	return nil
}
