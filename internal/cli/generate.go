package cli

import (
	"github.com/agentx-labs/serialcheck/internal/catalog"
	"github.com/spf13/cobra"
)

type generateOptions struct {
	cases   []string
	noClean bool
}

var generateOpts generateOptions

func init() {
	generateCmd.Flags().StringSliceVar(&generateOpts.cases, "case", nil, "Only generate the named test case (repeatable)")
	generateCmd.Flags().BoolVar(&generateOpts.noClean, "no-clean", false, "Keep this platform's previous results instead of removing them first")
	rootCmd.AddCommand(generateCmd)
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Serialize the catalog and store results for this platform",
	Long: `Serialize every catalog value, hash it and write one JSON record per value to
<results-dir>/<platform>/<test_case>.json.

Unless --no-clean is given, result directories whose name appears in the
platform descriptor are removed first. Other platforms' results are kept.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGenerate(cmd, generateOpts)
	},
}

func runGenerate(cmd *cobra.Command, opts generateOptions) error {
	cases, err := catalog.Select(opts.cases)
	if err != nil {
		return err
	}
	runner, err := newRunner(cmd)
	if err != nil {
		return err
	}
	if opts.noClean {
		_, err = runner.Generate(cases)
		return err
	}
	_, err = runner.Regenerate(cases)
	return err
}
