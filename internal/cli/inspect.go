package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/agentx-labs/serialcheck/internal/codec"
	"github.com/agentx-labs/serialcheck/internal/config"
	"github.com/agentx-labs/serialcheck/internal/results"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <platform> <test-case>",
	Short: "Show a stored record and its decoded bytes",
	Long: `Print the fields of <results-dir>/<platform>/<test-case>.json, check that the
stored hash matches the stored bytes, and show the bytes in CBOR diagnostic
notation (RFC 8949 §8).`,
	Example: "  serialcheck inspect Linux recursive_list",
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := config.Current()
		if err != nil {
			return err
		}
		store := results.NewStore(s.ResultsDir)
		rec, err := store.Read(args[0], args[1])
		if err != nil {
			return err
		}
		return printRecord(cmd, rec)
	},
}

func printRecord(cmd *cobra.Command, rec results.Record) error {
	out := cmd.OutOrStdout()
	data, err := rec.Bytes()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Test case:\t%s\n", rec.TestCase)
	fmt.Fprintf(w, "Platform:\t%s\n", rec.Platform)
	fmt.Fprintf(w, "Runtime:\t%s\n", rec.RuntimeVersion)
	fmt.Fprintf(w, "Protocol:\t%d\n", rec.Protocol)
	fmt.Fprintf(w, "Hash:\t%s (%s)\n", rec.Hash, rec.Algorithm())
	fmt.Fprintf(w, "Size:\t%d bytes\n", len(data))
	if err := w.Flush(); err != nil {
		return err
	}

	ok, err := rec.Verify()
	switch {
	case err != nil:
		fmt.Fprintf(out, "  [WARN] cannot verify hash: %v\n", err)
	case ok:
		fmt.Fprintln(out, "  [ OK ] hash matches stored bytes")
	default:
		fmt.Fprintln(out, "  [FAIL] hash does not match stored bytes")
	}

	diag, err := codec.Diagnose(data)
	if err != nil {
		fmt.Fprintf(out, "  [WARN] bytes are not CBOR: %v\n", err)
		return nil
	}
	fmt.Fprintf(out, "Diagnostic:\n  %s\n", diag)
	return nil
}
