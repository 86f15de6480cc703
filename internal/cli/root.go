package cli

import (
	"fmt"
	"os"

	"github.com/agentx-labs/serialcheck/internal/branding"
	"github.com/agentx-labs/serialcheck/internal/codec"
	"github.com/agentx-labs/serialcheck/internal/config"
	"github.com/agentx-labs/serialcheck/internal/digest"
	"github.com/agentx-labs/serialcheck/internal/logging"
	"github.com/agentx-labs/serialcheck/internal/platform"
	"github.com/agentx-labs/serialcheck/internal/probe"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string

	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName() + " <True|False>",
	Short: branding.Description(),
	Long: branding.DisplayName() + ` serializes a fixed catalog of sample values, hashes the bytes and stores
one record per value under a platform directory (Linux, Windows or Other).
Comparing two platform directories reports values whose serialized form
differs between platforms.

The single argument selects the mode: "False" compares the Linux and Windows
results, anything else regenerates the results for this platform.`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config.Load()
		l, err := logging.New(verbose)
		if err != nil {
			return fmt.Errorf("initializing logger: %w", err)
		}
		logging.SetLogger(l)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logging.Logger().Sync()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if !createFiles(args[0]) {
			return runCompare(cmd, compareOptions{
				left:   platform.Linux,
				right:  platform.Windows,
				format: "text",
			})
		}
		return runGenerate(cmd, generateOptions{})
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("results-dir", ".", "Directory holding the Linux, Windows and Other result directories")
	pf.String("hash", string(digest.Default), "Hash algorithm for new records (sha256, blake3)")
	pf.Int("protocol", codec.HighestProtocol, "Serialization protocol for new records")
	pf.String("platform", "", "Platform descriptor to use instead of the detected one")
	pf.BoolVarP(&verbose, "verbose", "v", false, "Log diagnostic events to stderr")

	_ = viper.BindPFlag(config.KeyResultsDir, pf.Lookup("results-dir"))
	_ = viper.BindPFlag(config.KeyHash, pf.Lookup("hash"))
	_ = viper.BindPFlag(config.KeyProtocol, pf.Lookup("protocol"))
	_ = viper.BindPFlag(config.KeyPlatform, pf.Lookup("platform"))
}

// createFiles interprets the mode argument: only the literal "False"
// selects compare mode.
func createFiles(arg string) bool {
	return arg != "False"
}

// newRunner builds a probe runner from the resolved settings.
func newRunner(cmd *cobra.Command) (*probe.Runner, error) {
	s, err := config.Current()
	if err != nil {
		return nil, err
	}
	return probe.New(probe.Options{
		ResultsDir: s.ResultsDir,
		Protocol:   s.Protocol,
		Hash:       s.Hash,
		Descriptor: s.Platform,
		Out:        cmd.OutOrStdout(),
	})
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}
