package probe

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/agentx-labs/serialcheck/internal/catalog"
	"github.com/agentx-labs/serialcheck/internal/codec"
	"github.com/agentx-labs/serialcheck/internal/compare"
	"github.com/agentx-labs/serialcheck/internal/digest"
	"github.com/agentx-labs/serialcheck/internal/logging"
	"github.com/agentx-labs/serialcheck/internal/platform"
	"github.com/agentx-labs/serialcheck/internal/results"
	"go.uber.org/zap"
)

// Options configures a Runner. Zero values fall back to the highest
// protocol, the default digest, the detected platform and runtime, and
// io.Discard for progress output.
type Options struct {
	ResultsDir     string
	Protocol       int
	Hash           digest.Algorithm
	Descriptor     string
	RuntimeVersion string
	Out            io.Writer
}

// Runner generates and compares result sets under one results root.
type Runner struct {
	store          *results.Store
	protocol       int
	hash           digest.Algorithm
	descriptor     string
	runtimeVersion string
	out            io.Writer
}

// New returns a Runner for opts.
func New(opts Options) (*Runner, error) {
	r := &Runner{
		store:          results.NewStore(opts.ResultsDir),
		protocol:       opts.Protocol,
		hash:           opts.Hash,
		descriptor:     opts.Descriptor,
		runtimeVersion: opts.RuntimeVersion,
		out:            opts.Out,
	}
	if r.store.Root == "" {
		r.store.Root = "."
	}
	if r.protocol == 0 {
		r.protocol = codec.HighestProtocol
	}
	if !codec.ValidProtocol(r.protocol) {
		return nil, fmt.Errorf("%w: %d", codec.ErrUnknownProtocol, r.protocol)
	}
	if r.hash == "" {
		r.hash = digest.Default
	}
	if r.descriptor == "" {
		r.descriptor = platform.Descriptor()
	}
	if r.runtimeVersion == "" {
		r.runtimeVersion = platform.RuntimeVersion()
	}
	if r.out == nil {
		r.out = io.Discard
	}
	return r, nil
}

// Store returns the result store the runner reads and writes.
func (r *Runner) Store() *results.Store { return r.store }

// Descriptor returns the platform descriptor records are written under.
func (r *Runner) Descriptor() string { return r.descriptor }

// PlatformDir returns the result directory for this runner's descriptor.
func (r *Runner) PlatformDir() string { return platform.DirFor(r.descriptor) }

// Record serializes and hashes a single value.
func (r *Runner) Record(c catalog.Case) (results.Record, error) {
	data, err := codec.Marshal(c.Value, r.protocol)
	if err != nil {
		return results.Record{}, fmt.Errorf("serializing %s: %w", c.Name, err)
	}
	rec, err := results.NewRecord(c.Name, data, r.protocol, r.hash, r.runtimeVersion, r.descriptor)
	if err != nil {
		return results.Record{}, fmt.Errorf("hashing %s: %w", c.Name, err)
	}
	logging.Logger().Debug("serialized test case",
		zap.String("case", c.Name),
		zap.Int("bytes", len(data)),
		zap.String("hash", rec.Hash))
	return rec, nil
}

// Generate writes one record per case into this platform's directory.
func (r *Runner) Generate(cases []catalog.Case) ([]results.Record, error) {
	fmt.Fprintln(r.out, "Creating serialized files...")

	dir := r.PlatformDir()
	recs := make([]results.Record, 0, len(cases))
	for _, c := range cases {
		rec, err := r.Record(c)
		if err != nil {
			return recs, err
		}
		if _, err := r.store.Write(dir, rec); err != nil {
			return recs, err
		}
		recs = append(recs, rec)
	}

	fmt.Fprintf(r.out, "Wrote %d records to %s (protocol %d, %s).\n", len(recs), r.store.Dir(dir), r.protocol, r.hash)
	fmt.Fprintln(r.out, "Serialized files created.")
	return recs, nil
}

// Cleanup removes the result directories whose names appear in this
// runner's descriptor. Other platforms' results are kept.
func (r *Runner) Cleanup() error {
	removed, err := r.store.Clean(r.descriptor)
	for _, dir := range removed {
		fmt.Fprintf(r.out, "Removed previous results in %s\n", r.store.Dir(dir))
	}
	return err
}

// Regenerate is the generate mode of the tool: clean this platform's
// previous results, then write fresh ones.
func (r *Runner) Regenerate(cases []catalog.Case) ([]results.Record, error) {
	if err := r.Cleanup(); err != nil {
		return nil, err
	}
	return r.Generate(cases)
}

// Compare loads every platform directory and compares the left and right
// result sets. A platform with no directory compares as empty.
func (r *Runner) Compare(left, right string) (*compare.Report, error) {
	for _, name := range []string{left, right} {
		if !slices.Contains(platform.Dirs(), name) {
			return nil, fmt.Errorf("unknown platform directory %q (want one of %s)", name, strings.Join(platform.Dirs(), ", "))
		}
	}

	all, err := r.store.LoadAll()
	if err != nil {
		return nil, err
	}
	return compare.NewReport(
		compare.Side{Name: left, Results: all[left]},
		compare.Side{Name: right, Results: all[right]},
	), nil
}
