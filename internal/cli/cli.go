// Package cli implements the command-line interface for mergebench.
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/eunmann/mergebench/pkg/arraygen"
	"github.com/eunmann/mergebench/pkg/experiment"
	"github.com/eunmann/mergebench/pkg/logging"
	"github.com/eunmann/mergebench/pkg/report"
	"github.com/eunmann/mergebench/pkg/s3upload"
)

// Process exit codes.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
	ExitOutput  = 3
)

// SeedEnv overrides the seed when --seed is not given.
const SeedEnv = "MERGEBENCH_SEED"

// ExitError carries the process exit code for an error.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

func usageError(err error) error {
	return &ExitError{Code: ExitUsage, Err: err}
}

// ExitCode maps an error returned by Run to a process exit code.
func ExitCode(err error) int {
	if err == nil || errors.Is(err, flag.ErrHelp) {
		return ExitOK
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	switch {
	case errors.Is(err, experiment.ErrInvalidConfig),
		errors.Is(err, arraygen.ErrInvalidConfig),
		errors.Is(err, s3upload.ErrInvalidURI):
		return ExitUsage
	case errors.Is(err, report.ErrOutput):
		return ExitOutput
	default:
		return ExitFailure
	}
}

// Run executes the CLI with the given arguments. Asking for help prints the
// usage and returns nil.
func Run(args []string) error {
	return run(context.Background(), args, os.Stderr)
}

func run(ctx context.Context, args []string, stderr io.Writer) error {
	opts, err := parseOptions(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	if err != nil {
		return err
	}

	logging.Init(opts.debug, opts.human)
	return execute(ctx, opts)
}

// SeedSource indicates where the generator seed came from.
type SeedSource string

const (
	// SeedSourceCLI indicates the seed was set via --seed.
	SeedSourceCLI SeedSource = "cli"
	// SeedSourceEnv indicates the seed was set via MERGEBENCH_SEED.
	SeedSourceEnv SeedSource = "env"
	// SeedSourceTime indicates the seed was derived from the clock.
	SeedSourceTime SeedSource = "time"
)

type options struct {
	exp        experiment.Config
	gen        arraygen.Config
	seedSource SeedSource

	rawPath     string
	summaryPath string
	parquetPath string
	uploadURI   string

	debug bool
	human bool
}

// outputs lists the enabled report destinations, raw first.
func (o *options) outputs() []string {
	paths := []string{o.rawPath}
	if o.summaryPath != "" {
		paths = append(paths, o.summaryPath)
	}
	if o.parquetPath != "" {
		paths = append(paths, o.parquetPath)
	}
	return paths
}

// manifestPath is where the run manifest is written, next to the raw results.
func (o *options) manifestPath() string {
	return filepath.Join(filepath.Dir(o.rawPath), report.ManifestName)
}

func parseOptions(args []string, stderr io.Writer) (*options, error) {
	def := experiment.DefaultConfig()

	fs := flag.NewFlagSet("mergebench", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: mergebench [options]\n\n")
		fmt.Fprintf(fs.Output(), "Times standard merge sort against hybrid merge/insertion sort.\n\n")
		fs.PrintDefaults()
	}

	minSize := fs.Int("min-size", def.MinSize, "smallest array size")
	maxSize := fs.Int("max-size", def.MaxSize, "largest array size (also the generated base length)")
	step := fs.Int("step", def.Step, "array size increment")
	runs := fs.Int("runs", def.Runs, "timed repetitions per cell")
	thresholds := fs.String("thresholds", joinInts(def.Thresholds), "comma-separated hybrid thresholds")
	seedFlag := fs.String("seed", "", "generator seed (env "+SeedEnv+"; default: time-derived)")
	minValue := fs.Int("min-value", arraygen.DefaultMin, "smallest generated value")
	maxValue := fs.Int("max-value", arraygen.DefaultMax, "largest generated value")
	runStandard := fs.Bool("standard", true, "measure standard merge sort")
	runHybrid := fs.Bool("hybrid", true, "measure hybrid merge sort")
	rawPath := fs.String("out", "results/raw_results.csv", "raw results CSV (.zst or .gz to compress)")
	summaryPath := fs.String("summary", "results/summary.csv", "aggregated CSV; empty disables")
	parquetPath := fs.String("parquet", "", "long-format Parquet records; empty disables")
	uploadURI := fs.String("upload", "", "upload results to s3://bucket/prefix")
	progressEvery := fs.Int("progress-every", def.ProgressEvery, "size steps between progress events (0: only at the end)")
	verify := fs.Bool("verify", false, "check that every sort produced sorted output")
	debug := fs.Bool("debug", false, "enable debug logging")
	human := fs.Bool("human", false, "human-readable console logging")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, err
		}
		return nil, usageError(err)
	}
	if fs.NArg() > 0 {
		return nil, usageError(fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " ")))
	}

	ts, err := parseThresholds(*thresholds)
	if err != nil {
		return nil, usageError(fmt.Errorf("invalid --thresholds: %w", err))
	}

	seed, source, err := determineSeed(*seedFlag)
	if err != nil {
		return nil, usageError(err)
	}

	opts := &options{
		exp: experiment.Config{
			MinSize:       *minSize,
			MaxSize:       *maxSize,
			Step:          *step,
			Runs:          *runs,
			Thresholds:    ts,
			RunStandard:   *runStandard,
			RunHybrid:     *runHybrid,
			ProgressEvery: *progressEvery,
			Verify:        *verify,
		},
		gen: arraygen.Config{
			MaxLen: *maxSize,
			Min:    *minValue,
			Max:    *maxValue,
			Seed:   seed,
		},
		seedSource:  source,
		rawPath:     *rawPath,
		summaryPath: *summaryPath,
		parquetPath: *parquetPath,
		uploadURI:   *uploadURI,
		debug:       *debug,
		human:       *human,
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}
	return opts, nil
}

// validate checks everything that can be checked before generating data.
func (o *options) validate() error {
	if err := o.exp.Validate(); err != nil {
		return usageError(err)
	}
	if err := o.gen.Validate(); err != nil {
		return usageError(err)
	}
	if o.rawPath == "" {
		return usageError(errors.New("--out is required"))
	}

	seen := make(map[string]bool)
	for _, p := range append(o.outputs(), o.manifestPath()) {
		p = filepath.Clean(p)
		if seen[p] {
			return usageError(fmt.Errorf("output path %s is used more than once", p))
		}
		seen[p] = true
	}

	if o.uploadURI != "" {
		if _, err := s3upload.ParseDestination(o.uploadURI); err != nil {
			return usageError(fmt.Errorf("invalid --upload: %w", err))
		}
	}
	return nil
}

// parseThresholds parses a comma-separated list of integers. An empty string
// yields no thresholds.
func parseThresholds(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			return nil, fmt.Errorf("empty entry in %q", s)
		}
		v, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("parse %q: %w", p, err)
		}
		out = append(out, v)
	}
	return out, nil
}

func joinInts(vs []int) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}

// determineSeed resolves the generator seed with priority:
// 1. --seed flag
// 2. MERGEBENCH_SEED environment variable
// 3. Current time
func determineSeed(cliSeed string) (int64, SeedSource, error) {
	if cliSeed != "" {
		seed, err := strconv.ParseInt(strings.TrimSpace(cliSeed), 10, 64)
		if err != nil {
			return 0, "", fmt.Errorf("invalid --seed value: %w", err)
		}
		return seed, SeedSourceCLI, nil
	}

	if envSeed := os.Getenv(SeedEnv); envSeed != "" {
		seed, err := strconv.ParseInt(strings.TrimSpace(envSeed), 10, 64)
		if err != nil {
			return 0, "", fmt.Errorf("invalid %s value: %w", SeedEnv, err)
		}
		return seed, SeedSourceEnv, nil
	}

	return time.Now().UnixNano(), SeedSourceTime, nil
}
