package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/eunmann/mergebench/internal/logctx"
	"github.com/eunmann/mergebench/pkg/arraygen"
	"github.com/eunmann/mergebench/pkg/experiment"
	"github.com/eunmann/mergebench/pkg/logging"
	"github.com/eunmann/mergebench/pkg/memdiag"
	"github.com/eunmann/mergebench/pkg/report"
	"github.com/eunmann/mergebench/pkg/s3upload"
	"github.com/eunmann/mergebench/pkg/sysmem"
	"github.com/rs/zerolog"
)

// newUploader is replaced in tests.
var newUploader = func(ctx context.Context) (fileUploader, error) {
	return s3upload.NewUploader(ctx, s3upload.DefaultConfig())
}

type fileUploader interface {
	UploadAll(ctx context.Context, dest s3upload.Destination, files []string) ([]s3upload.Result, error)
}

// execute runs generate, measure, report and upload in order. Output files
// are opened before measuring so an unwritable destination fails fast.
func execute(ctx context.Context, opts *options) error {
	start := time.Now()
	ctx = logctx.WithLogger(ctx, *logging.L())
	log := logctx.FromContext(ctx)
	host := sysmem.Snapshot()

	log.Info().
		Str("event", "run_started").
		Int("min_size", opts.exp.MinSize).
		Int("max_size", opts.exp.MaxSize).
		Int("step", opts.exp.Step).
		Int("runs", opts.exp.Runs).
		Ints("thresholds", opts.exp.Thresholds).
		Bool("standard", opts.exp.RunStandard).
		Bool("hybrid", opts.exp.RunHybrid).
		Int64("seed", opts.gen.Seed).
		Str("seed_source", string(opts.seedSource)).
		Int("min_value", opts.gen.Min).
		Int("max_value", opts.gen.Max).
		Uint64("host_memory_bytes", host.TotalBytes).
		Int("num_cpu", host.NumCPU).
		Str("go_version", host.GoVersion).
		Msg("starting mergebench")

	genStart := time.Now()
	gen, err := arraygen.New(opts.gen)
	if err != nil {
		return usageError(fmt.Errorf("generate arrays: %w", err))
	}
	logging.PhaseComplete(log, "generate", time.Since(genStart)).
		Count("base_length", int64(gen.MaxLen())).
		Int("array_types", len(arraygen.AllTypes)).
		Log("base arrays generated")

	driver, err := experiment.New(opts.exp, gen)
	if err != nil {
		return usageError(err)
	}

	outs, err := openOutputs(opts.outputs())
	if err != nil {
		return &ExitError{Code: ExitOutput, Err: err}
	}
	defer outs.abort()

	measureStart := time.Now()
	memBefore := memdiag.Read()
	ms, err := driver.Run(ctx)
	if err != nil {
		return fmt.Errorf("run experiments: %w", err)
	}
	mem := memdiag.Read().Since(memBefore)
	logging.PhaseComplete(log, "measure", time.Since(measureStart)).
		Count("cells", int64(len(ms))).
		Bytes("allocated_bytes", int64(mem.Allocated)).
		Int64("gc_cycles", int64(mem.GCCycles)).
		Int64("gc_pause_ms", mem.GCPause.Milliseconds()).
		Log("measurements complete")

	reportStart := time.Now()
	rows := report.Summarize(ms)
	if err := writeReports(log, opts, outs, ms, rows); err != nil {
		return &ExitError{Code: ExitOutput, Err: err}
	}

	files := opts.outputs()
	manifestDir := filepath.Dir(opts.rawPath)
	manifestPath, err := report.WriteManifest(manifestDir, &report.Manifest{
		Seed:       opts.gen.Seed,
		MinValue:   opts.gen.Min,
		MaxValue:   opts.gen.Max,
		Experiment: report.NewRunConfig(opts.exp),
		Host:       host,
		Cells:      len(ms),
		GCCycles:   mem.GCCycles,
		Duration:   time.Since(start),
	}, files)
	if err != nil {
		return &ExitError{Code: ExitOutput, Err: fmt.Errorf("write manifest: %w", err)}
	}
	logging.PhaseComplete(log, "report", time.Since(reportStart)).
		Int("files", len(files)+1).
		Str("manifest", manifestPath).
		Log("reports written")

	for _, r := range report.Fastest(rows) {
		log.Info().
			Str("array_type", r.ArrayType).
			Int("n", r.N).
			Str("variant", r.Label()).
			Float64("mean_usec", r.Stats.Mean).
			Msg("fastest variant at largest size")
	}

	if opts.uploadURI != "" {
		if err := upload(ctx, opts.uploadURI, append(files, manifestPath)); err != nil {
			return err
		}
	}

	logging.PhaseComplete(log, "run", time.Since(start)).Log("mergebench complete")
	return nil
}

func writeReports(log zerolog.Logger, opts *options, outs outputSet, ms []experiment.Measurement, rows []report.SummaryRow) error {
	for _, out := range outs {
		fileStart := time.Now()

		var err error
		switch out.Path() {
		case opts.rawPath:
			err = report.WriteRaw(out, ms)
		case opts.summaryPath:
			err = report.WriteSummary(out, rows)
		case opts.parquetPath:
			err = report.WriteParquet(out, report.Flatten(ms))
		default:
			err = fmt.Errorf("%w: unexpected output %s", report.ErrOutput, out.Path())
		}
		if err != nil {
			return fmt.Errorf("write %s: %w", out.Path(), err)
		}

		written := out.BytesWritten()
		if err := out.Commit(); err != nil {
			return err
		}
		logging.FileCreated(log, "report", time.Since(fileStart)).
			Str("path", out.Path()).
			Str("compression", string(report.CompressionFor(out.Path()))).
			Bytes("bytes", written).
			Log("report file written")
	}
	return nil
}

func upload(ctx context.Context, uri string, files []string) error {
	start := time.Now()
	dest, err := s3upload.ParseDestination(uri)
	if err != nil {
		return usageError(err)
	}

	up, err := newUploader(ctx)
	if err != nil {
		return fmt.Errorf("create uploader: %w", err)
	}
	results, err := up.UploadAll(ctx, dest, files)
	if err != nil {
		return fmt.Errorf("upload to %s: %w", dest, err)
	}

	var total int64
	for _, r := range results {
		total += r.Bytes
	}
	logging.PhaseComplete(logctx.FromContext(ctx), "upload", time.Since(start)).
		Str("destination", dest.String()).
		Int("files", len(results)).
		Bytes("bytes", total).
		Log("results uploaded")
	return nil
}

// outputSet is the list of open report outputs.
type outputSet []*report.Output

func openOutputs(paths []string) (outputSet, error) {
	outs := make(outputSet, 0, len(paths))
	for _, p := range paths {
		out, err := report.Create(p)
		if err != nil {
			outs.abort()
			return nil, err
		}
		outs = append(outs, out)
	}
	return outs, nil
}

// abort discards every output that was not committed.
func (s outputSet) abort() {
	var errs []error
	for _, out := range s {
		if err := out.Abort(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		log := logging.WithPhase("report")
		log.Warn().Err(err).Msg("failed to remove temporary outputs")
	}
}
