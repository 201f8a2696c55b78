package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"ossreport/internal/config"
	apperrors "ossreport/internal/errors"
	"ossreport/internal/exporter"
	"ossreport/internal/infrastructure"
	"ossreport/internal/services"
	"ossreport/internal/validation"
	"ossreport/pkg/contracts"
	"ossreport/pkg/contracts/domain"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

// options are the parsed command line flags
type options struct {
	configFile   string
	registration string
	permit       string
	project      string
	dataDir      string
	outDir       string
	period       string
	year         int
	format       string
	metricsFile  string
	version      bool
}

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	fs := flag.NewFlagSet("reportgen", flag.ContinueOnError)
	fs.SetOutput(stderr)

	opts := &options{}
	fs.StringVar(&opts.configFile, "config", "", "YAML config file (defaults to OSS_CONFIG_FILE or ./config.yaml)")
	fs.StringVar(&opts.registration, "registration", "", "NIB registration workbook")
	fs.StringVar(&opts.permit, "permit", "", "PB OSS permit workbook")
	fs.StringVar(&opts.project, "project", "", "project workbook")
	fs.StringVar(&opts.dataDir, "data-dir", "", "directory to discover workbooks in when no workbook flag is given; previous-year workbooks there feed the comparisons")
	fs.StringVar(&opts.outDir, "out", "", "output directory (defaults to paths.output_dir)")
	fs.StringVar(&opts.period, "period", "", `reporting period, e.g. "TW II", "Semester 1" or "Tahunan"`)
	fs.IntVar(&opts.year, "year", 0, "reporting year (defaults to report.default_year or the current year)")
	fs.StringVar(&opts.format, "format", "both", "csv, xlsx, json or both; comma separated")
	fs.StringVar(&opts.metricsFile, "metrics-file", "", "write Prometheus textfile metrics here after the run")
	fs.BoolVar(&opts.version, "version", false, "print version and exit")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	if opts.period == "" && !opts.version {
		return nil, errors.New("-period is required")
	}
	return opts, nil
}

func (o *options) sources() services.Sources {
	sources := services.Sources{}
	for kind, path := range map[domain.DatasetKind]string{
		domain.DatasetRegistration: o.registration,
		domain.DatasetPermit:       o.permit,
		domain.DatasetProject:      o.project,
	} {
		if path != "" {
			sources[kind] = path
		}
	}
	return sources
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Load()
	}
	return config.LoadFile(path)
}

// run is main without the os.Exit, returning the exit code
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(stderr, "error:", err)
		}
		return exitUsage
	}
	if opts.version {
		fmt.Fprintln(stdout, contracts.GetFullVersionString())
		return exitOK
	}

	cfg, err := loadConfig(opts.configFile)
	if err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return exitFailure
	}
	if opts.metricsFile != "" {
		cfg.Telemetry.MetricsEnabled = true
	}

	logger := infrastructure.NewLogger(cfg.Logging, stderr)

	year := opts.year
	if year == 0 {
		year = cfg.Report.DefaultYear
	}
	if year == 0 {
		year = time.Now().Year()
	}
	period, err := domain.ParsePeriodSpec(opts.period, year)
	if err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return exitUsage
	}

	paths, err := cfg.ResolvePaths()
	if err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return exitFailure
	}
	if opts.outDir != "" {
		paths.OutputDir = opts.outDir
	}
	if opts.dataDir != "" {
		paths.DataDir = opts.dataDir
	}

	providers, err := infrastructure.InitializeOTel(infrastructure.NewOTelConfig(cfg.Telemetry), logger)
	if err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return exitFailure
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		if err := providers.Shutdown(shutdownCtx); err != nil {
			logger.Warn("telemetry shutdown failed", slog.String("error", err.Error()))
		}
	}()

	metrics, err := infrastructure.CreateBusinessMetrics(providers.Meter)
	if err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return exitFailure
	}

	code := generate(ctx, cfg, paths, opts, period, providers, metrics, logger, stdout, stderr)

	if opts.metricsFile != "" {
		if err := providers.WriteTextfile(opts.metricsFile); err != nil {
			fmt.Fprintln(stderr, "error: writing metrics:", err)
			if code == exitOK {
				code = exitFailure
			}
		}
	}
	return code
}

func generate(
	ctx context.Context,
	cfg *config.Config,
	paths *config.Paths,
	opts *options,
	period domain.PeriodSpec,
	providers *infrastructure.OTelProviders,
	metrics *infrastructure.BusinessMetrics,
	logger *slog.Logger,
	stdout, stderr io.Writer,
) int {
	formats, err := domain.ParseReportFormats(opts.format)
	if err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return exitUsage
	}

	service, err := services.NewReportService(cfg, services.ReportServiceOptions{
		Tracer:  providers.Tracer,
		Metrics: metrics,
		Logger:  logger,
	})
	if err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return exitFailure
	}

	validator := validation.NewFileValidator(logger)
	if err := validator.ValidateOutputDirectory(paths.OutputDir); err != nil {
		return fail(stderr, err)
	}

	sources := opts.sources()
	for _, path := range sources {
		if err := validator.ValidateWorkbook(path); err != nil {
			return fail(stderr, err)
		}
	}
	discover := len(sources) == 0
	if discover {
		if err := validator.ValidateInputDirectory(paths.DataDir, "*.xlsx"); err != nil {
			return fail(stderr, err)
		}
		sources, err = service.DiscoverSources(ctx, paths.DataDir, period.Year)
		if err != nil {
			return fail(stderr, err)
		}
		for kind, path := range sources {
			logger.Info("discovered workbook", slog.String("dataset", string(kind)), slog.String("file", path))
		}
	}

	// explicit workbooks only get a comparison baseline from an explicit -data-dir
	var history services.Sources
	if discover || opts.dataDir != "" {
		history = service.DiscoverHistory(ctx, paths.DataDir, period)
		for kind, path := range history {
			logger.Info("discovered comparison workbook", slog.String("dataset", string(kind)), slog.String("file", path))
		}
	}

	report, err := service.Generate(ctx, services.ReportRequest{Period: period, Sources: sources, History: history})
	if err != nil {
		return fail(stderr, err)
	}

	written, err := exporter.New(paths, logger).Export(report, formats)
	if err != nil {
		return fail(stderr, err)
	}

	for _, ds := range report.Datasets {
		fmt.Fprintf(stdout, "%-13s loaded %6d  dropped %4d  %s\n", ds.Kind, ds.Quality.Loaded, ds.Quality.Dropped, ds.Source)
		if ds.Quality.Warning != "" {
			fmt.Fprintf(stderr, "warning: %s dataset: %s\n", ds.Kind, ds.Quality.Warning)
		}
	}
	for _, path := range written {
		fmt.Fprintln(stdout, path)
	}
	return exitOK
}

// fail prints err, plus the list of available columns when a required
// column was not found
func fail(stderr io.Writer, err error) int {
	fmt.Fprintln(stderr, "error:", err)

	var mismatch *apperrors.SchemaMismatchError
	if errors.As(err, &mismatch) {
		fmt.Fprintf(stderr, "hint: %s. Add a keyword for %s under keywords.fields.%s in the config file.\n",
			mismatch.Hint(), mismatch.Field, mismatch.Kind)
	}
	return exitFailure
}
