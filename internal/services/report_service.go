package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"ossreport/internal/cache"
	"ossreport/internal/config"
	apperrors "ossreport/internal/errors"
	"ossreport/internal/files"
	"ossreport/internal/infrastructure"
	"ossreport/internal/loader"
	"ossreport/internal/resolver"
	"ossreport/internal/workbook"
	"ossreport/pkg/contracts/domain"
)

// Sources maps each dataset to the workbook it is read from. Datasets
// without a source are left out of the report.
type Sources map[domain.DatasetKind]string

// ReportRequest asks for the report of one period. History holds the
// workbooks of the year before the period; they only feed comparisons.
type ReportRequest struct {
	Period  domain.PeriodSpec
	Sources Sources
	History Sources
}

// ReportServiceOptions carries the optional collaborators of a ReportService
type ReportServiceOptions struct {
	Cache   *cache.DatasetCache
	Tracer  trace.Tracer
	Metrics *infrastructure.BusinessMetrics
	Logger  *slog.Logger
}

// ReportService turns dataset workbooks into reports
type ReportService struct {
	cfg      *config.Config
	reader   *workbook.Reader
	resolver *resolver.Resolver
	loader   *loader.Loader
	cache    *cache.DatasetCache
	tracer   trace.Tracer
	metrics  *infrastructure.BusinessMetrics
	logger   *slog.Logger
}

// NewReportService compiles the keyword dictionaries of cfg and wires the
// pipeline. A nil cache gets a private one sized from cfg.
func NewReportService(cfg *config.Config, opts ReportServiceOptions) (*ReportService, error) {
	logger := infrastructure.WithComponent(opts.Logger, "report_service")

	res, err := resolver.NewFromConfig(cfg, logger)
	if err != nil {
		return nil, err
	}

	c := opts.Cache
	if c == nil {
		if c, err = cache.New(cfg.Cache.Size, logger); err != nil {
			return nil, err
		}
	}

	tracer := opts.Tracer
	if tracer == nil {
		tracer = otel.Tracer(infrastructure.MeterName)
	}

	return &ReportService{
		cfg:      cfg,
		reader:   workbook.NewReader(logger),
		resolver: res,
		loader:   loader.New(loader.Options{RiskAliases: cfg.Report.RiskAliases}, logger),
		cache:    c,
		tracer:   tracer,
		metrics:  opts.Metrics,
		logger:   logger,
	}, nil
}

// Cache exposes the dataset cache for invalidation
func (s *ReportService) Cache() *cache.DatasetCache {
	return s.cache
}

// Generate loads the requested datasets concurrently and builds every
// section and comparison they support.
func (s *ReportService) Generate(ctx context.Context, req ReportRequest) (*domain.Report, error) {
	if err := req.Period.Validate(); err != nil {
		return nil, apperrors.NewAppValidationError(fmt.Sprintf("invalid period: %v", err))
	}
	if len(req.Sources) == 0 {
		return nil, apperrors.NewAppValidationError("no dataset workbook given")
	}

	ctx = infrastructure.EnsureTraceID(ctx)
	ctx, cancel := context.WithTimeout(ctx, config.ReportGenerationTimeout)
	defer cancel()

	ctx, span := s.tracer.Start(ctx, "report.generate",
		trace.WithAttributes(attribute.String("period", req.Period.String())))
	defer span.End()

	start := time.Now()
	report, err := s.generate(ctx, req)
	s.metrics.RecordReport(ctx, req.Period.String(), time.Since(start), err)

	if err != nil {
		infrastructure.RecordError(ctx, err)
		s.logger.ErrorContext(ctx, "report generation failed",
			slog.String("period", req.Period.String()),
			slog.String("error", err.Error()))
		return nil, err
	}

	s.logger.InfoContext(ctx, "report generated",
		slog.String("report_id", report.ID),
		slog.String("period", req.Period.String()),
		slog.Int("sections", len(report.Sections)),
		slog.Int("comparisons", len(report.Comparisons)),
		slog.Duration("duration", time.Since(start)))
	return report, nil
}

func (s *ReportService) generate(ctx context.Context, req ReportRequest) (*domain.Report, error) {
	type loaded struct {
		entry   *cache.Entry
		summary domain.DatasetSummary
	}
	current := make([]loaded, len(domain.DatasetKinds))
	history := make([]loaded, len(domain.DatasetKinds))

	g, gctx := errgroup.WithContext(ctx)
	for i, kind := range domain.DatasetKinds {
		path, ok := req.Sources[kind]
		if !ok || path == "" {
			continue
		}
		g.Go(func() error {
			entry, summary, err := s.LoadDataset(gctx, kind, path)
			if err != nil {
				return err
			}
			current[i] = loaded{entry: entry, summary: summary}
			return nil
		})

		earlier := req.History[kind]
		if earlier == "" || earlier == path {
			continue
		}
		g.Go(func() error {
			entry, summary, err := s.LoadDataset(gctx, kind, earlier)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				// the report still stands without the comparison baseline
				s.logger.WarnContext(gctx, "skipping comparison workbook",
					slog.String("dataset", string(kind)),
					slog.String("file", filepath.Base(earlier)),
					slog.String("error", err.Error()))
				return nil
			}
			summary.History = true
			history[i] = loaded{entry: entry, summary: summary}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	records := make(map[domain.DatasetKind][]domain.Record)
	baseline := make(map[domain.DatasetKind][]domain.Record)
	report := &domain.Report{
		ID:                 uuid.NewString(),
		Title:              "Laporan OSS " + req.Period.Name(),
		Period:             req.Period,
		PeriodName:         req.Period.Name(),
		GoverningAuthority: s.cfg.Report.GoverningAuthority,
		GeneratedAt:        time.Now().UTC(),
	}
	for i, kind := range domain.DatasetKinds {
		if current[i].entry == nil {
			continue
		}
		recs := current[i].entry.Records
		records[kind] = recs
		baseline[kind] = recs

		summary := current[i].summary
		if warning := s.scopeWarning(kind, recs); warning != "" {
			s.logger.WarnContext(ctx, "dataset has no authority values",
				slog.String("dataset", string(kind)),
				slog.String("file", summary.Source),
				slog.String("governing_authority", s.cfg.Report.GoverningAuthority))
			summary.Quality.Warning = joinWarnings(summary.Quality.Warning, warning)
		}
		report.Datasets = append(report.Datasets, summary)

		if history[i].entry != nil {
			baseline[kind] = withHistory(recs, history[i].entry.Records)
			report.Datasets = append(report.Datasets, history[i].summary)
		}
	}

	_, span := s.tracer.Start(ctx, "report.aggregate")
	defer span.End()

	var err error
	if report.Sections, err = s.buildSections(records, req.Period); err != nil {
		return nil, err
	}
	if report.Comparisons, err = s.buildComparisons(baseline, req.Period); err != nil {
		return nil, err
	}
	return report, nil
}

// withHistory adds the records of an earlier workbook for the months the
// current workbook holds nothing for. current is never written to.
func withHistory(current, earlier []domain.Record) []domain.Record {
	type yearMonth struct{ year, month int }
	covered := make(map[yearMonth]bool)
	for _, r := range current {
		covered[yearMonth{r.Date.Year(), r.Date.Month()}] = true
	}

	out := slices.Clip(current)
	for _, r := range earlier {
		if !covered[yearMonth{r.Date.Year(), r.Date.Month()}] {
			out = append(out, r)
		}
	}
	return out
}

func joinWarnings(a, b string) string {
	if a == "" {
		return b
	}
	return a + "; " + b
}

// LoadDataset reads, resolves and loads one workbook, going through the
// dataset cache. The content hash of the file is the cache identity.
func (s *ReportService) LoadDataset(ctx context.Context, kind domain.DatasetKind, path string) (*cache.Entry, domain.DatasetSummary, error) {
	ctx, span := s.tracer.Start(ctx, "dataset.load", trace.WithAttributes(
		attribute.String("dataset", string(kind)),
		attribute.String("file", filepath.Base(path)),
	))
	defer span.End()

	summary := domain.DatasetSummary{Kind: kind, Source: filepath.Base(path)}

	fileID, err := cache.FileIDOf(path)
	if err != nil {
		return nil, summary, apperrors.NewStorageError("cannot read dataset workbook", err).
			WithContext("dataset", string(kind)).
			WithContext("file", summary.Source)
	}
	summary.FileID = fileID

	key := cache.Key{FileID: fileID, Kind: kind}
	if entry, ok := s.cache.Get(key); ok {
		s.metrics.RecordCacheLookup(ctx, string(kind), true)
		infrastructure.AddSpanEvent(ctx, "cache.hit")
		summary.Cached = true
		summary.Quality = entry.Report
		return entry, summary, nil
	}
	s.metrics.RecordCacheLookup(ctx, string(kind), false)

	sheets, err := s.reader.ReadFile(ctx, path)
	if err != nil {
		return nil, summary, err
	}

	res, err := s.resolver.Resolve(sheets, kind)
	if err != nil {
		var mismatch *apperrors.SchemaMismatchError
		if errors.As(err, &mismatch) {
			s.metrics.RecordSchemaMismatch(ctx, string(kind), mismatch.Field)
		}
		return nil, summary, apperrors.NewSchemaError(
			fmt.Sprintf("cannot load %s workbook %s", kind, summary.Source), err).
			WithContext("dataset", string(kind)).
			WithContext("file", summary.Source)
	}
	if res.Warning != nil {
		s.metrics.RecordSheetFallback(ctx, string(kind))
	}

	records, quality := s.loader.Load(res).Collect()
	s.metrics.RecordDatasetLoad(ctx, string(kind), quality.Loaded, quality.Reasons)
	span.SetAttributes(
		attribute.Int("rows.loaded", quality.Loaded),
		attribute.Int("rows.dropped", quality.Dropped),
	)

	entry := &cache.Entry{
		Source:   path,
		Records:  records,
		Report:   quality,
		LoadedAt: time.Now(),
	}
	s.cache.Put(key, entry)

	summary.Quality = quality
	return entry, summary, nil
}

// DiscoverSources picks the newest workbook per dataset in dir for year.
// Files whose name does not tell the dataset are opened and classified by
// content.
func (s *ReportService) DiscoverSources(ctx context.Context, dir string, year int) (Sources, error) {
	found, err := s.ListWorkbooks(ctx, dir)
	if err != nil {
		return nil, err
	}

	sources := make(Sources)
	for kind, f := range files.LatestByKind(files.FilterByYear(found, year)) {
		sources[kind] = f.Path
	}
	if len(sources) == 0 {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("dataset workbook for %d in %s", year, dir))
	}
	return sources, nil
}

// DiscoverHistory finds the workbooks of the year before period, which the
// comparisons against Previous and YearAgo read from. Nothing found is not
// an error: those comparisons then report a zero baseline.
func (s *ReportService) DiscoverHistory(ctx context.Context, dir string, period domain.PeriodSpec) Sources {
	year := period.YearAgo().Year
	sources, err := s.DiscoverSources(ctx, dir, year)
	if err != nil {
		level := slog.LevelWarn
		if apperrors.TypeOf(err) == apperrors.ErrTypeNotFound {
			level = slog.LevelInfo
		}
		s.logger.Log(ctx, level, "no comparison workbooks",
			slog.Int("year", year),
			slog.String("dir", dir),
			slog.String("error", err.Error()))
		return nil
	}
	return sources
}

// ListWorkbooks lists the workbooks of dir with their dataset kind, opening
// the ones the file name does not classify
func (s *ReportService) ListWorkbooks(ctx context.Context, dir string) ([]files.FileInfo, error) {
	found, err := files.NewDiscovery("").FindWorkbooks(dir)
	if err != nil {
		return nil, apperrors.NewStorageError("cannot list data directory", err).WithContext("dir", dir)
	}

	for i := range found {
		if found[i].Kind != "" {
			continue
		}
		sheets, err := s.reader.ReadFile(ctx, found[i].Path)
		if err != nil {
			s.logger.WarnContext(ctx, "skipping unreadable workbook",
				slog.String("file", found[i].Name),
				slog.String("error", err.Error()))
			continue
		}
		if kind, err := workbook.DetectKind(sheets, found[i].Name); err == nil {
			found[i].Kind = kind
		}
	}
	return found, nil
}
